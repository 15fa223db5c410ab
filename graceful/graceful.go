package graceful

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Shutdownable can be closed gracefully
type Shutdownable interface {
	Shutdown(context.Context) error
}

type target struct {
	name    string
	shut    Shutdownable
	timeout time.Duration
}

// Closer handles shutdown of servers and connections
type Closer struct {
	targets      []target
	targetsMutex sync.Mutex

	done     chan struct{}
	finished chan struct{}
	doneBool int32
}

// Register inserts a subject to shutdown gracefully
func (cc *Closer) Register(name string, shut Shutdownable, timeout time.Duration) {
	if atomic.LoadInt32(&cc.doneBool) != 0 {
		return
	}

	cc.targetsMutex.Lock()
	cc.targets = append(cc.targets, target{
		name:    name,
		shut:    shut,
		timeout: timeout,
	})
	cc.targetsMutex.Unlock()
}

// Wait blocks until every registered target has been shut down.
func (cc *Closer) Wait() {
	<-cc.finished
}

// DetectShutdown waits for a shutdown signal and then shuts down gracefully.
// The returned function triggers the same shutdown programmatically.
func DetectShutdown(log logrus.FieldLogger) (*Closer, func()) {
	cc := &Closer{
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}

	go func() {
		waitForShutdown(log, cc.done)

		if atomic.SwapInt32(&cc.doneBool, 1) != 1 {
			cc.targetsMutex.Lock()
			log.Debugf("Initiating shutdown of %d targets", len(cc.targets))
			wg := sync.WaitGroup{}
			for _, t := range cc.targets {
				wg.Add(1)
				go func(t target) {
					defer wg.Done()
					ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
					defer cancel()
					if err := t.shut.Shutdown(ctx); err != nil {
						log.WithError(err).Warnf("Error while shutting down %s", t.name)
					} else {
						log.Debugf("Shut down %s", t.name)
					}
				}(t)
			}
			cc.targetsMutex.Unlock()
			wg.Wait()
			close(cc.finished)
		}
	}()

	var once sync.Once
	return cc, func() {
		once.Do(func() { close(cc.done) })
	}
}

func waitForShutdown(log logrus.FieldLogger, done <-chan struct{}) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		log.Infof("Triggering shutdown from signal %s", sig)
	case <-done:
		log.Info("Triggering shutdown")
	}
}
