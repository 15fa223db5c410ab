package objectstore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// MemoryProvider is an in-memory store. It backs local development and the
// test suites; an empty one makes every download fail, which is the
// behavior of an unconfigured store.
type MemoryProvider struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryProvider returns an empty in-memory store.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{objects: map[string][]byte{}}
}

// Add stores an object under key.
func (p *MemoryProvider) Add(key string, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.objects[key] = data
}

// Download fetches the object at key.
func (p *MemoryProvider) Download(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, ok := p.objects[key]
	if !ok {
		return nil, 0, errors.Errorf("no object stored at %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}
