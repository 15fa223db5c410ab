package viewer

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// State is the guard's lifecycle state.
type State int

// Guard states. StateTampered is terminal for the viewing session: the
// only way back is a full reload, which forces a fresh handle through the
// gate and re-validates the purchase.
const (
	StateDetached State = iota
	StateActive
	StateBlurred
	StateHidden
	StateTampered
)

// DefaultCooldown is how long the surface stays blurred after an
// intercepted capture attempt.
const DefaultCooldown = 3 * time.Second

const (
	noticeActionProhibited = "Screenshots and copying are prohibited for this document"
	noticeSecureView       = "Secure view active"
	noticeAccessRevoked    = "Security violation detected. Access revoked, reload to continue."

	clipboardViolationNotice = "Copying this document violates its copyright. " +
		"This viewing session is watermarked and attributable."
)

// Hooks are the guard's only way of touching the surrounding UI. Every
// hook is optional; nil hooks are skipped.
type Hooks struct {
	// Blur desaturates/hides the content surface.
	Blur func()
	// Restore undoes Blur.
	Restore func()
	// ShowNotice displays a transient, dismissible message.
	ShowNotice func(msg string)
	// SetClipboard overwrites the system clipboard.
	SetClipboard func(text string)
	// Alert shows a blocking warning.
	Alert func(msg string)
	// Terminate replaces the whole viewer with a blocking panel.
	Terminate func(msg string)
}

// GuardConfig configures an anti-exfiltration guard.
type GuardConfig struct {
	// Identity is the watermark identity token (the caller's email or ID).
	Identity string
	// Cooldown overrides DefaultCooldown when positive.
	Cooldown time.Duration
	// Detectors are the screenshot heuristics; DefaultDetectors when nil.
	Detectors []CaptureDetector
	// Now and StartTimer exist so tests can control time.
	Now        func() time.Time
	StartTimer func(d time.Duration, fn func()) (stop func())
}

// Guard wraps a render surface with the anti-exfiltration layers: the
// drifting watermark, input interception, capture heuristics, focus-loss
// blanking and tamper detection. It is a best-effort deterrent, not DRM:
// it makes casual copying conspicuous, slow and attributable.
//
// All methods are safe for the single UI thread plus the timer callback;
// nothing here polls.
type Guard struct {
	mu        sync.Mutex
	state     State
	config    GuardConfig
	hooks     Hooks
	watermark *Watermark

	stopCooldown func()
}

// NewGuard builds a detached guard. Call Attach before delivering events.
func NewGuard(config GuardConfig, hooks Hooks) *Guard {
	if config.Cooldown <= 0 {
		config.Cooldown = DefaultCooldown
	}
	if config.Detectors == nil {
		config.Detectors = DefaultDetectors()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.StartTimer == nil {
		config.StartTimer = func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		}
	}
	return &Guard{
		state:  StateDetached,
		config: config,
		hooks:  hooks,
	}
}

// Attach activates the guard and creates the watermark for this session.
func (g *Guard) Attach() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateDetached {
		return errors.New("viewer: guard already attached")
	}
	g.watermark = newWatermark(g.config.Identity, g.config.Now())
	g.state = StateActive
	return nil
}

// Detach tears the guard down, releasing timers and observers. It is
// idempotent and valid from every state, so every exit path (normal
// close, error, tamper) can call it unconditionally.
func (g *Guard) Detach() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelCooldownLocked()
	g.state = StateDetached
	g.watermark = nil
}

// State returns the guard's current state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Watermark returns the session watermark, nil while detached.
func (g *Guard) Watermark() *Watermark {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.watermark
}

// HandleEvent feeds one input event through the interception layers. The
// return value tells the surface whether to cancel the event.
func (g *Guard) HandleEvent(e Event) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateDetached:
		return false
	case StateTampered:
		// the viewer is gone; swallow everything
		return true
	}

	if e.Type == EventContextMenu {
		g.notify(noticeActionProhibited)
		return true
	}

	for _, d := range g.config.Detectors {
		if d.DetectCaptureAttempt(e) {
			g.captureDetectedLocked()
			return true
		}
	}

	if e.Type == EventKeyDown && (e.Ctrl || e.Meta) {
		switch e.Key {
		case "p", "P", "s", "S", "u", "U", "c", "C":
			// print, save-page, view-source, copy
			g.notify(noticeActionProhibited)
			g.blurWithCooldownLocked()
			return true
		}
	}

	return false
}

// HandleVisibility reacts to the page being hidden or refocused. Focus
// loss is treated as an opportunity for out-of-band capture, so the
// content is blanked until the page is visible again.
func (g *Guard) HandleVisibility(visible bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateDetached, StateTampered:
		return
	}

	if !visible {
		g.cancelCooldownLocked()
		g.state = StateHidden
		g.blur()
		g.notify(noticeSecureView)
		return
	}

	if g.state == StateHidden {
		g.state = StateActive
		g.restore()
	}
}

// Mutation describes one observed change to the viewer's UI subtree.
type Mutation struct {
	// RemovedNodeIDs lists nodes removed from the subtree.
	RemovedNodeIDs []string
	// TargetID is the node whose attributes changed, if any.
	TargetID string
	// Style holds the target's effective style properties after the change.
	Style map[string]string
}

// ObserveMutation inspects a UI-tree change for watermark tampering.
// Removing or visibility-hiding the sentinel transitions the guard to the
// terminal tampered state within this observation cycle.
func (g *Guard) ObserveMutation(m Mutation) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateDetached, StateTampered:
		return
	}

	if !tampersWithSentinel(m) {
		return
	}

	g.cancelCooldownLocked()
	g.state = StateTampered
	if g.hooks.Terminate != nil {
		g.hooks.Terminate(noticeAccessRevoked)
	}
}

func tampersWithSentinel(m Mutation) bool {
	for _, id := range m.RemovedNodeIDs {
		if id == WatermarkSentinelID {
			return true
		}
	}
	if m.TargetID != WatermarkSentinelID {
		return false
	}
	if m.Style["display"] == "none" || m.Style["visibility"] == "hidden" {
		return true
	}
	switch m.Style["opacity"] {
	case "0", "0.0", "0%":
		return true
	}
	return false
}

// captureDetectedLocked degrades the captured frame and punishes the
// attempt: blur, clipboard overwrite, alert, then auto-restore after the
// cooldown. Reactive, not preventive.
func (g *Guard) captureDetectedLocked() {
	if g.hooks.SetClipboard != nil {
		g.hooks.SetClipboard(clipboardViolationNotice)
	}
	if g.hooks.Alert != nil {
		g.hooks.Alert(noticeActionProhibited)
	}
	g.notify(noticeActionProhibited)
	g.blurWithCooldownLocked()
}

func (g *Guard) blurWithCooldownLocked() {
	if g.state == StateHidden {
		// already blanked; visibility handling owns the restore
		return
	}
	g.cancelCooldownLocked()
	if g.state == StateActive {
		g.blur()
	}
	g.state = StateBlurred
	g.stopCooldown = g.config.StartTimer(g.config.Cooldown, g.cooldownExpired)
}

func (g *Guard) cooldownExpired() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopCooldown = nil
	if g.state == StateBlurred {
		g.state = StateActive
		g.restore()
	}
}

func (g *Guard) cancelCooldownLocked() {
	if g.stopCooldown != nil {
		g.stopCooldown()
		g.stopCooldown = nil
	}
}

func (g *Guard) notify(msg string) {
	if g.hooks.ShowNotice != nil {
		g.hooks.ShowNotice(msg)
	}
}

func (g *Guard) blur() {
	if g.hooks.Blur != nil {
		g.hooks.Blur()
	}
}

func (g *Guard) restore() {
	if g.hooks.Restore != nil {
		g.hooks.Restore()
	}
}
