package viewer

// EventType classifies viewer input events.
type EventType int

// Input event types delivered to the guard.
const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventContextMenu
)

// Event is a single input event from the render surface.
type Event struct {
	Type  EventType
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool
}

// CaptureDetector is a pluggable screenshot-attempt heuristic. Detection is
// reactive and platform-fragile; implementations can be swapped per
// platform without touching the guard.
type CaptureDetector interface {
	DetectCaptureAttempt(e Event) bool
}

// PrintScreenDetector matches the OS print-screen key.
type PrintScreenDetector struct{}

// DetectCaptureAttempt reports a PrintScreen key release.
func (PrintScreenDetector) DetectCaptureAttempt(e Event) bool {
	return e.Type == EventKeyUp && e.Key == "PrintScreen"
}

// WindowsSnipDetector matches the Windows snipping tool shortcut
// (Win+Shift+S).
type WindowsSnipDetector struct{}

// DetectCaptureAttempt reports the Win+Shift+S combination.
func (WindowsSnipDetector) DetectCaptureAttempt(e Event) bool {
	return e.Type == EventKeyDown && e.Meta && e.Shift && (e.Key == "s" || e.Key == "S")
}

// MacScreenshotDetector matches the macOS screenshot shortcuts
// (Cmd+Shift+3/4/5).
type MacScreenshotDetector struct{}

// DetectCaptureAttempt reports the Cmd+Shift+3/4/5 combinations.
func (MacScreenshotDetector) DetectCaptureAttempt(e Event) bool {
	if e.Type != EventKeyDown || !e.Meta || !e.Shift {
		return false
	}
	switch e.Key {
	case "3", "4", "5":
		return true
	}
	return false
}

// DefaultDetectors returns the stock screenshot heuristics.
func DefaultDetectors() []CaptureDetector {
	return []CaptureDetector{
		PrintScreenDetector{},
		WindowsSnipDetector{},
		MacScreenshotDetector{},
	}
}
