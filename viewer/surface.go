package viewer

import "sync"

// SurfaceConfig bounds the zoom range of a render surface.
type SurfaceConfig struct {
	MinScale float64
	MaxScale float64
}

// DefaultSurfaceConfig matches the storefront viewer defaults.
func DefaultSurfaceConfig() SurfaceConfig {
	return SurfaceConfig{MinScale: 0.5, MaxScale: 3.0}
}

const zoomStep = 0.25

// Surface is the paginated, zoomable render state for one open document.
// It performs no network activity; the page count arrives asynchronously
// from the decode of the handle's bytes, and navigation stays disabled
// until it does.
type Surface struct {
	mu        sync.Mutex
	config    SurfaceConfig
	page      int
	scale     float64
	pageCount int
}

// NewSurface returns a surface at page 1, 100% scale, page count unknown.
func NewSurface(config SurfaceConfig) *Surface {
	if config.MinScale <= 0 {
		config.MinScale = DefaultSurfaceConfig().MinScale
	}
	if config.MaxScale < config.MinScale {
		config.MaxScale = DefaultSurfaceConfig().MaxScale
	}
	return &Surface{
		config: config,
		page:   1,
		scale:  1.0,
	}
}

// Loading reports whether the page count is still unknown.
func (s *Surface) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageCount == 0
}

// SetPageCount records the total page count once the async decode finishes.
func (s *Surface) SetPageCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		return
	}
	s.pageCount = n
	if s.page > n {
		s.page = n
	}
}

// Page returns the current 1-indexed page.
func (s *Surface) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageCount returns the total page count, zero while loading.
func (s *Surface) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageCount
}

// Scale returns the current zoom scale.
func (s *Surface) Scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

// GoToPage jumps to page n, clamped to [1, pageCount]. No-op while the
// page count is unknown.
func (s *Surface) GoToPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pageCount == 0 {
		return
	}
	if n < 1 {
		n = 1
	}
	if n > s.pageCount {
		n = s.pageCount
	}
	s.page = n
}

// NextPage advances one page.
func (s *Surface) NextPage() {
	s.GoToPage(s.Page() + 1)
}

// PrevPage goes back one page.
func (s *Surface) PrevPage() {
	s.GoToPage(s.Page() - 1)
}

// SetScale sets the zoom scale, clamped to the configured range.
func (s *Surface) SetScale(scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scale < s.config.MinScale {
		scale = s.config.MinScale
	}
	if scale > s.config.MaxScale {
		scale = s.config.MaxScale
	}
	s.scale = scale
}

// ZoomIn increases the scale one step.
func (s *Surface) ZoomIn() {
	s.SetScale(s.Scale() + zoomStep)
}

// ZoomOut decreases the scale one step.
func (s *Surface) ZoomOut() {
	s.SetScale(s.Scale() - zoomStep)
}
