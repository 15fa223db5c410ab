package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurfaceInitialState(t *testing.T) {
	s := NewSurface(DefaultSurfaceConfig())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 1.0, s.Scale())
	assert.Zero(t, s.PageCount())
	assert.True(t, s.Loading())
}

func TestSurfaceNavigationDisabledWhileLoading(t *testing.T) {
	s := NewSurface(DefaultSurfaceConfig())
	s.NextPage()
	s.GoToPage(7)
	assert.Equal(t, 1, s.Page())

	s.SetPageCount(10)
	assert.False(t, s.Loading())
	s.GoToPage(7)
	assert.Equal(t, 7, s.Page())
}

func TestSurfacePageClamping(t *testing.T) {
	s := NewSurface(DefaultSurfaceConfig())
	s.SetPageCount(3)

	s.GoToPage(99)
	assert.Equal(t, 3, s.Page())
	s.NextPage()
	assert.Equal(t, 3, s.Page())

	s.GoToPage(-4)
	assert.Equal(t, 1, s.Page())
	s.PrevPage()
	assert.Equal(t, 1, s.Page())
}

func TestSurfacePageCountShrinksCurrentPage(t *testing.T) {
	s := NewSurface(DefaultSurfaceConfig())
	s.SetPageCount(10)
	s.GoToPage(10)

	// a re-decode can report fewer pages
	s.SetPageCount(4)
	assert.Equal(t, 4, s.Page())
}

func TestSurfaceZoomClamping(t *testing.T) {
	s := NewSurface(SurfaceConfig{MinScale: 0.5, MaxScale: 2.0})

	s.SetScale(5)
	assert.Equal(t, 2.0, s.Scale())
	s.ZoomIn()
	assert.Equal(t, 2.0, s.Scale())

	s.SetScale(0.1)
	assert.Equal(t, 0.5, s.Scale())
	s.ZoomOut()
	assert.Equal(t, 0.5, s.Scale())

	s.SetScale(1)
	s.ZoomIn()
	assert.Equal(t, 1.25, s.Scale())
	s.ZoomOut()
	assert.Equal(t, 1.0, s.Scale())
}
