package viewer

import (
	"fmt"
	"math"
	"time"
)

// WatermarkSentinelID is the node ID of the watermark overlay. The tamper
// observer watches this node; removing or hiding it revokes the view.
const WatermarkSentinelID = "edvault-watermark"

// Watermark is the drifting identity overlay tiled above the content. The
// drift and opacity breathing are cosmetic but make a static screenshot
// carry an attributable, hard-to-crop mark.
type Watermark struct {
	text  string
	epoch time.Time

	driftPeriod   time.Duration
	breathePeriod time.Duration
	driftRadius   float64
	baseOpacity   float64
	amplitude     float64
}

func newWatermark(identity string, now time.Time) *Watermark {
	return &Watermark{
		text:          fmt.Sprintf("%s • %s", identity, now.Format("2006-01-02")),
		epoch:         now,
		driftPeriod:   45 * time.Second,
		breathePeriod: 8 * time.Second,
		driftRadius:   40,
		baseOpacity:   0.18,
		amplitude:     0.06,
	}
}

// Text returns the attribution string burned into the overlay.
func (w *Watermark) Text() string {
	return w.text
}

// Advance returns the overlay offset and opacity for the given instant.
// Pure function of time so the animation needs no stored state between
// frames.
func (w *Watermark) Advance(now time.Time) (dx, dy, opacity float64) {
	elapsed := now.Sub(w.epoch).Seconds()

	drift := 2 * math.Pi * elapsed / w.driftPeriod.Seconds()
	dx = w.driftRadius * math.Cos(drift)
	dy = w.driftRadius * math.Sin(drift)

	breathe := 2 * math.Pi * elapsed / w.breathePeriod.Seconds()
	opacity = w.baseOpacity + w.amplitude*math.Sin(breathe)
	return dx, dy, opacity
}
