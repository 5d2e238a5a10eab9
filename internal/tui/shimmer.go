package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// ShimmerConfig holds configuration for the running-timer highlight
type ShimmerConfig struct {
	Enabled        bool
	SpeedMs        int     // tick interval
	WidthRatio     float64 // highlight width relative to the text
	CycleMs        int     // time for one sweep
	PauseBetweenMs int
}

// DefaultShimmerConfig returns default shimmer configuration
func DefaultShimmerConfig() ShimmerConfig {
	return ShimmerConfig{
		Enabled:        os.Getenv("LATCH_REDUCE_MOTION") == "",
		SpeedMs:        100,
		WidthRatio:     0.25,
		CycleMs:        1800,
		PauseBetweenMs: 500,
	}
}

// Shimmer sweeps a highlight across a line of text. It is advanced
// explicitly with Advance so views stay pure.
type Shimmer struct {
	config    ShimmerConfig
	active    bool
	trueColor bool

	center     float64
	paused     bool
	pauseStart time.Time
}

// NewShimmer creates an inactive shimmer
func NewShimmer(config ShimmerConfig) *Shimmer {
	return &Shimmer{
		config:    config,
		trueColor: os.Getenv("COLORTERM") == "truecolor",
	}
}

// SetActive enables/disables the sweep; a disabled config stays static
func (s *Shimmer) SetActive(active bool) {
	s.active = active && s.config.Enabled
	if !s.active {
		s.center = 0
		s.paused = false
	}
}

// Active reports whether the sweep is animating
func (s *Shimmer) Active() bool {
	return s.active
}

// Interval is the tick period while active
func (s *Shimmer) Interval() time.Duration {
	return time.Duration(s.config.SpeedMs) * time.Millisecond
}

// Advance moves the highlight one tick along text of visibleLen glyphs
func (s *Shimmer) Advance(now time.Time, visibleLen int) {
	if !s.active || visibleLen <= 0 {
		return
	}

	width := float64(visibleLen) * s.config.WidthRatio
	if s.paused {
		if now.Sub(s.pauseStart) >= time.Duration(s.config.PauseBetweenMs)*time.Millisecond {
			s.paused = false
			s.center = -width
		}
		return
	}

	ticksPerCycle := float64(s.config.CycleMs) / float64(s.config.SpeedMs)
	s.center += (float64(visibleLen) + 2*width) / ticksPerCycle

	if end := float64(visibleLen) + width; s.center >= end {
		s.paused = true
		s.pauseStart = now
		s.center = end
	}
}

// Render draws text with the highlight at its current position
func (s *Shimmer) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if !s.active {
		return fmt.Sprintf("\033[38;2;167;139;250m%s\033[0m", text)
	}

	var b strings.Builder
	if !s.trueColor {
		half := max(int(s.config.WidthRatio*float64(len(runes)))/2, 1)
		for i, r := range runes {
			if math.Abs(float64(i)-s.center) <= float64(half) {
				fmt.Fprintf(&b, "\033[38;5;147m%c", r)
			} else {
				fmt.Fprintf(&b, "\033[38;5;250m%c", r)
			}
		}
		b.WriteString("\033[0m")
		return b.String()
	}

	// Gaussian blend from #B1B8C7 towards #EAE6FF
	sigma := math.Max(s.config.WidthRatio*float64(len(runes))/2, 1)
	for i, r := range runes {
		dx := float64(i) - s.center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		red := int(177*(1-w) + 234*w)
		green := int(184*(1-w) + 230*w)
		blue := int(199*(1-w) + 255*w)
		fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c", red, green, blue, r)
	}
	b.WriteString("\033[0m")
	return b.String()
}
