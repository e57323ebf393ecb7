// Package tempo owns the shared timing state for the ring scenes: a
// pausable elapsed-time accumulator, the realignment period, BPM easing,
// and the pure phase/pulse functions derived from elapsed time.
package tempo

import "math"

// Frame deltas above this are clamped so a stall (window drag, debugger
// pause) does not teleport the animation.
const maxFrameDelta = 1.0 / 30.0

// bpmSmoothing controls how quickly the displayed BPM eases toward the
// target after a nudge.
const bpmSmoothing = 4.0

// Clock accumulates elapsed seconds and eases BPM toward its target.
// Elapsed time only ever advances through Advance, so pausing the host
// loop freezes every phase derived from it.
type Clock struct {
	elapsed     float64
	paused      bool
	resetPeriod float64
	curBPM      float64
	targetBPM   float64
}

// NewClock returns a running clock with the given realignment period and
// starting BPM.
func NewClock(resetPeriod, bpm float64) *Clock {
	return &Clock{
		resetPeriod: resetPeriod,
		curBPM:      bpm,
		targetBPM:   bpm,
	}
}

// Advance adds a frame delta to elapsed time and eases BPM. A paused
// clock ignores the call. Negative deltas are dropped.
func (c *Clock) Advance(dt float64) {
	if c.paused || dt <= 0 {
		return
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	c.elapsed += dt
	c.curBPM += (c.targetBPM - c.curBPM) * math.Min(1, bpmSmoothing*dt)
}

func (c *Clock) Elapsed() float64 { return c.elapsed }

// Seek jumps elapsed time to t. Used by the headless exporter to render
// arbitrary frames.
func (c *Clock) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	c.elapsed = t
}

func (c *Clock) Paused() bool { return c.paused }

func (c *Clock) Pause()  { c.paused = true }
func (c *Clock) Resume() { c.paused = false }

func (c *Clock) Toggle() { c.paused = !c.paused }

func (c *Clock) ResetPeriod() float64 { return c.resetPeriod }

// SetResetPeriod changes the realignment period, clamped to [2, 60]
// seconds like the interactive controls.
func (c *Clock) SetResetPeriod(period float64) {
	if period < 2 {
		period = 2
	}
	if period > 60 {
		period = 60
	}
	c.resetPeriod = period
}

func (c *Clock) BPM() float64       { return c.curBPM }
func (c *Clock) TargetBPM() float64 { return c.targetBPM }

// NudgeBPM shifts the target BPM by delta, clamped to [20, 300]. The
// current BPM eases toward it over subsequent Advance calls.
func (c *Clock) NudgeBPM(delta float64) {
	c.targetBPM += delta
	if c.targetBPM < 20 {
		c.targetBPM = 20
	}
	if c.targetBPM > 300 {
		c.targetBPM = 300
	}
}
