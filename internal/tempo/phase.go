package tempo

import "math"

// Mode selects how ring angular state is derived from the clock.
type Mode int

const (
	// ModeTempoLock drives every ring from 2π/resetPeriod; integer ring
	// ratios realign exactly once per period.
	ModeTempoLock Mode = iota
	// ModeRatioLock allows rational p/q multipliers of the base
	// frequency, stretching the common period by the ratio denominators.
	ModeRatioLock
	// ModeBeatLock drives rings from the beat frequency 2π·BPM/60, so
	// angular-velocity differences land on beat multiples.
	ModeBeatLock
)

func (m Mode) String() string {
	switch m {
	case ModeTempoLock:
		return "tempo"
	case ModeRatioLock:
		return "ratio"
	case ModeBeatLock:
		return "beat"
	default:
		return "unknown"
	}
}

// ParseMode maps a config string to a Mode. Unknown values fall back to
// tempo-lock.
func ParseMode(s string) Mode {
	switch s {
	case "ratio":
		return ModeRatioLock
	case "beat":
		return ModeBeatLock
	default:
		return ModeTempoLock
	}
}

// BasePhase is the shared angular phase all ring ratios multiply. It is
// a pure function of elapsed time, never an accumulator, so realignment
// at period boundaries is exact no matter how long the loop has run.
func BasePhase(mode Mode, elapsed, resetPeriod, bpm float64) float64 {
	switch mode {
	case ModeBeatLock:
		return 2 * math.Pi * (bpm / 60.0) * elapsed
	default:
		return 2 * math.Pi * elapsed / resetPeriod
	}
}

// BeatPhase is the position within the current beat, in [0, 1).
func BeatPhase(elapsed, bpm float64) float64 {
	beats := elapsed * (bpm / 60.0)
	return beats - math.Floor(beats)
}

// MeasurePhase is the position within the current measure, in [0, 1).
func MeasurePhase(elapsed, bpm float64, beatsPerMeasure int) float64 {
	if beatsPerMeasure < 1 {
		beatsPerMeasure = 1
	}
	measures := elapsed * (bpm / 60.0) / float64(beatsPerMeasure)
	return measures - math.Floor(measures)
}

// AlignPhase is the position within the realignment cycle, in [0, 1).
func AlignPhase(elapsed, resetPeriod float64) float64 {
	p := math.Mod(elapsed, resetPeriod) / resetPeriod
	if p < 0 {
		p += 1
	}
	return p
}

// CosPulse is a symmetric pulse peaking at phase 0 (and 1) and falling
// to 0 at phase 0.5; sharpness controls how snappy it feels.
func CosPulse(x, sharpness float64) float64 {
	v := 0.5 * (1.0 + math.Cos(2.0*math.Pi*x))
	return clamp01(math.Pow(v, sharpness))
}

// AlignPulse spikes once per cycle around phase 0. The phase distance to
// the nearest boundary is folded, ramped to zero at width, and shaped by
// sharpness. Result is in [0, 1], exactly 1 at phase 0, exactly 0 once
// the folded distance reaches width.
func AlignPulse(phase, width, sharpness float64) float64 {
	if width <= 0 {
		return 0
	}
	dist := math.Min(phase, 1.0-phase)
	base := math.Max(0, 1.0-dist/width)
	return clamp01(math.Pow(base, sharpness))
}

// Envelope bundles the per-frame scale factors the pulses drive. The
// raw alignment pulse rides along for passes that breathe with the
// flash rather than scale with it.
type Envelope struct {
	ThicknessScale float64
	AlphaBoost     float64
	GlowScale      float64
	AlignPulse     float64
}

// PulseParams are the shaping constants for the envelope.
type PulseParams struct {
	AlignWidth     float64 // fraction of the cycle used for the flash
	AlignSharpness float64
	BeatSharpness  float64
	MeasureSharp   float64
}

// DefaultPulseParams matches the ring scenes.
func DefaultPulseParams() PulseParams {
	return PulseParams{
		AlignWidth:     0.05,
		AlignSharpness: 3.2,
		BeatSharpness:  3.5,
		MeasureSharp:   2.5,
	}
}

// FrameEnvelope computes the per-frame emphasis scales: a subtle breath
// with the measure, an alpha pop with the beat, and the big realignment
// flash once per reset period.
func FrameEnvelope(c *Clock, beatsPerMeasure int, p PulseParams) Envelope {
	elapsed := c.Elapsed()
	beat := CosPulse(BeatPhase(elapsed, c.BPM()), p.BeatSharpness)
	measure := CosPulse(MeasurePhase(elapsed, c.BPM(), beatsPerMeasure), p.MeasureSharp)
	align := AlignPulse(AlignPhase(elapsed, c.ResetPeriod()), p.AlignWidth, p.AlignSharpness)

	return Envelope{
		ThicknessScale: 1.0 + 0.25*measure + 1.1*align,
		AlphaBoost:     0.06*beat + 0.12*measure + 0.9*align,
		GlowScale:      1.0 + 3.2*align,
		AlignPulse:     align,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
