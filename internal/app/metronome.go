package app

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// click is a one-shot decaying sine burst used as the metronome tick.
type click struct {
	sr      beep.SampleRate
	pos     int
	samples int
	freq    float64
}

func newClick(sr beep.SampleRate) *click {
	return &click{
		sr:      sr,
		samples: sr.N(clickDuration),
		freq:    1200,
	}
}

const clickDuration = 45 * time.Millisecond

func (c *click) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= c.samples {
		return 0, false
	}
	n := 0
	for i := range samples {
		if c.pos >= c.samples {
			break
		}
		t := float64(c.pos) / float64(c.sr)
		decay := math.Exp(-t * 60)
		v := 0.4 * decay * math.Sin(2*math.Pi*c.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
		n++
	}
	return n, true
}

func (c *click) Err() error { return nil }

// Metronome plays a click on every beat boundary when enabled.
type Metronome struct {
	player   *Player
	enabled  bool
	lastBeat int
}

func NewMetronome(player *Player) *Metronome {
	return &Metronome{player: player, lastBeat: -1}
}

func (m *Metronome) Enabled() bool { return m.enabled }

// Toggle flips the metronome, making sure a speaker exists. Enabling
// re-arms the beat tracker so the first click lands on the next beat
// boundary, not mid-beat.
func (m *Metronome) Toggle() error {
	if !m.enabled {
		if err := m.player.EnsureSpeaker(); err != nil {
			return err
		}
		m.lastBeat = -1
	}
	m.enabled = !m.enabled
	return nil
}

// advanceBeat reports whether elapsed time has crossed into a new beat.
// The first call after an enable only latches the current beat index.
func (m *Metronome) advanceBeat(elapsed, bpm float64) bool {
	beat := int(elapsed * bpm / 60.0)
	if m.lastBeat < 0 {
		m.lastBeat = beat
		return false
	}
	if beat == m.lastBeat {
		return false
	}
	m.lastBeat = beat
	return true
}

// Tick plays a click when elapsed time has crossed into a new beat.
func (m *Metronome) Tick(elapsed, bpm float64) {
	if !m.enabled {
		return
	}
	if !m.advanceBeat(elapsed, bpm) {
		return
	}
	rate := m.player.SampleRate()
	if rate == 0 {
		return
	}
	speaker.Play(newClick(rate))
}
