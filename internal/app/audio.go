package app

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
)

const levelSmoothing = 0.6

// levelTap wraps a beep.Streamer and keeps a smoothed mono RMS level of
// the samples passing through, so the renderer can modulate glow and
// alpha from recently played audio.
type levelTap struct {
	source beep.Streamer

	mu    sync.RWMutex
	level float64
}

func newLevelTap(src beep.Streamer) *levelTap {
	return &levelTap{source: src}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	if n > 0 {
		var sumSquares float64
		for i := 0; i < n; i++ {
			mono := (samples[i][0] + samples[i][1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(n))
		mag := math.Pow(rms, 0.3) // compress for visual effect

		t.mu.Lock()
		t.level = levelSmoothing*t.level + (1-levelSmoothing)*mag
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.source.Err() }

// Level returns the smoothed level in [0, 1].
func (t *levelTap) Level() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.level > 1 {
		return 1
	}
	return t.level
}

// Player owns the audio chain: decoder -> level tap -> ctrl -> speaker.
type Player struct {
	// mu guards currentFile and streamer: the end-of-track callback
	// clears them from the speaker goroutine while the game loop reads
	// them. The remaining fields are game-loop only.
	mu          sync.Mutex
	currentFile *os.File
	streamer    beep.StreamSeekCloser

	format beep.Format
	ctrl   *beep.Ctrl
	tap    *levelTap

	initDone   bool
	sampleRate beep.SampleRate
}

func NewPlayer() *Player { return &Player{} }

// Level is the current smoothed playback level, zero when idle.
func (p *Player) Level() float64 {
	if p.tap == nil {
		return 0
	}
	return p.tap.Level()
}

// Playing reports whether a track is loaded.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streamer != nil
}

// SampleRate returns the active speaker rate, or zero before init.
func (p *Player) SampleRate() beep.SampleRate {
	if !p.initDone {
		return 0
	}
	return p.sampleRate
}

// SetPaused pauses or resumes playback under the speaker lock.
func (p *Player) SetPaused(paused bool) {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// OpenDialog shows the zenity file picker and plays the chosen track.
// A cancelled dialog is not an error.
func (p *Player) OpenDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return p.Load(filename)
}

// Load decodes the file by extension and starts playback, replacing any
// current track.
func (p *Player) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := filepath.Ext(path); ext {
	case ".wav", ".WAV":
		streamer, format, err = wav.Decode(f)
	case ".mp3", ".MP3":
		streamer, format, err = mp3.Decode(f)
	case ".flac", ".FLAC":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		_ = f.Close()
		return err
	}

	tap := newLevelTap(streamer)
	ctrl := &beep.Ctrl{Streamer: tap}

	bufferSize := format.SampleRate.N(time.Second / 20)
	if err := p.ensureSpeaker(format.SampleRate, bufferSize); err != nil {
		_ = streamer.Close()
		_ = f.Close()
		return err
	}

	p.stopCurrent()
	p.mu.Lock()
	p.currentFile = f
	p.streamer = streamer
	p.mu.Unlock()
	p.format = format
	p.ctrl = ctrl
	p.tap = tap

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		p.trackFinished(streamer, f)
	})))
	return nil
}

// trackFinished clears the now-playing fields once the speaker drains a
// track. It runs on the speaker goroutine; a stale callback from a
// replaced track must not clear its successor.
func (p *Player) trackFinished(s beep.StreamSeekCloser, f *os.File) {
	p.mu.Lock()
	if p.streamer == s {
		p.streamer = nil
		p.currentFile = nil
	}
	p.mu.Unlock()
	_ = s.Close()
	_ = f.Close()
}

// ensureSpeaker initializes the speaker once, or reinitializes when the
// sample rate changes.
func (p *Player) ensureSpeaker(rate beep.SampleRate, bufferSize int) error {
	if !p.initDone {
		if err := speaker.Init(rate, bufferSize); err != nil {
			return err
		}
		p.initDone = true
		p.sampleRate = rate
		return nil
	}
	if p.sampleRate != rate {
		speaker.Clear()
		if err := speaker.Init(rate, bufferSize); err != nil {
			return err
		}
		p.sampleRate = rate
	}
	return nil
}

// EnsureSpeaker initializes the speaker at a default rate when no track
// has done so; used by the metronome when playing silent.
func (p *Player) EnsureSpeaker() error {
	if p.initDone {
		return nil
	}
	rate := beep.SampleRate(44100)
	return p.ensureSpeaker(rate, rate.N(time.Second/20))
}

func (p *Player) stopCurrent() {
	// Clear first: the speaker holds its own lock while running the
	// end-of-track callback, so p.mu must never be held across it.
	speaker.Clear()
	p.mu.Lock()
	s, f := p.streamer, p.currentFile
	p.streamer, p.currentFile = nil, nil
	p.mu.Unlock()
	if s != nil {
		_ = s.Close()
	}
	if f != nil {
		_ = f.Close()
	}
	p.ctrl = nil
	p.tap = nil
}

// Close releases the current track.
func (p *Player) Close() {
	if p.initDone {
		p.stopCurrent()
	}
}
