package term

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Cue is a short sound played for a game event.
type Cue struct {
	Freq     float64
	Duration time.Duration
}

var (
	CueBreak  = Cue{Freq: 220, Duration: 80 * time.Millisecond}
	CuePlace  = Cue{Freq: 330, Duration: 40 * time.Millisecond}
	CuePickup = Cue{Freq: 880, Duration: 50 * time.Millisecond}
	CueHurt   = Cue{Freq: 110, Duration: 150 * time.Millisecond}
	CueDeath  = Cue{Freq: 70, Duration: 600 * time.Millisecond}
)

// Audio plays sine-tone cues through the system speaker. A muted or
// failed Audio silently ignores Play.
type Audio struct {
	rate   beep.SampleRate
	volume float64
	ready  bool
	log    *zap.Logger
}

// NewAudio opens the speaker unless mute is set. Failing to open it is
// not fatal; the game runs without sound.
func NewAudio(sampleRate int, volume float64, mute bool, log *zap.Logger) *Audio {
	a := &Audio{rate: beep.SampleRate(sampleRate), volume: volume, log: log}
	if mute {
		return a
	}
	if err := speaker.Init(a.rate, a.rate.N(time.Second/10)); err != nil {
		log.Warn("audio unavailable", zap.Error(err))
		return a
	}
	a.ready = true
	return a
}

// Enabled reports whether cues are audible.
func (a *Audio) Enabled() bool { return a.ready }

func (a *Audio) Play(c Cue) {
	if !a.ready {
		return
	}
	sine, err := generators.SineTone(a.rate, c.Freq)
	if err != nil {
		a.log.Debug("bad cue", zap.Float64("freq", c.Freq), zap.Error(err))
		return
	}
	speaker.Play(volume(beep.Take(a.rate.N(c.Duration), sine), a.volume))
}

func (a *Audio) Close() {
	if a.ready {
		speaker.Close()
		a.ready = false
	}
}

// volume scales s linearly; zero or less silences it.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
