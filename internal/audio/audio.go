// Package audio turns engine events into short synthesized cues played
// through the system speaker. It implements game.EventSink and never feeds
// anything back into the engine.
package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/brick-breaker/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
	// Fade-out applied to every note to avoid clicks.
	release = 8 * time.Millisecond
)

// note is a single tone in a cue.
type note struct {
	freq float64
	dur  time.Duration
}

// cues maps event types to note sequences. Events without an entry are silent.
var cues = map[game.EventType][]note{
	game.EventWallHit:   {{440, 30 * time.Millisecond}},
	game.EventPaddleHit: {{330, 40 * time.Millisecond}},
	game.EventBrickHit:  {{660, 50 * time.Millisecond}},
	game.EventSpecialBrickDestroyed: {
		{660, 40 * time.Millisecond},
		{880, 60 * time.Millisecond},
	},
	game.EventPowerUpCollected: {
		{523.25, 50 * time.Millisecond},
		{659.25, 50 * time.Millisecond},
		{783.99, 80 * time.Millisecond},
	},
	game.EventLifeLost: {
		{392, 120 * time.Millisecond},
		{261.63, 200 * time.Millisecond},
	},
	game.EventGameOver: {
		{392, 150 * time.Millisecond},
		{329.63, 150 * time.Millisecond},
		{261.63, 150 * time.Millisecond},
		{196, 400 * time.Millisecond},
	},
	game.EventGameWon: {
		{523.25, 100 * time.Millisecond},
		{659.25, 100 * time.Millisecond},
		{783.99, 100 * time.Millisecond},
		{1046.5, 400 * time.Millisecond},
	},
}

// CueDuration returns the total length of the cue for t, zero if silent.
func CueDuration(t game.EventType) time.Duration {
	var d time.Duration
	for _, n := range cues[t] {
		d += n.dur
	}
	return d
}

// Cue builds the streamer for an event type at the given volume in [0, 1].
// Returns nil for silent events.
func Cue(t game.EventType, sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := cues[t]
	if !ok {
		return nil, nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, fmt.Errorf("audio: %s tone %.0fHz: %w", t, n.freq, err)
		}
		parts = append(parts, fadeOut(beep.Take(sr.N(n.dur), tone), sr.N(n.dur), sr.N(release)))
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

// withVolume scales a streamer linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// fade ramps the last samples of a fixed-length stream down to zero.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
	release  int
}

func fadeOut(s beep.Streamer, total, release int) beep.Streamer {
	return &fade{streamer: s, total: total, release: min(release, total)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	start := f.total - f.release
	for i := range n {
		if f.pos >= start && f.release > 0 {
			gain := float64(f.total-f.pos) / float64(f.release)
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// ErrUnavailable is returned by Init when no audio device can be opened.
var ErrUnavailable = errors.New("audio: speaker unavailable")

// Player plays event cues through a shared mixer.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	logger  *log.Logger
	ready   bool // Cues are queued only when ready
	speaker bool // Mixer is attached to the speaker
}

// NewPlayer creates a player. It stays silent until Init succeeds.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	p.speaker = true
	return nil
}

// HandleEvent queues the cue for ev. Silent events and an uninitialized
// player do nothing.
func (p *Player) HandleEvent(ev game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	s, err := Cue(ev.Type, sampleRate, p.volume)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("cannot build cue", "event", ev.Type, "err", err)
		}
		return
	}
	if s == nil {
		return
	}

	if p.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// Close stops all cues and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	if p.speaker {
		speaker.Clear()
		speaker.Close()
	}
	p.mixer.Clear()
	p.ready = false
	p.speaker = false
}

var _ game.EventSink = (*Player)(nil)
