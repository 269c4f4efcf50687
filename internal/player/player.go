// Package player implements the music player state machine that drives the
// public page's audio widget.
//
// A Player owns the ordered track list and the user-facing attributes
// (current index, play state, position, volume, mute, display mode). Actual
// decoding is delegated to an Audio implementation; the Player tells it what
// to do and reacts to the events it reports (MetadataLoaded, TimeUpdate,
// TrackEnded).
//
// Track changes always resume playback. Rather than waiting a fixed delay for
// the new source to bind, the play command is issued once the audio reports
// metadata for the new source.
package player

import (
	"fmt"
	"sync"
	"time"
)

type State int

const (
	Idle State = iota
	Loaded
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loaded:
		return "loaded"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type DisplayMode int

const (
	Expanded DisplayMode = iota
	Minimized
)

func (m DisplayMode) String() string {
	if m == Minimized {
		return "minimized"
	}
	return "expanded"
}

type Track struct {
	ID       string
	Title    string
	Artist   string
	URL      string
	CoverURL string
}

// Audio is the decoding primitive. Implementations must not call back into
// the Player from within these methods.
type Audio interface {
	Load(url string)
	Play() error
	Pause()
	Seek(position time.Duration)
	SetVolume(v float64)
}

type Player struct {
	mu    sync.Mutex
	audio Audio

	tracks   []Track
	index    int
	state    State
	position time.Duration
	duration time.Duration
	volume   float64
	muted    bool
	mode     DisplayMode

	// playOnReady defers the play command until the new source reports metadata.
	playOnReady bool
}

func New(audio Audio) *Player {
	return &Player{
		audio:  audio,
		volume: 1,
		mode:   Expanded,
	}
}

// Load replaces the track list. A non-empty list selects the first track
// without starting playback; an empty list returns the player to Idle.
func (p *Player) Load(tracks []Track) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Playing {
		p.audio.Pause()
	}
	p.tracks = append([]Track(nil), tracks...)
	p.index = 0
	p.position, p.duration = 0, 0
	p.playOnReady = false
	if len(p.tracks) == 0 {
		p.state = Idle
		return
	}
	p.state = Loaded
	p.audio.Load(p.tracks[0].URL)
	p.audio.SetVolume(p.effectiveVolume())
}

func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.play()
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pause()
}

// Toggle switches between Playing and Paused. From Loaded it starts playback.
func (p *Player) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing {
		p.pause()
		return
	}
	p.play()
}

func (p *Player) play() {
	if p.state == Idle || p.state == Playing {
		return
	}
	p.state = Playing
	if err := p.audio.Play(); err != nil {
		// Playback was refused (for example by an autoplay policy).
		p.state = Paused
	}
}

func (p *Player) pause() {
	if p.state != Playing {
		return
	}
	p.playOnReady = false
	p.audio.Pause()
	p.state = Paused
}

// Seek moves the position to t, clamped to [0, duration]. The play state is
// unchanged.
func (p *Player) Seek(t time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Idle {
		return
	}
	p.position = p.clamp(t)
	p.audio.Seek(p.position)
}

func (p *Player) Next() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Idle {
		return
	}
	p.skipTo((p.index + 1) % len(p.tracks))
}

func (p *Player) Previous() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Idle {
		return
	}
	n := len(p.tracks)
	p.skipTo((p.index - 1 + n) % n)
}

// TrackEnded is reported by the audio when the current source finishes.
func (p *Player) TrackEnded() {
	p.Next()
}

func (p *Player) skipTo(i int) {
	p.index = i
	p.position, p.duration = 0, 0
	p.state = Playing
	p.playOnReady = true
	p.audio.Load(p.tracks[i].URL)
}

// MetadataLoaded is reported by the audio once the source's duration is known.
func (p *Player) MetadataLoaded(duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Idle {
		return
	}
	if duration < 0 {
		duration = 0
	}
	p.duration = duration
	p.position = p.clamp(p.position)
	if p.playOnReady && p.state == Playing {
		p.playOnReady = false
		if err := p.audio.Play(); err != nil {
			p.state = Paused
		}
	}
}

// TimeUpdate is reported by the audio as playback progresses.
func (p *Player) TimeUpdate(position time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Idle {
		return
	}
	p.position = p.clamp(position)
}

// SetVolume stores v clamped to [0, 1]. Mute state is left alone.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	p.volume = v
	p.audio.SetVolume(p.effectiveVolume())
}

func (p *Player) ToggleMute() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	p.audio.SetVolume(p.effectiveVolume())
}

func (p *Player) Minimize() { p.setMode(Minimized) }

func (p *Player) Expand() { p.setMode(Expanded) }

func (p *Player) ToggleDisplay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == Expanded {
		p.mode = Minimized
	} else {
		p.mode = Expanded
	}
}

func (p *Player) setMode(m DisplayMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = m
}

func (p *Player) effectiveVolume() float64 {
	if p.muted {
		return 0
	}
	return p.volume
}

func (p *Player) clamp(t time.Duration) time.Duration {
	if t < 0 {
		return 0
	}
	if t > p.duration {
		return p.duration
	}
	return t
}
