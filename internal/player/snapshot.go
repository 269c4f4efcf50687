package player

import (
	"fmt"
	"time"
)

// Snapshot is a display-ready copy of the player state.
type Snapshot struct {
	State    State
	Mode     DisplayMode
	Index    int
	Count    int
	Track    *Track
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Muted    bool
}

func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{
		State:    p.state,
		Mode:     p.mode,
		Index:    p.index,
		Count:    len(p.tracks),
		Position: p.position,
		Duration: p.duration,
		Volume:   p.volume,
		Muted:    p.muted,
	}
	if len(p.tracks) > 0 {
		t := p.tracks[p.index]
		s.Track = &t
	}
	return s
}

func (s Snapshot) Elapsed() string { return FormatTime(s.Position) }

func (s Snapshot) Total() string { return FormatTime(s.Duration) }

// Counter renders the 1-based position in the list, e.g. "2 / 5".
func (s Snapshot) Counter() string {
	if s.Count == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", s.Index+1, s.Count)
}

// FormatTime renders d as m:ss. Unknown or negative durations render as 0:00.
func FormatTime(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
