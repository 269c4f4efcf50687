package player

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAudio struct {
	calls   []string
	src     string
	volume  float64
	seek    time.Duration
	playErr error
}

func (a *fakeAudio) Load(url string) {
	a.src = url
	a.calls = append(a.calls, "load "+url)
}

func (a *fakeAudio) Play() error {
	a.calls = append(a.calls, "play")
	return a.playErr
}

func (a *fakeAudio) Pause() { a.calls = append(a.calls, "pause") }

func (a *fakeAudio) Seek(d time.Duration) {
	a.seek = d
	a.calls = append(a.calls, "seek")
}

func (a *fakeAudio) SetVolume(v float64) { a.volume = v }

func (a *fakeAudio) reset() { a.calls = nil }

func threeTracks() []Track {
	return []Track{
		{ID: "a", Title: "A", URL: "a.mp3"},
		{ID: "b", Title: "B", URL: "b.mp3"},
		{ID: "c", Title: "C", URL: "c.mp3"},
	}
}

func newLoaded(t *testing.T) (*Player, *fakeAudio) {
	t.Helper()
	a := &fakeAudio{}
	p := New(a)
	p.Load(threeTracks())
	a.reset()
	return p, a
}

func TestLoad(t *testing.T) {
	a := &fakeAudio{}
	p := New(a)
	assert.Equal(t, Idle, p.Snapshot().State)

	p.Load(threeTracks())
	s := p.Snapshot()
	assert.Equal(t, Loaded, s.State)
	assert.Equal(t, 0, s.Index)
	require.NotNil(t, s.Track)
	assert.Equal(t, "A", s.Track.Title)
	assert.Equal(t, "a.mp3", a.src)
	assert.NotContains(t, a.calls, "play")

	p.Load(nil)
	s = p.Snapshot()
	assert.Equal(t, Idle, s.State)
	assert.Nil(t, s.Track)
	assert.Equal(t, "", s.Counter())
}

func TestIdleIgnoresControls(t *testing.T) {
	a := &fakeAudio{}
	p := New(a)

	p.Play()
	p.Toggle()
	p.Next()
	p.Previous()
	p.Seek(time.Second)
	p.TrackEnded()

	assert.Equal(t, Idle, p.Snapshot().State)
	assert.Empty(t, a.calls)
}

func TestToggle(t *testing.T) {
	p, a := newLoaded(t)

	p.Toggle()
	assert.Equal(t, Playing, p.Snapshot().State)
	p.Toggle()
	assert.Equal(t, Paused, p.Snapshot().State)
	p.Toggle()
	assert.Equal(t, Playing, p.Snapshot().State)
	assert.Equal(t, []string{"play", "pause", "play"}, a.calls)
}

func TestPlayRefused(t *testing.T) {
	p, a := newLoaded(t)
	a.playErr = errors.New("autoplay blocked")

	p.Play()
	assert.Equal(t, Paused, p.Snapshot().State)
}

func TestNextWrapsAndResumes(t *testing.T) {
	p, a := newLoaded(t)

	p.Next()
	p.Next()
	s := p.Snapshot()
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, Playing, s.State)
	assert.Equal(t, "3 / 3", s.Counter())

	p.Next()
	assert.Equal(t, 0, p.Snapshot().Index)
	assert.Equal(t, "a.mp3", a.src)
}

func TestPreviousWraps(t *testing.T) {
	p, _ := newLoaded(t)

	p.Previous()
	s := p.Snapshot()
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, "C", s.Track.Title)
}

func TestSkipPlaysAfterMetadata(t *testing.T) {
	p, a := newLoaded(t)

	p.Next()
	assert.Equal(t, []string{"load b.mp3"}, a.calls)

	p.MetadataLoaded(3 * time.Minute)
	assert.Equal(t, []string{"load b.mp3", "play"}, a.calls)

	// only once per source
	p.MetadataLoaded(3 * time.Minute)
	assert.Equal(t, []string{"load b.mp3", "play"}, a.calls)
}

func TestPauseBeforeMetadataCancelsAutoplay(t *testing.T) {
	p, a := newLoaded(t)

	p.Next()
	p.Pause()
	p.MetadataLoaded(time.Minute)

	assert.Equal(t, Paused, p.Snapshot().State)
	assert.Equal(t, []string{"load b.mp3", "pause"}, a.calls)
}

func TestSkipFromPausedResumes(t *testing.T) {
	p, _ := newLoaded(t)
	p.Play()
	p.Pause()

	p.Next()
	assert.Equal(t, Playing, p.Snapshot().State)
}

func TestTrackEnded(t *testing.T) {
	p, _ := newLoaded(t)
	p.Play()
	p.Previous() // index 2
	p.MetadataLoaded(time.Minute)

	p.TrackEnded()
	s := p.Snapshot()
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, Playing, s.State)
}

func TestSingleTrackSkipReplays(t *testing.T) {
	a := &fakeAudio{}
	p := New(a)
	p.Load([]Track{{ID: "only", URL: "only.mp3"}})
	a.reset()

	p.Next()
	assert.Equal(t, 0, p.Snapshot().Index)
	assert.Equal(t, []string{"load only.mp3"}, a.calls)
}

func TestSeekClamps(t *testing.T) {
	p, a := newLoaded(t)
	p.MetadataLoaded(90 * time.Second)
	p.Play()

	p.Seek(30 * time.Second)
	assert.Equal(t, 30*time.Second, p.Snapshot().Position)
	assert.Equal(t, 30*time.Second, a.seek)

	p.Seek(5 * time.Minute)
	assert.Equal(t, 90*time.Second, p.Snapshot().Position)

	p.Seek(-time.Second)
	assert.Equal(t, time.Duration(0), p.Snapshot().Position)
	assert.Equal(t, Playing, p.Snapshot().State)
}

func TestTimeUpdate(t *testing.T) {
	p, _ := newLoaded(t)
	p.MetadataLoaded(65 * time.Second)
	p.TimeUpdate(61 * time.Second)

	s := p.Snapshot()
	assert.Equal(t, "1:01", s.Elapsed())
	assert.Equal(t, "1:05", s.Total())

	p.TimeUpdate(10 * time.Minute)
	assert.Equal(t, 65*time.Second, p.Snapshot().Position)
}

func TestVolumeAndMute(t *testing.T) {
	p, a := newLoaded(t)

	p.SetVolume(0.4)
	assert.InDelta(t, 0.4, a.volume, 1e-9)

	p.SetVolume(3)
	assert.InDelta(t, 1.0, p.Snapshot().Volume, 1e-9)
	p.SetVolume(-1)
	assert.InDelta(t, 0.0, p.Snapshot().Volume, 1e-9)

	p.SetVolume(0.7)
	p.ToggleMute()
	s := p.Snapshot()
	assert.True(t, s.Muted)
	assert.InDelta(t, 0.7, s.Volume, 1e-9)
	assert.InDelta(t, 0.0, a.volume, 1e-9)

	p.SetVolume(0.5)
	assert.InDelta(t, 0.0, a.volume, 1e-9)

	p.ToggleMute()
	assert.InDelta(t, 0.5, a.volume, 1e-9)
}

func TestDisplayMode(t *testing.T) {
	p, _ := newLoaded(t)
	p.Play()

	assert.Equal(t, Expanded, p.Snapshot().Mode)
	p.Minimize()
	s := p.Snapshot()
	assert.Equal(t, Minimized, s.Mode)
	assert.Equal(t, Playing, s.State)

	p.ToggleDisplay()
	assert.Equal(t, Expanded, p.Snapshot().Mode)
	p.ToggleDisplay()
	p.Expand()
	assert.Equal(t, Expanded, p.Snapshot().Mode)
}

func TestFormatTime(t *testing.T) {
	cases := map[time.Duration]string{
		0:                    "0:00",
		-time.Second:         "0:00",
		5 * time.Second:      "0:05",
		59*time.Second + 999: "0:59",
		61 * time.Second:     "1:01",
		10 * time.Minute:     "10:00",
		75 * time.Minute:     "75:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatTime(in), in.String())
	}
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "minimized", Minimized.String())
	assert.Equal(t, "state(9)", State(9).String())
}
