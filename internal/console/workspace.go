package console

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Anggahrm/biolink/internal/models"
)

// ErrCanceled is returned when the operator declines a delete confirmation.
var ErrCanceled = errors.New("canceled")

// Confirm asks the operator a yes/no question.
type Confirm func(prompt string) bool

// Backend is the subset of the API the workspace writes through. *Client
// implements it.
type Backend interface {
	Content(ctx context.Context) (models.Content, error)
	CreateLink(ctx context.Context, p models.LinkPatch) (models.Link, error)
	UpdateLink(ctx context.Context, id string, p models.LinkPatch) (models.Link, error)
	DeleteLink(ctx context.Context, id string) error
	CreateTrack(ctx context.Context, p models.TrackPatch) (models.Track, error)
	UpdateTrack(ctx context.Context, id string, p models.TrackPatch) (models.Track, error)
	DeleteTrack(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, p models.ProfilePatch) (models.Profile, error)
}

// Workspace is the console's working copy of the site content. Every change
// goes to the API first and lands in the copy only once the API confirms it.
type Workspace struct {
	mu      sync.RWMutex
	api     Backend
	profile *models.Profile
	links   []models.Link
	tracks  []models.Track
}

func NewWorkspace(api Backend) *Workspace {
	return &Workspace{api: api}
}

// Load replaces the working copy with the server's content.
func (w *Workspace) Load(ctx context.Context) error {
	content, err := w.api.Content(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.profile = content.Profile
	w.links = content.Links
	w.tracks = content.Tracks
	return nil
}

func (w *Workspace) Profile() *models.Profile {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.profile == nil {
		return nil
	}
	p := *w.profile
	return &p
}

func (w *Workspace) Links() []models.Link {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.links)
}

func (w *Workspace) Tracks() []models.Track {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.tracks)
}

// SaveLink creates or updates the link described by d. New links go to the
// end of the list.
func (w *Workspace) SaveLink(ctx context.Context, d LinkDraft) (models.Link, error) {
	p := d.patch()
	if d.Editing() {
		l, err := w.api.UpdateLink(ctx, d.ID, p)
		if err != nil {
			return models.Link{}, err
		}
		w.putLink(l)
		return l, nil
	}

	w.mu.RLock()
	order := len(w.links)
	w.mu.RUnlock()
	p.Order = &order

	l, err := w.api.CreateLink(ctx, p)
	if err != nil {
		return models.Link{}, err
	}
	w.putLink(l)
	return l, nil
}

// ToggleLinkActive flips whether the link is shown on the public page.
func (w *Workspace) ToggleLinkActive(ctx context.Context, id string) (models.Link, error) {
	cur, ok := w.link(id)
	if !ok {
		return models.Link{}, fmt.Errorf("link %s is not loaded", id)
	}
	active := !cur.IsActive
	l, err := w.api.UpdateLink(ctx, id, models.LinkPatch{IsActive: &active})
	if err != nil {
		return models.Link{}, err
	}
	w.putLink(l)
	return l, nil
}

// DeleteLink removes the link after confirm approves it. A declined
// confirmation returns ErrCanceled without contacting the server.
func (w *Workspace) DeleteLink(ctx context.Context, id string, confirm Confirm) error {
	name := id
	if l, ok := w.link(id); ok {
		name = l.Title
	}
	if confirm == nil || !confirm(fmt.Sprintf("Delete link %q?", name)) {
		return ErrCanceled
	}
	if err := w.api.DeleteLink(ctx, id); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.links = slices.DeleteFunc(w.links, func(l models.Link) bool { return l.ID == id })
	return nil
}

func (w *Workspace) SaveTrack(ctx context.Context, d TrackDraft) (models.Track, error) {
	p := d.patch()
	if d.Editing() {
		t, err := w.api.UpdateTrack(ctx, d.ID, p)
		if err != nil {
			return models.Track{}, err
		}
		w.putTrack(t)
		return t, nil
	}

	w.mu.RLock()
	order := len(w.tracks)
	w.mu.RUnlock()
	p.Order = &order

	t, err := w.api.CreateTrack(ctx, p)
	if err != nil {
		return models.Track{}, err
	}
	w.putTrack(t)
	return t, nil
}

func (w *Workspace) ToggleTrackActive(ctx context.Context, id string) (models.Track, error) {
	cur, ok := w.track(id)
	if !ok {
		return models.Track{}, fmt.Errorf("track %s is not loaded", id)
	}
	active := !cur.IsActive
	t, err := w.api.UpdateTrack(ctx, id, models.TrackPatch{IsActive: &active})
	if err != nil {
		return models.Track{}, err
	}
	w.putTrack(t)
	return t, nil
}

func (w *Workspace) DeleteTrack(ctx context.Context, id string, confirm Confirm) error {
	name := id
	if t, ok := w.track(id); ok {
		name = t.Title
	}
	if confirm == nil || !confirm(fmt.Sprintf("Delete track %q?", name)) {
		return ErrCanceled
	}
	if err := w.api.DeleteTrack(ctx, id); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.tracks = slices.DeleteFunc(w.tracks, func(t models.Track) bool { return t.ID == id })
	return nil
}

func (w *Workspace) SaveProfile(ctx context.Context, d ProfileDraft) (models.Profile, error) {
	p, err := w.api.UpdateProfile(ctx, d.patch())
	if err != nil {
		return models.Profile{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.profile = &p
	return p, nil
}

func (w *Workspace) link(id string) (models.Link, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := slices.IndexFunc(w.links, func(l models.Link) bool { return l.ID == id })
	if i < 0 {
		return models.Link{}, false
	}
	return w.links[i], true
}

func (w *Workspace) track(id string) (models.Track, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := slices.IndexFunc(w.tracks, func(t models.Track) bool { return t.ID == id })
	if i < 0 {
		return models.Track{}, false
	}
	return w.tracks[i], true
}

// putLink replaces the link with the same id, or appends it.
func (w *Workspace) putLink(l models.Link) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := slices.IndexFunc(w.links, func(x models.Link) bool { return x.ID == l.ID }); i >= 0 {
		w.links[i] = l
		return
	}
	w.links = append(w.links, l)
}

func (w *Workspace) putTrack(t models.Track) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := slices.IndexFunc(w.tracks, func(x models.Track) bool { return x.ID == t.ID }); i >= 0 {
		w.tracks[i] = t
		return
	}
	w.tracks = append(w.tracks, t)
}
