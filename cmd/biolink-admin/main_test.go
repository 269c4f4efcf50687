package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anggahrm/biolink/internal/console"
	"github.com/Anggahrm/biolink/internal/models"
)

func TestPrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "console.toml")

	assert.Equal(t, defaultAddr, loadPrefs(path).Addr)

	require.NoError(t, savePrefs(path, Prefs{Addr: "https://bio.example.com"}))
	assert.Equal(t, "https://bio.example.com", loadPrefs(path).Addr)
}

func TestPrefsFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.toml")
	require.NoError(t, os.WriteFile(path, []byte("addr = [not toml"), 0o644))
	assert.Equal(t, defaultAddr, loadPrefs(path).Addr)

	require.NoError(t, os.WriteFile(path, []byte(`addr = "  "`), 0o644))
	assert.Equal(t, defaultAddr, loadPrefs(path).Addr)

	assert.Equal(t, defaultAddr, loadPrefs("").Addr)
}

func TestReadLine(t *testing.T) {
	pw, err := readLine(strings.NewReader("s3cret pass\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret pass", pw)

	pw, err = readLine(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)

	_, err = readLine(strings.NewReader("\n"))
	assert.Error(t, err)
}

type stubBackend struct {
	content models.Content
	deleted []string
	saveErr error
}

func (s *stubBackend) Content(ctx context.Context) (models.Content, error) { return s.content, nil }

func (s *stubBackend) CreateLink(ctx context.Context, p models.LinkPatch) (models.Link, error) {
	if s.saveErr != nil {
		return models.Link{}, s.saveErr
	}
	return models.Link{ID: "new", Title: *p.Title, IsActive: true}, nil
}

func (s *stubBackend) UpdateLink(ctx context.Context, id string, p models.LinkPatch) (models.Link, error) {
	return models.Link{}, s.saveErr
}

func (s *stubBackend) DeleteLink(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBackend) CreateTrack(ctx context.Context, p models.TrackPatch) (models.Track, error) {
	return models.Track{}, s.saveErr
}

func (s *stubBackend) UpdateTrack(ctx context.Context, id string, p models.TrackPatch) (models.Track, error) {
	return models.Track{}, s.saveErr
}

func (s *stubBackend) DeleteTrack(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBackend) UpdateProfile(ctx context.Context, p models.ProfilePatch) (models.Profile, error) {
	return models.Profile{}, s.saveErr
}

func newLoadedModel(t *testing.T, b *stubBackend) model {
	t.Helper()
	ws := console.NewWorkspace(b)
	require.NoError(t, ws.Load(context.Background()))
	return newModel(context.Background(), nil, ws, true)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds a key to the model. The returned command is not run.
func press(t *testing.T, m model, s string) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key(s))
	return next.(model), cmd
}

// settle runs cmd and feeds its result back into the model.
func settle(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(model)
}

func TestDeleteDeclined(t *testing.T) {
	b := &stubBackend{content: models.Content{Links: []models.Link{{ID: "a", Title: "GitHub", IsActive: true}}}}
	m := newLoadedModel(t, b)

	m, _ = press(t, m, "d")
	assert.Equal(t, screenConfirm, m.screen)
	assert.Contains(t, m.View(), `Delete link "GitHub"?`)

	m, cmd := press(t, m, "n")
	m = settle(t, m, cmd)
	assert.Equal(t, screenList, m.screen)
	assert.Equal(t, "Delete canceled", m.status)
	assert.Empty(t, b.deleted)
	assert.Len(t, m.ws.Links(), 1)
}

func TestDeleteConfirmed(t *testing.T) {
	b := &stubBackend{content: models.Content{Links: []models.Link{{ID: "a", Title: "GitHub", IsActive: true}}}}
	m := newLoadedModel(t, b)

	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "y")
	m = settle(t, m, cmd)
	assert.Equal(t, []string{"a"}, b.deleted)
	assert.Empty(t, m.ws.Links())
	assert.Equal(t, "Deleted", m.status)
}

func TestFailedSaveKeepsForm(t *testing.T) {
	b := &stubBackend{saveErr: errors.New("title and url are required")}
	m := newLoadedModel(t, b)

	m, _ = press(t, m, "n")
	require.Equal(t, screenForm, m.screen)
	assert.Equal(t, models.DefaultIcon, m.inputs[2].Value())
	m.inputs[0].SetValue("Draft title")

	m, cmd := press(t, m, "enter")
	m = settle(t, m, cmd)
	assert.Equal(t, screenForm, m.screen)
	assert.Equal(t, "title and url are required", m.err)
	assert.Equal(t, "Draft title", m.inputs[0].Value())
	assert.Empty(t, m.ws.Links())
}

func TestSaveNewLink(t *testing.T) {
	b := &stubBackend{}
	m := newLoadedModel(t, b)

	m, _ = press(t, m, "n")
	m.inputs[0].SetValue("Site")
	m.inputs[1].SetValue("https://example.com")
	m, cmd := press(t, m, "enter")
	m = settle(t, m, cmd)

	assert.Equal(t, screenList, m.screen)
	require.Len(t, m.ws.Links(), 1)
	assert.Contains(t, m.View(), "Site")
}

func TestTabSwitching(t *testing.T) {
	m := newLoadedModel(t, &stubBackend{})
	assert.Equal(t, tabLinks, m.tab)

	m, _ = press(t, m, "3")
	assert.Equal(t, tabMusic, m.tab)
	m, _ = press(t, m, "l")
	assert.Equal(t, tabProfile, m.tab)
	assert.Contains(t, m.View(), "No profile.")
}
