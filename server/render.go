package server

import (
	"context"
	"errors"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Anggahrm/biolink/internal/database"
	"github.com/Anggahrm/biolink/internal/models"
	"github.com/Anggahrm/biolink/internal/player"
)

// loadContent reads the profile, links and tracks concurrently. A missing
// profile leaves Content.Profile nil.
func (s *Server) loadContent(ctx context.Context, activeOnly bool) (models.Content, error) {
	var (
		content models.Content
		opts    = database.ListOptions{ActiveOnly: activeOnly}
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		profile, err := s.db.GetProfile(ctx)
		if errors.Is(err, database.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		content.Profile = &profile
		return nil
	})
	p.Go(func(ctx context.Context) error {
		links, err := s.db.ListLinks(ctx, opts)
		content.Links = links
		return err
	})
	p.Go(func(ctx context.Context) error {
		tracks, err := s.db.ListTracks(ctx, opts)
		content.Tracks = tracks
		return err
	})
	if err := p.Wait(); err != nil {
		return models.Content{}, err
	}

	if content.Links == nil {
		content.Links = []models.Link{}
	}
	if content.Tracks == nil {
		content.Tracks = []models.Track{}
	}
	return content, nil
}

func (s *Server) loadIndexPage(ctx context.Context) (models.IndexPageData, error) {
	content, err := s.loadContent(ctx, true)
	if err != nil {
		return models.IndexPageData{}, err
	}

	data := models.IndexPageData{
		Profile: content.Profile,
		Links:   make([]models.LinkView, 0, len(content.Links)),
		Tracks:  content.Tracks,
	}
	for _, l := range content.Links {
		data.Links = append(data.Links, models.LinkView{Link: l, Glyph: models.IconGlyph(l.Icon)})
	}
	data.Player = initialPlayer(content.Tracks)
	return data, nil
}

// initialPlayer renders the player as it looks before any interaction.
func initialPlayer(tracks []models.Track) *models.PlayerView {
	if len(tracks) == 0 {
		return nil
	}
	list := make([]player.Track, 0, len(tracks))
	for _, t := range tracks {
		list = append(list, player.Track{ID: t.ID, Title: t.Title, Artist: t.Artist, URL: t.URL, CoverURL: t.CoverURL})
	}

	p := player.New(silentAudio{})
	p.Load(list)
	snap := p.Snapshot()
	return &models.PlayerView{
		Title:    snap.Track.Title,
		Artist:   snap.Track.Artist,
		CoverURL: snap.Track.CoverURL,
		URL:      snap.Track.URL,
		Elapsed:  snap.Elapsed(),
		Total:    snap.Total(),
		Counter:  snap.Counter(),
	}
}

// silentAudio backs a player that is only used to compute display state.
type silentAudio struct{}

func (silentAudio) Load(string) {}

func (silentAudio) Play() error { return nil }

func (silentAudio) Pause() {}

func (silentAudio) Seek(time.Duration) {}

func (silentAudio) SetVolume(float64) {}
