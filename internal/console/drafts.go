package console

import "github.com/Anggahrm/biolink/internal/models"

// LinkDraft is the editable form for one link. An empty ID means the draft
// creates a new link when saved.
type LinkDraft struct {
	ID       string
	Title    string
	URL      string
	Icon     string
	Category string
	Color    string
	IsActive bool
}

func NewLinkDraft() LinkDraft {
	return LinkDraft{
		Icon:     models.DefaultIcon,
		Category: models.DefaultCategory,
		Color:    models.DefaultColor,
		IsActive: true,
	}
}

func EditLinkDraft(l models.Link) LinkDraft {
	return LinkDraft{
		ID:       l.ID,
		Title:    l.Title,
		URL:      l.URL,
		Icon:     l.Icon,
		Category: l.Category,
		Color:    l.Color,
		IsActive: l.IsActive,
	}
}

func (d LinkDraft) Editing() bool { return d.ID != "" }

func (d LinkDraft) patch() models.LinkPatch {
	return models.LinkPatch{
		Title:    &d.Title,
		URL:      &d.URL,
		Icon:     &d.Icon,
		Category: &d.Category,
		Color:    &d.Color,
		IsActive: &d.IsActive,
	}
}

type TrackDraft struct {
	ID       string
	Title    string
	Artist   string
	URL      string
	CoverURL string
	IsActive bool
}

func NewTrackDraft() TrackDraft {
	return TrackDraft{IsActive: true}
}

func EditTrackDraft(t models.Track) TrackDraft {
	return TrackDraft{
		ID:       t.ID,
		Title:    t.Title,
		Artist:   t.Artist,
		URL:      t.URL,
		CoverURL: t.CoverURL,
		IsActive: t.IsActive,
	}
}

func (d TrackDraft) Editing() bool { return d.ID != "" }

func (d TrackDraft) patch() models.TrackPatch {
	return models.TrackPatch{
		Title:    &d.Title,
		Artist:   &d.Artist,
		URL:      &d.URL,
		CoverURL: &d.CoverURL,
		IsActive: &d.IsActive,
	}
}

type ProfileDraft struct {
	Name      string
	Bio       string
	AvatarURL string
}

// EditProfileDraft copies p, or returns an empty draft when p is nil.
func EditProfileDraft(p *models.Profile) ProfileDraft {
	if p == nil {
		return ProfileDraft{}
	}
	return ProfileDraft{Name: p.Name, Bio: p.Bio, AvatarURL: p.AvatarURL}
}

func (d ProfileDraft) patch() models.ProfilePatch {
	return models.ProfilePatch{Name: &d.Name, Bio: &d.Bio, AvatarURL: &d.AvatarURL}
}
