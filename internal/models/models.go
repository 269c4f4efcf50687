package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	ProfileID = "default"

	DefaultIcon     = "link"
	DefaultCategory = CategoryCustom
	DefaultColor    = "#FF6B6B"
)

const (
	CategorySocial    = "social"
	CategoryPortfolio = "portfolio"
	CategoryContact   = "contact"
	CategoryCustom    = "custom"
)

// ErrValidation marks a payload that is missing a required field.
var ErrValidation = errors.New("validation failed")

type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatarUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Link struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Icon      string    `json:"icon"`
	Category  string    `json:"category"`
	Color     string    `json:"color"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Track struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	URL       string    `json:"url"`
	CoverURL  string    `json:"coverUrl"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Content is every record the admin console manages, inactive ones included.
type Content struct {
	Profile *Profile `json:"profile"`
	Links   []Link   `json:"links"`
	Tracks  []Track  `json:"tracks"`
}

// LinkPatch carries the fields of a link payload. Nil fields are absent from
// the request: on create they take defaults, on update they keep prior values.
type LinkPatch struct {
	Title    *string `json:"title,omitempty"`
	URL      *string `json:"url,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Category *string `json:"category,omitempty"`
	Color    *string `json:"color,omitempty"`
	Order    *int    `json:"order,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type TrackPatch struct {
	Title    *string `json:"title,omitempty"`
	Artist   *string `json:"artist,omitempty"`
	URL      *string `json:"url,omitempty"`
	CoverURL *string `json:"coverUrl,omitempty"`
	Order    *int    `json:"order,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type ProfilePatch struct {
	Name      *string `json:"name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// NewLink builds a link from a create payload, applying defaults for
// omitted optional fields.
func NewLink(p LinkPatch) (Link, error) {
	if blank(p.Title) || blank(p.URL) {
		return Link{}, fmt.Errorf("%w: title and url are required", ErrValidation)
	}
	if !orderInRange(p.Order) {
		return Link{}, errOrderRange
	}
	l := Link{
		Title:    *p.Title,
		URL:      *p.URL,
		Icon:     orDefault(p.Icon, DefaultIcon),
		Category: orDefault(p.Category, DefaultCategory),
		Color:    orDefault(p.Color, DefaultColor),
		IsActive: true,
	}
	if p.Order != nil {
		l.Order = *p.Order
	}
	if p.IsActive != nil {
		l.IsActive = *p.IsActive
	}
	return l, nil
}

func NewTrack(p TrackPatch) (Track, error) {
	if blank(p.Title) || blank(p.Artist) || blank(p.URL) {
		return Track{}, fmt.Errorf("%w: title, artist and url are required", ErrValidation)
	}
	if !orderInRange(p.Order) {
		return Track{}, errOrderRange
	}
	t := Track{
		Title:    *p.Title,
		Artist:   *p.Artist,
		URL:      *p.URL,
		IsActive: true,
	}
	if p.CoverURL != nil {
		t.CoverURL = *p.CoverURL
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	return t, nil
}

// Validate rejects a link update that clears a required field.
func (p LinkPatch) Validate() error {
	if present(p.Title) && blank(p.Title) || present(p.URL) && blank(p.URL) {
		return fmt.Errorf("%w: title and url cannot be empty", ErrValidation)
	}
	if !orderInRange(p.Order) {
		return errOrderRange
	}
	return nil
}

// WithDefaults replaces an icon, category or color sent as "" with the value
// a new link would get.
func (p LinkPatch) WithDefaults() LinkPatch {
	p.Icon = emptyTo(p.Icon, DefaultIcon)
	p.Category = emptyTo(p.Category, DefaultCategory)
	p.Color = emptyTo(p.Color, DefaultColor)
	return p
}

func (p TrackPatch) Validate() error {
	if present(p.Title) && blank(p.Title) || present(p.Artist) && blank(p.Artist) || present(p.URL) && blank(p.URL) {
		return fmt.Errorf("%w: title, artist and url cannot be empty", ErrValidation)
	}
	if !orderInRange(p.Order) {
		return errOrderRange
	}
	return nil
}

func (p ProfilePatch) Validate() error {
	if present(p.Name) && blank(p.Name) {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	return nil
}

func present(s *string) bool { return s != nil }

func blank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

var errOrderRange = fmt.Errorf("%w: order is out of range", ErrValidation)

// orderInRange keeps order within the 32-bit INTEGER column.
func orderInRange(o *int) bool {
	return o == nil || (*o >= math.MinInt32 && *o <= math.MaxInt32)
}

func emptyTo(s *string, def string) *string {
	if s != nil && *s == "" {
		return &def
	}
	return s
}

// orDefault treats an empty string the same as an absent field.
func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
