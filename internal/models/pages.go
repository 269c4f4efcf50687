package models

import "strings"

// IconNames lists the symbolic icons a link can carry, in picker order.
var IconNames = []string{
	"instagram", "twitter", "github", "linkedin", "mail", "globe",
	"youtube", "tiktok", "spotify", "dribbble", "figma", "link",
	"phone", "map", "shop", "book", "code", "camera", "heart",
	"star", "zap", "send", "message", "file", "download", "external",
}

var Categories = []string{CategorySocial, CategoryPortfolio, CategoryContact, CategoryCustom}

var ColorPresets = []string{
	"#FF6B6B", "#4ECDC4", "#FFE66D", "#1DA1F2", "#E1306C",
	"#333333", "#6B5B95", "#88D8B0", "#FF6F61", "#5B5EA6",
}

var iconGlyphs = map[string]string{
	"instagram": "📷",
	"twitter":   "🐦",
	"github":    "🐙",
	"linkedin":  "💼",
	"mail":      "✉️",
	"globe":     "🌐",
	"youtube":   "▶️",
	"tiktok":    "🎵",
	"spotify":   "🎧",
	"dribbble":  "🏀",
	"figma":     "🎨",
	"link":      "🔗",
	"phone":     "📞",
	"map":       "📍",
	"shop":      "🛍️",
	"book":      "📖",
	"code":      "💻",
	"camera":    "📸",
	"heart":     "❤️",
	"star":      "⭐",
	"zap":       "⚡",
	"send":      "📨",
	"message":   "💬",
	"file":      "📄",
	"download":  "⬇️",
	"external":  "↗️",
}

// IconGlyph maps an icon name to its glyph. Unknown names fall back to the
// link glyph.
func IconGlyph(name string) string {
	if g, ok := iconGlyphs[strings.ToLower(name)]; ok {
		return g
	}
	return iconGlyphs[DefaultIcon]
}

type LinkView struct {
	Link
	Glyph string
}

// PlayerView is the server-rendered starting state of the audio player.
type PlayerView struct {
	Title    string
	Artist   string
	CoverURL string
	URL      string
	Elapsed  string
	Total    string
	Counter  string
}

type IndexPageData struct {
	Profile *Profile
	Links   []LinkView
	Tracks  []Track
	Player  *PlayerView
}

type AdminPageData struct {
	Profile     *Profile
	Links       []Link
	Tracks      []Track
	ActiveLinks int
	ActiveMusic int
	Message     string
	Error       string
	Version     string

	Icons      []string
	Categories []string
	Colors     []string
}
