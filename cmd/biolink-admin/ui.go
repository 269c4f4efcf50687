package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Anggahrm/biolink/internal/console"
	"github.com/Anggahrm/biolink/internal/models"
)

type screen int

const (
	screenLogin screen = iota
	screenList
	screenForm
	screenConfirm
)

type tab int

const (
	tabProfile tab = iota
	tabLinks
	tabMusic
)

var tabNames = []string{"Profile", "Links", "Music"}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	activeTab     = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("#4ECDC4")).Foreground(lipgloss.Color("#111111"))
	inactiveTab   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#888888"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFE66D"))
	hiddenStyle   = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#88D8B0"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// model is the Bubble Tea state for the console.
type model struct {
	ctx    context.Context
	client *console.Client
	ws     *console.Workspace

	screen        screen
	tab           tab
	cursor        int
	authenticated bool

	pass textinput.Model

	// form edits one record; editID is empty when creating.
	inputs     []textinput.Model
	focus      int
	editID     string
	editActive bool

	pendingDelete string
	confirmPrompt string

	status string
	err    string
}

func newModel(ctx context.Context, client *console.Client, ws *console.Workspace, loggedIn bool) model {
	pass := textinput.New()
	pass.Placeholder = "Admin password"
	pass.EchoMode = textinput.EchoPassword
	pass.Prompt = "Password: "
	pass.Focus()

	m := model{ctx: ctx, client: client, ws: ws, pass: pass, tab: tabLinks}
	if loggedIn {
		m.screen = screenList
		m.authenticated = true
	}
	return m
}

type errMsg struct{ err error }
type loggedInMsg struct{}
type loadedMsg struct{}
type savedMsg struct{ text string }

func (m model) Init() tea.Cmd {
	if m.authenticated {
		return loadCmd(m.ctx, m.ws)
	}
	return textinput.Blink
}

func loginCmd(ctx context.Context, c *console.Client, password string) tea.Cmd {
	return func() tea.Msg {
		if err := c.Login(ctx, password); err != nil {
			return errMsg{err}
		}
		return loggedInMsg{}
	}
}

func loadCmd(ctx context.Context, ws *console.Workspace) tea.Cmd {
	return func() tea.Msg {
		if err := ws.Load(ctx); err != nil {
			return errMsg{err}
		}
		return loadedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.status = ""
		switch {
		case errors.Is(msg.err, console.ErrCanceled):
			m.err = ""
			m.status = "Delete canceled"
		case console.IsUnauthorized(msg.err) && m.screen != screenLogin:
			m.err = "Session expired, log in again"
			m.screen = screenLogin
			m.authenticated = false
			m.pass.Focus()
		default:
			m.err = msg.err.Error()
		}
		return m, nil
	case loggedInMsg:
		m.err = ""
		m.authenticated = true
		m.screen = screenList
		return m, loadCmd(m.ctx, m.ws)
	case loadedMsg:
		m.err = ""
		m.clampCursor()
		return m, nil
	case savedMsg:
		m.err = ""
		m.status = msg.text
		m.screen = screenList
		m.clampCursor()
		return m, nil
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenList:
		return m.updateList(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenConfirm:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			pw := m.pass.Value()
			m.pass.SetValue("")
			return m, loginCmd(m.ctx, m.client, pw)
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.pass, cmd = m.pass.Update(msg)
	return m, cmd
}

func (m model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % 3
		m.cursor = 0
	case "shift+tab", "left", "h":
		m.tab = (m.tab + 2) % 3
		m.cursor = 0
	case "1", "2", "3":
		m.tab = tab(k.String()[0] - '1')
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
	case "r":
		m.status = ""
		return m, loadCmd(m.ctx, m.ws)
	case "n":
		if m.tab == tabProfile {
			return m, nil
		}
		return m.openForm(false)
	case "e", "enter":
		if m.tab != tabProfile && m.rows() == 0 {
			return m, nil
		}
		return m.openForm(true)
	case "t":
		return m, m.toggleCmd()
	case "d":
		return m.askDelete()
	}
	return m, nil
}

func (m model) rows() int {
	switch m.tab {
	case tabLinks:
		return len(m.ws.Links())
	case tabMusic:
		return len(m.ws.Tracks())
	}
	return 0
}

func (m *model) clampCursor() {
	if n := m.rows(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func newInput(prompt, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = fmt.Sprintf("%-10s ", prompt+":")
	ti.SetValue(value)
	ti.CharLimit = 512
	return ti
}

// openForm fills the form from the selected record, or from defaults.
func (m model) openForm(edit bool) (tea.Model, tea.Cmd) {
	m.editID, m.err, m.status = "", "", ""
	switch m.tab {
	case tabProfile:
		d := console.EditProfileDraft(m.ws.Profile())
		m.inputs = []textinput.Model{
			newInput("Name", d.Name),
			newInput("Bio", d.Bio),
			newInput("Avatar", d.AvatarURL),
		}
	case tabLinks:
		d := console.NewLinkDraft()
		if links := m.ws.Links(); edit && m.cursor < len(links) {
			d = console.EditLinkDraft(links[m.cursor])
		}
		m.editID, m.editActive = d.ID, d.IsActive
		m.inputs = []textinput.Model{
			newInput("Title", d.Title),
			newInput("URL", d.URL),
			newInput("Icon", d.Icon),
			newInput("Category", d.Category),
			newInput("Color", d.Color),
		}
		m.inputs[2].Placeholder = strings.Join(models.IconNames[:6], ", ") + ", ..."
		m.inputs[3].Placeholder = strings.Join(models.Categories, ", ")
	case tabMusic:
		d := console.NewTrackDraft()
		if tracks := m.ws.Tracks(); edit && m.cursor < len(tracks) {
			d = console.EditTrackDraft(tracks[m.cursor])
		}
		m.editID, m.editActive = d.ID, d.IsActive
		m.inputs = []textinput.Model{
			newInput("Title", d.Title),
			newInput("Artist", d.Artist),
			newInput("URL", d.URL),
			newInput("Cover", d.CoverURL),
		}
	}
	m.focus = 0
	m.screen = screenForm
	cmd := m.inputs[0].Focus()
	return m, cmd
}

func (m model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.screen = screenList
			m.err = ""
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "down":
			cmd := m.moveFocus(1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.moveFocus(-1)
			return m, cmd
		case "enter":
			return m, m.saveCmd()
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m model) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

// saveCmd sends the form. The form stays open until the save is confirmed.
func (m model) saveCmd() tea.Cmd {
	ctx, ws := m.ctx, m.ws
	switch m.tab {
	case tabProfile:
		d := console.ProfileDraft{Name: m.value(0), Bio: m.value(1), AvatarURL: m.value(2)}
		return func() tea.Msg {
			if _, err := ws.SaveProfile(ctx, d); err != nil {
				return errMsg{err}
			}
			return savedMsg{"Profile saved"}
		}
	case tabLinks:
		d := console.LinkDraft{
			ID:       m.editID,
			Title:    m.value(0),
			URL:      m.value(1),
			Icon:     m.value(2),
			Category: m.value(3),
			Color:    m.value(4),
			IsActive: m.editActive,
		}
		return func() tea.Msg {
			l, err := ws.SaveLink(ctx, d)
			if err != nil {
				return errMsg{err}
			}
			return savedMsg{fmt.Sprintf("Saved link %q", l.Title)}
		}
	case tabMusic:
		d := console.TrackDraft{
			ID:       m.editID,
			Title:    m.value(0),
			Artist:   m.value(1),
			URL:      m.value(2),
			CoverURL: m.value(3),
			IsActive: m.editActive,
		}
		return func() tea.Msg {
			t, err := ws.SaveTrack(ctx, d)
			if err != nil {
				return errMsg{err}
			}
			return savedMsg{fmt.Sprintf("Saved track %q", t.Title)}
		}
	}
	return nil
}

func (m model) toggleCmd() tea.Cmd {
	ctx, ws := m.ctx, m.ws
	switch m.tab {
	case tabLinks:
		links := ws.Links()
		if m.cursor >= len(links) {
			return nil
		}
		id := links[m.cursor].ID
		return func() tea.Msg {
			l, err := ws.ToggleLinkActive(ctx, id)
			if err != nil {
				return errMsg{err}
			}
			return savedMsg{fmt.Sprintf("%q is now %s", l.Title, visibility(l.IsActive))}
		}
	case tabMusic:
		tracks := ws.Tracks()
		if m.cursor >= len(tracks) {
			return nil
		}
		id := tracks[m.cursor].ID
		return func() tea.Msg {
			t, err := ws.ToggleTrackActive(ctx, id)
			if err != nil {
				return errMsg{err}
			}
			return savedMsg{fmt.Sprintf("%q is now %s", t.Title, visibility(t.IsActive))}
		}
	}
	return nil
}

func visibility(active bool) string {
	if active {
		return "visible"
	}
	return "hidden"
}

func (m model) askDelete() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabLinks:
		links := m.ws.Links()
		if m.cursor >= len(links) {
			return m, nil
		}
		m.pendingDelete = links[m.cursor].ID
		m.confirmPrompt = fmt.Sprintf("Delete link %q? (y/n)", links[m.cursor].Title)
	case tabMusic:
		tracks := m.ws.Tracks()
		if m.cursor >= len(tracks) {
			return m, nil
		}
		m.pendingDelete = tracks[m.cursor].ID
		m.confirmPrompt = fmt.Sprintf("Delete track %q? (y/n)", tracks[m.cursor].Title)
	default:
		return m, nil
	}
	m.status, m.err = "", ""
	m.screen = screenConfirm
	return m, nil
}

func (m model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	var answer bool
	switch k.String() {
	case "y", "Y":
		answer = true
	case "n", "N", "esc":
	default:
		return m, nil
	}
	m.screen = screenList
	return m, m.deleteCmd(m.pendingDelete, answer)
}

func (m model) deleteCmd(id string, answer bool) tea.Cmd {
	ctx, ws, t := m.ctx, m.ws, m.tab
	confirm := func(string) bool { return answer }
	return func() tea.Msg {
		var err error
		if t == tabMusic {
			err = ws.DeleteTrack(ctx, id, confirm)
		} else {
			err = ws.DeleteLink(ctx, id, confirm)
		}
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{"Deleted"}
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("biolink admin"))
	if m.client != nil {
		b.WriteString(" " + helpStyle.Render(m.client.Addr()))
	}
	b.WriteString("\n\n")

	switch m.screen {
	case screenLogin:
		b.WriteString(m.pass.View())
		b.WriteString("\n\n" + helpStyle.Render("enter login  esc quit") + "\n")
	case screenList:
		b.WriteString(m.tabsView() + "\n\n")
		b.WriteString(m.listView())
		help := "tab switch  ↑/↓ move  n new  e edit  t show/hide  d delete  r reload  q quit"
		if m.tab == tabProfile {
			help = "tab switch  e edit  r reload  q quit"
		}
		b.WriteString("\n" + helpStyle.Render(help) + "\n")
	case screenForm:
		verb := "New"
		if m.editID != "" || m.tab == tabProfile {
			verb = "Edit"
		}
		b.WriteString(fmt.Sprintf("%s %s\n\n", verb, strings.ToLower(tabNames[m.tab])))
		for _, in := range m.inputs {
			b.WriteString(in.View() + "\n")
		}
		b.WriteString("\n" + helpStyle.Render("tab next field  enter save  esc back") + "\n")
	case screenConfirm:
		b.WriteString(m.confirmPrompt + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.err != "" {
		b.WriteString("\n" + errStyle.Render("Error: "+m.err) + "\n")
	}
	return b.String()
}

func (m model) tabsView() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts = append(parts, activeTab.Render(name))
		} else {
			parts = append(parts, inactiveTab.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) listView() string {
	var b strings.Builder
	switch m.tab {
	case tabProfile:
		p := m.ws.Profile()
		if p == nil {
			return "No profile.\n"
		}
		fmt.Fprintf(&b, "Name:   %s\nBio:    %s\nAvatar: %s\n", p.Name, p.Bio, p.AvatarURL)
	case tabLinks:
		links := m.ws.Links()
		if len(links) == 0 {
			return "No links yet. Press n to add one.\n"
		}
		for i, l := range links {
			b.WriteString(m.row(i, fmt.Sprintf("%s %-24s %s", models.IconGlyph(l.Icon), l.Title, l.URL), l.IsActive))
		}
	case tabMusic:
		tracks := m.ws.Tracks()
		if len(tracks) == 0 {
			return "No tracks yet. Press n to add one.\n"
		}
		for i, t := range tracks {
			b.WriteString(m.row(i, fmt.Sprintf("♪ %-24s %s", t.Title, t.Artist), t.IsActive))
		}
	}
	return b.String()
}

func (m model) row(i int, text string, active bool) string {
	if !active {
		text = hiddenStyle.Render(text + " (hidden)")
	}
	if i == m.cursor {
		return selectedStyle.Render("> ") + text + "\n"
	}
	return "  " + text + "\n"
}
