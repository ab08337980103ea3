package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stembase/mading/pkg/api"
)

// statsMinimumSpin keeps the spinner up briefly even on fast responses
// so the dashboard does not flash.
const statsMinimumSpin = 500 * time.Millisecond

// StatsModel is the admin dashboard: aggregate counts plus the most
// viewed and most liked articles.
type StatsModel struct {
	app     *App
	spinner spinner.Model

	stats   *api.Stats
	errMsg  string
	loading bool
	started time.Time

	width  int
	height int
}

// NewStatsModel creates the dashboard screen.
func NewStatsModel(app *App) *StatsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = infoStyle
	return &StatsModel{app: app, spinner: s, loading: true, started: time.Now()}
}

// Init implements tea.Model.
func (m *StatsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(), tea.EnterAltScreen)
}

type statsLoadedMsg struct {
	stats *api.Stats
	err   error
}

type statsRevealMsg struct{}

func (m *StatsModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.app.Stats.Get(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// Update implements tea.Model.
func (m *StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statsLoadedMsg:
		m.stats = msg.stats
		if msg.err != nil {
			m.errMsg = api.Message(msg.err, "Failed to load statistics.")
		}
		if remaining := statsMinimumSpin - time.Since(m.started); remaining > 0 {
			return m, tea.Tick(remaining, func(time.Time) tea.Msg { return statsRevealMsg{} })
		}
		m.loading = false
		return m, nil

	case statsRevealMsg:
		m.loading = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.started = time.Now()
			m.errMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *StatsModel) View() string {
	var sections []string
	sections = append(sections, titleStyle.Render("Dashboard"))

	switch {
	case m.loading:
		sections = append(sections, m.spinner.View()+" Loading statistics...")
	case m.errMsg != "":
		sections = append(sections, bannerErrorStyle.Render(m.errMsg))
	case m.stats != nil:
		sections = append(sections, m.statLine("Users", m.stats.Users))
		sections = append(sections, m.statLine("Articles", m.stats.Articles))
		sections = append(sections, m.statLine("Comments", m.stats.Comments))
		if a := m.stats.MostViewedArticle; a != nil {
			sections = append(sections, "")
			sections = append(sections, subtitleStyle.Render("Most viewed"))
			sections = append(sections, a.Title+" "+mutedStyle.Render(strconv.Itoa(a.Views)+" views"))
		}
		if a := m.stats.MostLikedArticle; a != nil {
			sections = append(sections, subtitleStyle.Render("Most liked"))
			sections = append(sections, a.Title+" "+mutedStyle.Render(strconv.Itoa(a.Likes)+" likes"))
		}
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render(FormatKey("r", "refresh")+" • "+FormatKey("q", "quit")))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *StatsModel) statLine(label string, n int) string {
	return infoStyle.Render(strconv.Itoa(n)) + " " + mutedStyle.Render(label)
}

// RunStatsUI starts the dashboard screen.
func RunStatsUI(app *App) error {
	p := tea.NewProgram(NewStatsModel(app))
	_, err := p.Run()
	return err
}
