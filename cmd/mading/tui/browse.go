package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/controller"
	"github.com/stembase/mading/pkg/paginate"
	"github.com/stembase/mading/pkg/sanitize"
)

// BrowseMode represents the current mode of the public browse screen.
type BrowseMode int

const (
	BrowseList BrowseMode = iota
	BrowseSearch
	BrowseLoginPrompt
)

// BrowseModel is the public article browser: searchable, filterable by
// category chips, paginated, with like toggles on each card.
//
// Category filtering happens client-side after the fetch, while search
// goes to the server. The two deliberately keep the site's original
// behavior, including the mismatched pagination counts that result.
type BrowseModel struct {
	app  *App
	mode BrowseMode

	list       *controller.List[api.Article]
	like       *controller.Like
	debounce   *controller.Debouncer
	search     textinput.Model
	categories []api.Category

	categoryID int // 0 means all
	page       int
	cursor     int
	selected   int // article id chosen with enter, read after quit

	notice Notice
	width  int
	height int
}

// NewBrowseModel creates the browse screen.
func NewBrowseModel(app *App) *BrowseModel {
	search := textinput.New()
	search.Placeholder = "Search articles..."
	search.Width = 40

	list := controller.NewList(func(ctx context.Context, q controller.Query) ([]api.Article, error) {
		return app.Articles.List(ctx, api.ArticleQuery{Search: q.Search})
	}, "Failed to load articles or categories. Please try again later.")

	return &BrowseModel{
		app:      app,
		list:     list,
		like:     controller.NewLike(app.Session, controller.WallClock(), controller.ReconcileDelay),
		debounce: controller.NewDebouncer(controller.SearchDelay, controller.WallClock()),
		search:   search,
		page:     1,
	}
}

// Selected returns the article id chosen with enter, 0 when none.
func (m *BrowseModel) Selected() int { return m.selected }

// Init implements tea.Model.
func (m *BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.loadCategoriesCmd(), tea.EnterAltScreen)
}

// Messages
type articlesRefreshedMsg struct{}

type categoriesLoadedMsg struct {
	categories []api.Category
	err        error
}

type searchReadyMsg struct{ gen int }

type likePushedMsg struct {
	id      int
	message string
	err     error
}

type reconcileDueMsg struct{ id int }

type likeReconciledMsg struct {
	id      int
	article *api.Article
}

// Commands
func (m *BrowseModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		m.list.Refresh(context.Background())
		return articlesRefreshedMsg{}
	}
}

func (m *BrowseModel) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		categories, err := m.app.Categories.List(context.Background())
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func (m *BrowseModel) debounceCmd(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		gen, ok := <-ch
		if !ok {
			return nil
		}
		return searchReadyMsg{gen: gen}
	}
}

func (m *BrowseModel) pushLikeCmd(id int, action string) tea.Cmd {
	return func() tea.Msg {
		message, err := m.app.Articles.React(context.Background(), id, action)
		return likePushedMsg{id: id, message: message, err: err}
	}
}

func awaitReconcileCmd(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return reconcileDueMsg{id: id}
	}
}

func (m *BrowseModel) reconcileCmd(id int) tea.Cmd {
	return func() tea.Msg {
		article, err := m.app.Articles.Get(context.Background(), id)
		if err == nil {
			m.like.Apply(id, article.Liked)
		} else {
			// Reconciliation could not reach the server; settle on the
			// optimistic value rather than spin.
			m.like.Apply(id, m.like.State(id).Liked)
		}
		return likeReconciledMsg{id: id}
	}
}

// visible returns the category-filtered collection.
func (m *BrowseModel) visible() []api.Article {
	items := m.list.Items()
	if m.categoryID == 0 {
		return items
	}
	out := items[:0:0]
	for _, a := range items {
		if a.CategoryID == m.categoryID {
			out = append(out, a)
		}
	}
	return out
}

// Update implements tea.Model.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.notice.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case articlesRefreshedMsg:
		for _, a := range m.list.Items() {
			m.like.Seed(a.ID, a.Liked)
		}
		m.page = paginate.Clamp(m.page, len(m.visible()), m.app.ArticlesPerPage)
		m.cursor = 0
		if errMsg := m.list.Error(); errMsg != "" {
			return m, m.notice.Show(NoticeError, errMsg)
		}
		return m, nil

	case categoriesLoadedMsg:
		if msg.err != nil {
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to load categories. Please try again."))
		}
		m.categories = msg.categories
		return m, nil

	case searchReadyMsg:
		if msg.gen != m.debounce.Gen() {
			return m, nil
		}
		m.list.SetSearch(m.search.Value())
		m.page = 1
		return m, m.refreshCmd()

	case likePushedMsg:
		if msg.err != nil {
			m.like.Revert(msg.id)
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to like article. Please try again."))
		}
		message := msg.message
		if message == "" {
			message = "Saved!"
		}
		return m, m.notice.Show(NoticeSuccess, message)

	case reconcileDueMsg:
		return m, m.reconcileCmd(msg.id)

	case likeReconciledMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case BrowseSearch:
		switch msg.String() {
		case "esc":
			m.mode = BrowseList
			m.search.Blur()
			return m, nil
		case "enter":
			m.mode = BrowseList
			m.search.Blur()
			m.debounce.Cancel()
			m.list.SetSearch(m.search.Value())
			m.page = 1
			return m, m.refreshCmd()
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			ch := m.debounce.Trigger()
			return m, tea.Batch(cmd, m.debounceCmd(ch))
		}

	case BrowseLoginPrompt:
		switch msg.String() {
		case "esc", "enter", "q":
			m.mode = BrowseList
		}
		return m, nil

	default:
		return m.handleListKey(msg)
	}
}

func (m *BrowseModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()
	pageItems := paginate.Slice(visible, m.page, m.app.ArticlesPerPage)

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.mode = BrowseSearch
		m.search.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(pageItems)-1 {
			m.cursor++
		}
		return m, nil

	case "left", "p":
		if m.page > 1 {
			m.page--
			m.cursor = 0
		}
		return m, nil

	case "right", "n":
		if m.page < paginate.Pages(len(visible), m.app.ArticlesPerPage) {
			m.page++
			m.cursor = 0
		}
		return m, nil

	case "c":
		m.cycleCategory()
		m.page = 1
		m.cursor = 0
		return m, nil

	case "r":
		return m, m.refreshCmd()

	case "l":
		if len(pageItems) == 0 {
			return m, nil
		}
		article := pageItems[m.cursor]
		toggle, err := m.like.Toggle(article.ID)
		if err != nil {
			m.mode = BrowseLoginPrompt
			return m, nil
		}
		return m, tea.Batch(
			m.pushLikeCmd(article.ID, toggle.Action),
			awaitReconcileCmd(toggle.Reconcile),
		)

	case "enter":
		if len(pageItems) == 0 {
			return m, nil
		}
		m.selected = pageItems[m.cursor].ID
		return m, tea.Quit
	}
	return m, nil
}

// cycleCategory steps the active chip: all -> first -> ... -> last -> all.
func (m *BrowseModel) cycleCategory() {
	if len(m.categories) == 0 {
		return
	}
	if m.categoryID == 0 {
		m.categoryID = m.categories[0].ID
		return
	}
	for i, c := range m.categories {
		if c.ID == m.categoryID {
			if i == len(m.categories)-1 {
				m.categoryID = 0
			} else {
				m.categoryID = m.categories[i+1].ID
			}
			return
		}
	}
	m.categoryID = 0
}

// View implements tea.Model.
func (m *BrowseModel) View() string {
	if m.mode == BrowseLoginPrompt {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, LoginPromptDialog{}.View())
	}

	var sections []string
	sections = append(sections, titleStyle.Render("Mading Sija Stembase"))
	sections = append(sections, m.search.View())
	sections = append(sections, m.chipBar())

	visible := m.visible()
	pageItems := paginate.Slice(visible, m.page, m.app.ArticlesPerPage)

	switch {
	case m.list.Loading():
		sections = append(sections, bannerLoadingStyle.Render("Loading articles..."))
	case len(pageItems) == 0:
		sections = append(sections, mutedStyle.Render("No articles found matching your criteria."))
	default:
		for i, article := range pageItems {
			sections = append(sections, m.card(article, i == m.cursor))
		}
	}

	if bar := PaginationBar(m.page, len(visible), m.app.ArticlesPerPage); bar != "" {
		sections = append(sections, bar)
	}
	if m.notice.Visible() {
		sections = append(sections, m.notice.View())
	}
	sections = append(sections, helpStyle.Render(
		FormatKey("↑/↓", "select")+" • "+
			FormatKey("enter", "read")+" • "+
			FormatKey("l", "like")+" • "+
			FormatKey("/", "search")+" • "+
			FormatKey("c", "category")+" • "+
			FormatKey("←/→", "page")+" • "+
			FormatKey("q", "quit"),
	))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BrowseModel) chipBar() string {
	if len(m.categories) == 0 {
		return mutedStyle.Render("No categories available")
	}
	chips := []string{}
	all := chipStyle.Render("All")
	if m.categoryID == 0 {
		all = chipActiveStyle.Render("All")
	}
	chips = append(chips, all)
	for _, c := range m.categories {
		chip := chipStyle.Render(c.Name)
		if c.ID == m.categoryID {
			chip = chipActiveStyle.Render(c.Name)
		}
		chips = append(chips, chip)
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, chips...)
}

func (m *BrowseModel) card(article api.Article, selected bool) string {
	state := m.like.State(article.ID)
	title := FormatLike(state.Liked) + " " + article.Title
	meta := mutedStyle.Render("By " + article.Username + " • " + article.CategoryName)
	excerpt := sanitize.Excerpt(article.Content, 80)
	if selected {
		return selectedItemStyle.Render("▸ "+title) + "\n  " + meta + "\n  " + excerpt
	}
	return unselectedItemStyle.Render(title) + "\n    " + meta + "\n    " + mutedStyle.Render(excerpt)
}

// RunBrowseUI starts the public browse screen and returns the id of the
// article selected for reading, 0 when the user just quit.
func RunBrowseUI(app *App) (int, error) {
	model := NewBrowseModel(app)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return 0, err
	}
	return model.Selected(), nil
}
