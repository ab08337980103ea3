package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/controller"
	"github.com/stembase/mading/pkg/sanitize"
)

// AdminMode represents the current mode of an admin CRUD screen. All
// four resource screens share the same shape: a list, a modal form, and
// a delete confirmation.
type AdminMode int

const (
	AdminList AdminMode = iota
	AdminForm
	AdminConfirm
)

// AdminArticlesModel is the admin article manager: list, create/edit
// modal with optional image upload, and delete with confirmation.
type AdminArticlesModel struct {
	app  *App
	mode AdminMode

	list       *controller.List[api.Article]
	categories *controller.List[api.Category]
	form       *controller.Form

	fields  []FormField
	focus   int
	cursor  int
	confirm ConfirmationDialog

	notice Notice
	width  int
	height int
}

// NewAdminArticlesModel creates the admin article screen.
func NewAdminArticlesModel(app *App) *AdminArticlesModel {
	list := controller.NewList(func(ctx context.Context, q controller.Query) ([]api.Article, error) {
		return app.Articles.List(ctx, api.ArticleQuery{})
	}, "Failed to load articles. Please try again.")

	categories := controller.NewList(func(ctx context.Context, q controller.Query) ([]api.Category, error) {
		return app.Categories.List(ctx)
	}, "Failed to load categories. Please try again.")

	m := &AdminArticlesModel{
		app:        app,
		list:       list,
		categories: categories,
	}

	m.form = controller.NewForm(
		[]string{"title", "content"},
		"Failed to save article.",
		func(ctx context.Context, f *controller.Form) error {
			categoryID, _ := strconv.Atoi(f.Value("category_id"))
			draft := api.ArticleDraft{
				Title:      f.Value("title"),
				Content:    f.Value("content"),
				CategoryID: categoryID,
				Image:      f.File(),
			}
			if f.Mode() == controller.FormEdit {
				return app.Articles.Update(ctx, f.EntityID(), draft)
			}
			return app.Articles.Create(ctx, draft)
		},
		controller.WithEditGuard(func() error {
			if categories.Len() == 0 {
				return errors.New("Categories not loaded yet. Please try again.")
			}
			return nil
		}),
	)
	return m
}

// Init implements tea.Model.
func (m *AdminArticlesModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.refreshCategoriesCmd(), tea.EnterAltScreen)
}

// Messages
type adminArticlesRefreshedMsg struct{}

type adminCategoriesRefreshedMsg struct{}

type articleSavedMsg struct{ err error }

type articleDeletedMsg struct {
	id  int
	err error
}

// Commands
func (m *AdminArticlesModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		m.list.Refresh(context.Background())
		return adminArticlesRefreshedMsg{}
	}
}

func (m *AdminArticlesModel) refreshCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		m.categories.Refresh(context.Background())
		return adminCategoriesRefreshedMsg{}
	}
}

func (m *AdminArticlesModel) submitCmd() tea.Cmd {
	return func() tea.Msg {
		return articleSavedMsg{err: m.form.Submit(context.Background())}
	}
}

func (m *AdminArticlesModel) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return articleDeletedMsg{id: id, err: m.app.Articles.Delete(context.Background(), id)}
	}
}

// Update implements tea.Model.
func (m *AdminArticlesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.notice.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case adminArticlesRefreshedMsg:
		if m.cursor >= m.list.Len() {
			m.cursor = 0
		}
		if errMsg := m.list.Error(); errMsg != "" {
			return m, m.notice.Show(NoticeError, errMsg)
		}
		return m, nil

	case adminCategoriesRefreshedMsg:
		if errMsg := m.categories.Error(); errMsg != "" {
			return m, m.notice.Show(NoticeError, errMsg)
		}
		return m, nil

	case articleSavedMsg:
		if msg.err != nil {
			// The form keeps its own error; stay in the modal.
			return m, nil
		}
		m.mode = AdminList
		return m, tea.Batch(m.refreshCmd(), m.notice.Show(NoticeSuccess, "Article saved."))

	case articleDeletedMsg:
		if msg.err != nil {
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to delete article."))
		}
		m.list.Patch(func(items []api.Article) []api.Article {
			out := items[:0]
			for _, a := range items {
				if a.ID != msg.id {
					out = append(out, a)
				}
			}
			return out
		})
		if m.cursor >= m.list.Len() && m.cursor > 0 {
			m.cursor--
		}
		return m, m.notice.Show(NoticeSuccess, "Article deleted.")

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *AdminArticlesModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case AdminForm:
		return m.handleFormKey(msg)

	case AdminConfirm:
		switch msg.String() {
		case "esc", "q":
			m.mode = AdminList
			return m, nil
		default:
			return m, m.confirm.Update(msg)
		}

	default:
		return m.handleListKey(msg)
	}
}

func (m *AdminArticlesModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.list.Items()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil

	case "r":
		return m, tea.Batch(m.refreshCmd(), m.refreshCategoriesCmd())

	case "n":
		m.form.OpenCreate()
		m.openForm(nil)
		return m, nil

	case "e":
		if len(items) == 0 {
			return m, nil
		}
		article := items[m.cursor]
		err := m.form.OpenEdit(article.ID, map[string]string{
			"title":       article.Title,
			"content":     article.Content,
			"category_id": strconv.Itoa(article.CategoryID),
		})
		if err != nil {
			return m, m.notice.Show(NoticeError, err.Error())
		}
		m.openForm(&article)
		return m, nil

	case "d":
		if len(items) == 0 {
			return m, nil
		}
		article := items[m.cursor]
		m.confirm = NewConfirmationDialog(
			"Delete Article",
			"Are you sure you want to delete this article?\n"+article.Title,
		)
		m.confirm.OnConfirm = func() tea.Cmd {
			m.mode = AdminList
			return m.deleteCmd(article.ID)
		}
		m.confirm.OnCancel = func() tea.Cmd {
			m.mode = AdminList
			return nil
		}
		m.mode = AdminConfirm
		return m, nil
	}
	return m, nil
}

// openForm builds the input fields from the form state. article is nil
// in create mode.
func (m *AdminArticlesModel) openForm(article *api.Article) {
	m.fields = []FormField{
		NewFormField("Title", "title", "Enter article title"),
		NewFormField("Content", "content", "Enter article content"),
		NewFormField("Category ID", "category_id", "e.g. 1"),
		NewFormField("Image path", "image", "optional, path to an image file"),
	}
	if article != nil {
		m.fields[0].Input.SetValue(article.Title)
		m.fields[1].Input.SetValue(article.Content)
		m.fields[2].Input.SetValue(strconv.Itoa(article.CategoryID))
	}
	m.focus = 0
	m.fields[0].Input.Focus()
	m.mode = AdminForm
}

func (m *AdminArticlesModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.Close()
		m.mode = AdminList
		return m, nil

	case "tab", "shift+tab", "down", "up":
		if msg.String() == "tab" || msg.String() == "down" {
			m.focus = (m.focus + 1) % len(m.fields)
		} else {
			m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
		}
		for i := range m.fields {
			if i == m.focus {
				m.fields[i].Input.Focus()
			} else {
				m.fields[i].Input.Blur()
			}
		}
		return m, nil

	case "enter":
		for _, f := range m.fields {
			if f.Name != "image" {
				m.form.Set(f.Name, f.Input.Value())
			}
		}
		if path := m.fields[3].Input.Value(); path != "" {
			content, err := os.ReadFile(path)
			if err != nil {
				return m, m.notice.Show(NoticeError, "Failed to read image file.")
			}
			m.form.Attach(&api.Upload{Field: "image", Filename: filepath.Base(path), Content: content})
		}
		return m, m.submitCmd()

	default:
		var cmd tea.Cmd
		m.fields[m.focus].Input, cmd = m.fields[m.focus].Input.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *AdminArticlesModel) View() string {
	switch m.mode {
	case AdminForm:
		title := "Create Article"
		if m.form.Mode() == controller.FormEdit {
			title = "Edit Article"
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			RenderFields(title, m.fields, m.focus, m.form.Error()))

	case AdminConfirm:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var sections []string
	sections = append(sections, titleStyle.Render("Articles"))

	items := m.list.Items()
	switch {
	case m.list.Loading():
		sections = append(sections, bannerLoadingStyle.Render("Loading articles..."))
	case len(items) == 0:
		sections = append(sections, mutedStyle.Render("No articles available."))
	default:
		for i, article := range items {
			line := article.Title + " " + mutedStyle.Render("("+article.CategoryName+" • "+article.Username+")")
			excerpt := sanitize.Excerpt(article.Content, 60)
			if i == m.cursor {
				sections = append(sections, selectedItemStyle.Render("▸ "+line)+"\n  "+mutedStyle.Render(excerpt))
			} else {
				sections = append(sections, unselectedItemStyle.Render(line)+"\n    "+mutedStyle.Render(excerpt))
			}
		}
	}

	if m.notice.Visible() {
		sections = append(sections, m.notice.View())
	}
	sections = append(sections, helpStyle.Render(
		FormatKey("n", "create")+" • "+
			FormatKey("e", "edit")+" • "+
			FormatKey("d", "delete")+" • "+
			FormatKey("r", "refresh")+" • "+
			FormatKey("q", "quit"),
	))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RunAdminArticlesUI starts the admin article manager.
func RunAdminArticlesUI(app *App) error {
	p := tea.NewProgram(NewAdminArticlesModel(app))
	_, err := p.Run()
	return err
}
