package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/controller"
)

// AdminCategoriesModel manages categories: a flat list with a single
// name field in the modal. Deleting a category does not check for
// articles still assigned to it; the server decides.
type AdminCategoriesModel struct {
	app  *App
	mode AdminMode

	list *controller.List[api.Category]
	form *controller.Form

	fields  []FormField
	cursor  int
	confirm ConfirmationDialog

	notice Notice
	width  int
	height int
}

// NewAdminCategoriesModel creates the admin category screen.
func NewAdminCategoriesModel(app *App) *AdminCategoriesModel {
	list := controller.NewList(func(ctx context.Context, q controller.Query) ([]api.Category, error) {
		return app.Categories.List(ctx)
	}, "Failed to load categories. Please try again.")

	m := &AdminCategoriesModel{app: app, list: list}
	m.form = controller.NewForm(
		[]string{"name"},
		"Failed to save category.",
		func(ctx context.Context, f *controller.Form) error {
			if f.Mode() == controller.FormEdit {
				return app.Categories.Update(ctx, f.EntityID(), f.Value("name"))
			}
			return app.Categories.Create(ctx, f.Value("name"))
		},
	)
	return m
}

// Init implements tea.Model.
func (m *AdminCategoriesModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tea.EnterAltScreen)
}

type categoriesRefreshedMsg struct{}

type categorySavedMsg struct{ err error }

type categoryDeletedMsg struct {
	id  int
	err error
}

func (m *AdminCategoriesModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		m.list.Refresh(context.Background())
		return categoriesRefreshedMsg{}
	}
}

func (m *AdminCategoriesModel) submitCmd() tea.Cmd {
	return func() tea.Msg {
		return categorySavedMsg{err: m.form.Submit(context.Background())}
	}
}

func (m *AdminCategoriesModel) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return categoryDeletedMsg{id: id, err: m.app.Categories.Delete(context.Background(), id)}
	}
}

// Update implements tea.Model.
func (m *AdminCategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.notice.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case categoriesRefreshedMsg:
		if m.cursor >= m.list.Len() {
			m.cursor = 0
		}
		if errMsg := m.list.Error(); errMsg != "" {
			return m, m.notice.Show(NoticeError, errMsg)
		}
		return m, nil

	case categorySavedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.mode = AdminList
		return m, tea.Batch(m.refreshCmd(), m.notice.Show(NoticeSuccess, "Category saved."))

	case categoryDeletedMsg:
		if msg.err != nil {
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to delete category."))
		}
		m.list.Patch(func(items []api.Category) []api.Category {
			out := items[:0]
			for _, c := range items {
				if c.ID != msg.id {
					out = append(out, c)
				}
			}
			return out
		})
		if m.cursor >= m.list.Len() && m.cursor > 0 {
			m.cursor--
		}
		return m, m.notice.Show(NoticeSuccess, "Category deleted.")

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *AdminCategoriesModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case AdminForm:
		switch msg.String() {
		case "esc":
			m.form.Close()
			m.mode = AdminList
			return m, nil
		case "enter":
			m.form.Set("name", m.fields[0].Input.Value())
			return m, m.submitCmd()
		default:
			var cmd tea.Cmd
			m.fields[0].Input, cmd = m.fields[0].Input.Update(msg)
			return m, cmd
		}

	case AdminConfirm:
		switch msg.String() {
		case "esc", "q":
			m.mode = AdminList
			return m, nil
		default:
			return m, m.confirm.Update(msg)
		}
	}

	items := m.list.Items()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case "r":
		return m, m.refreshCmd()

	case "n":
		m.form.OpenCreate()
		m.openForm("")
		return m, nil

	case "e":
		if len(items) == 0 {
			return m, nil
		}
		category := items[m.cursor]
		if err := m.form.OpenEdit(category.ID, map[string]string{"name": category.Name}); err != nil {
			return m, m.notice.Show(NoticeError, err.Error())
		}
		m.openForm(category.Name)
		return m, nil

	case "d":
		if len(items) == 0 {
			return m, nil
		}
		category := items[m.cursor]
		m.confirm = NewConfirmationDialog(
			"Delete Category",
			"Are you sure you want to delete this category?\n"+category.Name,
		)
		m.confirm.OnConfirm = func() tea.Cmd {
			m.mode = AdminList
			return m.deleteCmd(category.ID)
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

func (m *AdminCategoriesModel) openForm(name string) {
	m.fields = []FormField{NewFormField("Name", "name", "Enter category name")}
	if name != "" {
		m.fields[0].Input.SetValue(name)
	}
	m.fields[0].Input.Focus()
	m.mode = AdminForm
}

// View implements tea.Model.
func (m *AdminCategoriesModel) View() string {
	switch m.mode {
	case AdminForm:
		title := "Create Category"
		if m.form.Mode() == controller.FormEdit {
			title = "Edit Category"
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			RenderFields(title, m.fields, 0, m.form.Error()))

	case AdminConfirm:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var sections []string
	sections = append(sections, titleStyle.Render("Categories"))

	items := m.list.Items()
	switch {
	case m.list.Loading():
		sections = append(sections, bannerLoadingStyle.Render("Loading categories..."))
	case len(items) == 0:
		sections = append(sections, mutedStyle.Render("No categories available."))
	default:
		for i, category := range items {
			if i == m.cursor {
				sections = append(sections, selectedItemStyle.Render("▸ "+category.Name))
			} else {
				sections = append(sections, unselectedItemStyle.Render(category.Name))
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

// RunAdminCategoriesUI starts the admin category manager.
func RunAdminCategoriesUI(app *App) error {
	p := tea.NewProgram(NewAdminCategoriesModel(app))
	_, err := p.Run()
	return err
}
