package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stembase/mading/cmd/mading/output"
	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/controller"
	"github.com/stembase/mading/pkg/paginate"
)

// UsersMode covers the extra search state the user manager has on top
// of the shared list/form/confirm trio.
type UsersMode int

const (
	UsersList UsersMode = iota
	UsersSearch
	UsersForm
	UsersConfirm
)

// roleCycle is the order the role filter and the role editor step
// through.
var roleCycle = []string{"", api.RoleAdmin, api.RoleWriter, api.RoleUser}

// AdminUsersModel manages accounts: server-side search and role
// filtering, paginated listing, account creation, in-place role
// changes, and deletion.
type AdminUsersModel struct {
	app  *App
	mode UsersMode

	list     *controller.List[api.User]
	form     *controller.Form
	debounce *controller.Debouncer

	search  string
	roleIdx int
	page    int
	cursor  int
	fields  []FormField
	focus   int
	confirm ConfirmationDialog

	notice Notice
	width  int
	height int
}

// NewAdminUsersModel creates the admin user screen.
func NewAdminUsersModel(app *App) *AdminUsersModel {
	list := controller.NewList(func(ctx context.Context, q controller.Query) ([]api.User, error) {
		return app.Users.List(ctx, api.UserQuery{Search: q.Search, Role: q.Role})
	}, "Failed to load users. Please try again.")

	m := &AdminUsersModel{
		app:      app,
		list:     list,
		debounce: controller.NewDebouncer(controller.SearchDelay, controller.WallClock()),
		page:     1,
	}

	m.form = controller.NewForm(
		[]string{"username", "email", "password"},
		"Failed to create user.",
		func(ctx context.Context, f *controller.Form) error {
			role := f.Value("role")
			if role == "" {
				role = api.RoleUser
			}
			_, err := app.Users.Create(ctx, f.Value("username"), f.Value("email"), f.Value("password"), role)
			return err
		},
	)
	return m
}

// Init implements tea.Model.
func (m *AdminUsersModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tea.EnterAltScreen)
}

type usersRefreshedMsg struct{}

type userSearchReadyMsg struct{ gen int }

type userCreatedMsg struct{ err error }

type userRoleChangedMsg struct {
	id   int
	role string
	err  error
}

type userDeletedMsg struct {
	id  int
	err error
}

func (m *AdminUsersModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		m.list.Refresh(context.Background())
		return usersRefreshedMsg{}
	}
}

func (m *AdminUsersModel) debounceCmd(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		gen, ok := <-ch
		if !ok {
			return nil
		}
		return userSearchReadyMsg{gen: gen}
	}
}

func (m *AdminUsersModel) createCmd() tea.Cmd {
	return func() tea.Msg {
		return userCreatedMsg{err: m.form.Submit(context.Background())}
	}
}

func (m *AdminUsersModel) changeRoleCmd(id int, role string) tea.Cmd {
	return func() tea.Msg {
		return userRoleChangedMsg{id: id, role: role, err: m.app.Users.UpdateRole(context.Background(), id, role)}
	}
}

func (m *AdminUsersModel) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return userDeletedMsg{id: id, err: m.app.Users.Delete(context.Background(), id)}
	}
}

// Update implements tea.Model.
func (m *AdminUsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.notice.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case usersRefreshedMsg:
		m.page = paginate.Clamp(m.page, m.list.Len(), m.app.UsersPerPage)
		m.cursor = 0
		if errMsg := m.list.Error(); errMsg != "" {
			return m, m.notice.Show(NoticeError, errMsg)
		}
		return m, nil

	case userSearchReadyMsg:
		if msg.gen != m.debounce.Gen() {
			return m, nil
		}
		m.list.SetSearch(m.search)
		m.page = 1
		return m, m.refreshCmd()

	case userCreatedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.mode = UsersList
		return m, tea.Batch(m.refreshCmd(), m.notice.Show(NoticeSuccess, "User created."))

	case userRoleChangedMsg:
		if msg.err != nil {
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to update role."))
		}
		m.list.Patch(func(items []api.User) []api.User {
			for i := range items {
				if items[i].ID == msg.id {
					items[i].Role = msg.role
				}
			}
			return items
		})
		return m, m.notice.Show(NoticeSuccess, "Role updated.")

	case userDeletedMsg:
		if msg.err != nil {
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to delete user."))
		}
		m.list.Patch(func(items []api.User) []api.User {
			out := items[:0]
			for _, u := range items {
				if u.ID != msg.id {
					out = append(out, u)
				}
			}
			return out
		})
		m.page = paginate.Clamp(m.page, m.list.Len(), m.app.UsersPerPage)
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.notice.Show(NoticeSuccess, "User deleted.")

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *AdminUsersModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case UsersSearch:
		switch msg.String() {
		case "esc", "enter":
			m.mode = UsersList
			return m, nil
		case "backspace":
			if runes := []rune(m.search); len(runes) > 0 {
				m.search = string(runes[:len(runes)-1])
				return m, m.debounceCmd(m.debounce.Trigger())
			}
			return m, nil
		default:
			if msg.Type == tea.KeyRunes {
				m.search += string(msg.Runes)
				return m, m.debounceCmd(m.debounce.Trigger())
			}
			return m, nil
		}

	case UsersForm:
		return m.handleFormKey(msg)

	case UsersConfirm:
		switch msg.String() {
		case "esc", "q":
			m.mode = UsersList
			return m, nil
		default:
			return m, m.confirm.Update(msg)
		}
	}

	visible := m.visible()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.mode = UsersSearch
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}

	case "left", "h":
		if m.page > 1 {
			m.page--
			m.cursor = 0
		}

	case "right":
		if m.page < paginate.Pages(m.list.Len(), m.app.UsersPerPage) {
			m.page++
			m.cursor = 0
		}

	case "f":
		m.roleIdx = (m.roleIdx + 1) % len(roleCycle)
		q := m.list.Query()
		q.Role = roleCycle[m.roleIdx]
		m.list.SetQuery(q)
		m.page = 1
		m.cursor = 0
		return m, m.refreshCmd()

	case "r":
		return m, m.refreshCmd()

	case "n":
		m.form.OpenCreate()
		m.openForm()
		return m, nil

	case "t":
		if len(visible) == 0 {
			return m, nil
		}
		user := visible[m.cursor]
		next := nextRole(user.Role)
		return m, m.changeRoleCmd(user.ID, next)

	case "d":
		if len(visible) == 0 {
			return m, nil
		}
		user := visible[m.cursor]
		m.confirm = NewConfirmationDialog(
			"Delete User",
			"Are you sure you want to delete this account?\n"+user.Username,
		)
		m.confirm.OnConfirm = func() tea.Cmd {
			m.mode = UsersList
			return m.deleteCmd(user.ID)
		}
		m.confirm.OnCancel = func() tea.Cmd {
			m.mode = UsersList
			return nil
		}
		m.mode = UsersConfirm
		return m, nil
	}
	return m, nil
}

// nextRole steps admin -> writer -> user -> admin.
func nextRole(role string) string {
	switch role {
	case api.RoleAdmin:
		return api.RoleWriter
	case api.RoleWriter:
		return api.RoleUser
	default:
		return api.RoleAdmin
	}
}

// visible returns the current page of users.
func (m *AdminUsersModel) visible() []api.User {
	return paginate.Slice(m.list.Items(), m.page, m.app.UsersPerPage)
}

func (m *AdminUsersModel) openForm() {
	m.fields = []FormField{
		NewFormField("Username", "username", "Enter username"),
		NewFormField("Email", "email", "user@example.com"),
		NewFormField("Password", "password", "Enter password"),
		NewFormField("Role", "role", "admin, writer or user (default user)"),
	}
	m.focus = 0
	m.fields[0].Input.Focus()
	m.mode = UsersForm
}

func (m *AdminUsersModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.Close()
		m.mode = UsersList
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
			m.form.Set(f.Name, f.Input.Value())
		}
		return m, m.createCmd()

	default:
		var cmd tea.Cmd
		m.fields[m.focus].Input, cmd = m.fields[m.focus].Input.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *AdminUsersModel) View() string {
	switch m.mode {
	case UsersForm:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			RenderFields("Create User", m.fields, m.focus, m.form.Error()))

	case UsersConfirm:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var sections []string
	sections = append(sections, titleStyle.Render("Users"))

	searchLine := mutedStyle.Render("Search: ") + m.search
	if m.mode == UsersSearch {
		searchLine = infoStyle.Render("Search: ") + m.search + infoStyle.Render("█")
	}
	if role := roleCycle[m.roleIdx]; role != "" {
		searchLine += "  " + chipActiveStyle.Render(role)
	}
	sections = append(sections, searchLine)

	visible := m.visible()
	switch {
	case m.list.Loading():
		sections = append(sections, bannerLoadingStyle.Render("Loading users..."))
	case len(visible) == 0:
		sections = append(sections, mutedStyle.Render("No users found."))
	default:
		for i, user := range visible {
			line := user.Username + " " + mutedStyle.Render("<"+user.Email+">") + " " + output.RoleBadge(user.Role)
			if i == m.cursor {
				sections = append(sections, selectedItemStyle.Render("▸ "+line))
			} else {
				sections = append(sections, unselectedItemStyle.Render(line))
			}
		}
	}

	if bar := PaginationBar(m.page, m.list.Len(), m.app.UsersPerPage); bar != "" {
		sections = append(sections, bar)
	}
	if m.notice.Visible() {
		sections = append(sections, m.notice.View())
	}
	sections = append(sections, helpStyle.Render(
		FormatKey("/", "search")+" • "+
			FormatKey("f", "role filter")+" • "+
			FormatKey("n", "create")+" • "+
			FormatKey("t", "cycle role")+" • "+
			FormatKey("d", "delete")+" • "+
			FormatKey("q", "quit"),
	))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RunAdminUsersUI starts the admin user manager.
func RunAdminUsersUI(app *App) error {
	p := tea.NewProgram(NewAdminUsersModel(app))
	_, err := p.Run()
	return err
}
