package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/controller"
	"github.com/stembase/mading/pkg/sanitize"
)

// CommentsMode tracks which pane of the moderation screen is active.
type CommentsMode int

const (
	CommentsPickArticle CommentsMode = iota
	CommentsList
	CommentsConfirm
)

// AdminCommentsModel is the comment moderation screen: pick an article
// first, then walk its comment thread and delete entries.
type AdminCommentsModel struct {
	app  *App
	mode CommentsMode

	articles *controller.List[api.Article]
	comments *controller.List[api.Comment]

	article       api.Article
	articleCursor int
	cursor        int
	confirm       ConfirmationDialog

	notice Notice
	width  int
	height int
}

// NewAdminCommentsModel creates the moderation screen.
func NewAdminCommentsModel(app *App) *AdminCommentsModel {
	m := &AdminCommentsModel{app: app}
	m.articles = controller.NewList(func(ctx context.Context, q controller.Query) ([]api.Article, error) {
		return app.Articles.List(ctx, api.ArticleQuery{})
	}, "Failed to load articles. Please try again.")
	m.comments = controller.NewList(func(ctx context.Context, q controller.Query) ([]api.Comment, error) {
		return app.Comments.ListByArticle(ctx, m.article.ID)
	}, "Failed to load comments. Please try again.")
	return m
}

// Init implements tea.Model.
func (m *AdminCommentsModel) Init() tea.Cmd {
	return tea.Batch(m.refreshArticlesCmd(), tea.EnterAltScreen)
}

type moderationArticlesMsg struct{}

type moderationCommentsMsg struct{}

type moderationDeletedMsg struct {
	id  int
	err error
}

func (m *AdminCommentsModel) refreshArticlesCmd() tea.Cmd {
	return func() tea.Msg {
		m.articles.Refresh(context.Background())
		return moderationArticlesMsg{}
	}
}

func (m *AdminCommentsModel) refreshCommentsCmd() tea.Cmd {
	return func() tea.Msg {
		m.comments.Refresh(context.Background())
		return moderationCommentsMsg{}
	}
}

func (m *AdminCommentsModel) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return moderationDeletedMsg{id: id, err: m.app.Comments.Delete(context.Background(), id)}
	}
}

// Update implements tea.Model.
func (m *AdminCommentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.notice.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case moderationArticlesMsg:
		if m.articleCursor >= m.articles.Len() {
			m.articleCursor = 0
		}
		if errMsg := m.articles.Error(); errMsg != "" {
			return m, m.notice.Show(NoticeError, errMsg)
		}
		return m, nil

	case moderationCommentsMsg:
		if m.cursor >= m.comments.Len() {
			m.cursor = 0
		}
		if errMsg := m.comments.Error(); errMsg != "" {
			return m, m.notice.Show(NoticeError, errMsg)
		}
		return m, nil

	case moderationDeletedMsg:
		if msg.err != nil {
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to delete comment."))
		}
		m.comments.Patch(func(items []api.Comment) []api.Comment {
			out := items[:0]
			for _, c := range items {
				if c.ID != msg.id {
					out = append(out, c)
				}
			}
			return out
		})
		if m.cursor >= m.comments.Len() && m.cursor > 0 {
			m.cursor--
		}
		return m, m.notice.Show(NoticeSuccess, "Comment deleted.")

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *AdminCommentsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case CommentsConfirm:
		switch msg.String() {
		case "esc", "q":
			m.mode = CommentsList
			return m, nil
		default:
			return m, m.confirm.Update(msg)
		}

	case CommentsList:
		comments := m.comments.Items()
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q":
			m.mode = CommentsPickArticle
			return m, nil
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(comments)-1 {
				m.cursor++
			}
		case "r":
			return m, m.refreshCommentsCmd()
		case "d":
			if len(comments) == 0 {
				return m, nil
			}
			comment := comments[m.cursor]
			m.confirm = NewConfirmationDialog(
				"Delete Comment",
				"Are you sure you want to delete this comment?\n"+sanitize.Excerpt(comment.Content, 60),
			)
			m.confirm.OnConfirm = func() tea.Cmd {
				m.mode = CommentsList
				return m.deleteCmd(comment.ID)
			}
			m.confirm.OnCancel = func() tea.Cmd {
				m.mode = CommentsList
				return nil
			}
			m.mode = CommentsConfirm
		}
		return m, nil
	}

	articles := m.articles.Items()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.articleCursor > 0 {
			m.articleCursor--
		}
	case "down", "j":
		if m.articleCursor < len(articles)-1 {
			m.articleCursor++
		}
	case "r":
		return m, m.refreshArticlesCmd()
	case "enter":
		if len(articles) == 0 {
			return m, nil
		}
		m.article = articles[m.articleCursor]
		m.cursor = 0
		m.mode = CommentsList
		return m, m.refreshCommentsCmd()
	}
	return m, nil
}

// View implements tea.Model.
func (m *AdminCommentsModel) View() string {
	if m.mode == CommentsConfirm {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var sections []string
	if m.mode == CommentsPickArticle {
		sections = append(sections, titleStyle.Render("Comments"))
		sections = append(sections, subtitleStyle.Render("Pick an article to moderate"))

		articles := m.articles.Items()
		switch {
		case m.articles.Loading():
			sections = append(sections, bannerLoadingStyle.Render("Loading articles..."))
		case len(articles) == 0:
			sections = append(sections, mutedStyle.Render("No articles available."))
		default:
			for i, article := range articles {
				if i == m.articleCursor {
					sections = append(sections, selectedItemStyle.Render("▸ "+article.Title))
				} else {
					sections = append(sections, unselectedItemStyle.Render(article.Title))
				}
			}
		}
		sections = append(sections, helpStyle.Render(
			FormatKey("enter", "open")+" • "+FormatKey("r", "refresh")+" • "+FormatKey("q", "quit"),
		))
	} else {
		sections = append(sections, titleStyle.Render("Comments"))
		sections = append(sections, subtitleStyle.Render(m.article.Title))

		comments := m.comments.Items()
		switch {
		case m.comments.Loading():
			sections = append(sections, bannerLoadingStyle.Render("Loading comments..."))
		case len(comments) == 0:
			sections = append(sections, mutedStyle.Render("No comments on this article."))
		default:
			for i, comment := range comments {
				header := infoStyle.Render(comment.Username) + " " + mutedStyle.Render(comment.CreatedAt)
				body := sanitize.Text(comment.Content)
				if i == m.cursor {
					sections = append(sections, selectedItemStyle.Render("▸ "+header)+"\n  "+body)
				} else {
					sections = append(sections, unselectedItemStyle.Render(header)+"\n    "+body)
				}
			}
		}
		sections = append(sections, helpStyle.Render(
			FormatKey("d", "delete")+" • "+FormatKey("r", "refresh")+" • "+FormatKey("esc", "back"),
		))
	}

	if m.notice.Visible() {
		sections = append(sections, m.notice.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RunAdminCommentsUI starts the comment moderation screen.
func RunAdminCommentsUI(app *App) error {
	p := tea.NewProgram(NewAdminCommentsModel(app))
	_, err := p.Run()
	return err
}
