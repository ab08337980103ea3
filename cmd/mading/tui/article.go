package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/controller"
	"github.com/stembase/mading/pkg/sanitize"
)

// ArticleMode represents the current mode of the article detail screen.
type ArticleMode int

const (
	ArticleLoading ArticleMode = iota
	ArticleView
	ArticleCompose
	ArticleEditCompose
	ArticleConfirmDelete
	ArticleLoginPrompt
	ArticleMissing
)

// ArticleModel shows one article with its comment thread: like toggle,
// comment compose/edit/delete, and the login prompt for logged-out
// interaction attempts.
type ArticleModel struct {
	app  *App
	mode ArticleMode
	id   int

	article  *api.Article
	comments *controller.List[api.Comment]
	like     *controller.Like

	compose   textarea.Model
	editingID int
	cursor    int
	confirm   ConfirmationDialog

	notice Notice
	width  int
	height int
}

// NewArticleModel creates the detail screen for one article.
func NewArticleModel(app *App, id int) *ArticleModel {
	compose := textarea.New()
	compose.Placeholder = "Write your comment..."
	compose.SetHeight(4)

	comments := controller.NewList(func(ctx context.Context, q controller.Query) ([]api.Comment, error) {
		return app.Comments.ListByArticle(ctx, id)
	}, "Failed to load comments. Please try again.")

	return &ArticleModel{
		app:      app,
		mode:     ArticleLoading,
		id:       id,
		comments: comments,
		like:     controller.NewLike(app.Session, controller.WallClock(), controller.ReconcileDelay),
		compose:  compose,
	}
}

// Init implements tea.Model.
func (m *ArticleModel) Init() tea.Cmd {
	return tea.Batch(m.loadArticleCmd(), m.refreshCommentsCmd(), tea.EnterAltScreen)
}

// Messages
type articleLoadedMsg struct {
	article *api.Article
	err     error
}

type commentsRefreshedMsg struct{}

type commentMutatedMsg struct {
	verb string
	err  error
}

// Commands
func (m *ArticleModel) loadArticleCmd() tea.Cmd {
	return func() tea.Msg {
		article, err := m.app.Articles.Get(context.Background(), m.id)
		return articleLoadedMsg{article: article, err: err}
	}
}

func (m *ArticleModel) refreshCommentsCmd() tea.Cmd {
	return func() tea.Msg {
		m.comments.Refresh(context.Background())
		return commentsRefreshedMsg{}
	}
}

func (m *ArticleModel) createCommentCmd(content string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Comments.Create(context.Background(), m.id, content)
		return commentMutatedMsg{verb: "added", err: err}
	}
}

func (m *ArticleModel) updateCommentCmd(commentID int, content string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Comments.Update(context.Background(), commentID, content)
		return commentMutatedMsg{verb: "updated", err: err}
	}
}

func (m *ArticleModel) deleteCommentCmd(commentID int) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Comments.Delete(context.Background(), commentID)
		return commentMutatedMsg{verb: "deleted", err: err}
	}
}

// Update implements tea.Model.
func (m *ArticleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.notice.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.compose.SetWidth(msg.Width - 8)
		return m, nil

	case articleLoadedMsg:
		if msg.err != nil {
			m.mode = ArticleMissing
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to load article."))
		}
		m.article = msg.article
		m.like.Seed(m.article.ID, m.article.Liked)
		m.mode = ArticleView
		return m, nil

	case commentsRefreshedMsg:
		if m.cursor >= m.comments.Len() {
			m.cursor = 0
		}
		if errMsg := m.comments.Error(); errMsg != "" {
			return m, m.notice.Show(NoticeError, errMsg)
		}
		return m, nil

	case commentMutatedMsg:
		if msg.err != nil {
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to save comment. Please try again."))
		}
		return m, tea.Batch(
			m.notice.Show(NoticeSuccess, "Comment "+msg.verb+"!"),
			m.refreshCommentsCmd(),
		)

	case likePushedMsg:
		if msg.err != nil {
			m.like.Revert(msg.id)
			return m, m.notice.Show(NoticeError, api.Message(msg.err, "Failed to like article. Please try again."))
		}
		message := msg.message
		if message == "" {
			message = "Article liked!"
		}
		return m, m.notice.Show(NoticeSuccess, message)

	case reconcileDueMsg:
		return m, func() tea.Msg {
			article, err := m.app.Articles.Get(context.Background(), msg.id)
			if err != nil {
				return likeReconciledMsg{id: msg.id}
			}
			m.like.Apply(msg.id, article.Liked)
			return likeReconciledMsg{id: msg.id, article: article}
		}

	case likeReconciledMsg:
		if msg.article != nil {
			m.article = msg.article
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *ArticleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ArticleCompose, ArticleEditCompose:
		switch msg.String() {
		case "esc":
			m.mode = ArticleView
			m.compose.Blur()
			m.compose.Reset()
			return m, nil
		case "ctrl+s":
			content := strings.TrimSpace(m.compose.Value())
			if content == "" {
				return m, m.notice.Show(NoticeError, "Comment must not be empty.")
			}
			editing := m.mode == ArticleEditCompose
			m.mode = ArticleView
			m.compose.Blur()
			m.compose.Reset()
			if editing {
				return m, m.updateCommentCmd(m.editingID, content)
			}
			return m, m.createCommentCmd(content)
		default:
			var cmd tea.Cmd
			m.compose, cmd = m.compose.Update(msg)
			return m, cmd
		}

	case ArticleConfirmDelete:
		switch msg.String() {
		case "esc", "q":
			m.mode = ArticleView
			return m, nil
		default:
			return m, m.confirm.Update(msg)
		}

	case ArticleLoginPrompt:
		switch msg.String() {
		case "esc", "enter", "q":
			m.mode = ArticleView
		}
		return m, nil

	case ArticleMissing:
		switch msg.String() {
		case "ctrl+c", "q", "enter", "esc":
			return m, tea.Quit
		}
		return m, nil

	default:
		return m.handleViewKey(msg)
	}
}

func (m *ArticleModel) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	comments := m.comments.Items()

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(comments)-1 {
			m.cursor++
		}
		return m, nil

	case "r":
		return m, tea.Batch(m.loadArticleCmd(), m.refreshCommentsCmd())

	case "l":
		toggle, err := m.like.Toggle(m.id)
		if err != nil {
			m.mode = ArticleLoginPrompt
			return m, nil
		}
		return m, tea.Batch(
			func() tea.Msg {
				message, pushErr := m.app.Articles.React(context.Background(), m.id, toggle.Action)
				return likePushedMsg{id: m.id, message: message, err: pushErr}
			},
			awaitReconcileCmd(toggle.Reconcile),
		)

	case "n":
		if !m.app.Client.Authenticated() {
			m.mode = ArticleLoginPrompt
			return m, nil
		}
		m.mode = ArticleCompose
		m.compose.Reset()
		return m, m.compose.Focus()

	case "e":
		if len(comments) == 0 {
			return m, nil
		}
		comment := comments[m.cursor]
		if !m.canModerate(comment) {
			return m, nil
		}
		m.mode = ArticleEditCompose
		m.editingID = comment.ID
		m.compose.SetValue(comment.Content)
		return m, m.compose.Focus()

	case "d":
		if len(comments) == 0 {
			return m, nil
		}
		comment := comments[m.cursor]
		if !m.canModerate(comment) {
			return m, nil
		}
		m.confirm = NewConfirmationDialog(
			"Delete Comment",
			"Are you sure you want to delete this comment?",
		)
		m.confirm.OnConfirm = func() tea.Cmd {
			m.mode = ArticleView
			return m.deleteCommentCmd(comment.ID)
		}
		m.confirm.OnCancel = func() tea.Cmd {
			m.mode = ArticleView
			return nil
		}
		m.mode = ArticleConfirmDelete
		return m, nil
	}
	return m, nil
}

// canModerate gates the edit/delete affordances on the client-held user.
// This is a convenience only; the server re-checks every mutation.
func (m *ArticleModel) canModerate(comment api.Comment) bool {
	user, ok := m.app.Session.User()
	if !ok {
		return false
	}
	return user.CanModerate(comment.UserID)
}

// View implements tea.Model.
func (m *ArticleModel) View() string {
	switch m.mode {
	case ArticleLoading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			bannerLoadingStyle.Render("Loading article..."))

	case ArticleMissing:
		msg := titleStyle.Render("Article Not Found") + "\n\n" +
			mutedStyle.Render("The article may have been removed.") + "\n\n" +
			helpStyle.Render(FormatKey("q", "back"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(msg))

	case ArticleLoginPrompt:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, LoginPromptDialog{}.View())

	case ArticleConfirmDelete:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var sections []string
	sections = append(sections, titleStyle.Render(m.article.Title))
	sections = append(sections, subtitleStyle.Render("By: "+m.article.Username+" • "+m.article.CreatedAt))

	state := m.like.State(m.article.ID)
	sections = append(sections, FormatLike(state.Liked)+" "+mutedStyle.Render(fmt.Sprintf("%d likes", m.article.Likes)))

	body := sanitize.Text(sanitize.HTML(m.article.Content))
	sections = append(sections, lipgloss.NewStyle().Width(max(m.width-4, 40)).Render(body))

	sections = append(sections, titleStyle.Render("Comments"))
	comments := m.comments.Items()
	if len(comments) == 0 {
		sections = append(sections, mutedStyle.Render("No comments yet."))
	} else {
		for i, comment := range comments {
			sections = append(sections, m.commentView(comment, i == m.cursor))
		}
	}

	if m.mode == ArticleCompose || m.mode == ArticleEditCompose {
		sections = append(sections, m.compose.View())
		sections = append(sections, helpStyle.Render(FormatKey("ctrl+s", "send")+" • "+FormatKey("esc", "cancel")))
	}

	if m.notice.Visible() {
		sections = append(sections, m.notice.View())
	}
	sections = append(sections, helpStyle.Render(
		FormatKey("l", "like")+" • "+
			FormatKey("n", "comment")+" • "+
			FormatKey("e", "edit")+" • "+
			FormatKey("d", "delete")+" • "+
			FormatKey("q", "back"),
	))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *ArticleModel) commentView(comment api.Comment, selected bool) string {
	header := infoStyle.Render(comment.Username) + " " + mutedStyle.Render(comment.CreatedAt)
	if user, ok := m.app.Session.User(); ok && user.ID == comment.UserID {
		header += " " + mutedStyle.Render("(yours)")
	}
	line := header + "\n  " + comment.Content
	if selected {
		return selectedItemStyle.Render("▸ ") + line
	}
	return "  " + line
}

// RunArticleUI starts the article detail screen.
func RunArticleUI(app *App, id int) error {
	p := tea.NewProgram(NewArticleModel(app, id))
	_, err := p.Run()
	return err
}
