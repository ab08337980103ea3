// Package tui contains the interactive screens: public browsing,
// article reading, and the admin area. Each screen is a bubbletea
// model with a mode enum, one message type per async result, and
// command closures doing the network work.
package tui

import (
	"github.com/rs/zerolog"

	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/session"
)

// App bundles the shared services every screen needs. One App is built
// per invocation and handed to the screen being launched.
type App struct {
	Client     *api.Client
	Articles   *api.ArticleService
	Categories *api.CategoryService
	Comments   *api.CommentService
	Users      *api.UserService
	Auth       *api.AuthService
	Stats      *api.StatsService
	Session    session.Store
	Log        zerolog.Logger

	ArticlesPerPage int
	UsersPerPage    int
}

// NewApp wires the resource services onto a shared client.
func NewApp(client *api.Client, store session.Store, log zerolog.Logger, articlesPerPage, usersPerPage int) *App {
	return &App{
		Client:          client,
		Articles:        api.NewArticleService(client),
		Categories:      api.NewCategoryService(client),
		Comments:        api.NewCommentService(client),
		Users:           api.NewUserService(client),
		Auth:            api.NewAuthService(client),
		Stats:           api.NewStatsService(client),
		Session:         store,
		Log:             log,
		ArticlesPerPage: articlesPerPage,
		UsersPerPage:    usersPerPage,
	}
}
