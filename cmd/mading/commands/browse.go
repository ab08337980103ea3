package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stembase/mading/cmd/mading/output"
	"github.com/stembase/mading/cmd/mading/tui"
	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/sanitize"
)

var (
	// Browse flags
	searchTerm string
	categoryID int
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse published articles",
	Long: `Browse the wall magazine interactively: search, filter by category,
page through articles, like them, and open one to read.

With --json the article list is printed once and the command exits.

Examples:
  mading browse                         # interactive browser
  mading browse --search robotics       # pre-filled search
  mading browse --json                  # machine-readable listing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse()
	},
}

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Read one article with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid article id %q", args[0])
		}
		return runRead(id)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd, readCmd)
	browseCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Search term")
	browseCmd.Flags().IntVarP(&categoryID, "category", "c", 0, "Category id filter")
}

func runBrowse() error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printArticlesJSON(app)
	}

	id, err := tui.RunBrowseUI(app)
	if err != nil {
		return err
	}
	if id == 0 {
		return nil
	}
	return tui.RunArticleUI(app, id)
}

func printArticlesJSON(app *tui.App) error {
	articles, err := app.Articles.List(context.Background(), api.ArticleQuery{
		Search:     searchTerm,
		CategoryID: categoryID,
	})
	if err != nil {
		return fmt.Errorf("list articles: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}

func runRead(id int) error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	if jsonOutput {
		article, err := app.Articles.Get(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get article: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(article)
	}
	return tui.RunArticleUI(app, id)
}

// printArticleTable is the plain listing used by admin article output.
func printArticleTable(articles []api.Article) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tAUTHOR\tLIKES\tVIEWS")
	for _, a := range articles {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n",
			a.ID, sanitize.Excerpt(a.Title, 40), a.CategoryName, a.Username, a.Likes, a.Views)
	}
	w.Flush()
	output.Muted("%d article(s)", len(articles))
}
