package cli

import (
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebox/internal/adapters/view"
	"github.com/jsamuelsen/quotebox/internal/domain"
)

func randomCmd(e *env) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random quote",
		Long: `Show a random quote, optionally limited to one category.

The quote is remembered as the session's last shown quote.
When no quote matches, a notice is printed instead.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := category
			if filter == "" {
				filter = domain.AllCategories
			}

			e.widget.ShowRandomQuote(cmd.Context(), e.terminal(cmd), e.session, filter)

			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only pick quotes from this category")

	return cmd
}

func lastCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the last quote shown in this session",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := e.widget.RestoreLastQuote(cmd.Context(), e.terminal(cmd), e.session); !ok {
				return domain.NewNotFoundError("last shown quote", "")
			}

			return nil
		},
	}
}

func addCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT CATEGORY",
		Short: "Add a quote to the collection",
		Long: `Add a quote to the collection.

Both arguments are trimmed and must not be blank.

Examples:
  quotes add "Simplicity is the soul of efficiency." Engineering`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.widget.AddNewQuote(cmd.Context(), e.terminal(cmd), args[0], args[1])
		},
	}
}

func categoriesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category filter options",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e.widget.UpdateCategoryFilter(e.terminal(cmd, view.WithCategoryOptions()))

			return nil
		},
	}
}
