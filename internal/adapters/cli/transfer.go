package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebox/internal/app"
)

func exportCmd(e *env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection as JSON",
		Long: `Write the collection as an indented JSON array.

Examples:
  # Print to stdout
  quotes export

  # Write to a file
  quotes export -o quotes.json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := e.widget.ExportQuotes(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout (e.g. "+app.ExportFileName+")")

	return cmd
}

func importCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE]",
		Short: "Append quotes from a JSON file",
		Long: `Append the quotes in a JSON array file to the collection.

Use - to read from stdin. Without a file nothing is imported.

Examples:
  quotes import quotes.json
  cat quotes.json | quotes import -`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader

			if len(args) == 1 {
				if args[0] == "-" {
					r = cmd.InOrStdin()
				} else {
					f, err := os.Open(args[0])
					if err != nil {
						return fmt.Errorf("opening import file: %w", err)
					}
					defer f.Close()

					r = f
				}
			}

			res := <-e.widget.ImportQuotesAsync(cmd.Context(), e.terminal(cmd), r)

			return res.Err
		},
	}
}
