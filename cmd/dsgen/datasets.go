package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dsgen/dsgen-cli/internal/apperr"
	"github.com/dsgen/dsgen-cli/internal/browser"
	"github.com/dsgen/dsgen-cli/internal/console"
	"github.com/dsgen/dsgen-cli/internal/preview"
	"github.com/dsgen/dsgen-cli/internal/recipe"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

var (
	showSort   string
	showDesc   bool
	showFilter string
	showLimit  int

	deleteYes bool
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List, preview, open and delete generated dataset files",
}

var datasetsListCmd = &cobra.Command{
	Use:       "list <type>",
	Short:     "List the files generated for a dataset type",
	Args:      cobra.ExactArgs(1),
	ValidArgs: recipe.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := datasetType(args[0])
		if err != nil {
			return err
		}
		files, err := newClient().ListDatasets(cmdContext(cmd), r.Key)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, ui.Muted.Render(console.EmptyPlaceholder(r.Label)))
			return nil
		}
		fmt.Fprintln(out, ui.SectionHeader.Render(r.Label))
		for _, f := range files {
			fmt.Fprintf(out, "  %s %s\n", ui.GetBullet(), f)
		}
		fmt.Fprintln(out, ui.Dim.Render(fmt.Sprintf("%d file(s)", len(files))))
		return nil
	},
}

var datasetsShowCmd = &cobra.Command{
	Use:   "show <type> <file>",
	Short: "Preview a generated file as a table",
	Long: "Fetch a generated file and render it as a table. The preview splits lines on commas " +
		"without quoting rules, so fields that contain commas are shown split.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := datasetType(args[0])
		if err != nil {
			return err
		}
		b := browser.New(newClient())
		b.Use(r.Key)
		p, err := b.Preview(cmdContext(cmd), args[1])
		if err != nil {
			return err
		}

		t := p.Table
		if col := viper.GetString("datasets.show.sort"); col != "" {
			if !t.HasColumn(col) {
				return apperr.Userf("no column %q in %s (columns: %s)", col, p.Filename, strings.Join(t.Columns, ", "))
			}
			t = t.SortBy(col, viper.GetBool("datasets.show.desc"))
		}
		t = t.Filter(viper.GetString("datasets.show.filter"))

		fmt.Fprintln(cmd.OutOrStdout(), renderPreview(p, t, viper.GetInt("datasets.show.limit")))
		return nil
	},
}

var datasetsOpenCmd = &cobra.Command{
	Use:   "open <type> <file>",
	Short: "Open the raw file in the system browser",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := datasetType(args[0])
		if err != nil {
			return err
		}
		b := browser.New(newClient())
		b.Use(r.Key)
		url := b.RawURL(args[1])
		if err := b.OpenRaw(args[1]); err != nil {
			return fmt.Errorf("open %s: %w", url, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus("success", "Opened "+ui.Secondary.Render(url)))
		return nil
	},
}

var datasetsDeleteCmd = &cobra.Command{
	Use:   "delete <type> <file>",
	Short: "Delete a generated file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := datasetType(args[0])
		if err != nil {
			return err
		}
		filename := args[1]

		if !viper.GetBool("datasets.delete.yes") {
			confirmed := false
			err := huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s from %s?", filename, r.Label)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed).
				Run()
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return apperr.ErrCancelled
				}
				return err
			}
			if !confirmed {
				return apperr.ErrCancelled
			}
		}

		b := browser.New(newClient())
		b.Use(r.Key)
		remaining := b.Delete(cmdContext(cmd), filename)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.FormatStatus("info", fmt.Sprintf("Delete requested for %s", filename)))
		fmt.Fprintln(out, ui.Dim.Render(fmt.Sprintf("%d file(s) left in %s", len(remaining), r.Key)))
		return nil
	},
}

func init() {
	datasetsShowCmd.Flags().StringVar(&showSort, "sort", "", "Sort rows by this column")
	datasetsShowCmd.Flags().BoolVar(&showDesc, "desc", false, "Sort descending")
	datasetsShowCmd.Flags().StringVar(&showFilter, "filter", "", "Keep rows that fuzzy-match this text")
	datasetsShowCmd.Flags().IntVar(&showLimit, "limit", 50, "Maximum rows to print (0 = all)")
	datasetsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")

	viper.BindPFlag("datasets.show.sort", datasetsShowCmd.Flags().Lookup("sort"))
	viper.BindPFlag("datasets.show.desc", datasetsShowCmd.Flags().Lookup("desc"))
	viper.BindPFlag("datasets.show.filter", datasetsShowCmd.Flags().Lookup("filter"))
	viper.BindPFlag("datasets.show.limit", datasetsShowCmd.Flags().Lookup("limit"))
	viper.BindPFlag("datasets.delete.yes", datasetsDeleteCmd.Flags().Lookup("yes"))

	datasetsCmd.AddCommand(datasetsListCmd, datasetsShowCmd, datasetsOpenCmd, datasetsDeleteCmd)
}

// datasetType resolves a dataset type argument; the types are the recipe keys.
func datasetType(arg string) (recipe.Recipe, error) {
	r, ok := recipe.Lookup(arg)
	if !ok {
		return recipe.Recipe{}, apperr.Userf("unknown dataset type %q (known: %s)", arg, strings.Join(recipe.Keys(), ", "))
	}
	return r, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// renderPreview prints the header line and up to limit rows of t.
func renderPreview(p *browser.Preview, t preview.TablePreview, limit int) string {
	var b strings.Builder
	b.WriteString(ui.Title.Render(p.Filename))
	b.WriteString(" ")
	b.WriteString(ui.Dim.Render(fmt.Sprintf("%s · %d of %d rows", humanize.Bytes(uint64(p.Size)), len(t.Rows), len(p.Table.Rows))))
	b.WriteString("\n")

	if t.Empty() {
		b.WriteString(ui.Muted.Render("Empty file"))
		return b.String()
	}

	records := t.Records()
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorMuted)).
		Headers(t.Columns...).
		Rows(records...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.TableHeader.Style().UnsetBorderBottom()
			}
			return ui.TableCell.Style()
		})
	b.WriteString(tbl.Render())
	if shown := len(records); shown < len(t.Rows) {
		b.WriteString("\n")
		b.WriteString(ui.Dim.Render(fmt.Sprintf("... %d more row(s), raise --limit to see them", len(t.Rows)-shown)))
	}
	return b.String()
}
