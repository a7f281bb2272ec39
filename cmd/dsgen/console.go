package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dsgen/dsgen-cli/internal/apperr"
	"github.com/dsgen/dsgen-cli/internal/browser"
	"github.com/dsgen/dsgen-cli/internal/console"
	"github.com/dsgen/dsgen-cli/internal/form"
	"github.com/dsgen/dsgen-cli/internal/recipe"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

var (
	consolePage   string
	consoleRecipe string
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive console",
	Long: "Pick a recipe and fill its form on the generate page, or browse, preview, open and delete " +
		"generated files on the datasets page. Tab switches pages.",
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().StringVar(&consolePage, "page", "", "Start page: generate|datasets")
	consoleCmd.Flags().StringVar(&consoleRecipe, "recipe", "", "Preselected recipe key")

	viper.BindPFlag("console.page", consoleCmd.Flags().Lookup("page"))
	viper.BindPFlag("console.recipe", consoleCmd.Flags().Lookup("recipe"))
}

func runConsole(cmd *cobra.Command, args []string) error {
	shell := console.NewShell()

	page, err := console.ParsePage(viper.GetString("console.page"))
	if err != nil {
		return err
	}
	shell.SetPage(page)
	if key := viper.GetString("console.recipe"); key != "" {
		if err := shell.SelectRecipe(key); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client := newClient()
	s := &session{
		shell:      shell,
		browser:    browser.New(client),
		submitters: map[string]*form.Submitter{},
		values:     map[string]*form.Values{},
	}
	for _, r := range recipe.Registry() {
		s.submitters[r.Key] = form.NewSubmitter(r, client)
	}
	return s.loop(ctx, cmd)
}

// session keeps console state across program runs: the shell, the browser,
// and per recipe the submitter and the last values entered.
type session struct {
	shell      *console.Shell
	browser    *browser.Browser
	submitters map[string]*form.Submitter
	values     map[string]*form.Values
	last       *form.Outcome
}

func (s *session) loop(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for {
		sel, err := console.Run(ctx, console.Options{Shell: s.shell, Browser: s.browser, Outcome: s.last})
		if err != nil {
			return err
		}
		if sel.Action != console.ActionGenerate {
			return nil
		}

		r := recipe.MustLookup(sel.Recipe)
		vs, err := form.NewRenderer(r, s.values[r.Key]).Run(ctx)
		if errors.Is(err, apperr.ErrCancelled) {
			fmt.Fprintln(out, ui.Dim.Render("Form closed, nothing submitted."))
			continue
		}
		if err != nil {
			return err
		}
		s.values[r.Key] = vs

		outcome, err := submitWithSpinner(ctx, out, s.submitters[r.Key], vs, quiet())
		if err != nil {
			return err
		}
		if !outcome.OK() {
			fmt.Fprintln(out, ui.OutcomeBox(false, outcome.Message))
		}
		s.last = &outcome
	}
}
