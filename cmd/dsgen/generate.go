package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dsgen/dsgen-cli/internal/apperr"
	"github.com/dsgen/dsgen-cli/internal/form"
	"github.com/dsgen/dsgen-cli/internal/recipe"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

var (
	generateSets        []string
	generateInteractive bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <recipe>",
	Short: "Submit one dataset recipe to the backend",
	Long: "Submit a recipe with field values given as --set name=value (file fields take a local path). " +
		"With --interactive the recipe form opens, prefilled with any --set values.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: recipe.Keys(),
	RunE:      runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVarP(&generateSets, "set", "s", nil, "Field value as name=value (repeatable)")
	generateCmd.Flags().BoolVarP(&generateInteractive, "interactive", "i", false, "Fill the recipe form interactively")

	viper.BindPFlag("generate.interactive", generateCmd.Flags().Lookup("interactive"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	r, ok := recipe.Lookup(args[0])
	if !ok {
		return apperr.Userf("unknown recipe %q (known: %s)", args[0], strings.Join(recipe.Keys(), ", "))
	}

	vs, err := parseSets(r, generateSets)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if viper.GetBool("generate.interactive") {
		vs, err = form.NewRenderer(r, vs).Run(ctx)
		if err != nil {
			return err
		}
	}

	sub := form.NewSubmitter(r, newClient())
	outcome, err := submitWithSpinner(ctx, cmd.OutOrStdout(), sub, vs, quiet())
	if err != nil {
		return err
	}
	return outcomeErr(outcome)
}

// parseSets turns name=value pairs into form values for r. Names must be
// fields of r; file fields take the value as a local path.
func parseSets(r recipe.Recipe, sets []string) (*form.Values, error) {
	vs := form.NewValues()
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, apperr.Userf("invalid --set %q (expected name=value)", kv)
		}
		f, found := r.Field(name)
		if !found {
			return nil, apperr.Userf("recipe %s has no field %q (fields: %s)", r.Key, name, strings.Join(r.FieldNames(), ", "))
		}
		if f.Kind == recipe.KindFile {
			vs.Set(name, form.File(value))
		} else {
			vs.SetText(name, value)
		}
	}
	return vs, nil
}

// submitWithSpinner posts vs and shows a spinner while the backend works.
// The outcome box is printed on success; failures are returned by outcomeErr.
func submitWithSpinner(ctx context.Context, w io.Writer, sub *form.Submitter, vs *form.Values, quiet bool) (form.Outcome, error) {
	var sp *ui.Spinner
	if !quiet {
		sp = ui.NewSpinner(w, fmt.Sprintf("Generating %s...", sub.Recipe.Label))
		sp.Start()
	}

	outcome, err := sub.Submit(ctx, vs)
	if err != nil {
		if sp != nil {
			sp.Stop(false, err.Error())
		}
		return outcome, err
	}

	if sp != nil {
		if outcome.OK() {
			sp.Stop(true, sub.Recipe.Label+" submitted")
		} else {
			sp.Stop(false, sub.Recipe.Label+" failed")
		}
	}
	if outcome.OK() && !quiet {
		fmt.Fprintln(w, ui.OutcomeBox(true, outcome.Message))
	}
	return outcome, nil
}

// outcomeErr converts a failure outcome into the command error.
func outcomeErr(o form.Outcome) error {
	if o.OK() {
		return nil
	}
	if o.Err != nil && apperr.IsValidation(o.Err) {
		return o.Err
	}
	return errors.New(o.Message)
}
