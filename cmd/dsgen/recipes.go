package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/dsgen/dsgen-cli/internal/recipe"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

var recipesOutput string

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the dataset recipes and their fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(viper.GetString("recipes.output")))
		switch format {
		case "", "table":
			fmt.Fprintln(cmd.OutOrStdout(), renderRecipes(recipe.Registry()))
			return nil
		case "yaml":
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(recipe.Registry())
		default:
			return fmt.Errorf("invalid --output %q (expected table|yaml)", format)
		}
	},
}

func init() {
	recipesCmd.Flags().StringVarP(&recipesOutput, "output", "o", "", "Output format: table|yaml")
	viper.BindPFlag("recipes.output", recipesCmd.Flags().Lookup("output"))
}

func renderRecipes(reg []recipe.Recipe) string {
	rows := make([][]string, 0, len(reg))
	for _, r := range reg {
		fields := make([]string, len(r.Fields))
		for i, f := range r.Fields {
			fields[i] = f.Name
			if f.Kind != recipe.KindText {
				fields[i] += "(" + f.Kind.String() + ")"
			}
		}
		rows = append(rows, []string{r.Key, r.Label, r.Endpoint, strings.Join(fields, ", ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorMuted)).
		Headers("KEY", "LABEL", "ENDPOINT", "FIELDS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(ui.ColorSecondary).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}
