package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dsgen/dsgen-cli/internal/api"
	"github.com/dsgen/dsgen-cli/internal/browser"
	"github.com/dsgen/dsgen-cli/internal/form"
	"github.com/dsgen/dsgen-cli/internal/recipe"
	"github.com/dsgen/dsgen-cli/internal/ui"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dsgen",
	Short: "Console for a synthetic dataset generation backend",
	Long:  longDescription,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		if err := recipe.Validate(recipe.Registry()); err != nil {
			return err
		}
		level, err := resolveLogLevel()
		if err != nil {
			return err
		}
		wireLogging(level, cmd.ErrOrStderr())
		return nil
	},

	// Without a subcommand, show help with the banner.
	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var (
	cfgFile  string
	version  string
	logLevel string
	baseURL  string
	timeout  int
	token    string
)

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("api.base-url", api.DefaultBaseURL)
	viper.SetDefault("api.timeout", 0)
	viper.SetDefault("log-level", "standard")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dsgen.yaml or ./config/defaults.yaml)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: quiet|standard|debug")
	pf.StringVar(&baseURL, "base-url", "", "Backend base URL (default "+api.DefaultBaseURL+")")
	pf.IntVar(&timeout, "timeout", 0, "HTTP timeout in seconds for backend calls (0 = none)")
	pf.StringVar(&token, "token", "", "Bearer token sent to the backend")

	viper.BindPFlag("log-level", pf.Lookup("log-level"))
	viper.BindPFlag("api.base-url", pf.Lookup("base-url"))
	viper.BindPFlag("api.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("api.token", pf.Lookup("token"))

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(consoleCmd, recipesCmd, generateCmd, datasetsCmd)
}

func initConfig() {
	// .env values land in the process environment before viper reads it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, ui.Warning.Render("Ignoring .env: "+err.Error()))
	}

	// DSGEN_API_BASE_URL -> api.base-url
	viper.SetEnvPrefix("DSGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	notFound := &viper.ConfigFileNotFoundError{}
	var err error
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		err = viper.ReadInConfig()
	} else {
		home, herr := os.UserHomeDir()
		cobra.CheckErr(herr)

		viper.SetConfigType("yaml")
		viper.AddConfigPath(home)
		viper.AddConfigPath("./config")

		viper.SetConfigName(".dsgen")
		err = viper.ReadInConfig()
		if err != nil && errors.As(err, notFound) {
			viper.SetConfigName("defaults")
			err = viper.ReadInConfig()
		}
	}

	switch {
	case err != nil && errors.As(err, notFound):
		// optional
	case err != nil:
		cobra.CheckErr(err)
	default:
		fmt.Fprintln(os.Stderr, ui.Dim.Render("Using config file: ")+ui.Secondary.Render(viper.ConfigFileUsed()))
	}
}

// resolveLogLevel reads log-level from flag, env or config.
func resolveLogLevel() (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString("log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", fmt.Errorf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
}

// wireLogging turns the package loggers on for debug and off otherwise.
func wireLogging(level string, w io.Writer) {
	var dst io.Writer
	if level == "debug" {
		dst = w
	}
	api.SetLogger(dst)
	form.SetLogger(dst)
	browser.SetLogger(dst)
}

func quiet() bool {
	level, err := resolveLogLevel()
	return err == nil && level == "quiet"
}

// newClient builds the backend client from the api.* settings.
func newClient() *api.Client {
	secs := viper.GetInt("api.timeout")
	if secs < 0 {
		secs = 0
	}
	return api.New(
		viper.GetString("api.base-url"),
		time.Duration(secs)*time.Second,
		viper.GetString("api.token"),
	)
}

const longDescription = "Generate synthetic training datasets (SFT, NL→SQL, RAG-QA, classification, text→code, multilingual) through a dataset generation backend, then browse, preview and delete the files it produced."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderBanner() + "\n" + longDescription
}
