package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/sift/internal/config"
	"github.com/Iron-Ham/sift/internal/errors"
)

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

// ExitCode maps an error returned by Execute to a process exit status:
// 0 on success, 2 for invalid input, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errors.ErrInvalidInput), errors.GetSeverity(err) == errors.SeverityWarning:
		return 2
	default:
		return 1
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sift",
		Short: "Stage and activate named filters over a record dataset",
		Long: `Sift loads records from JSON, YAML or TOML files and filters them with
named rules declared in the config file. Filter changes are staged first
and only take effect on the output when they are activated.`,
		SilenceUsage: true,
	}

	// Global flags
	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/sift/config.yaml)")
	flags.String("log-dir", "", "directory for sift.log (default is the config directory)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("logging.dir", flags.Lookup("log-dir"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))

	root.AddCommand(
		newRunCmd(),
		newTUICmd(),
		newFiltersCmd(),
		newConfigCmd(),
	)
	return root
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SIFT")
	// SIFT_TUI_THEME for tui.theme
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
