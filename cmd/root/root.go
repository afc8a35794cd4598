// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/budget-csv/internal/config"
	"fjacquet/budget-csv/internal/container"
	"fjacquet/budget-csv/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

// flagBindings maps persistent flags to configuration keys.
var flagBindings = map[string]string{
	"categories":    "categories.file",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"csv-delimiter": "csv.delimiter",
	"currency":      "report.currency",
}

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger once the root command has loaded configuration.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-csv",
		Short: "Categorize bank transaction exports with learned keyword rules.",
		Long: `budget-csv imports a bank CSV export, assigns every transaction a spending
category from an ordered keyword rule set, and learns new rules from the
categories you correct in the exported file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}

	// SharedFlags holds the values of the persistent --input and --output flags.
	SharedFlags = CommonFlags{}

	v       = viper.New()
	app     *container.Container
	initOne sync.Once
)

// Init registers the persistent flags and binds them to configuration keys.
// Calling it more than once has no further effect.
func Init() {
	initOne.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
		flags.String("categories", "", "Category rule file, JSON or YAML (default categories.json)")
		flags.String("log-level", "", "Log level (trace, debug, info, warn, error)")
		flags.String("log-format", "", "Log format (text or json)")
		flags.String("csv-delimiter", "", "Delimiter of exported CSV files")
		flags.String("currency", "", "Currency shown next to amounts")

		for flag, key := range flagBindings {
			if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
				panic(fmt.Sprintf("binding flag %s: %v", flag, err))
			}
		}
	})
}

func setup(cmd *cobra.Command, args []string) error {
	envFile, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("error loading %s: %w", envFile, err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("error initializing application: %w", err)
	}
	app = c
	Log = c.GetLogger()
	if envFile != "" {
		Log.Debug("Loaded environment file", logging.F(logging.FieldFile, envFile))
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

// GetContainer returns the application container built for the running command.
func GetContainer() (*container.Container, error) {
	if app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
