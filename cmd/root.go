package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/apictl/client"
	"github.com/s0up4200/apictl/config"
	"github.com/s0up4200/apictl/filter"
	"github.com/s0up4200/apictl/petstore"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	apiClient  *client.Client
	petAPI     *petstore.API
	filters    *filter.Manager
	returnType string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "apictl",
	Short: "Call a REST API and turn the responses into typed values",
	Long: `apictl calls a Swagger/OpenAPI described REST API, deserializes the
responses against a return type such as Array<Pet> or Hash<String, Integer>
and prints the result. File responses are written to the temp folder.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&returnType, "type", "t", "Object", "return type the response is deserialized as")
}

// skipInit replaces initializeApp for commands that need no configuration
func skipInit(*cobra.Command, []string) error {
	return nil
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	apiClient, err = client.New(cfg.API.URL, cfg.API.APIKey, logger,
		client.WithTimeout(cfg.API.Timeout),
		client.WithUserAgent(cfg.API.UserAgent),
		client.WithTempDir(cfg.Download.TempFolderPath),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	petAPI, err = petstore.NewAPI(apiClient,
		petstore.WithLogger(logger),
		petstore.WithConcurrency(cfg.API.Concurrency),
	)
	if err != nil {
		return err
	}

	compiler := filter.NewCompiler(filter.WithFunctions(map[string]any{
		"env": os.Getenv,
	}))
	filters = filter.NewManager(filter.WithCompiler(compiler))
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter in config: %w", err)
	}

	logger.Debug().
		Str("url", cfg.API.URL).
		Strs("models", apiClient.Registry().Names()).
		Strs("filters", filters.ListFilters()).
		Msg("Initialized")

	return nil
}

// setupLogger configures the zerolog logger. Colour is only used when out
// is a terminal.
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	return newLogger(cfg.Format, out, cfg.Color && isTerminal(out))
}

func newLogger(format string, out io.Writer, color bool) zerolog.Logger {
	if format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
