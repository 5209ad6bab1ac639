package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/surveyscope/surveyscope-cli/internal/config"
	"github.com/surveyscope/surveyscope-cli/internal/logging"
)

var (
	// Global flags (wired to config/viper)
	cfgFile       string
	debug         bool
	flagSheetName string
	flagChartDir  string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:     "surveyscope [file]",
	Short:   "SurveyScope: explore survey spreadsheets interactively",
	Long:    `SurveyScope is a CLI tool for analyzing survey spreadsheets (XLSX/CSV): browse and search questions, filter respondents, and chart answer distributions through an interactive prompt.`,
	Version: "1.0.0",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			// Config load failed earlier; fall back to defaults so the
			// session can still run.
			cfg = &cfgpkg.Global{Prompt: "survey> ", BarWidth: 50, TableTopN: 10}
		}
		logger := logging.New(logging.Options{
			FilePath:   cfg.LogFile,
			MaxSizeMB:  cfg.LogMaxSize,
			MaxBackups: cfg.LogBackups,
			MaxAgeDays: cfg.LogMaxAge,
			Debug:      debug,
		})

		r := newREPL(cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

		// Startup auto-load is fatal on failure; inside the loop the same
		// errors only print and re-prompt.
		if len(args) == 1 {
			if err := r.load(args[0]); err != nil {
				return err
			}
		}
		return r.run()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.surveyscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagSheetName, "sheet-name", "", "XLSX sheet to read (default is the first sheet)")
	rootCmd.PersistentFlags().StringVar(&flagChartDir, "chart-dir", "", "directory for saved PNG charts (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running with built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("sheet-name") {
		cfg.SheetName = flagSheetName
	}
	if f.Changed("chart-dir") && flagChartDir != "" {
		cfg.ChartDir = flagChartDir
	}
}
