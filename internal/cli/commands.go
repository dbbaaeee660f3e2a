package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/hankli/FinSeriesGo/config"
	"github.com/hankli/FinSeriesGo/internal/finsource"
	"github.com/hankli/FinSeriesGo/internal/symbols"
	"github.com/hankli/FinSeriesGo/internal/timeseries"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "finseries",
		Short: "FinSeries - Financial Time-Series Retrieval",
		Long: `FinSeries retrieves historical price data for stocks, market indexes and
cryptocurrencies from financialdata.net. Free-form symbol input is resolved
to a validated trading symbol before fetching.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start interactive mode
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newFetchCmd(cfg))
	rootCmd.AddCommand(newSymbolsCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

// newFetchCmd creates the fetch command
func newFetchCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [SYMBOL]",
		Short: "Fetch price history for a symbol",
		Long: `Fetch historical price data for a ticker symbol or company name.
Example: finseries fetch MSFT --start=2024-01-01 --end=2024-03-01 --unit=daily`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, _ := cmd.Flags().GetString("unit")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			format, _ := cmd.Flags().GetString("format")

			return runFetchCommand(cfg, timeseries.Request{
				Symbol: args[0],
				Unit:   timeseries.Granularity(unit),
				Start:  start,
				End:    end,
				Format: timeseries.Format(format),
			})
		},
	}

	cmd.Flags().String("unit", "daily", "Bar granularity: daily or minute")
	cmd.Flags().String("start", "", "Range start, YYYY-MM-DD or ISO timestamp")
	cmd.Flags().String("end", "", "Range end, YYYY-MM-DD or ISO timestamp")
	cmd.Flags().String("format", "json", "Output format: json or csv")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

// newSymbolsCmd creates the symbols command group
func newSymbolsCmd(cfg *config.Config) *cobra.Command {
	symbolsCmd := &cobra.Command{
		Use:   "symbols",
		Short: "Symbol catalog management",
		Long:  "Inspect and refresh the local trading-symbol catalog",
	}

	symbolsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the loaded symbol catalog",
		Run: func(cmd *cobra.Command, args []string) {
			dir := symbols.LoadDirectory(cfg.SymbolsPath)
			showSymbols(dir)
		},
	})

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the catalog from upstream",
		Long:  "Download the stock and index symbol listings and write them to a local dataset file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			return runSymbolsSync(cfg, out)
		},
	}
	syncCmd.Flags().String("out", "stock_symbols.json", "Destination file for the synced catalog")
	symbolsCmd.AddCommand(syncCmd)

	return symbolsCmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("FinSeries v1.0.0")
			fmt.Println("Financial Time-Series Retrieval")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Inspect FinSeries configuration settings",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	return configCmd
}

// runFetchCommand executes the retrieval pipeline for one request
func runFetchCommand(cfg *config.Config, req timeseries.Request) error {
	ctx := context.Background()

	svc := timeseries.NewService(cfg, newExtractor(ctx, cfg))
	result, err := svc.Retrieve(ctx, req)
	if err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("✗ %v", err)))
		return err
	}

	RenderResult(result)
	return nil
}

// runSymbolsSync downloads the upstream symbol catalogs and persists them
func runSymbolsSync(cfg *config.Config, out string) error {
	if cfg.FinancialDataKey == "" {
		return timeseries.ErrMissingKey
	}
	ctx := context.Background()
	client := finsource.NewClient(cfg)

	fmt.Println("Downloading stock symbol catalog...")
	stocks, err := client.ListStockSymbols(ctx)
	if err != nil {
		return fmt.Errorf("sync stock symbols: %w", err)
	}

	fmt.Println("Downloading index symbol catalog...")
	indexes, err := client.ListIndexSymbols(ctx)
	if err != nil {
		return fmt.Errorf("sync index symbols: %w", err)
	}

	dir := symbols.NewDirectory(append(stocks, indexes...))
	if err := dir.WriteFile(out); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Wrote %d symbols to %s", dir.Size(), out)))
	return nil
}

// newExtractor builds the model-assisted symbol extractor, or nil when no
// LLM credential is configured. Resolution still works through the direct
// and company-name stages.
func newExtractor(ctx context.Context, cfg *config.Config) symbols.Extractor {
	ex, err := symbols.NewModelExtractor(ctx, cfg)
	if err != nil {
		log.Printf("model extractor unavailable: %v", err)
		return nil
	}
	return ex
}

// showConfig displays the current configuration
func showConfig(cfg *config.Config) {
	fmt.Println("Current FinSeries Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Data Base URL:        %s\n", cfg.FinDataBaseURL)
	fmt.Printf("Symbols Path:         %s\n", displayDefault(cfg.SymbolsPath, "(bundled)"))
	fmt.Printf("HTTP Timeout:         %ds\n", cfg.HTTPTimeoutSeconds)
	fmt.Printf("Max Day Fetchers:     %d\n", cfg.MaxDayFetchers)
	fmt.Println()
	fmt.Printf("LLM Provider:         %s\n", cfg.LLMProvider)
	fmt.Printf("LLM Model:            %s\n", cfg.LLMModel)
	fmt.Printf("LLM Base URL:         %s\n", cfg.LLMBaseURL)
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Println()

	fmt.Println("API Configuration:")
	fmt.Println("─────────────────────")
	if cfg.FinancialDataKey != "" {
		fmt.Println("financialdata.net:    ✅ Configured")
	} else {
		fmt.Println("financialdata.net:    ❌ Not configured (set FINANCIAL_DATA_KEY)")
	}
	if cfg.LLMAPIKey != "" {
		fmt.Println("LLM API:              ✅ Configured")
	} else {
		fmt.Println("LLM API:              ❌ Not configured (symbol extraction disabled)")
	}
}

func displayDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

// runInteractiveMode walks the user through one retrieval at a time
func runInteractiveMode(cfg *config.Config) error {
	DisplayWelcomeBanner()

	for {
		req, err := PromptForRequest()
		if err != nil {
			return err
		}

		if err := runFetchCommand(cfg, req); err != nil {
			fmt.Println()
		}

		again, err := PromptForAnotherQuery()
		if err != nil || !again {
			fmt.Println("Goodbye!")
			return err
		}
		fmt.Println()
	}
}
