package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hankli/FinSeriesGo/internal/models"
	"github.com/hankli/FinSeriesGo/internal/symbols"
	"github.com/hankli/FinSeriesGo/internal/timeseries"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	banner := `
███████╗██╗███╗   ██╗███████╗███████╗██████╗ ██╗███████╗███████╗
██╔════╝██║████╗  ██║██╔════╝██╔════╝██╔══██╗██║██╔════╝██╔════╝
█████╗  ██║██╔██╗ ██║███████╗█████╗  ██████╔╝██║█████╗  ███████╗
██╔══╝  ██║██║╚██╗██║╚════██║██╔══╝  ██╔══██╗██║██╔══╝  ╚════██║
██║     ██║██║ ╚████║███████║███████╗██║  ██║██║███████╗███████║
╚═╝     ╚═╝╚═╝  ╚═══╝╚══════╝╚══════╝╚═╝  ╚═╝╚═╝╚══════╝╚══════╝
`
	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Bold(true)

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		MarginBottom(1)

	fmt.Print(welcomeStyle.Render(banner))
	fmt.Println()
	fmt.Println(taglineStyle.Render("Historical price data for stocks, indexes and crypto"))
}

// RenderResult prints a shaped retrieval result
func RenderResult(result *timeseries.Result) {
	if result.Format == timeseries.FormatCSV {
		fmt.Println(titleStyle.Render(fmt.Sprintf("%s (csv)", result.Symbol)))
		if result.CSV == "" {
			fmt.Println(summaryStyle.Render("no data in range"))
			return
		}
		fmt.Println(result.CSV)
		return
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s (json)", result.Symbol)))
	if len(result.Records) == 0 {
		fmt.Println(summaryStyle.Render("no data in range"))
		return
	}

	// Records that form complete bars render as a table; anything else falls
	// back to the raw payload.
	bars := models.MarketDataFromRecords(result.Symbol, result.Records)
	if len(bars) == len(result.Records) {
		renderBars(bars)
		fmt.Println(summaryStyle.Render(fmt.Sprintf("%d records", len(result.Records))))
		return
	}

	payload, err := json.MarshalIndent(result.Records, "", "  ")
	if err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("✗ render records: %v", err)))
		return
	}
	fmt.Println(string(payload))
	fmt.Println(summaryStyle.Render(fmt.Sprintf("%d records", len(result.Records))))
}

func renderBars(bars []*models.MarketData) {
	fmt.Printf("%-22s %12s %12s %12s %12s %12s\n", "DATE", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME")
	for _, b := range bars {
		fmt.Printf("%-22s %12s %12s %12s %12s %12d\n",
			b.Date, b.Open, b.High, b.Low, b.Close, b.Volume)
	}
}

// showSymbols prints the loaded catalog
func showSymbols(dir *symbols.Directory) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Symbol catalog (%d entries)", dir.Size())))
	if dir.Size() == 0 {
		fmt.Println(summaryStyle.Render("catalog empty, symbol validation disabled"))
		return
	}
	for _, e := range dir.Entries() {
		fmt.Printf("%-10s %s\n", e.TradingSymbol, e.RegistrantName)
	}
}
