package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/hankli/FinSeriesGo/internal/timeseries"
)

// PromptForRequest collects one retrieval request interactively
func PromptForRequest() (timeseries.Request, error) {
	symbol, err := promptForSymbol()
	if err != nil {
		return timeseries.Request{}, err
	}

	unit, err := promptForUnit()
	if err != nil {
		return timeseries.Request{}, err
	}

	start, err := promptForDate("Enter the range start (YYYY-MM-DD):")
	if err != nil {
		return timeseries.Request{}, err
	}

	end, err := promptForDate("Enter the range end (YYYY-MM-DD):")
	if err != nil {
		return timeseries.Request{}, err
	}

	format, err := promptForFormat()
	if err != nil {
		return timeseries.Request{}, err
	}

	return timeseries.Request{
		Symbol: symbol,
		Unit:   unit,
		Start:  start,
		End:    end,
		Format: format,
	}, nil
}

func promptForSymbol() (string, error) {
	var symbol string
	prompt := &survey.Input{
		Message: "Enter a ticker symbol or company name (e.g., MSFT, ^GSPC, apple):",
		Help:    "Free-form input is resolved to a validated trading symbol before fetching",
	}

	err := survey.AskOne(prompt, &symbol, survey.WithValidator(func(val interface{}) error {
		if strings.TrimSpace(val.(string)) == "" {
			return fmt.Errorf("symbol cannot be empty")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(symbol), nil
}

func promptForUnit() (timeseries.Granularity, error) {
	var selected string
	prompt := &survey.Select{
		Message: "Select bar granularity:",
		Options: []string{
			"daily - one bar per trading day",
			"minute - one bar per minute (stocks and crypto only)",
		},
		Default: "daily - one bar per trading day",
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	if strings.HasPrefix(selected, "minute") {
		return timeseries.GranularityMinute, nil
	}
	return timeseries.GranularityDaily, nil
}

func promptForDate(message string) (string, error) {
	var date string
	prompt := &survey.Input{
		Message: message,
		Help:    "Format: YYYY-MM-DD, or a full ISO timestamp for minute data",
	}

	err := survey.AskOne(prompt, &date, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if len(str) < 10 || str[4] != '-' || str[7] != '-' {
			return fmt.Errorf("use YYYY-MM-DD or an ISO timestamp")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(date), nil
}

func promptForFormat() (timeseries.Format, error) {
	var selected string
	prompt := &survey.Select{
		Message: "Select output format:",
		Options: []string{string(timeseries.FormatJSON), string(timeseries.FormatCSV)},
		Default: string(timeseries.FormatJSON),
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return timeseries.Format(selected), nil
}

// PromptForAnotherQuery asks whether to run another retrieval
func PromptForAnotherQuery() (bool, error) {
	var again bool
	prompt := &survey.Confirm{
		Message: "Run another query?",
		Default: true,
	}

	err := survey.AskOne(prompt, &again)
	return again, err
}
