package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/hankli/FinSeriesGo/internal/models"
	"github.com/hankli/FinSeriesGo/internal/timeseries"
)

// NewFinancialSeriesTool exposes the retrieval pipeline to a chat model.
// Pipeline errors come back in the payload instead of failing the tool call,
// so the model can read the message and correct its arguments.
func NewFinancialSeriesTool(svc *timeseries.Service) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_financial_series",
			Desc: "Get historical price data for a stock, index or cryptocurrency over a date range",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"trading_symbol": {
					Type:     "string",
					Desc:     "Ticker symbol or company name, e.g. MSFT, ^GSPC, microsoft",
					Required: true,
				},
				"unit": {
					Type:     "string",
					Desc:     "Bar granularity: daily or minute (default: daily)",
					Required: false,
				},
				"start_date": {
					Type:     "string",
					Desc:     "Range start, YYYY-MM-DD or ISO timestamp",
					Required: true,
				},
				"end_date": {
					Type:     "string",
					Desc:     "Range end, YYYY-MM-DD or ISO timestamp",
					Required: true,
				},
				"format": {
					Type:     "string",
					Desc:     "Payload format: json or csv (default: json)",
					Required: false,
				},
			}),
		},
		func(ctx context.Context, input models.SeriesInput) (*models.SeriesOutput, error) {
			req := timeseries.Request{
				Symbol: input.TradingSymbol,
				Unit:   timeseries.Granularity(defaultString(input.Unit, string(timeseries.GranularityDaily))),
				Start:  input.StartDate,
				End:    input.EndDate,
				Format: timeseries.Format(defaultString(input.Format, string(timeseries.FormatJSON))),
			}

			result, err := svc.Retrieve(ctx, req)
			if err != nil {
				return &models.SeriesOutput{Error: err.Error()}, nil
			}
			if result.Format == timeseries.FormatCSV {
				return &models.SeriesOutput{CSV: result.CSV}, nil
			}
			return &models.SeriesOutput{Data: result.Records}, nil
		},
	)
}

// NewMarketDataTool is the typed variant: daily bars with exact decimal
// prices instead of raw upstream records.
func NewMarketDataTool(svc *timeseries.Service) tool.BaseTool {
	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_market_data",
			Desc: "Get daily OHLCV bars for a symbol and date range",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"trading_symbol": {
					Type:     "string",
					Desc:     "Ticker symbol or company name",
					Required: true,
				},
				"start_date": {
					Type:     "string",
					Desc:     "Range start, YYYY-MM-DD",
					Required: true,
				},
				"end_date": {
					Type:     "string",
					Desc:     "Range end, YYYY-MM-DD",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, input models.MarketDataInput) (*models.MarketDataOutput, error) {
			result, err := svc.Retrieve(ctx, timeseries.Request{
				Symbol: input.TradingSymbol,
				Unit:   timeseries.GranularityDaily,
				Start:  input.StartDate,
				End:    input.EndDate,
				Format: timeseries.FormatJSON,
			})
			if err != nil {
				return &models.MarketDataOutput{Error: err.Error()}, nil
			}
			return &models.MarketDataOutput{
				Data: models.MarketDataFromRecords(result.Symbol, result.Records),
			}, nil
		},
	)
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
