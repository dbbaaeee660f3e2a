package symbols

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/hankli/FinSeriesGo/config"
)

// Extractor turns free-form user text into a candidate trading symbol.
// Implementations return "" (with nil error) when no symbol can be
// determined.
type Extractor interface {
	Extract(ctx context.Context, query string) (string, error)
}

const extractorSystemPrompt = "You are a professional stock code recognition assistant. " +
	"Only return the stock code or UNKNOWN, do not return any other content."

const extractorPromptTemplate = `The user query may contain a stock code or a company name.

User query: %q

Task:
1. If the user input is a standard stock code (e.g., AAPL, MSFT, TSLA), return the code directly
2. If the user input is a company name or description (e.g., "Apple", "Microsoft"), identify the corresponding stock code
3. If it cannot be determined, return "UNKNOWN"

Requirements:
- Only return the stock code itself, no explanation
- The stock code should be all uppercase
- For company names, return the main trading code in the US stock market

Return the stock code directly (e.g., AAPL) or UNKNOWN:`

// ModelExtractor runs symbol extraction through an eino chat model.
type ModelExtractor struct {
	model model.BaseChatModel
}

// NewModelExtractor builds the configured chat model. Provider "deepseek"
// uses the native component; anything else goes through the OpenAI-compatible
// component, which also covers OpenRouter.
func NewModelExtractor(ctx context.Context, cfg *config.Config) (*ModelExtractor, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("no LLM API key configured")
	}

	var (
		chatModel model.BaseChatModel
		err       error
	)
	switch cfg.LLMProvider {
	case "deepseek":
		chatModel, err = deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.LLMAPIKey,
			Model:     cfg.LLMModel,
			MaxTokens: 50,
		})
	default:
		maxTokens := 50
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.LLMBaseURL,
			APIKey:    cfg.LLMAPIKey,
			Model:     cfg.LLMModel,
			MaxTokens: &maxTokens,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("create %s chat model: %w", cfg.LLMProvider, err)
	}

	return &ModelExtractor{model: chatModel}, nil
}

func (e *ModelExtractor) Extract(ctx context.Context, query string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(extractorSystemPrompt),
		schema.UserMessage(fmt.Sprintf(extractorPromptTemplate, query)),
	}

	out, err := e.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("symbol extraction: %w", err)
	}

	symbol := CleanExtractedSymbol(out.Content)
	if symbol == "UNKNOWN" {
		return "", nil
	}
	return symbol, nil
}

// CleanExtractedSymbol normalizes a model response to a bare uppercase
// ticker: whitespace trimmed and stray punctuation removed.
func CleanExtractedSymbol(raw string) string {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	symbol = strings.ReplaceAll(symbol, ",", "")
	symbol = strings.TrimRight(symbol, ".")
	return strings.TrimSpace(symbol)
}
