package usage

import "github.com/shopspring/decimal"

// Model pricing (USD per token) for the hosted models this service routes to.
var ModelPricing = map[string]struct {
	PromptPrice     decimal.Decimal
	CompletionPrice decimal.Decimal
}{
	"llama-3.3-70b-versatile": {decimal.NewFromFloat(0.00000059), decimal.NewFromFloat(0.00000079)},
	"llama-3.1-8b-instant":    {decimal.NewFromFloat(0.00000005), decimal.NewFromFloat(0.00000008)},
	"gemma2-9b-it":            {decimal.NewFromFloat(0.0000002), decimal.NewFromFloat(0.0000002)},
}

// CalculateCost calculates estimated cost for token usage
func CalculateCost(model string, promptTokens, completionTokens int) decimal.Decimal {
	pricing, exists := ModelPricing[model]
	if !exists {
		// Default pricing for unknown models
		pricing = struct {
			PromptPrice     decimal.Decimal
			CompletionPrice decimal.Decimal
		}{
			PromptPrice:     decimal.NewFromFloat(0.0000003),
			CompletionPrice: decimal.NewFromFloat(0.0000006),
		}
	}

	promptCost := pricing.PromptPrice.Mul(decimal.NewFromInt(int64(promptTokens)))
	completionCost := pricing.CompletionPrice.Mul(decimal.NewFromInt(int64(completionTokens)))

	return promptCost.Add(completionCost)
}
