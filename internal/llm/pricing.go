package llm

import "strings"

// Price is USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// Cost returns the USD cost of u at this price.
func (p Price) Cost(u Usage) float64 {
	return (float64(u.Input)*p.Input + float64(u.Output)*p.Output) / 1e6
}

// prices is keyed by model family. A dated or suffixed model ID such as
// "claude-haiku-4-5-20251001" matches its longest listed prefix.
var prices = map[string]Price{
	"claude-3-5-haiku":  {0.8, 4},
	"claude-3-7-sonnet": {3, 15},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-opus-4":     {15, 75},
	"claude-opus-4-5":   {5, 25},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"o4-mini":      {1.1, 4.4},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},

	"offline": {},
}

// PriceFor looks up the price of a model. OpenRouter IDs such as
// "openai/gpt-4o-mini" are matched on the part after the slash.
func PriceFor(model string) (Price, bool) {
	if i := strings.LastIndexByte(model, '/'); i >= 0 {
		model = model[i+1:]
	}
	best := ""
	for family := range prices {
		if strings.HasPrefix(model, family) && len(family) > len(best) {
			best = family
		}
	}
	if best == "" {
		return Price{}, false
	}
	return prices[best], true
}
