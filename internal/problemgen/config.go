package problemgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Picker chooses the topic for each generated problem.
	Picker TopicPicker

	// Validators run in order on every parsed problem; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for a problem response.
	MaxTokens int

	// Temperature controls problem randomness (0.0-1.0).
	Temperature float64

	// FeedbackMaxTokens is the token budget for a feedback response.
	FeedbackMaxTokens int

	// FeedbackTemperature controls feedback randomness (0.0-1.0).
	FeedbackTemperature float64
}

// DefaultConfig returns a Config with random topic selection, the
// structural validator, and recommended token budgets.
func DefaultConfig() Config {
	return Config{
		Picker: RandomTopic,
		Validators: []Validator{
			&StructuralValidator{},
		},
		MaxTokens:           1024,
		Temperature:         0.9,
		FeedbackMaxTokens:   512,
		FeedbackTemperature: 0.7,
	}
}
