package problemgen

// GeneratedProblem is the parsed model output before it is stored as a
// session.
type GeneratedProblem struct {
	// ProblemText is the word problem shown to the learner.
	ProblemText string `json:"problem_text"`

	// FinalAnswer is the numeric answer the learner's input is graded against.
	FinalAnswer float64 `json:"final_answer"`

	// Topic is the catalog entry the problem was generated for. It is not
	// part of the model output.
	Topic string `json:"-"`
}

// FeedbackInput holds everything the feedback prompt needs.
type FeedbackInput struct {
	ProblemText   string
	CorrectAnswer float64
	UserAnswer    float64
	IsCorrect     bool
}
