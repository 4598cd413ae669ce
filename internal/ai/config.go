package ai

// Config holds generation settings for plans and quizzes.
type Config struct {
	// MaxPriorityTopics caps how many incomplete topics are named in the
	// plan prompt. The rest are summarized as "and others".
	MaxPriorityTopics int

	// QuizLength is the number of questions requested per quiz.
	QuizLength int

	// OptionsPerQuestion is the number of answer options requested (A-E).
	OptionsPerQuestion int

	PlanMaxTokens      int
	PlanThinkingBudget int
	QuizMaxTokens      int
	Temperature        float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxPriorityTopics:  20,
		QuizLength:         5,
		OptionsPerQuestion: 5,
		PlanMaxTokens:      16384,
		PlanThinkingBudget: 1024,
		QuizMaxTokens:      8192,
		Temperature:        0.7,
	}
}
