// Package quiz drives a single-best-answer practice session, one question at
// a time.
package quiz

// Question is one SBA item. Options are shown as A to E.
type Question struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Domain       string   `json:"domain"`
}

// IsCorrect reports whether option i is the right answer.
func (q Question) IsCorrect(i int) bool {
	return i == q.CorrectIndex
}

// OptionLetter returns "A" for 0, "B" for 1 and so on.
func OptionLetter(i int) string {
	return string(rune('A' + i))
}
