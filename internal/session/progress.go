package session

// CategoryResult tracks per-category performance within a single session.
type CategoryResult struct {
	Category  string
	Attempted int
	Correct   int
}

// Record adds one answer to the result.
func (cr *CategoryResult) Record(correct bool) {
	cr.Attempted++
	if correct {
		cr.Correct++
	}
}

// Accuracy returns Correct/Attempted, or 0 before any answer.
func (cr *CategoryResult) Accuracy() float64 {
	if cr.Attempted == 0 {
		return 0
	}
	return float64(cr.Correct) / float64(cr.Attempted)
}
