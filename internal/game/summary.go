package game

// Summary aggregates a finished game for the results screen.
type Summary struct {
	Score    int     `json:"score"`
	Answered int     `json:"answered"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// Summarize folds the answer history into a Summary. Accuracy is 0 when
// nothing was answered.
func Summarize(s State) Summary {
	correct := 0
	for _, rec := range s.Answers {
		if rec.Correct {
			correct++
		}
	}
	sum := Summary{
		Score:    s.Score,
		Answered: len(s.Answers),
		Correct:  correct,
	}
	if sum.Answered > 0 {
		sum.Accuracy = float64(correct) / float64(sum.Answered)
	}
	return sum
}
