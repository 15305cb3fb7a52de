package question

import "fmt"

// Difficulty is a question tier. Values carry the bank's display labels.
type Difficulty string

// Tiers, easiest first. Bank data is Spanish, so the labels are too.
const (
	DifficultyEasy   Difficulty = "Fácil"
	DifficultyMedium Difficulty = "Medio"
	DifficultyHard   Difficulty = "Difícil"
)

// Difficulties lists every tier in ascending order. Iteration that must be
// deterministic (session building, rendering) goes through this slice.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Type constants.
const (
	TypeMCQ = "mcq"
	// Only MCQ questions are supported
)

// Question is one bank record. Immutable after loading.
type Question struct {
	ID          int        `json:"id"`
	Difficulty  Difficulty `json:"difficulty"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory,omitempty"`
	Type        string     `json:"type,omitempty"`
	Prompt      string     `json:"prompt"`
	Options     []string   `json:"options"`
	Answer      string     `json:"answer"`
	Explanation string     `json:"explanation,omitempty"`
	Points      int        `json:"points"`
}

// ValidDifficulty reports whether d is one of the known tiers.
func ValidDifficulty(d Difficulty) bool {
	for _, tier := range Difficulties {
		if tier == d {
			return true
		}
	}
	return false
}

// Validate checks the record against the bank contract. It returns the first
// problem found; callers drop invalid records rather than abort the load.
func (q Question) Validate() error {
	if q.ID <= 0 {
		return fmt.Errorf("non-positive id %d", q.ID)
	}
	if !ValidDifficulty(q.Difficulty) {
		return fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}
	if q.Prompt == "" {
		return fmt.Errorf("empty prompt")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("need at least 2 options, got %d", len(q.Options))
	}
	if !contains(q.Options, q.Answer) {
		return fmt.Errorf("answer %q not among options", q.Answer)
	}
	if q.Points <= 0 {
		return fmt.Errorf("non-positive points %d", q.Points)
	}
	return nil
}

func contains(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
