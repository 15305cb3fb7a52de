package game

import "github.com/gokatarajesh/trivia-arena/internal/question"

// QuestionView is the client-facing shape of a question. The answer and the
// explanation stay server-side until the question has been graded.
type QuestionView struct {
	ID          int                 `json:"id"`
	Difficulty  question.Difficulty `json:"difficulty"`
	Category    string              `json:"category"`
	Subcategory string              `json:"subcategory,omitempty"`
	Type        string              `json:"type,omitempty"`
	Prompt      string              `json:"prompt"`
	Options     []string            `json:"options"`
	Points      int                 `json:"points"`
}

// View carries everything a presentation needs to render one player's
// screen. Presentations consume View and nothing else from the game state.
type View struct {
	Phase    Phase                       `json:"phase"`
	Score    int                         `json:"score"`
	Counts   map[question.Difficulty]int `json:"available"`
	Question *QuestionView               `json:"question,omitempty"`
	Feedback *Feedback                   `json:"feedback,omitempty"`
	Finished bool                        `json:"finished"`
	Summary  *Summary                    `json:"summary,omitempty"`
}

// BuildView projects a state into its render data. The question appears on
// the answering and feedback screens, feedback only after grading, the
// summary only at game over.
func BuildView(s State) View {
	view := View{
		Phase:    s.Phase,
		Score:    s.Score,
		Counts:   AvailableCounts(s.Session, s.Used),
		Finished: s.Finished(),
	}
	if s.Current != nil && (s.Phase == PhaseAnswering || s.Phase == PhaseAnswered) {
		view.Question = &QuestionView{
			ID:          s.Current.ID,
			Difficulty:  s.Current.Difficulty,
			Category:    s.Current.Category,
			Subcategory: s.Current.Subcategory,
			Type:        s.Current.Type,
			Prompt:      s.Current.Prompt,
			Options:     s.Current.Options,
			Points:      s.Current.Points,
		}
	}
	if s.Phase == PhaseAnswered {
		view.Feedback = s.Feedback
	}
	if s.Phase == PhaseGameOver {
		summary := Summarize(s)
		view.Summary = &summary
	}
	return view
}
