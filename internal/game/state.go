package game

import (
	"github.com/gokatarajesh/trivia-arena/internal/question"
)

// Phase identifies the screen the player is on.
type Phase string

const (
	PhaseStart              Phase = "start"
	PhaseChoosingDifficulty Phase = "choosing_difficulty"
	PhaseAnswering          Phase = "answering"
	PhaseAnswered           Phase = "answered"
	PhaseGameOver           Phase = "game_over"
)

// Feedback describes the outcome of the last graded answer. It lives on the
// feedback screen and is cleared when the next question is drawn.
type Feedback struct {
	Correct     bool   `json:"correct"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// AnswerRecord is one submitted answer, kept for the end-of-game summary.
type AnswerRecord struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
	Correct    bool   `json:"correct"`
	Points     int    `json:"points"`
}

// State is one player's complete game state. Transitions treat it as a
// value: Engine methods take a State and return the next one without
// mutating the input, so Used and Answers are copied on write.
type State struct {
	Phase      Phase
	Score      int
	Session    []question.Question
	Used       map[int]bool
	Current    *question.Question
	LastAnswer string
	Feedback   *Feedback
	Answers    []AnswerRecord
}

// NewState returns the pre-game state shown before the first start.
func NewState() State {
	return State{Phase: PhaseStart, Used: map[int]bool{}}
}

// Finished reports whether every session question has been presented.
func (s State) Finished() bool {
	return len(s.Used) == len(s.Session)
}
