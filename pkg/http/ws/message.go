package ws

import "encoding/json"

// MessageType constants for the WebSocket protocol.
const (
	// Client -> Server
	TypeStartGame        = "start_game"
	TypeSelectDifficulty = "select_difficulty"
	TypeSubmitAnswer     = "submit_answer"
	TypeContinueGame     = "continue_game"
	TypeEndGame          = "end_game"

	// Server -> Client
	TypeGameState  = "game_state"
	TypeBestScores = "best_scores"
	TypeError      = "error"
	TypePing       = "ping"
	TypePong       = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	RequestID string          `json:"request_id,omitempty"`
}

// Client Messages (incoming)

// start_game, continue_game and end_game carry no payload.

type SelectDifficultyPayload struct {
	Difficulty string `json:"difficulty"`
}

type SubmitAnswerPayload struct {
	Answer string `json:"answer"`
}

// Server Messages (outgoing)

// GameStatePayload mirrors the game view: one message after every applied
// event renders the whole screen.
type GameStatePayload struct {
	Phase     string           `json:"phase"`
	Score     int              `json:"score"`
	Available map[string]int   `json:"available"`
	Question  *QuestionPayload `json:"question,omitempty"`
	Feedback  *FeedbackPayload `json:"feedback,omitempty"`
	Finished  bool             `json:"finished"`
	Summary   *SummaryPayload  `json:"summary,omitempty"`
}

// QuestionPayload never carries the correct answer or the explanation; those
// arrive in FeedbackPayload after grading.
type QuestionPayload struct {
	ID          int      `json:"id"`
	Difficulty  string   `json:"difficulty"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Type        string   `json:"type,omitempty"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Points      int      `json:"points"`
}

type FeedbackPayload struct {
	Correct     bool   `json:"correct"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

type SummaryPayload struct {
	Score    int     `json:"score"`
	Answered int     `json:"answered"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

type BestScoresPayload struct {
	Top []ScoreEntry `json:"top"`
}

type ScoreEntry struct {
	Rank        int     `json:"rank"`
	PlayerID    string  `json:"player_id"`
	DisplayName string  `json:"display_name"`
	Score       int     `json:"score"`
	Accuracy    float64 `json:"accuracy"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
