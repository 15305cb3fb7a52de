package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-arena/internal/auth"
	"github.com/gokatarajesh/trivia-arena/internal/leaderboard"
	"github.com/gokatarajesh/trivia-arena/internal/question"
	httperrors "github.com/gokatarajesh/trivia-arena/pkg/http/errors"
	ws "github.com/gokatarajesh/trivia-arena/pkg/http/ws"
)

// Handler manages WebSocket connections and routes game events.
type Handler struct {
	engine   *Engine
	registry *Registry
	hub      *ws.Hub
	scores   *leaderboard.Service
	authSvc  *auth.Service
	logger   zerolog.Logger
}

// NewHandler creates a game WebSocket handler.
func NewHandler(engine *Engine, registry *Registry, hub *ws.Hub, scores *leaderboard.Service, authSvc *auth.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		registry: registry,
		hub:      hub,
		scores:   scores,
		authSvc:  authSvc,
		logger:   logger,
	}
}

// HandleConnection processes a new WebSocket connection.
// Token should be validated before calling this (extract playerID from JWT claims).
func (h *Handler) HandleConnection(conn *websocket.Conn, playerID uuid.UUID, displayName string) {
	wsConn := ws.NewConnection(conn, h.logger)
	h.hub.RegisterConnection(playerID, wsConn)

	// Start write pump
	go wsConn.WritePump()

	// First frames render the player's current screen and the board.
	if err := h.sendState(playerID, h.registry.Get(playerID)); err != nil {
		h.logger.Warn().Err(err).Str("player_id", playerID.String()).Msg("initial state send failed")
	}
	h.sendBestScores(playerID)

	// Handle incoming messages
	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(playerID, displayName, msg)
	})

	// Cleanup on disconnect. The game goes with the connection, unless a
	// reconnect already replaced it.
	if h.hub.UnregisterConnection(playerID, wsConn) {
		h.registry.Remove(playerID)
	}
}

// handleMessage routes incoming WebSocket messages.
func (h *Handler) handleMessage(playerID uuid.UUID, displayName string, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeStartGame:
		return h.apply(playerID, displayName, h.engine.StartGame)
	case ws.TypeSelectDifficulty:
		return h.handleSelectDifficulty(playerID, displayName, msg.Payload)
	case ws.TypeSubmitAnswer:
		return h.handleSubmitAnswer(playerID, displayName, msg.Payload)
	case ws.TypeContinueGame:
		return h.apply(playerID, displayName, h.engine.ContinueGame)
	case ws.TypeEndGame:
		return h.apply(playerID, displayName, h.engine.EndGame)
	case ws.TypePing:
		return h.hub.SendToPlayer(playerID, ws.Message{Type: ws.TypePong})
	default:
		return h.sendError(playerID, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

func (h *Handler) handleSelectDifficulty(playerID uuid.UUID, displayName string, payload json.RawMessage) error {
	var req ws.SelectDifficultyPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return h.sendError(playerID, httperrors.ErrCodeInvalidPayload, "Invalid select_difficulty payload")
	}

	return h.apply(playerID, displayName, func(s State) State {
		return h.engine.SelectDifficulty(s, question.Difficulty(req.Difficulty))
	})
}

func (h *Handler) handleSubmitAnswer(playerID uuid.UUID, displayName string, payload json.RawMessage) error {
	var req ws.SubmitAnswerPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return h.sendError(playerID, httperrors.ErrCodeInvalidPayload, "Invalid submit_answer payload")
	}

	return h.apply(playerID, displayName, func(s State) State {
		return h.engine.SubmitAnswer(s, req.Answer)
	})
}

// apply runs one event through the rules, stores the outcome and renders it
// back to the player. Events the rules ignore still re-send the screen.
func (h *Handler) apply(playerID uuid.UUID, displayName string, event func(State) State) error {
	prev := h.registry.Get(playerID)
	next := event(prev)
	h.registry.Put(playerID, next)

	if next.Phase == PhaseGameOver && prev.Phase != PhaseGameOver {
		h.recordFinishedRun(playerID, displayName, next)
	}

	return h.sendState(playerID, next)
}

// recordFinishedRun folds a finished run into the best-scores board and, when
// the board changed, broadcasts the new standings to everyone connected.
func (h *Handler) recordFinishedRun(playerID uuid.UUID, displayName string, s State) {
	summary := Summarize(s)
	rank := h.scores.Record(leaderboard.RecordRequest{
		PlayerID:    playerID,
		DisplayName: displayName,
		Score:       summary.Score,
		Correct:     summary.Correct,
		Answered:    summary.Answered,
	})
	if rank == 0 {
		return
	}

	if err := h.hub.BroadcastAll(bestScoresMessage(h.scores.Top(0))); err != nil {
		h.logger.Warn().Err(err).Msg("best scores broadcast failed")
	}
}

// sendState renders one player's screen: every applied event answers with a
// full game_state frame.
func (h *Handler) sendState(playerID uuid.UUID, s State) error {
	view := BuildView(s)

	payload := ws.GameStatePayload{
		Phase:     string(view.Phase),
		Score:     view.Score,
		Available: tierCounts(view.Counts),
		Finished:  view.Finished,
	}
	if view.Question != nil {
		payload.Question = &ws.QuestionPayload{
			ID:          view.Question.ID,
			Difficulty:  string(view.Question.Difficulty),
			Category:    view.Question.Category,
			Subcategory: view.Question.Subcategory,
			Type:        view.Question.Type,
			Prompt:      view.Question.Prompt,
			Options:     view.Question.Options,
			Points:      view.Question.Points,
		}
	}
	if view.Feedback != nil {
		payload.Feedback = &ws.FeedbackPayload{
			Correct:     view.Feedback.Correct,
			Answer:      view.Feedback.Answer,
			Explanation: view.Feedback.Explanation,
		}
	}
	if view.Summary != nil {
		payload.Summary = &ws.SummaryPayload{
			Score:    view.Summary.Score,
			Answered: view.Summary.Answered,
			Correct:  view.Summary.Correct,
			Accuracy: view.Summary.Accuracy,
		}
	}

	msg := ws.Message{Type: ws.TypeGameState}
	msg.Payload, _ = json.Marshal(payload)
	return h.hub.SendToPlayer(playerID, msg)
}

func (h *Handler) sendBestScores(playerID uuid.UUID) {
	if err := h.hub.SendToPlayer(playerID, bestScoresMessage(h.scores.Top(0))); err != nil {
		h.logger.Warn().Err(err).Str("player_id", playerID.String()).Msg("best scores send failed")
	}
}

func bestScoresMessage(entries []leaderboard.Entry) ws.Message {
	payload := ws.BestScoresPayload{Top: make([]ws.ScoreEntry, len(entries))}
	for i, entry := range entries {
		payload.Top[i] = ws.ScoreEntry{
			Rank:        i + 1,
			PlayerID:    entry.PlayerID.String(),
			DisplayName: entry.DisplayName,
			Score:       entry.Score,
			Accuracy:    entry.Accuracy,
		}
	}

	msg := ws.Message{Type: ws.TypeBestScores}
	msg.Payload, _ = json.Marshal(payload)
	return msg
}

func tierCounts(counts map[question.Difficulty]int) map[string]int {
	out := make(map[string]int, len(counts))
	for tier, n := range counts {
		out[string(tier)] = n
	}
	return out
}

func (h *Handler) sendError(playerID uuid.UUID, code, message string) error {
	errPayload := ws.ErrorPayload{
		Code:    code,
		Message: message,
	}
	msg := ws.Message{Type: ws.TypeError}
	msg.Payload, _ = json.Marshal(errPayload)
	return h.hub.SendToPlayer(playerID, msg)
}
