package leaderboard

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTopN = 10

// Entry is a single row on the best-scores board.
type Entry struct {
	PlayerID    uuid.UUID `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	Correct     int       `json:"correct"`
	Answered    int       `json:"answered"`
	Accuracy    float64   `json:"accuracy"`
}

// RecordRequest carries one finished run to the board.
type RecordRequest struct {
	PlayerID    uuid.UUID
	DisplayName string
	Score       int
	Correct     int
	Answered    int
}

// Service keeps the best finished runs of the current process in memory,
// one entry per player, ordered by score.
type Service struct {
	mu      sync.RWMutex
	entries []Entry
	topN    int
	logger  zerolog.Logger
}

// ServiceOptions configures the best-scores board.
type ServiceOptions struct {
	// TopN caps how many entries the board retains and serves.
	TopN int
}

// NewService constructs the in-memory best-scores board.
func NewService(logger zerolog.Logger, opts ServiceOptions) *Service {
	if opts.TopN <= 0 {
		opts.TopN = defaultTopN
	}
	return &Service{
		topN:   opts.TopN,
		logger: logger.With().Str("component", "leaderboard").Logger(),
	}
}

// Record folds a finished run into the board and returns the player's
// resulting rank, or 0 when the run did not make the cut. Runs that answered
// nothing stay off the board, and a player's existing entry is only replaced
// by a better score.
func (s *Service) Record(req RecordRequest) int {
	if req.PlayerID == uuid.Nil || req.Answered <= 0 {
		return 0
	}

	entry := Entry{
		PlayerID:    req.PlayerID,
		DisplayName: req.DisplayName,
		Score:       req.Score,
		Correct:     req.Correct,
		Answered:    req.Answered,
		Accuracy:    accuracy(req.Correct, req.Answered),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i, existing := range s.entries {
		if existing.PlayerID != req.PlayerID {
			continue
		}
		if existing.Score >= entry.Score {
			return s.rankLocked(req.PlayerID)
		}
		s.entries[i] = entry
		replaced = true
		break
	}
	if !replaced {
		s.entries = append(s.entries, entry)
	}

	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Score > s.entries[j].Score
	})
	if len(s.entries) > s.topN {
		s.entries = s.entries[:s.topN]
	}

	rank := s.rankLocked(req.PlayerID)
	if rank > 0 {
		s.logger.Info().
			Str("player_id", req.PlayerID.String()).
			Int("score", entry.Score).
			Int("rank", rank).
			Msg("best score recorded")
	}
	return rank
}

// Top returns the board's best entries, highest score first. A limit of
// zero or less means everything the board holds.
func (s *Service) Top(limit int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	top := make([]Entry, limit)
	copy(top, s.entries[:limit])
	return top
}

func (s *Service) rankLocked(playerID uuid.UUID) int {
	for i, entry := range s.entries {
		if entry.PlayerID == playerID {
			return i + 1
		}
	}
	return 0
}

func accuracy(correct, answered int) float64 {
	if answered <= 0 {
		return 0
	}
	return float64(correct) / float64(answered)
}
