package question

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// BankLoadError reports that no configured source produced a usable bank.
// Callers log it and continue with an empty bank; it never aborts startup.
type BankLoadError struct {
	Err error
}

func (e *BankLoadError) Error() string {
	if e.Err == nil {
		return "question bank load failed: no source produced questions"
	}
	return "question bank load failed: " + e.Err.Error()
}

func (e *BankLoadError) Unwrap() error { return e.Err }

// BankCache caches the validated bank between restarts (implemented by the
// Redis-backed Cache).
type BankCache interface {
	Get(ctx context.Context) ([]Question, error)
	Set(ctx context.Context, bank []Question) error
}

// CuratedSource serves bank records from the curated Postgres table.
type CuratedSource interface {
	ListQuestions(ctx context.Context) ([]Question, error)
}

// RemoteSource fetches the bank document from a remote endpoint.
type RemoteSource interface {
	FetchBank(ctx context.Context) ([]Question, error)
}

// Store assembles the question bank, respecting the priority: curated DB ->
// remote endpoint -> local file. The first source yielding valid records
// wins. Any collaborator may be nil; its slot is skipped.
type Store struct {
	curated CuratedSource
	remote  RemoteSource
	local   *FileSource
	cache   BankCache
	logger  zerolog.Logger
}

func NewStore(curated CuratedSource, remote RemoteSource, local *FileSource, cache BankCache, logger zerolog.Logger) *Store {
	return &Store{
		curated: curated,
		remote:  remote,
		local:   local,
		cache:   cache,
		logger:  logger,
	}
}

// LoadBank assembles, validates and deduplicates the question bank. It runs
// once at startup. Source failures fall through to the next source; when
// nothing yields a usable bank the error is a *BankLoadError so the caller
// can degrade to an empty bank instead of crashing.
func (s *Store) LoadBank(ctx context.Context) ([]Question, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && len(cached) > 0 {
			s.logger.Info().Int("questions", len(cached)).Msg("question bank served from cache")
			return cached, nil
		}
	}

	var attempts []error
	for _, src := range s.sources() {
		raw, err := src.load(ctx)
		if err != nil {
			s.logger.Warn().Str("source", src.name).Err(err).Msg("bank source failed")
			attempts = append(attempts, fmt.Errorf("%s: %w", src.name, err))
			continue
		}
		bank, dropped := normalizeBank(raw, s.logger)
		if len(bank) == 0 {
			if len(raw) > 0 {
				attempts = append(attempts, fmt.Errorf("%s: all %d records invalid", src.name, len(raw)))
			}
			continue
		}
		s.logger.Info().
			Str("source", src.name).
			Int("questions", len(bank)).
			Int("dropped", dropped).
			Msg("question bank loaded")
		if s.cache != nil {
			// Cache write failures must not fail the load.
			_ = s.cache.Set(ctx, bank)
		}
		return bank, nil
	}

	return nil, &BankLoadError{Err: errors.Join(attempts...)}
}

type bankSource struct {
	name string
	load func(ctx context.Context) ([]Question, error)
}

func (s *Store) sources() []bankSource {
	var srcs []bankSource
	if s.curated != nil {
		srcs = append(srcs, bankSource{name: "curated", load: s.curated.ListQuestions})
	}
	if s.remote != nil {
		srcs = append(srcs, bankSource{name: "remote", load: s.remote.FetchBank})
	}
	if s.local != nil {
		srcs = append(srcs, bankSource{name: "file", load: s.local.Load})
	}
	return srcs
}

// normalizeBank applies the bank contract record by record: missing types
// default to MCQ, invalid records are dropped, duplicate IDs keep the first
// record. Order is preserved.
func normalizeBank(raw []Question, logger zerolog.Logger) ([]Question, int) {
	seen := make(map[int]bool, len(raw))
	bank := make([]Question, 0, len(raw))
	dropped := 0
	for _, q := range raw {
		if q.Type == "" {
			q.Type = TypeMCQ
		}
		if err := q.Validate(); err != nil {
			logger.Warn().Int("id", q.ID).Err(err).Msg("dropping invalid question")
			dropped++
			continue
		}
		if seen[q.ID] {
			logger.Warn().Int("id", q.ID).Msg("dropping duplicate question")
			dropped++
			continue
		}
		seen[q.ID] = true
		bank = append(bank, q)
	}
	return bank, dropped
}
