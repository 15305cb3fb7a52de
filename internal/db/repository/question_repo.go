package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gokatarajesh/trivia-arena/internal/question"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// QuestionFilter narrows what List returns. Zero values mean no filtering.
type QuestionFilter struct {
	Difficulty question.Difficulty
	Category   string
	Limit      uint64
}

// QuestionRepository reads curated questions from Postgres.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

var _ question.CuratedSource = (*QuestionRepository)(nil)

// NewQuestionRepository constructs a curated question repository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListQuestions returns every active curated question, in id order.
func (r *QuestionRepository) ListQuestions(ctx context.Context) ([]question.Question, error) {
	return r.List(ctx, QuestionFilter{})
}

// List returns active curated questions matching the filter.
func (r *QuestionRepository) List(ctx context.Context, filter QuestionFilter) ([]question.Question, error) {
	sql, args, err := buildQuestionsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build questions query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(
			&q.ID,
			&q.Difficulty,
			&q.Category,
			&q.Subcategory,
			&q.Type,
			&q.Prompt,
			&q.Options,
			&q.Answer,
			&q.Explanation,
			&q.Points,
		); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read question rows: %w", err)
	}
	return questions, nil
}

func buildQuestionsQuery(filter QuestionFilter) (string, []interface{}, error) {
	query := sqlBuilder.
		Select("id", "difficulty", "category", "subcategory", "question_type",
			"prompt", "options", "answer", "explanation", "points").
		From("questions").
		Where(squirrel.Eq{"active": true}).
		OrderBy("id")

	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": string(filter.Difficulty)})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	return query.ToSql()
}
