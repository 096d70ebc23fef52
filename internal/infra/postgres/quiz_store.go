package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizroom-service/internal/domain"
)

// QuizStore persists quizzes as JSONB rows in Postgres. It is the durable
// backing for the authoring subsystem; pair it with the Redis quiz cache to
// keep room hosting off the database.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

func (s *QuizStore) SaveQuiz(ctx context.Context, quiz domain.Quiz) (string, error) {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return "", fmt.Errorf("marshal quiz: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO quizzes (id, name, data) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, data=EXCLUDED.data`,
		quiz.ID, quiz.Name, data)
	if err != nil {
		return "", fmt.Errorf("save quiz: %w", err)
	}
	return quiz.ID, nil
}

func (s *QuizStore) GetQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.NotFound("quiz not found")
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}

func (s *QuizStore) GetAllQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM quizzes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var all []domain.Quiz
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		var quiz domain.Quiz
		if err := json.Unmarshal(raw, &quiz); err != nil {
			return nil, fmt.Errorf("unmarshal quiz: %w", err)
		}
		all = append(all, quiz)
	}
	return all, rows.Err()
}

func (s *QuizStore) DeleteQuiz(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	return err
}
