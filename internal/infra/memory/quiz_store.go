package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"quizroom-service/internal/domain"
)

// QuizStore is an in-memory implementation of app.QuizStore. Every read
// returns an independent copy and every write stores one, so callers can
// mutate their handles freely.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
}

func NewQuizStore() *QuizStore {
	return &QuizStore{quizzes: make(map[string]domain.Quiz)}
}

// NewSeededQuizStore pre-loads the store, keeping any ids already set.
// Useful for demos and tests.
func NewSeededQuizStore(quizzes ...domain.Quiz) *QuizStore {
	store := NewQuizStore()
	for _, quiz := range quizzes {
		_, _ = store.SaveQuiz(context.Background(), quiz)
	}
	return store
}

func (s *QuizStore) SaveQuiz(_ context.Context, quiz domain.Quiz) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	s.quizzes[quiz.ID] = quiz.Clone()
	return quiz.ID, nil
}

func (s *QuizStore) GetQuiz(_ context.Context, id string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return domain.Quiz{}, domain.NotFound("quiz not found")
	}
	return quiz.Clone(), nil
}

func (s *QuizStore) GetAllQuizzes(_ context.Context) ([]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]domain.Quiz, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		all = append(all, quiz.Clone())
	}
	return all, nil
}

func (s *QuizStore) DeleteQuiz(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quizzes, id)
	return nil
}
