package app

import (
	"context"
	"strings"

	"quizroom-service/internal/domain"
)

// QuizStore abstracts quiz persistence for the authoring subsystem.
// SaveQuiz assigns an id when the quiz has none and returns the id under
// which the quiz is stored.
type QuizStore interface {
	QuizReader
	SaveQuiz(ctx context.Context, quiz domain.Quiz) (string, error)
	GetAllQuizzes(ctx context.Context) ([]domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
}

// QuizService covers quiz authoring: create/update with validation, list,
// fetch, delete. Live rooms only ever read quizzes through QuizReader.
type QuizService struct {
	quizzes QuizStore
}

func NewQuizService(quizzes QuizStore) *QuizService {
	return &QuizService{quizzes: quizzes}
}

// SaveQuiz validates and persists a quiz, returning its id. An empty id
// creates a new quiz; a known id updates it in place.
func (s *QuizService) SaveQuiz(ctx context.Context, quiz domain.Quiz) (string, error) {
	quiz.Name = strings.TrimSpace(quiz.Name)
	if quiz.Name == "" {
		return "", domain.Validation("blank quiz name")
	}

	all, err := s.quizzes.GetAllQuizzes(ctx)
	if err != nil {
		return "", err
	}
	for _, other := range all {
		if other.ID != quiz.ID && strings.EqualFold(other.Name, quiz.Name) {
			return "", domain.Validation("duplicate quiz name")
		}
	}

	for _, q := range quiz.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return "", domain.Validation("blank question")
		}
		for _, answer := range []string{q.CorrectAnswer, q.WrongAnswer1, q.WrongAnswer2, q.WrongAnswer3} {
			if strings.TrimSpace(answer) == "" {
				return "", domain.Validation("blank answer")
			}
		}
	}

	return s.quizzes.SaveQuiz(ctx, quiz)
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	return s.quizzes.GetQuiz(ctx, id)
}

// ListQuizzes returns id/name summaries of every stored quiz.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	all, err := s.quizzes.GetAllQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]domain.QuizSummary, 0, len(all))
	for _, quiz := range all {
		list = append(list, domain.QuizSummary{ID: quiz.ID, Name: quiz.Name})
	}
	return list, nil
}

// DeleteQuiz removes a quiz; deleting an unknown id reports not-found.
func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	if _, err := s.quizzes.GetQuiz(ctx, id); err != nil {
		return err
	}
	return s.quizzes.DeleteQuiz(ctx, id)
}
