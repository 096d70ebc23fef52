package redis

import (
	"context"
	"testing"
	"time"

	"quizroom-service/internal/domain"
	"quizroom-service/internal/infra/memory"
)

func TestQuizCacheServesFromRedis(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	next := &countingStore{QuizStore: memory.NewSeededQuizStore(sampleQuiz())}
	cache := NewQuizCache(client, next, time.Minute)

	quiz, err := cache.GetQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if quiz.Name != "Fake Quiz" {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}
	if next.gets != 1 {
		t.Fatalf("expected one backing read, got %d", next.gets)
	}
	if !mr.Exists("quiz:quiz-1") {
		t.Fatalf("expected cache entry quiz:quiz-1")
	}

	if _, err := cache.GetQuiz(ctx, "quiz-1"); err != nil {
		t.Fatalf("cached get: %v", err)
	}
	if next.gets != 1 {
		t.Fatalf("expected cache hit, backing reads=%d", next.gets)
	}
}

func TestQuizCacheInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	next := &countingStore{QuizStore: memory.NewSeededQuizStore(sampleQuiz())}
	cache := NewQuizCache(client, next, time.Minute)

	if _, err := cache.GetQuiz(ctx, "quiz-1"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	updated := sampleQuiz()
	updated.Name = "Renamed Quiz"
	if _, err := cache.SaveQuiz(ctx, updated); err != nil {
		t.Fatalf("save: %v", err)
	}
	if mr.Exists("quiz:quiz-1") {
		t.Fatalf("expected cache entry invalidated on save")
	}

	quiz, err := cache.GetQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if quiz.Name != "Renamed Quiz" {
		t.Fatalf("expected fresh quiz after invalidation, got %q", quiz.Name)
	}
}

func TestQuizCacheDeletePassesThrough(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	next := &countingStore{QuizStore: memory.NewSeededQuizStore(sampleQuiz())}
	cache := NewQuizCache(client, next, time.Minute)

	if _, err := cache.GetQuiz(ctx, "quiz-1"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if err := cache.DeleteQuiz(ctx, "quiz-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("quiz:quiz-1") {
		t.Fatalf("expected cache entry removed on delete")
	}
	if _, err := cache.GetQuiz(ctx, "quiz-1"); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not-found after delete, got %v", err)
	}
}

type countingStore struct {
	*memory.QuizStore
	gets int
}

func (s *countingStore) GetQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	s.gets++
	return s.QuizStore.GetQuiz(ctx, id)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:   "quiz-1",
		Name: "Fake Quiz",
		Questions: []domain.QuizQuestion{
			{
				Question:      "Fake Q1",
				CorrectAnswer: "100",
				WrongAnswer1:  "200",
				WrongAnswer2:  "300",
				WrongAnswer3:  "400",
			},
		},
	}
}
