package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
)

// QuizCache is a read-through cache over another app.QuizStore (typically
// the Postgres one). Individual quizzes are cached as JSON under
// quiz:{id}; writes and deletes pass through and invalidate the entry.
// Listing is not cached since it is an authoring-time operation.
type QuizCache struct {
	client *redis.Client
	next   app.QuizStore
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizCache(client *redis.Client, next app.QuizStore, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		next:   next,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) GetQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	key := c.key(id)

	if quiz, ok := c.cached(ctx, key); ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(id, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if quiz, ok := c.cached(ctx, key); ok {
			return quiz, nil
		}

		quiz, err := c.next.GetQuiz(ctx, id)
		if err != nil {
			return domain.Quiz{}, err
		}

		if data, err := json.Marshal(quiz); err == nil {
			// best-effort cache fill
			_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		}
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *QuizCache) SaveQuiz(ctx context.Context, quiz domain.Quiz) (string, error) {
	id, err := c.next.SaveQuiz(ctx, quiz)
	if err != nil {
		return "", err
	}
	_ = c.client.Del(ctx, c.key(id)).Err()
	return id, nil
}

func (c *QuizCache) GetAllQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	return c.next.GetAllQuizzes(ctx)
}

func (c *QuizCache) DeleteQuiz(ctx context.Context, id string) error {
	if err := c.next.DeleteQuiz(ctx, id); err != nil {
		return err
	}
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *QuizCache) cached(ctx context.Context, key string) (domain.Quiz, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

func (c *QuizCache) key(id string) string {
	return "quiz:" + id
}

// ttlWithJitter adds up to 10% jitter to spread expirations.
func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
