package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizroom-service/internal/app"
	"quizroom-service/internal/config"
	"quizroom-service/internal/domain"
	"quizroom-service/internal/infra/memory"
	pgstore "quizroom-service/internal/infra/postgres"
	redisstore "quizroom-service/internal/infra/redis"
	transport "quizroom-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz room server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8001"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var quizzes app.QuizStore = memory.NewSeededQuizStore(sampleQuizzes()...)
	if pool != nil {
		quizzes = pgstore.NewQuizStore(pool)
	}
	if redisClient != nil {
		quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
		quizzes = redisstore.NewQuizCache(redisClient, quizzes, quizTTL)
	}

	var rooms app.RoomStore = memory.NewRoomStore()
	if redisClient != nil {
		roomTTL := config.TTLDuration(cfg.Redis.TTL, 24*time.Hour)
		rooms = redisstore.NewRoomStore(redisClient, roomTTL)
	}

	quizService := app.NewQuizService(quizzes)
	roomService := app.NewRoomService(rooms, quizzes)
	handler := transport.NewHandler(quizService, roomService)
	wsHandler := transport.NewWSHandler(roomService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /ws", wsHandler.ServeWS)
	handler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizroom service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes seeds the in-memory store so the service is playable with
// no Postgres configured.
func sampleQuizzes() []domain.Quiz {
	return []domain.Quiz{
		{
			ID:   "demo-quiz-1",
			Name: "General Knowledge",
			Questions: []domain.QuizQuestion{
				{
					Question:      "What is the capital of Australia?",
					CorrectAnswer: "Canberra",
					WrongAnswer1:  "Sydney",
					WrongAnswer2:  "Melbourne",
					WrongAnswer3:  "Perth",
				},
				{
					Question:      "How many legs does a spider have?",
					CorrectAnswer: "8",
					WrongAnswer1:  "6",
					WrongAnswer2:  "10",
					WrongAnswer3:  "12",
				},
			},
		},
		{
			ID:   "demo-quiz-2",
			Name: "Numbers",
			Questions: []domain.QuizQuestion{
				{
					Question:      "What is 7 x 8?",
					CorrectAnswer: "56",
					WrongAnswer1:  "54",
					WrongAnswer2:  "64",
					WrongAnswer3:  "48",
				},
			},
		},
	}
}
