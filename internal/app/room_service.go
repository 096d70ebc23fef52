package app

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"quizroom-service/internal/domain"
)

// RoomStore abstracts how live rooms are stored (in-memory, Redis, etc).
// Implementations must hand back independent copies: callers mutate the
// returned room freely and persist it wholesale with SaveRoom.
type RoomStore interface {
	GetRoom(ctx context.Context, roomCode string) (domain.Room, bool, error)
	SaveRoom(ctx context.Context, room domain.Room) error
	DeleteRoom(ctx context.Context, roomCode string) error
}

// QuizReader is the read side of quiz storage the room engine consumes.
type QuizReader interface {
	GetQuiz(ctx context.Context, id string) (domain.Quiz, error)
}

// CodeGenerator produces candidate room codes. Candidates may collide with
// live rooms; the engine retries until it finds a free one.
type CodeGenerator func() string

const pointsPerCorrectAnswer = 10

// RoomService runs live quiz rooms: hosting, joining, answer submission,
// phase transitions, and per-role state projection. Every operation reads
// the full room from the store, mutates its copy, and writes it back;
// serializing operations on a single room code is the caller's (or the
// store's) concern.
type RoomService struct {
	rooms   RoomStore
	quizzes QuizReader
	genCode CodeGenerator
	rnd     *rand.Rand
}

func NewRoomService(rooms RoomStore, quizzes QuizReader) *RoomService {
	return NewRoomServiceWithCodeGenerator(rooms, quizzes, nil)
}

// NewRoomServiceWithCodeGenerator overrides room code generation (tests,
// custom code spaces). A nil gen falls back to random 4-digit codes.
func NewRoomServiceWithCodeGenerator(rooms RoomStore, quizzes QuizReader, gen CodeGenerator) *RoomService {
	s := &RoomService{
		rooms:   rooms,
		quizzes: quizzes,
		genCode: gen,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if s.genCode == nil {
		s.genCode = s.randomRoomCode
	}
	return s
}

func (s *RoomService) randomRoomCode() string {
	return strconv.Itoa(s.rnd.Intn(9000) + 1000)
}

// HostQuiz starts a live room for the quiz and returns its room code.
// Code allocation retries until the generator yields a code no live room
// holds. The loop has no attempt cap: fine for the default 4-digit space
// with few concurrent rooms, but a custom generator with a narrow (or
// constant) code space can keep it spinning.
func (s *RoomService) HostQuiz(ctx context.Context, quizID string) (string, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return "", err
	}

	questions := make([]domain.RoomQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers := s.shuffleAnswers([]domain.RoomAnswer{
			{Text: q.CorrectAnswer, Correct: true},
			{Text: q.WrongAnswer1},
			{Text: q.WrongAnswer2},
			{Text: q.WrongAnswer3},
		})
		for i := range answers {
			answers[i].Letter = answerLetters[i]
		}
		questions = append(questions, domain.RoomQuestion{Question: q.Question, Answers: answers})
	}

	var roomCode string
	for {
		roomCode = s.genCode()
		_, taken, err := s.rooms.GetRoom(ctx, roomCode)
		if err != nil {
			return "", err
		}
		if !taken {
			break
		}
	}

	room := domain.Room{
		RoomCode:  roomCode,
		Name:      quiz.Name,
		Questions: questions,
		Players:   []domain.Player{},
		Status:    domain.StatusAwaitingPlayers,
	}
	if err := s.rooms.SaveRoom(ctx, room); err != nil {
		return "", err
	}
	return roomCode, nil
}

// Join adds a player to a room still awaiting players. Names are stored
// trimmed and must be unique case-insensitively; join order is preserved.
func (s *RoomService) Join(ctx context.Context, roomCode, playerName string) error {
	room, ok, err := s.rooms.GetRoom(ctx, roomCode)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("room not found")
	}
	if room.Status != domain.StatusAwaitingPlayers {
		return domain.InvalidOperation("room is not accepting new players")
	}
	name := strings.TrimSpace(playerName)
	if findPlayer(room.Players, name) >= 0 {
		return domain.Validation("name already taken")
	}
	room.Players = append(room.Players, domain.Player{Name: name})
	return s.rooms.SaveRoom(ctx, room)
}

// SubmitAnswer records the player's letter for the current question.
// Re-submission overwrites. The letter is deliberately not checked against
// the shown set; an out-of-range letter just never matches the correct
// answer or any tally bucket.
func (s *RoomService) SubmitAnswer(ctx context.Context, roomCode, playerName, letter string) error {
	room, ok, err := s.rooms.GetRoom(ctx, roomCode)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("room not found")
	}
	if room.Status != domain.StatusShowingQuestion {
		return domain.InvalidOperation("room is not waiting for an answer")
	}
	i := findPlayer(room.Players, playerName)
	if i < 0 {
		return domain.NotFound("player not found")
	}
	room.Players[i].Answer = letter
	return s.rooms.SaveRoom(ctx, room)
}

// NextStage performs exactly one phase transition. It reports finished=true
// once the room has been torn down after the last question's scores, at
// which point the room code no longer resolves.
func (s *RoomService) NextStage(ctx context.Context, roomCode string) (bool, error) {
	room, ok, err := s.rooms.GetRoom(ctx, roomCode)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, domain.NotFound("room not found")
	}

	switch room.Status {
	case domain.StatusAwaitingPlayers:
		if err := startGame(&room); err != nil {
			return false, err
		}
	case domain.StatusShowingQuestion:
		revealAnswer(&room)
	case domain.StatusShowingAnswer:
		room.Status = domain.StatusShowingScores
	case domain.StatusShowingScores:
		if room.QuestionNumber >= len(room.Questions) {
			if err := s.rooms.DeleteRoom(ctx, roomCode); err != nil {
				return false, err
			}
			return true, nil
		}
		nextQuestion(&room)
	default:
		return false, fmt.Errorf("unrecognised room status %q", room.Status)
	}

	return false, s.rooms.SaveRoom(ctx, room)
}

// DeleteRoom tears a room down; deleting an absent room is a no-op.
func (s *RoomService) DeleteRoom(ctx context.Context, roomCode string) error {
	return s.rooms.DeleteRoom(ctx, roomCode)
}

func startGame(room *domain.Room) error {
	if len(room.Players) == 0 {
		return domain.InvalidOperation("not enough players yet")
	}
	room.QuestionNumber = 1
	for i := range room.Players {
		room.Players[i].Score = 0
		room.Players[i].Answer = ""
		room.Players[i].Rank = 0
	}
	room.Status = domain.StatusShowingQuestion
	return nil
}

// revealAnswer tallies responses for the current question, awards points to
// everyone who picked the correct letter, and re-ranks the scoreboard.
func revealAnswer(room *domain.Room) {
	question := &room.Questions[room.QuestionNumber-1]

	correctLetter := ""
	for i := range question.Answers {
		answer := &question.Answers[i]
		answer.Count = 0
		for _, p := range room.Players {
			if p.Answer == answer.Letter {
				answer.Count++
			}
		}
		if answer.Correct {
			correctLetter = answer.Letter
		}
	}

	for i := range room.Players {
		if room.Players[i].Answer == correctLetter {
			room.Players[i].Score += pointsPerCorrectAnswer
		}
	}

	rankPlayers(room.Players)
	room.Status = domain.StatusShowingAnswer
}

// rankPlayers sorts by score descending and applies standard competition
// ranking: tied scores share a rank and the next distinct score takes its
// 1-based position, not the next rank number (60,60,50 -> 1,1,3).
func rankPlayers(players []domain.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})
	rank := 1
	for i := range players {
		if i > 0 && players[i].Score != players[i-1].Score {
			rank = i + 1
		}
		players[i].Rank = rank
	}
}

func nextQuestion(room *domain.Room) {
	room.QuestionNumber++
	for i := range room.Players {
		room.Players[i].Answer = ""
	}
	room.Status = domain.StatusShowingQuestion
}

// findPlayer matches stored names against name, trimmed and
// case-insensitively. Returns -1 when absent.
func findPlayer(players []domain.Player, name string) int {
	name = strings.TrimSpace(name)
	for i := range players {
		if strings.EqualFold(players[i].Name, name) {
			return i
		}
	}
	return -1
}
