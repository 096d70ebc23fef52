package app

import (
	"context"
	"fmt"
	"strings"

	"quizroom-service/internal/domain"
)

// State projects a role-specific snapshot of the room. With a playerName it
// is that player's view; with an empty playerName it is the host view. The
// projection never mutates the room.
func (s *RoomService) State(ctx context.Context, roomCode, playerName string) (domain.State, error) {
	room, ok, err := s.rooms.GetRoom(ctx, roomCode)
	if err != nil {
		return domain.State{}, err
	}
	if !ok {
		return domain.State{}, domain.NotFound("room not found")
	}

	var player *domain.Player
	if playerName != "" {
		i := findPlayer(room.Players, playerName)
		if i < 0 {
			return domain.State{}, domain.NotFound("player not found")
		}
		player = &room.Players[i]
	}

	state := domain.State{RoomCode: room.RoomCode, Status: room.Status}
	if player != nil {
		state.PlayerName = player.Name
	} else {
		state.PlayerCount = intp(len(room.Players))
	}

	switch room.Status {
	case domain.StatusAwaitingPlayers:
		state.Players = make([]domain.PlayerState, 0, len(room.Players))
		for _, p := range room.Players {
			state.Players = append(state.Players, domain.PlayerState{Name: p.Name})
		}
		state.Count = intp(len(room.Players))

	case domain.StatusShowingQuestion:
		question := room.Questions[room.QuestionNumber-1]
		state.QuestionNumber = room.QuestionNumber
		state.TotalQuestions = len(room.Questions)
		state.Question = question.Question
		for _, a := range question.Answers {
			answer := domain.StateAnswer{Letter: a.Letter, Answer: a.Text}
			if player != nil && player.Answer == a.Letter {
				answer.IsSelected = true
			}
			state.Answers = append(state.Answers, answer)
		}
		if player == nil {
			state.AnswerCount = intp(countAnswered(room.Players))
		}

	case domain.StatusShowingAnswer:
		question := room.Questions[room.QuestionNumber-1]
		state.QuestionNumber = room.QuestionNumber
		state.TotalQuestions = len(room.Questions)
		state.Question = question.Question
		correctLetter := ""
		for _, a := range question.Answers {
			answer := domain.StateAnswer{
				Letter:    a.Letter,
				Answer:    a.Text,
				IsCorrect: boolp(a.Correct),
				Count:     intp(a.Count),
			}
			if a.Correct {
				correctLetter = a.Letter
			}
			if player != nil && player.Answer == a.Letter {
				answer.IsSelected = true
			}
			state.Answers = append(state.Answers, answer)
		}
		if player == nil {
			state.AnswerCount = intp(countAnswered(room.Players))
		} else {
			state.IsCorrect = boolp(player.Answer == correctLetter)
		}

	case domain.StatusShowingScores:
		state.QuestionNumber = room.QuestionNumber
		state.TotalQuestions = len(room.Questions)
		state.Players = make([]domain.PlayerState, 0, len(room.Players))
		for _, p := range room.Players {
			state.Players = append(state.Players, domain.PlayerState{
				Name:  p.Name,
				Score: intp(p.Score),
				Rank:  intp(p.Rank),
			})
		}
		if room.QuestionNumber == len(room.Questions) {
			state.IsGameOver = true
			var winners []string
			for _, p := range room.Players {
				if p.Rank == 1 {
					winners = append(winners, p.Name)
				}
			}
			state.Winner = strings.Join(winners, " and ")
		}

	default:
		return domain.State{}, fmt.Errorf("unrecognised room status %q", room.Status)
	}

	return state, nil
}

func countAnswered(players []domain.Player) int {
	n := 0
	for _, p := range players {
		if p.Answer != "" {
			n++
		}
	}
	return n
}

func intp(v int) *int { return &v }

func boolp(v bool) *bool { return &v }
