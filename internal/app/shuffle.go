package app

import "quizroom-service/internal/domain"

var answerLetters = [...]string{"A", "B", "C", "D"}

// shuffleAnswers returns a uniformly drawn permutation of the answers that
// differs from the input order. The identity permutation is rejected and
// redrawn: with four answers only 1 draw in 24 is rejected, so the loop all
// but always exits on the first pass, though it carries no hard cap.
// Rejecting on the permutation rather than on answer texts keeps duplicate
// texts from making the loop spin forever.
func (s *RoomService) shuffleAnswers(answers []domain.RoomAnswer) []domain.RoomAnswer {
	if len(answers) < 2 {
		return answers
	}
	for {
		perm := s.rnd.Perm(len(answers))
		if isIdentity(perm) {
			continue
		}
		out := make([]domain.RoomAnswer, len(answers))
		for i, j := range perm {
			out[i] = answers[j]
		}
		return out
	}
}

func isIdentity(perm []int) bool {
	for i, v := range perm {
		if i != v {
			return false
		}
	}
	return true
}
