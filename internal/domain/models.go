package domain

// Status is the phase a room is currently in. Rooms move through the
// phases in a fixed cycle per question, driven by the host.
type Status string

const (
	StatusAwaitingPlayers Status = "awaiting-players"
	StatusShowingQuestion Status = "showing-question"
	StatusShowingAnswer   Status = "showing-answer"
	StatusShowingScores   Status = "showing-scores"
)

// Quiz is an authored quiz definition: a name plus an ordered list of
// questions, each with one correct and three wrong answers.
type Quiz struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is a question as authored, before any answer shuffling.
type QuizQuestion struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	WrongAnswer1  string `json:"wrongAnswer1"`
	WrongAnswer2  string `json:"wrongAnswer2"`
	WrongAnswer3  string `json:"wrongAnswer3"`
}

// QuizSummary is the list-view projection of a quiz.
type QuizSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomAnswer is one of the four lettered answers shown to players.
// Count is only populated during the showing-question to showing-answer
// transition for the current question.
type RoomAnswer struct {
	Letter  string `json:"letter"`
	Text    string `json:"answer"`
	Correct bool   `json:"isCorrect"`
	Count   int    `json:"count"`
}

// RoomQuestion is a quiz question frozen into a room at hosting time,
// with its answers shuffled and lettered A-D.
type RoomQuestion struct {
	Question string       `json:"question"`
	Answers  []RoomAnswer `json:"answers"`
}

// Player is a joined participant. Answer holds the letter chosen for the
// current question ("" when unanswered); Rank is 0 until the first scoring
// pass assigns it.
type Player struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Answer string `json:"answer,omitempty"`
	Rank   int    `json:"rank,omitempty"`
}

// Room is one live run of a quiz, keyed by its room code. Questions are
// frozen at hosting time; QuestionNumber is 1-based and 0 before the game
// starts. Players keep join order until the first scoring pass reorders
// them by rank.
type Room struct {
	RoomCode       string         `json:"roomCode"`
	Name           string         `json:"name"`
	Questions      []RoomQuestion `json:"questions"`
	Players        []Player       `json:"players"`
	Status         Status         `json:"status"`
	QuestionNumber int            `json:"questionNumber"`
}

// Clone returns an independent deep copy of the quiz.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = append([]QuizQuestion(nil), q.Questions...)
	return out
}

// Clone returns an independent deep copy of the room, so callers can
// mutate the result without touching stored state.
func (r Room) Clone() Room {
	out := r
	out.Questions = make([]RoomQuestion, len(r.Questions))
	for i, q := range r.Questions {
		out.Questions[i] = q
		out.Questions[i].Answers = append([]RoomAnswer(nil), q.Answers...)
	}
	out.Players = append([]Player(nil), r.Players...)
	return out
}
