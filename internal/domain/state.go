package domain

// State is a role-specific snapshot of a room, shaped per phase. Optional
// fields use pointers so that phases which never set them leave them out of
// the serialized payload entirely (a zero count is still a real value).
type State struct {
	RoomCode string `json:"roomCode"`
	Status   Status `json:"status"`

	// PlayerName is the canonical stored name when projecting for a player;
	// PlayerCount is set instead when projecting for the host.
	PlayerName  string `json:"playerName,omitempty"`
	PlayerCount *int   `json:"playerCount,omitempty"`

	// awaiting-players and showing-scores.
	Players []PlayerState `json:"players,omitempty"`
	Count   *int          `json:"count,omitempty"`

	// showing-question and showing-answer.
	QuestionNumber int           `json:"questionNumber,omitempty"`
	TotalQuestions int           `json:"totalQuestions,omitempty"`
	Question       string        `json:"question,omitempty"`
	Answers        []StateAnswer `json:"answers,omitempty"`
	AnswerCount    *int          `json:"answerCount,omitempty"`

	// IsCorrect reports, during showing-answer only, whether the projected
	// player's chosen letter matches the correct one.
	IsCorrect *bool `json:"isCorrect,omitempty"`

	// Final showing-scores phase only.
	IsGameOver bool   `json:"isGameOver,omitempty"`
	Winner     string `json:"winner,omitempty"`
}

// StateAnswer is one lettered answer as shown to a client. IsCorrect and
// Count stay nil during showing-question so the payload never leaks them
// before the reveal.
type StateAnswer struct {
	Letter     string `json:"letter"`
	Answer     string `json:"answer"`
	IsCorrect  *bool  `json:"isCorrect,omitempty"`
	Count      *int   `json:"count,omitempty"`
	IsSelected bool   `json:"isSelected,omitempty"`
}

// PlayerState is a player entry in a projected state: name only while
// awaiting players, name plus score and rank on the scoreboard.
type PlayerState struct {
	Name  string `json:"name"`
	Score *int   `json:"score,omitempty"`
	Rank  *int   `json:"rank,omitempty"`
}
