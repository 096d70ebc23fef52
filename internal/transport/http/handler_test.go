package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
	"quizroom-service/internal/infra/memory"
)

func TestFullGameOverREST(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	// Host the seeded quiz.
	state := postState(t, server, "/host/quiz-1", nil, http.StatusOK)
	if state.RoomCode != "1234" || state.Status != domain.StatusAwaitingPlayers {
		t.Fatalf("unexpected host state: %+v", state)
	}

	// Players join; a duplicate name is rejected.
	state = postState(t, server, "/join/1234", map[string]string{"playerName": "Sally"}, http.StatusOK)
	if state.PlayerName != "Sally" {
		t.Fatalf("expected player view for Sally, got %+v", state)
	}
	resp := post(t, server, "/join/1234", map[string]string{"playerName": "  sally  "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate name, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Walk both questions to the end of the game.
	state = postState(t, server, "/next/1234", nil, http.StatusOK)
	if state.Status != domain.StatusShowingQuestion || state.QuestionNumber != 1 {
		t.Fatalf("expected question 1, got %+v", state)
	}

	state = postState(t, server, "/answer/1234/Sally", map[string]string{"answer": "A"}, http.StatusOK)
	if state.PlayerName != "Sally" {
		t.Fatalf("expected player state after answering, got %+v", state)
	}

	state = postState(t, server, "/next/1234", nil, http.StatusOK)
	if state.Status != domain.StatusShowingAnswer {
		t.Fatalf("expected showing-answer, got %+v", state)
	}
	state = postState(t, server, "/next/1234", nil, http.StatusOK)
	if state.Status != domain.StatusShowingScores || state.IsGameOver {
		t.Fatalf("expected mid-game scores, got %+v", state)
	}
	state = postState(t, server, "/next/1234", nil, http.StatusOK)
	if state.Status != domain.StatusShowingQuestion || state.QuestionNumber != 2 {
		t.Fatalf("expected question 2, got %+v", state)
	}
	state = postState(t, server, "/next/1234", nil, http.StatusOK)
	state = postState(t, server, "/next/1234", nil, http.StatusOK)
	if !state.IsGameOver || state.Winner != "Sally" {
		t.Fatalf("expected game over with winner Sally, got %+v", state)
	}

	// The final advance deletes the room.
	resp = post(t, server, "/next/1234", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 on final advance, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	getResp, err := http.Get(server.URL + "/state/1234")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after room deleted, got %d", getResp.StatusCode)
	}
}

func TestQuizCRUDOverREST(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	quiz := map[string]any{
		"name": "New Quiz",
		"questions": []map[string]string{
			{
				"question":      "Q1",
				"correctAnswer": "right",
				"wrongAnswer1":  "w1",
				"wrongAnswer2":  "w2",
				"wrongAnswer3":  "w3",
			},
		},
	}
	resp := post(t, server, "/quiz", quiz)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 saving quiz, got %d", resp.StatusCode)
	}
	var saved map[string]string
	decodeBody(t, resp, &saved)
	if saved["id"] == "" {
		t.Fatalf("expected quiz id in response")
	}

	resp = post(t, server, "/quiz", map[string]any{"name": "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	listResp, err := http.Get(server.URL + "/quiz")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var list []domain.QuizSummary
	decodeBody(t, listResp, &list)
	if len(list) != 2 { // seeded quiz + the one just saved
		t.Fatalf("expected 2 quizzes, got %+v", list)
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/quiz/"+saved["id"], nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 deleting quiz, got %d", delResp.StatusCode)
	}

	getResp, err := http.Get(server.URL + "/quiz/" + saved["id"])
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted quiz, got %d", getResp.StatusCode)
	}
}

func TestStateErrorsOverREST(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/state/9999")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown room, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error message, got %v", body)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	quizzes := memory.NewSeededQuizStore(sampleQuiz())
	rooms := memory.NewRoomStore()
	quizService := app.NewQuizService(quizzes)
	roomService := app.NewRoomServiceWithCodeGenerator(rooms, quizzes, func() string { return "1234" })

	mux := http.NewServeMux()
	NewHandler(quizService, roomService).Register(mux)
	return httptest.NewServer(mux)
}

func post(t *testing.T, server *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader([]byte("{}"))
	}
	resp, err := http.Post(server.URL+path, "application/json", payload)
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	return resp
}

func postState(t *testing.T, server *httptest.Server, path string, body any, wantStatus int) domain.State {
	t.Helper()
	resp := post(t, server, path, body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("post %s: expected %d, got %d", path, wantStatus, resp.StatusCode)
	}
	var state domain.State
	decodeBody(t, resp, &state)
	return state
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
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
			{
				Question:      "Fake Q2",
				CorrectAnswer: "500",
				WrongAnswer1:  "600",
				WrongAnswer2:  "700",
				WrongAnswer3:  "800",
			},
		},
	}
}
