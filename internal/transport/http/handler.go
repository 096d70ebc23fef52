package http

import (
	"encoding/json"
	"log"
	"net/http"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
)

// Handler exposes quiz authoring and live rooms over REST. Clients poll
// /state for updates; nothing is pushed.
type Handler struct {
	quizzes *app.QuizService
	rooms   *app.RoomService
}

func NewHandler(quizzes *app.QuizService, rooms *app.RoomService) *Handler {
	return &Handler{quizzes: quizzes, rooms: rooms}
}

// Register mounts the REST routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /quiz", h.saveQuiz)
	mux.HandleFunc("GET /quiz", h.listQuizzes)
	mux.HandleFunc("GET /quiz/{id}", h.getQuiz)
	mux.HandleFunc("DELETE /quiz/{id}", h.deleteQuiz)
	mux.HandleFunc("POST /host/{id}", h.hostQuiz)
	mux.HandleFunc("POST /join/{roomCode}", h.join)
	mux.HandleFunc("GET /state/{roomCode}", h.state)
	mux.HandleFunc("GET /state/{roomCode}/{playerName}", h.state)
	mux.HandleFunc("POST /next/{roomCode}", h.next)
	mux.HandleFunc("POST /answer/{roomCode}/{playerName}", h.answer)
	mux.HandleFunc("DELETE /room/{roomCode}", h.deleteRoom)
}

func (h *Handler) saveQuiz(w http.ResponseWriter, r *http.Request) {
	var quiz domain.Quiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		writeError(w, domain.Validation("invalid quiz payload"))
		return
	}
	id, err := h.quizzes.SaveQuiz(r.Context(), quiz)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	list, err := h.quizzes.ListQuizzes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.quizzes.DeleteQuiz(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) hostQuiz(w http.ResponseWriter, r *http.Request) {
	roomCode, err := h.rooms.HostQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeState(w, r, roomCode, "")
}

type joinRequest struct {
	PlayerName string `json:"playerName"`
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	roomCode := r.PathValue("roomCode")
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Validation("invalid join payload"))
		return
	}
	if err := h.rooms.Join(r.Context(), roomCode, req.PlayerName); err != nil {
		writeError(w, err)
		return
	}
	h.writeState(w, r, roomCode, req.PlayerName)
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, r, r.PathValue("roomCode"), r.PathValue("playerName"))
}

func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	roomCode := r.PathValue("roomCode")
	finished, err := h.rooms.NextStage(r.Context(), roomCode)
	if err != nil {
		writeError(w, err)
		return
	}
	if finished {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeState(w, r, roomCode, "")
}

type answerRequest struct {
	Answer string `json:"answer"`
}

func (h *Handler) answer(w http.ResponseWriter, r *http.Request) {
	roomCode := r.PathValue("roomCode")
	playerName := r.PathValue("playerName")
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.Validation("invalid answer payload"))
		return
	}
	if err := h.rooms.SubmitAnswer(r.Context(), roomCode, playerName, req.Answer); err != nil {
		writeError(w, err)
		return
	}
	h.writeState(w, r, roomCode, playerName)
}

func (h *Handler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.rooms.DeleteRoom(r.Context(), r.PathValue("roomCode")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) writeState(w http.ResponseWriter, r *http.Request, roomCode, playerName string) {
	state, err := h.rooms.State(r.Context(), roomCode, playerName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindInvalidOperation, domain.KindValidation:
		status = http.StatusBadRequest
	default:
		log.Printf("internal error: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
