package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"exam-paper-service/internal/app"
	"exam-paper-service/internal/domain"
	"exam-paper-service/internal/paperid"
)

// APIHandler exposes the question CRUD, mark reconciliation, and rankings
// endpoints. Mutation handlers publish a hub event after each success;
// reconciliation stays a separate explicit call.
type APIHandler struct {
	papers     *app.PaperService
	reconciler *app.Reconciler
	rankings   *app.RankingEngine
	hub        *app.Hub
}

func NewAPIHandler(papers *app.PaperService, reconciler *app.Reconciler, rankings *app.RankingEngine, hub *app.Hub) *APIHandler {
	return &APIHandler{papers: papers, reconciler: reconciler, rankings: rankings, hub: hub}
}

// Routes mounts the API. The {exam} segment accepts a bare exam id or a
// composite paper token.
func (h *APIHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/exams/{exam}", func(r chi.Router) {
		r.Get("/questions", h.listQuestions)
		r.Post("/questions", h.addQuestion)
		r.Patch("/questions/{questionID}", h.updateQuestion)
		r.Delete("/questions/{questionID}", h.deleteQuestion)
		r.Post("/marks/reconcile", h.reconcileMarks)
		r.Get("/rankings", h.getRankings)
	})
	r.Post("/marks/reconcile", h.reconcileAllMarks)
	return r
}

// questionView is the externally-facing question record: external kind
// vocabulary and four fixed option slots, absent ones null.
type questionView struct {
	ID        int       `json:"id"`
	Kind      string    `json:"kind"`
	Prompt    string    `json:"prompt"`
	Marks     int       `json:"marks"`
	Order     int       `json:"order"`
	OptionA   *string   `json:"optionA"`
	OptionB   *string   `json:"optionB"`
	OptionC   *string   `json:"optionC"`
	OptionD   *string   `json:"optionD"`
	Answer    *string   `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newQuestionView(q domain.Question) questionView {
	view := questionView{
		ID:        q.ID,
		Kind:      paperid.ExternalKind(q.Kind),
		Prompt:    q.Prompt,
		Marks:     q.Marks,
		Order:     q.Order,
		Answer:    q.Answer,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	slots := []**string{&view.OptionA, &view.OptionB, &view.OptionC, &view.OptionD}
	for i, option := range q.Options {
		if i >= len(slots) {
			break
		}
		value := option
		*slots[i] = &value
	}
	return view
}

type questionRequest struct {
	Kind    string   `json:"kind"`
	Prompt  string   `json:"prompt"`
	Marks   int      `json:"marks"`
	Order   *int     `json:"order"`
	Options []string `json:"options"`
	OptionA string   `json:"optionA"`
	OptionB string   `json:"optionB"`
	OptionC string   `json:"optionC"`
	OptionD string   `json:"optionD"`
	Answer  *string  `json:"answer"`
}

type questionPatchRequest struct {
	Kind    *string  `json:"kind"`
	Prompt  *string  `json:"prompt"`
	Marks   *int     `json:"marks"`
	Order   *int     `json:"order"`
	Options []string `json:"options"`
	Answer  *string  `json:"answer"`
}

func (h *APIHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.papers.List(r.Context(), chi.URLParam(r, "exam"))
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, newQuestionView(q))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *APIHandler) addQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	token := chi.URLParam(r, "exam")
	question, err := h.papers.Add(r.Context(), token, app.QuestionInput{
		Kind:    req.Kind,
		Prompt:  req.Prompt,
		Marks:   req.Marks,
		Order:   req.Order,
		Options: req.Options,
		OptionA: req.OptionA,
		OptionB: req.OptionB,
		OptionC: req.OptionC,
		OptionD: req.OptionD,
		Answer:  req.Answer,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.publish(token, domain.ActionCreated, &question, question.ID)
	writeJSON(w, http.StatusCreated, newQuestionView(question))
}

func (h *APIHandler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(chi.URLParam(r, "questionID"))
	if err != nil {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}
	var req questionPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	token := chi.URLParam(r, "exam")
	question, err := h.papers.Update(r.Context(), token, questionID, app.QuestionPatch{
		Kind:    req.Kind,
		Prompt:  req.Prompt,
		Marks:   req.Marks,
		Order:   req.Order,
		Options: req.Options,
		Answer:  req.Answer,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.publish(token, domain.ActionUpdated, &question, question.ID)
	writeJSON(w, http.StatusOK, newQuestionView(question))
}

func (h *APIHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(chi.URLParam(r, "questionID"))
	if err != nil {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}
	token := chi.URLParam(r, "exam")
	if err := h.papers.Remove(r.Context(), token, questionID); err != nil {
		writeError(w, err)
		return
	}
	h.publish(token, domain.ActionDeleted, nil, questionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) reconcileMarks(w http.ResponseWriter, r *http.Request) {
	examID, err := paperid.ExamID(chi.URLParam(r, "exam"))
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := h.reconciler.Reconcile(r.Context(), examID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"totalMarks": total})
}

func (h *APIHandler) reconcileAllMarks(w http.ResponseWriter, r *http.Request) {
	if err := h.reconciler.ReconcileAll(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) getRankings(w http.ResponseWriter, r *http.Request) {
	examID, err := paperid.ExamID(chi.URLParam(r, "exam"))
	if err != nil {
		writeError(w, err)
		return
	}
	standings, err := h.rankings.Rankings(r.Context(), examID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make(map[string]domain.Standing, len(standings))
	for studentID, standing := range standings {
		out[strconv.FormatInt(studentID, 10)] = standing
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *APIHandler) publish(token, action string, question *domain.Question, questionID int) {
	examID, err := paperid.ExamID(token)
	if err != nil {
		return
	}
	h.hub.Publish(domain.QuestionEvent{
		Kind:       domain.EventKindQuestions,
		ExamID:     examID,
		Action:     action,
		Question:   question,
		QuestionID: questionID,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidIdentifier):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrPaperNotFound),
		errors.Is(err, domain.ErrExamNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
