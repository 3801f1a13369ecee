package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"exam-paper-service/internal/app"
	"exam-paper-service/internal/domain"
	"exam-paper-service/internal/paperid"
)

// WSHandler bridges the in-process hub onto live websocket connections.
// Delivery is best effort: a client that is disconnected during a mutation
// misses the event and resynchronizes with a full questions read.
type WSHandler struct {
	hub      *app.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *app.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and streams question events. An optional
// examId query parameter (bare id or composite token) narrows the stream to
// one exam; without it the client sees every exam's events.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	var filterExam int64
	filtered := false
	if token := r.URL.Query().Get("examId"); token != "" {
		examID, err := paperid.ExamID(token)
		if err != nil {
			http.Error(w, "invalid examId", http.StatusBadRequest)
			return
		}
		filterExam = examID
		filtered = true
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe()
	defer cancel()

	// Reader exists only to notice the peer going away.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if filtered && event.ExamID != filterExam {
				continue
			}
			if err := conn.WriteJSON(wsEvent(event)); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-readerDone:
			return
		}
	}
}

type wsQuestionEvent struct {
	Kind       string        `json:"kind"`
	ExamID     int64         `json:"examId"`
	Action     string        `json:"action"`
	Question   *questionView `json:"question,omitempty"`
	QuestionID int           `json:"questionId,omitempty"`
}

func wsEvent(event domain.QuestionEvent) wsQuestionEvent {
	out := wsQuestionEvent{
		Kind:       event.Kind,
		ExamID:     event.ExamID,
		Action:     event.Action,
		QuestionID: event.QuestionID,
	}
	if event.Question != nil {
		view := newQuestionView(*event.Question)
		out.Question = &view
		out.QuestionID = event.Question.ID
	}
	return out
}
