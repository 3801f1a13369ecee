package app_test

import (
	"testing"

	"exam-paper-service/internal/app"
	"exam-paper-service/internal/domain"
)

func TestHubDeliversInPublishOrder(t *testing.T) {
	hub := app.NewHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(domain.QuestionEvent{Kind: domain.EventKindQuestions, ExamID: 42, Action: domain.ActionCreated, QuestionID: 1})
	hub.Publish(domain.QuestionEvent{Kind: domain.EventKindQuestions, ExamID: 42, Action: domain.ActionUpdated, QuestionID: 1})

	first := <-events
	second := <-events
	if first.Action != domain.ActionCreated || second.Action != domain.ActionUpdated {
		t.Fatalf("expected created then updated, got %s then %s", first.Action, second.Action)
	}
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := app.NewHub()
	// Must not block or panic.
	hub.Publish(domain.QuestionEvent{Kind: domain.EventKindQuestions, ExamID: 1, Action: domain.ActionDeleted, QuestionID: 3})
}

func TestHubCancelStopsDelivery(t *testing.T) {
	hub := app.NewHub()
	events, cancel := hub.Subscribe()
	cancel()

	hub.Publish(domain.QuestionEvent{Kind: domain.EventKindQuestions, ExamID: 1, Action: domain.ActionCreated})
	if _, ok := <-events; ok {
		t.Fatalf("expected closed channel after cancel")
	}
}

func TestHubSlowSubscriberDoesNotStallPublish(t *testing.T) {
	hub := app.NewHub()
	_, cancel := hub.Subscribe()
	defer cancel()

	// Overflow the subscriber buffer; Publish must keep returning.
	for i := 0; i < 100; i++ {
		hub.Publish(domain.QuestionEvent{Kind: domain.EventKindQuestions, ExamID: 1, Action: domain.ActionUpdated, QuestionID: i})
	}
}

func TestHubFansOutToAllSubscribers(t *testing.T) {
	hub := app.NewHub()
	a, cancelA := hub.Subscribe()
	defer cancelA()
	b, cancelB := hub.Subscribe()
	defer cancelB()

	hub.Publish(domain.QuestionEvent{Kind: domain.EventKindQuestions, ExamID: 7, Action: domain.ActionCreated, QuestionID: 1})

	if event := <-a; event.ExamID != 7 {
		t.Fatalf("subscriber a: unexpected event %+v", event)
	}
	if event := <-b; event.ExamID != 7 {
		t.Fatalf("subscriber b: unexpected event %+v", event)
	}
}
