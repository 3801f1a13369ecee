package redis

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"exam-paper-service/internal/domain"
)

func TestPaperStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewPaperStore(newClient(mr))
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, 42); err != nil || ok {
		t.Fatalf("expected absent paper, ok=%v err=%v", ok, err)
	}

	answer := "b"
	paper := domain.Paper{
		ExamID: 42,
		Title:  "Paper 42",
		Questions: []domain.Question{
			{ID: 1, Kind: domain.KindMultipleChoice, Prompt: "Pick", Marks: 5, Order: 1, Options: []string{"a", "b"}, Answer: &answer},
		},
	}
	if err := store.Put(ctx, paper); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("paper:42") {
		t.Fatalf("expected paper:42 key in redis")
	}

	got, ok, err := store.Get(ctx, 42)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Title != "Paper 42" || len(got.Questions) != 1 {
		t.Fatalf("unexpected paper: %+v", got)
	}
	if got.Questions[0].Answer == nil || *got.Questions[0].Answer != "b" {
		t.Fatalf("answer lost in round trip: %+v", got.Questions[0])
	}
}

func TestPaperStoreSurfacesDecodeError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set("paper:42", "{not json"); err != nil {
		t.Fatalf("seed corrupt doc: %v", err)
	}

	store := NewPaperStore(newClient(mr))
	_, _, err = store.Get(context.Background(), 42)
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestPaperStoreSurfacesUnavailableServer(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	mr.Close()

	store := NewPaperStore(client)
	if _, _, err := store.Get(context.Background(), 42); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable on get, got %v", err)
	}
	if err := store.Put(context.Background(), domain.Paper{ExamID: 42}); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable on put, got %v", err)
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}
