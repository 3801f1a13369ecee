package app_test

import (
	"context"
	"testing"

	"exam-paper-service/internal/app"
	"exam-paper-service/internal/domain"
	"exam-paper-service/internal/infra/memory"
)

func TestRankingsCompetitionTies(t *testing.T) {
	results := memory.NewResultRepository()
	results.Add(domain.Result{StudentID: 1, ExamID: 10, Score: 90, Percentage: 90})
	results.Add(domain.Result{StudentID: 2, ExamID: 10, Score: 80, Percentage: 80})
	results.Add(domain.Result{StudentID: 3, ExamID: 10, Score: 80, Percentage: 80})
	results.Add(domain.Result{StudentID: 4, ExamID: 10, Score: 60, Percentage: 60})

	engine := app.NewRankingEngine(results)
	standings, err := engine.Rankings(context.Background(), 10)
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}

	want := map[int64]domain.Standing{
		1: {Rank: 1, TotalParticipants: 4},
		2: {Rank: 2, TotalParticipants: 4},
		3: {Rank: 2, TotalParticipants: 4},
		4: {Rank: 4, TotalParticipants: 4},
	}
	for studentID, expected := range want {
		got, ok := standings[studentID]
		if !ok {
			t.Fatalf("missing standing for student %d", studentID)
		}
		if got != expected {
			t.Fatalf("student %d: expected %+v, got %+v", studentID, expected, got)
		}
	}
}

func TestRankingsEmptyExam(t *testing.T) {
	engine := app.NewRankingEngine(memory.NewResultRepository())
	standings, err := engine.Rankings(context.Background(), 10)
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	if len(standings) != 0 {
		t.Fatalf("expected no standings, got %d", len(standings))
	}
}

func TestRankingsRecomputedAfterResultChange(t *testing.T) {
	results := memory.NewResultRepository()
	results.Add(domain.Result{StudentID: 1, ExamID: 10, Score: 50, Percentage: 50})

	engine := app.NewRankingEngine(results)
	first, err := engine.Rankings(context.Background(), 10)
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	if first[1].Rank != 1 || first[1].TotalParticipants != 1 {
		t.Fatalf("unexpected initial standing: %+v", first[1])
	}

	results.Add(domain.Result{StudentID: 2, ExamID: 10, Score: 70, Percentage: 70})
	second, err := engine.Rankings(context.Background(), 10)
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	if second[1].Rank != 2 || second[2].Rank != 1 || second[1].TotalParticipants != 2 {
		t.Fatalf("expected recomputed standings, got %+v", second)
	}
}

func TestRankingsIgnoreOtherExams(t *testing.T) {
	results := memory.NewResultRepository()
	results.Add(domain.Result{StudentID: 1, ExamID: 10, Score: 50, Percentage: 50})
	results.Add(domain.Result{StudentID: 2, ExamID: 11, Score: 99, Percentage: 99})

	engine := app.NewRankingEngine(results)
	standings, err := engine.Rankings(context.Background(), 10)
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	if len(standings) != 1 {
		t.Fatalf("expected 1 standing, got %d", len(standings))
	}
	if standings[1].TotalParticipants != 1 {
		t.Fatalf("participants should only count exam 10, got %d", standings[1].TotalParticipants)
	}
}
