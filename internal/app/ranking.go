package app

import (
	"context"
	"sort"
	"strconv"

	"golang.org/x/sync/singleflight"

	"exam-paper-service/internal/domain"
)

// ResultRepository gathers the submitted results for one exam.
type ResultRepository interface {
	ListByExam(ctx context.Context, examID int64) ([]domain.Result, error)
}

// RankingEngine derives per-student standings over an exam's full result
// set. Rank is never stored; it is recomputed on every read since it changes
// whenever any participant's result changes.
type RankingEngine struct {
	results ResultRepository
	sf      singleflight.Group
}

func NewRankingEngine(results ResultRepository) *RankingEngine {
	return &RankingEngine{results: results}
}

// Rankings computes each student's rank and the total participant count for
// the exam. Ties follow standard competition ranking: equal scores share a
// rank, and the next distinct score skips ahead by the number of tied
// entries. Concurrent calls for the same exam share one computation.
func (e *RankingEngine) Rankings(ctx context.Context, examID int64) (map[int64]domain.Standing, error) {
	v, err, _ := e.sf.Do(strconv.FormatInt(examID, 10), func() (interface{}, error) {
		return e.compute(ctx, examID)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[int64]domain.Standing), nil
}

func (e *RankingEngine) compute(ctx context.Context, examID int64) (map[int64]domain.Standing, error) {
	results, err := e.results.ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	sorted := append([]domain.Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	standings := make(map[int64]domain.Standing, len(sorted))
	rank := 0
	for i, result := range sorted {
		if i == 0 || result.Score != sorted[i-1].Score {
			rank = i + 1
		}
		standings[result.StudentID] = domain.Standing{
			Rank:              rank,
			TotalParticipants: len(sorted),
		}
	}
	return standings, nil
}
