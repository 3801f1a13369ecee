package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"exam-paper-service/internal/domain"
)

// PaperStore keeps one JSON paper document per exam under paper:{examID}.
// Whole-document read/replace only; read-modify-write sequencing is left to
// the caller, so concurrent writers to the same exam race (last write wins).
type PaperStore struct {
	client *redis.Client
}

func NewPaperStore(client *redis.Client) *PaperStore {
	return &PaperStore{client: client}
}

// Get loads the exam's paper. A missing key is a valid absent state; an
// unreachable server or an unparsable document is surfaced, never turned
// into an empty paper.
func (s *PaperStore) Get(ctx context.Context, examID int64) (domain.Paper, bool, error) {
	raw, err := s.client.Get(ctx, s.key(examID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Paper{}, false, nil
	}
	if err != nil {
		return domain.Paper{}, false, fmt.Errorf("%w: get paper %d: %v", domain.ErrStorageUnavailable, examID, err)
	}
	var paper domain.Paper
	if err := json.Unmarshal(raw, &paper); err != nil {
		return domain.Paper{}, false, fmt.Errorf("%w: exam %d: %v", domain.ErrDecode, examID, err)
	}
	return paper, true, nil
}

// Put replaces the exam's paper document in full.
func (s *PaperStore) Put(ctx context.Context, paper domain.Paper) error {
	raw, err := json.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshal paper %d: %w", paper.ExamID, err)
	}
	if err := s.client.Set(ctx, s.key(paper.ExamID), raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: put paper %d: %v", domain.ErrStorageUnavailable, paper.ExamID, err)
	}
	return nil
}

func (s *PaperStore) key(examID int64) string {
	return "paper:" + strconv.FormatInt(examID, 10)
}
