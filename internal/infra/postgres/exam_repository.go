package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"exam-paper-service/internal/domain"
)

// Exam mirrors the relational exam record. TotalMarks is the denormalized
// aggregate the reconciler keeps in sync with the paper document.
type Exam struct {
	bun.BaseModel `bun:"table:exams"`

	ID         int64  `bun:"id,pk,autoincrement"`
	Title      string `bun:"title,notnull"`
	TotalMarks int    `bun:"total_marks,notnull,default:0"`
}

// ExamRepository updates exam records by primary key via bun.
type ExamRepository struct {
	db *bun.DB
}

func NewExamRepository(db *bun.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

func (r *ExamRepository) SetTotalMarks(ctx context.Context, examID int64, total int) error {
	res, err := r.db.NewUpdate().
		Model((*Exam)(nil)).
		Set("total_marks = ?", total).
		Where("id = ?", examID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set total marks for exam %d: %w", examID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set total marks for exam %d: %w", examID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", domain.ErrExamNotFound, examID)
	}
	return nil
}

func (r *ExamRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.NewSelect().
		Model((*Exam)(nil)).
		Column("id").
		Order("id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("list exam ids: %w", err)
	}
	return ids, nil
}
