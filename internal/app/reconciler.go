package app

import (
	"context"
	"log"
)

// ExamRepository is the relational exam record, updatable by primary key.
type ExamRepository interface {
	SetTotalMarks(ctx context.Context, examID int64, total int) error
	ListIDs(ctx context.Context) ([]int64, error)
}

// Reconciler resyncs the denormalized total-marks aggregate on the exam
// record from the paper document. The two stores share no transaction, so
// the aggregate may be stale until reconciliation is invoked; reconciling is
// idempotent and always restores the equality.
type Reconciler struct {
	papers PaperStore
	exams  ExamRepository
}

func NewReconciler(papers PaperStore, exams ExamRepository) *Reconciler {
	return &Reconciler{papers: papers, exams: exams}
}

// Reconcile recomputes and persists the exam's total marks, returning the
// new total. An exam without a paper contributes nothing and totals zero.
func (r *Reconciler) Reconcile(ctx context.Context, examID int64) (int, error) {
	paper, ok, err := r.papers.Get(ctx, examID)
	if err != nil {
		return 0, err
	}
	total := 0
	if ok {
		total = paper.TotalMarks()
	}
	if err := r.exams.SetTotalMarks(ctx, examID, total); err != nil {
		return 0, err
	}
	return total, nil
}

// ReconcileAll reconciles every exam independently. A failing exam is logged
// and skipped; it never aborts the rest of the batch.
func (r *Reconciler) ReconcileAll(ctx context.Context) error {
	ids, err := r.exams.ListIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := r.Reconcile(ctx, id); err != nil {
			log.Printf("reconcile exam %d: %v", id, err)
		}
	}
	return nil
}
