package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"exam-paper-service/internal/domain"
)

// ResultRepository reads submitted results straight through pgx; the ranking
// engine recomputes standings from the full set on every call.
type ResultRepository struct {
	pool *pgxpool.Pool
}

func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

func (r *ResultRepository) ListByExam(ctx context.Context, examID int64) ([]domain.Result, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id, exam_id, score, percentage FROM results WHERE exam_id=$1`, examID)
	if err != nil {
		return nil, fmt.Errorf("list results for exam %d: %w", examID, err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var result domain.Result
		if err := rows.Scan(&result.StudentID, &result.ExamID, &result.Score, &result.Percentage); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results for exam %d: %w", examID, err)
	}
	return results, nil
}
