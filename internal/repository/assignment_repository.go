package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/smartcity/internal/domain"
)

// AssignmentRepository handles persistence for work assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.WorkAssignment) error
	Update(ctx context.Context, assignment *domain.WorkAssignment) error
	GetByID(ctx context.Context, id string) (*domain.WorkAssignment, error)
	GetByComplaintID(ctx context.Context, complaintID string) (*domain.WorkAssignment, error)
	ListByWorker(ctx context.Context, workerID string) ([]domain.WorkAssignment, error)
	List(ctx context.Context) ([]domain.WorkAssignment, error)
	Delete(ctx context.Context, id string) error
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

const assignmentColumns = `id, worker_id, complaint_id, status, credit_points, assigned_on, completed_on`

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.WorkAssignment) error {
	const query = `
        INSERT INTO work_assignments (worker_id, complaint_id, status, credit_points, assigned_on)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		assignment.WorkerID,
		assignment.ComplaintID,
		assignment.Status,
		assignment.CreditPoints,
		assignment.AssignedOn,
	).Scan(&assignment.ID)
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *domain.WorkAssignment) error {
	const query = `
        UPDATE work_assignments
        SET status=$1, credit_points=$2, completed_on=$3
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		assignment.Status,
		assignment.CreditPoints,
		assignment.CompletedOn,
		assignment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.WorkAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM work_assignments WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *assignmentRepository) GetByComplaintID(ctx context.Context, complaintID string) (*domain.WorkAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM work_assignments WHERE complaint_id=$1`
	return r.scanOne(ctx, query, complaintID)
}

func (r *assignmentRepository) scanOne(ctx context.Context, query string, arg any) (*domain.WorkAssignment, error) {
	var assignment domain.WorkAssignment
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&assignment.ID,
		&assignment.WorkerID,
		&assignment.ComplaintID,
		&assignment.Status,
		&assignment.CreditPoints,
		&assignment.AssignedOn,
		&assignment.CompletedOn,
	); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) ListByWorker(ctx context.Context, workerID string) ([]domain.WorkAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM work_assignments WHERE worker_id=$1 ORDER BY assigned_on DESC`
	return r.scanMany(ctx, query, workerID)
}

func (r *assignmentRepository) List(ctx context.Context) ([]domain.WorkAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM work_assignments ORDER BY assigned_on DESC`
	return r.scanMany(ctx, query)
}

func (r *assignmentRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.WorkAssignment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WorkAssignment
	for rows.Next() {
		var assignment domain.WorkAssignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.WorkerID,
			&assignment.ComplaintID,
			&assignment.Status,
			&assignment.CreditPoints,
			&assignment.AssignedOn,
			&assignment.CompletedOn,
		); err != nil {
			return nil, err
		}
		result = append(result, assignment)
	}
	return result, rows.Err()
}

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM work_assignments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
