package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/smartcity/internal/domain"
)

// WorkerRepository handles persistence for worker records. Worker ids mirror
// the user id they were created for, so Create takes the id from the caller.
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	Update(ctx context.Context, worker *domain.Worker) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	List(ctx context.Context) ([]domain.Worker, error)
	ListAvailable(ctx context.Context) ([]domain.Worker, error)
	Delete(ctx context.Context, id string) error
}

type workerRepository struct {
	pool *pgxpool.Pool
}

// NewWorkerRepository instantiates the repository.
func NewWorkerRepository(pool *pgxpool.Pool) WorkerRepository {
	return &workerRepository{pool: pool}
}

const workerColumns = `id, name, email, phone_number, specialization, is_available, total_credits, assigned_complaint, created_at, updated_at`

func (r *workerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	const query = `
        INSERT INTO workers (id, name, email, phone_number, specialization, is_available, total_credits)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		worker.ID,
		worker.Name,
		worker.Email,
		worker.PhoneNumber,
		worker.Specialization,
		worker.IsAvailable,
		worker.TotalCredits,
	).Scan(&worker.CreatedAt, &worker.UpdatedAt)
}

func (r *workerRepository) Update(ctx context.Context, worker *domain.Worker) error {
	const query = `
        UPDATE workers
        SET name=$1, email=$2, phone_number=$3, specialization=$4,
            is_available=$5, total_credits=$6, assigned_complaint=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		worker.Name,
		worker.Email,
		worker.PhoneNumber,
		worker.Specialization,
		worker.IsAvailable,
		worker.TotalCredits,
		worker.AssignedComplaint,
		worker.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id=$1`

	var worker domain.Worker
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&worker.ID,
		&worker.Name,
		&worker.Email,
		&worker.PhoneNumber,
		&worker.Specialization,
		&worker.IsAvailable,
		&worker.TotalCredits,
		&worker.AssignedComplaint,
		&worker.CreatedAt,
		&worker.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepository) List(ctx context.Context) ([]domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY created_at DESC`
	return r.scanMany(ctx, query)
}

func (r *workerRepository) ListAvailable(ctx context.Context) ([]domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE is_available ORDER BY created_at DESC`
	return r.scanMany(ctx, query)
}

func (r *workerRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Worker, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Worker
	for rows.Next() {
		var worker domain.Worker
		if err := rows.Scan(
			&worker.ID,
			&worker.Name,
			&worker.Email,
			&worker.PhoneNumber,
			&worker.Specialization,
			&worker.IsAvailable,
			&worker.TotalCredits,
			&worker.AssignedComplaint,
			&worker.CreatedAt,
			&worker.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, worker)
	}
	return result, rows.Err()
}

func (r *workerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM workers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
