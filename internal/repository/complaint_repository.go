package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/smartcity/internal/domain"
)

// ComplaintRepository handles persistence for complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	List(ctx context.Context) ([]domain.Complaint, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Complaint, error)
	Delete(ctx context.Context, id string) error
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates the repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, user_id, title, description, category, image_ref, status, created_at, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (user_id, title, description, category, image_ref, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		complaint.UserID,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.ImageRef,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints
        SET title=$1, description=$2, category=$3, image_ref=$4, status=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.ImageRef,
		complaint.Status,
		complaint.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`

	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.UserID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Category,
		&complaint.ImageRef,
		&complaint.Status,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) List(ctx context.Context) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at DESC`
	return r.scanMany(ctx, query)
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE user_id=$1 ORDER BY created_at DESC`
	return r.scanMany(ctx, query, userID)
}

func (r *complaintRepository) ListByCategory(ctx context.Context, category string) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE category=$1 ORDER BY created_at DESC`
	return r.scanMany(ctx, query, category)
}

func (r *complaintRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Complaint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.UserID,
			&complaint.Title,
			&complaint.Description,
			&complaint.Category,
			&complaint.ImageRef,
			&complaint.Status,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}

func (r *complaintRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
