package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/smartcity/internal/domain"
)

// CitizenRepository handles persistence for citizen profiles.
type CitizenRepository interface {
	Create(ctx context.Context, citizen *domain.Citizen) error
	Update(ctx context.Context, citizen *domain.Citizen) error
	GetByUserID(ctx context.Context, userID string) (*domain.Citizen, error)
	List(ctx context.Context) ([]domain.Citizen, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type citizenRepository struct {
	pool *pgxpool.Pool
}

// NewCitizenRepository instantiates the repository.
func NewCitizenRepository(pool *pgxpool.Pool) CitizenRepository {
	return &citizenRepository{pool: pool}
}

func (r *citizenRepository) Create(ctx context.Context, citizen *domain.Citizen) error {
	const query = `
        INSERT INTO citizens (user_id, phone_number, address, city, pin_code)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		citizen.UserID,
		citizen.PhoneNumber,
		citizen.Address,
		citizen.City,
		citizen.PinCode,
	).Scan(&citizen.ID, &citizen.CreatedAt, &citizen.UpdatedAt)
}

func (r *citizenRepository) Update(ctx context.Context, citizen *domain.Citizen) error {
	const query = `
        UPDATE citizens
        SET phone_number=$1, address=$2, city=$3, pin_code=$4, updated_at=NOW()
        WHERE user_id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		citizen.PhoneNumber,
		citizen.Address,
		citizen.City,
		citizen.PinCode,
		citizen.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *citizenRepository) GetByUserID(ctx context.Context, userID string) (*domain.Citizen, error) {
	const query = `
        SELECT id, user_id, phone_number, address, city, pin_code, created_at, updated_at
        FROM citizens WHERE user_id=$1`

	var citizen domain.Citizen
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&citizen.ID,
		&citizen.UserID,
		&citizen.PhoneNumber,
		&citizen.Address,
		&citizen.City,
		&citizen.PinCode,
		&citizen.CreatedAt,
		&citizen.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &citizen, nil
}

func (r *citizenRepository) List(ctx context.Context) ([]domain.Citizen, error) {
	const query = `
        SELECT id, user_id, phone_number, address, city, pin_code, created_at, updated_at
        FROM citizens ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Citizen
	for rows.Next() {
		var citizen domain.Citizen
		if err := rows.Scan(
			&citizen.ID,
			&citizen.UserID,
			&citizen.PhoneNumber,
			&citizen.Address,
			&citizen.City,
			&citizen.PinCode,
			&citizen.CreatedAt,
			&citizen.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, citizen)
	}
	return result, rows.Err()
}

func (r *citizenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM citizens WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
