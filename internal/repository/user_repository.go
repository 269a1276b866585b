package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/materials-service/internal/domain"
)

// UserRepository defines persistence access for users. The wishlist
// operations are single-row atomic updates on the wish_list column: append
// keeps duplicates, remove drops every occurrence, replace overwrites the
// whole array.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ReplaceWishList(ctx context.Context, userID string, wishList []string) error
	AppendWishList(ctx context.Context, userID, materialID string) error
	RemoveFromWishList(ctx context.Context, userID, materialID string) ([]string, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	const query = `
        INSERT INTO users (email, password_hash, username, user_type, company, interest, occupation, avatar_url, agree_to_terms, wish_list)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,COALESCE($10,'{}'::uuid[]))
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Username,
		user.UserType,
		user.Company,
		user.Interest,
		user.Occupation,
		user.AvatarURL,
		user.AgreeToTerms,
		user.WishList,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

const userColumns = `id, email, password_hash, username, user_type, company, interest, occupation, avatar_url, agree_to_terms, wish_list, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Username,
		&user.UserType,
		&user.Company,
		&user.Interest,
		&user.Occupation,
		&user.AvatarURL,
		&user.AgreeToTerms,
		&user.WishList,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ReplaceWishList(ctx context.Context, userID string, wishList []string) error {
	const query = `
        UPDATE users SET wish_list=COALESCE($1,'{}'::uuid[]), updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, wishList, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) AppendWishList(ctx context.Context, userID, materialID string) error {
	const query = `
        UPDATE users SET wish_list=array_append(wish_list, $1), updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, materialID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) RemoveFromWishList(ctx context.Context, userID, materialID string) ([]string, error) {
	// array_remove drops every occurrence of the id, matching the
	// duplicate-tolerant add.
	const query = `
        UPDATE users SET wish_list=array_remove(wish_list, $1::uuid), updated_at=NOW()
        WHERE id=$2
        RETURNING wish_list`

	var wishList []string
	if err := r.pool.QueryRow(ctx, query, materialID, userID).Scan(&wishList); err != nil {
		return nil, err
	}
	return wishList, nil
}
