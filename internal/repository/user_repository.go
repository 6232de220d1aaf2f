package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/volunteerhub/internal/domain"
)

// UserPatch lists the profile fields self-service updates may touch. Email,
// role and the credential are deliberately absent: role is immutable after
// registration and the credential has its own path.
type UserPatch struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	Location       *string
	Bio            *string
	Skills         *[]string
	ProfilePicture *string
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, password_hash, first_name, last_name, role, phone, location,
        skills, bio, profile_picture, verified, legacy_auth_id, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, password_hash, first_name, last_name, role, phone, location, skills, bio, verified)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
		user.Phone,
		user.Location,
		user.Skills,
		user.Bio,
		user.Verified,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error) {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.FirstName != nil {
		addSet("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		addSet("last_name", *patch.LastName)
	}
	if patch.Phone != nil {
		addSet("phone", *patch.Phone)
	}
	if patch.Location != nil {
		addSet("location", *patch.Location)
	}
	if patch.Bio != nil {
		addSet("bio", *patch.Bio)
	}
	if patch.Skills != nil {
		addSet("skills", *patch.Skills)
	}
	if patch.ProfilePicture != nil {
		addSet("profile_picture", *patch.ProfilePicture)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	var user domain.User
	if err := scanUser(r.pool.QueryRow(ctx, query, args...), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id=$1`, userColumns)

	var user domain.User
	if err := scanUser(r.pool.QueryRow(ctx, query, id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email)=LOWER($1)`, userColumns)

	var user domain.User
	if err := scanUser(r.pool.QueryRow(ctx, query, email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.Phone,
		&user.Location,
		&user.Skills,
		&user.Bio,
		&user.ProfilePicture,
		&user.Verified,
		&user.LegacyAuthID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
