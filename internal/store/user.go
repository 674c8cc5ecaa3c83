package store

import (
	"context"
	"fmt"
	"time"

	"bumblebee/internal/utils"
	"bumblebee/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userTableName = "users"

var userColumns = utils.StructTagValues(types.User{})

type UserRepository struct {
	db DB
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

func (r *UserRepository) Users(ctx context.Context) ([]*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate users query: %w", err)
	}

	var users []*types.User
	err = pgxscan.Select(ctx, r.db, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) User(ctx context.Context, userID int64) (*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var user types.User
	err = pgxscan.Get(ctx, r.db, &user, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// UserByEmail backs the credential check and the password reset flow.
func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user-by-email query: %w", err)
	}

	var user types.User
	err = pgxscan.Get(ctx, r.db, &user, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	return &user, nil
}

// Create inserts a single user row outside any registration flow (admin
// user management). The generated identity is written back to user.UserID.
func (r *UserRepository) Create(ctx context.Context, user *types.User) error {
	user.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(userTableName).
		Columns("first_name", "last_name", "email", "password", "role", "created_at").
		Values(user.FirstName, user.LastName, user.Email, user.Password, user.Role, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&user.UserID); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) Update(ctx context.Context, userID int64, user *types.User) error {
	query, args, err := psql().
		Update(userTableName).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("email", user.Email).
		Set("role", user.Role).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrUserNotFound
	}

	return nil
}

// Register inserts the user and, when company details are provided, the
// company row referencing the generated user id. Both inserts share one
// transaction: a failed company insert leaves no orphan user behind.
func (r *UserRepository) Register(ctx context.Context, user *types.User, company *types.Company) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin register transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(userTableName).
		Columns("first_name", "last_name", "email", "password", "role", "created_at").
		Values(user.FirstName, user.LastName, user.Email, user.Password, user.Role, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate register user query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&user.UserID); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if company != nil {
		company.UserID = user.UserID
		company.Status = types.StatusPending
		company.DateJoined = user.CreatedAt

		query, args, err = psql().
			Insert(companyTableName).
			Columns("company_name", "contact_email", "contact_phone", "description", "date_joined", "status", "user_id").
			Values(company.CompanyName, company.ContactEmail, company.ContactPhone, company.Description, company.DateJoined, company.Status, company.UserID).
			Suffix("RETURNING company_id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate register company query: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&company.CompanyID); err != nil {
			return fmt.Errorf("failed to insert company: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit register transaction: %w", err)
	}

	return nil
}

// Delete removes a user and any company they own. The company row falls
// first so the foreign key holds; both removals are one unit and a failure
// on either side leaves the pre-delete state intact.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := psql().
		Delete(companyTableName).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete company query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete company for user: %w", err)
	}

	query, args, err = psql().
		Delete(userTableName).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete user query: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	return nil
}

func (r *UserRepository) ResetPassword(ctx context.Context, email, passwordHash string) error {
	query, args, err := psql().
		Update(userTableName).
		Set("password", passwordHash).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate reset password query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrUserNotFound
	}

	return nil
}
