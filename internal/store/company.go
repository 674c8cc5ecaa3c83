package store

import (
	"context"
	"fmt"

	"bumblebee/internal/utils"
	"bumblebee/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyTableName = "companies"

var companyColumns = utils.StructTagValues(types.Company{})

type CompanyRepository struct {
	db DB
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{db: pool}
}

func (r *CompanyRepository) Companies(ctx context.Context) ([]*types.Company, error) {
	query, args, err := psql().
		Select(companyColumns...).
		From(companyTableName).
		OrderBy("date_joined DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate companies query: %w", err)
	}

	var companies []*types.Company
	err = pgxscan.Select(ctx, r.db, &companies, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}

	return companies, nil
}

func (r *CompanyRepository) Company(ctx context.Context, companyID int64) (*types.Company, error) {
	query, args, err := psql().
		Select(companyColumns...).
		From(companyTableName).
		Where(sq.Eq{"company_id": companyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company query: %w", err)
	}

	var company types.Company
	err = pgxscan.Get(ctx, r.db, &company, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to fetch company: %w", err)
	}

	return &company, nil
}

// CompanyForUser scopes the lookup to the owning user so a company actor
// can only read their own record.
func (r *CompanyRepository) CompanyForUser(ctx context.Context, companyID, userID int64) (*types.Company, error) {
	query, args, err := psql().
		Select(companyColumns...).
		From(companyTableName).
		Where(sq.Eq{"company_id": companyID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company-for-user query: %w", err)
	}

	var company types.Company
	err = pgxscan.Get(ctx, r.db, &company, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to fetch company for user: %w", err)
	}

	return &company, nil
}

// CompanyByUser resolves the company owned by a user, used after a
// successful credential check for company accounts.
func (r *CompanyRepository) CompanyByUser(ctx context.Context, userID int64) (*types.Company, error) {
	query, args, err := psql().
		Select(companyColumns...).
		From(companyTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company-by-user query: %w", err)
	}

	var company types.Company
	err = pgxscan.Get(ctx, r.db, &company, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to fetch company by user: %w", err)
	}

	return &company, nil
}

// Approve moves a company to Approved and clears any rejection reason,
// keeping the reason column empty outside the Rejected status.
func (r *CompanyRepository) Approve(ctx context.Context, companyID int64) error {
	query, args, err := psql().
		Update(companyTableName).
		Set("status", types.StatusApproved).
		Set("rejection_reason", nil).
		Where(sq.Eq{"company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate approve company query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to approve company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrCompanyNotFound
	}

	return nil
}

func (r *CompanyRepository) Reject(ctx context.Context, companyID int64, reason string) error {
	query, args, err := psql().
		Update(companyTableName).
		Set("status", types.StatusRejected).
		Set("rejection_reason", nullable(reason)).
		Where(sq.Eq{"company_id": companyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate reject company query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to reject company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrCompanyNotFound
	}

	return nil
}
