package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bumblebee/pkg/types"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCompanyAccount(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{vals: []any{int64(7)}}, // user insert
			{vals: []any{int64(3)}}, // company insert
		},
	}
	repo := &UserRepository{db: db}

	user := &types.User{
		FirstName: "Harriet",
		LastName:  "Combs",
		Email:     "owner@example.com",
		Password:  "hash",
		Role:      types.RoleCompany,
	}
	company := &types.Company{
		CompanyName:  "Honeyworks",
		ContactEmail: "owner@example.com",
	}

	err := repo.Register(context.Background(), user, company)
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, int64(3), company.CompanyID)
	assert.Equal(t, int64(7), company.UserID, "company must reference the generated user id")
	assert.Equal(t, types.StatusPending, company.Status)
	assert.True(t, db.committed)
	assert.False(t, db.rolledBack)

	require.Len(t, db.statements, 2)
	assert.Contains(t, db.statements[0].sql, "INSERT INTO users")
	assert.Contains(t, db.statements[1].sql, "INSERT INTO companies")
}

func TestRegisterDonorSkipsCompanyInsert(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{vals: []any{int64(12)}},
		},
	}
	repo := &UserRepository{db: db}

	user := &types.User{Email: "donor@example.com", Role: types.RoleDonor}

	require.NoError(t, repo.Register(context.Background(), user, nil))
	assert.Equal(t, int64(12), user.UserID)
	assert.True(t, db.committed)
	require.Len(t, db.statements, 1)
}

func TestRegisterRollsBackWhenCompanyInsertFails(t *testing.T) {
	boom := errors.New("duplicate company")
	db := &fakeDB{
		steps: []stmtResult{
			{vals: []any{int64(7)}},
			{err: boom},
		},
	}
	repo := &UserRepository{db: db}

	user := &types.User{Email: "owner@example.com", Role: types.RoleCompany}
	company := &types.Company{CompanyName: "Honeyworks"}

	err := repo.Register(context.Background(), user, company)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, db.committed, "a failed company insert must not commit the user")
	assert.True(t, db.rolledBack)
}

func TestDeleteRemovesCompanyRowFirst(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{tag: pgconn.NewCommandTag("DELETE 1")}, // companies
			{tag: pgconn.NewCommandTag("DELETE 1")}, // users
		},
	}
	repo := &UserRepository{db: db}

	require.NoError(t, repo.Delete(context.Background(), 7))
	assert.True(t, db.committed)

	require.Len(t, db.statements, 2)
	assert.Contains(t, db.statements[0].sql, "DELETE FROM companies")
	assert.Contains(t, db.statements[1].sql, "DELETE FROM users")
}

func TestDeleteUnknownUser(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{tag: pgconn.NewCommandTag("DELETE 0")},
			{tag: pgconn.NewCommandTag("DELETE 0")},
		},
	}
	repo := &UserRepository{db: db}

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, types.ErrUserNotFound)
	assert.False(t, db.committed)
	assert.True(t, db.rolledBack)
}

func TestUpdateUnknownUser(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{tag: pgconn.NewCommandTag("UPDATE 0")},
		},
	}
	repo := &UserRepository{db: db}

	err := repo.Update(context.Background(), 99, &types.User{Email: "x@example.com"})
	assert.ErrorIs(t, err, types.ErrUserNotFound)
}

func TestUserColumnsStayPlaceholderBased(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{tag: pgconn.NewCommandTag("UPDATE 1")},
		},
	}
	repo := &UserRepository{db: db}

	require.NoError(t, repo.ResetPassword(context.Background(), "x@example.com", "hash"))
	require.Len(t, db.statements, 1)
	assert.True(t, strings.Contains(db.statements[0].sql, "$1"), "statements must use positional placeholders")
	assert.NotContains(t, db.statements[0].sql, "hash", "values must never be inlined into SQL")
}
