package store

import (
	"context"
	"errors"
	"testing"

	"bumblebee/pkg/types"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFundingRequestWithAttachments(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{vals: []any{int64(11)}}, // request insert
			{vals: []any{int64(1)}},  // first attachment
			{vals: []any{int64(2)}},  // second attachment
		},
	}
	repo := &FundingRequestRepository{db: db}

	request := &types.FundingRequest{
		CompanyID:          3,
		ProjectDescription: "New kitchens",
		RequestedAmount:    85000,
		ProjectImpact:      "400 meals per week",
	}
	attachments := []types.Attachment{
		{FileName: "quote.pdf", FileContent: []byte("%PDF-1.7"), ContentType: "application/pdf"},
		{FileName: "budget.txt", FileContent: []byte("line items"), ContentType: "text/plain"},
	}

	require.NoError(t, repo.Create(context.Background(), request, attachments))

	assert.Equal(t, int64(11), request.RequestID)
	assert.Equal(t, types.StatusPending, request.Status)
	assert.True(t, db.committed)

	require.Len(t, db.statements, 3)
	assert.Contains(t, db.statements[0].sql, "INSERT INTO funding_requests")
	for i, attachment := range attachments {
		assert.Equal(t, int64(11), attachment.RequestID, "attachment %d must reference the generated request", i)
		assert.Equal(t, request.SubmittedAt, attachment.UploadedAt)
		assert.Contains(t, db.statements[i+1].sql, "INSERT INTO funding_request_attachments")
	}
	assert.Equal(t, int64(1), attachments[0].AttachmentID)
	assert.Equal(t, int64(2), attachments[1].AttachmentID)
}

func TestCreateFundingRequestWithoutAttachments(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{vals: []any{int64(11)}},
		},
	}
	repo := &FundingRequestRepository{db: db}

	require.NoError(t, repo.Create(context.Background(), &types.FundingRequest{CompanyID: 3}, nil))
	assert.True(t, db.committed)
	require.Len(t, db.statements, 1)
}

func TestCreateFundingRequestRollsBackWhenAttachmentFails(t *testing.T) {
	boom := errors.New("value too large")
	db := &fakeDB{
		steps: []stmtResult{
			{vals: []any{int64(11)}},
			{vals: []any{int64(1)}},
			{err: boom},
		},
	}
	repo := &FundingRequestRepository{db: db}

	request := &types.FundingRequest{CompanyID: 3}
	attachments := []types.Attachment{
		{FileName: "one.txt", FileContent: []byte("a")},
		{FileName: "two.txt", FileContent: []byte("b")},
	}

	err := repo.Create(context.Background(), request, attachments)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, db.committed, "a failed attachment must take the request down with it")
	assert.True(t, db.rolledBack)
}

func TestApproveFundingRequestStoresAdminMessage(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{tag: pgconn.NewCommandTag("UPDATE 1")},
		},
	}
	repo := &FundingRequestRepository{db: db}

	require.NoError(t, repo.Approve(context.Background(), 11, "approved for Q3"))
	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0].args, types.StatusApproved)
	assert.Contains(t, db.statements[0].args, "approved for Q3")
}

func TestApproveFundingRequestNotFound(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{tag: pgconn.NewCommandTag("UPDATE 0")},
		},
	}
	repo := &FundingRequestRepository{db: db}

	assert.ErrorIs(t, repo.Approve(context.Background(), 99, ""), types.ErrFundingRequestNotFound)
}
