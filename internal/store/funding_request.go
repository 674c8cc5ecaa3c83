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

const (
	fundingRequestTableName = "funding_requests"
	attachmentTableName     = "funding_request_attachments"
)

var fundingRequestColumns = utils.StructTagValues(types.FundingRequest{})

// summaryColumns join funding requests with their company. has_attachments
// is derived at read time, never stored.
var fundingRequestSummaryColumns = []string{
	"fr.request_id",
	"fr.company_id",
	"fr.project_description",
	"fr.requested_amount",
	"fr.project_impact",
	"fr.status",
	"fr.submitted_at",
	"fr.admin_message",
	"c.company_name",
	"EXISTS (SELECT 1 FROM funding_request_attachments fra WHERE fra.request_id = fr.request_id) AS has_attachments",
}

type FundingRequestRepository struct {
	db DB
}

func NewFundingRequestRepository(pool *pgxpool.Pool) *FundingRequestRepository {
	return &FundingRequestRepository{db: pool}
}

// Create inserts the funding request and all of its attachments as one
// unit. A failed attachment insert rolls the request back with it, so a
// submission is never half stored.
func (r *FundingRequestRepository) Create(ctx context.Context, request *types.FundingRequest, attachments []types.Attachment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin funding request transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	request.Status = types.StatusPending
	request.SubmittedAt = time.Now()

	query, args, err := psql().
		Insert(fundingRequestTableName).
		Columns("company_id", "project_description", "requested_amount", "project_impact", "status", "submitted_at").
		Values(request.CompanyID, request.ProjectDescription, request.RequestedAmount, request.ProjectImpact, request.Status, request.SubmittedAt).
		Suffix("RETURNING request_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate funding request insert: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&request.RequestID); err != nil {
		return fmt.Errorf("failed to insert funding request: %w", err)
	}

	for i := range attachments {
		attachments[i].RequestID = request.RequestID
		attachments[i].UploadedAt = request.SubmittedAt

		query, args, err = psql().
			Insert(attachmentTableName).
			Columns("request_id", "file_name", "file_content", "content_type", "uploaded_at").
			Values(attachments[i].RequestID, attachments[i].FileName, attachments[i].FileContent, attachments[i].ContentType, attachments[i].UploadedAt).
			Suffix("RETURNING attachment_id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate attachment insert: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&attachments[i].AttachmentID); err != nil {
			return fmt.Errorf("failed to insert attachment %q: %w", attachments[i].FileName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit funding request transaction: %w", err)
	}

	return nil
}

func (r *FundingRequestRepository) Request(ctx context.Context, requestID int64) (*types.FundingRequest, error) {
	query, args, err := psql().
		Select(fundingRequestColumns...).
		From(fundingRequestTableName).
		Where(sq.Eq{"request_id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate funding request query: %w", err)
	}

	var request types.FundingRequest
	err = pgxscan.Get(ctx, r.db, &request, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrFundingRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch funding request: %w", err)
	}

	return &request, nil
}

func (r *FundingRequestRepository) Summaries(ctx context.Context) ([]*types.FundingRequestSummary, error) {
	query, args, err := psql().
		Select(fundingRequestSummaryColumns...).
		From(fundingRequestTableName + " fr").
		Join("companies c ON fr.company_id = c.company_id").
		OrderBy("fr.submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate funding request summaries query: %w", err)
	}

	var summaries []*types.FundingRequestSummary
	err = pgxscan.Select(ctx, r.db, &summaries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch funding request summaries: %w", err)
	}

	return summaries, nil
}

func (r *FundingRequestRepository) Details(ctx context.Context, requestID int64) (*types.FundingRequestSummary, error) {
	query, args, err := psql().
		Select(fundingRequestSummaryColumns...).
		From(fundingRequestTableName + " fr").
		Join("companies c ON fr.company_id = c.company_id").
		Where(sq.Eq{"fr.request_id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate funding request details query: %w", err)
	}

	var summary types.FundingRequestSummary
	err = pgxscan.Get(ctx, r.db, &summary, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrFundingRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch funding request details: %w", err)
	}

	return &summary, nil
}

func (r *FundingRequestRepository) Approve(ctx context.Context, requestID int64, adminMessage string) error {
	query, args, err := psql().
		Update(fundingRequestTableName).
		Set("status", types.StatusApproved).
		Set("admin_message", nullable(adminMessage)).
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate approve funding request query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to approve funding request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrFundingRequestNotFound
	}

	return nil
}

func (r *FundingRequestRepository) Reject(ctx context.Context, requestID int64) error {
	query, args, err := psql().
		Update(fundingRequestTableName).
		Set("status", types.StatusRejected).
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate reject funding request query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to reject funding request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrFundingRequestNotFound
	}

	return nil
}

func (r *FundingRequestRepository) History(ctx context.Context, companyID int64) ([]*types.FundingRequest, error) {
	query, args, err := psql().
		Select(fundingRequestColumns...).
		From(fundingRequestTableName).
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate funding request history query: %w", err)
	}

	var requests []*types.FundingRequest
	err = pgxscan.Select(ctx, r.db, &requests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch funding request history: %w", err)
	}

	return requests, nil
}

// ForDonors lists requests donors may contribute to: approved ones plus
// closed ones kept visible for transparency.
func (r *FundingRequestRepository) ForDonors(ctx context.Context) ([]*types.FundingRequestSummary, error) {
	query, args, err := psql().
		Select(fundingRequestSummaryColumns...).
		From(fundingRequestTableName + " fr").
		Join("companies c ON fr.company_id = c.company_id").
		Where(sq.Eq{"fr.status": []string{types.StatusApproved, types.StatusClosed}}).
		OrderBy("fr.submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donor funding requests query: %w", err)
	}

	var summaries []*types.FundingRequestSummary
	err = pgxscan.Select(ctx, r.db, &summaries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donor funding requests: %w", err)
	}

	return summaries, nil
}

func (r *FundingRequestRepository) Search(ctx context.Context, term string) ([]*types.FundingRequestSummary, error) {
	pattern := "%" + term + "%"

	query, args, err := psql().
		Select(fundingRequestSummaryColumns...).
		From(fundingRequestTableName + " fr").
		Join("companies c ON fr.company_id = c.company_id").
		Where(sq.Eq{"fr.status": []string{types.StatusPending, types.StatusApproved, types.StatusRejected}}).
		Where(sq.Or{
			sq.ILike{"c.company_name": pattern},
			sq.ILike{"fr.project_description": pattern},
		}).
		OrderBy("fr.submitted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate funding request search query: %w", err)
	}

	var summaries []*types.FundingRequestSummary
	err = pgxscan.Select(ctx, r.db, &summaries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search funding requests: %w", err)
	}

	return summaries, nil
}
