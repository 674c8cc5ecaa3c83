package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bumblebee/internal/utils"
	"bumblebee/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentTableName = "documents"

var documentColumns = utils.StructTagValues(types.Document{})

var documentSummaryColumns = []string{
	"d.document_id",
	"d.document_name",
	"d.document_type",
	"d.upload_date",
	"d.status",
	"d.company_id",
	"d.request_id",
	"c.company_name",
	"fr.project_description",
}

type DocumentRepository struct {
	db DB
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: pool}
}

// Create inserts a document uploaded against a funding request. The payload
// is written once here and never mutated afterward; only status changes.
func (r *DocumentRepository) Create(ctx context.Context, doc *types.Document) error {
	doc.Status = types.StatusPending
	doc.UploadDate = time.Now()

	query, args, err := psql().
		Insert(documentTableName).
		Columns("document_name", "document_type", "upload_date", "status", "company_id", "request_id", "file_content").
		Values(doc.DocumentName, doc.DocumentType, doc.UploadDate, doc.Status, doc.CompanyID, doc.RequestID, doc.FileContent).
		Suffix("RETURNING document_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create document query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&doc.DocumentID); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

func (r *DocumentRepository) Summaries(ctx context.Context) ([]*types.DocumentSummary, error) {
	query, args, err := psql().
		Select(documentSummaryColumns...).
		From(documentTableName + " d").
		Join("companies c ON d.company_id = c.company_id").
		Join("funding_requests fr ON d.request_id = fr.request_id").
		OrderBy("d.upload_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document summaries query: %w", err)
	}

	var summaries []*types.DocumentSummary
	err = pgxscan.Select(ctx, r.db, &summaries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document summaries: %w", err)
	}

	return summaries, nil
}

// Document fetches a full document, payload included, for download.
func (r *DocumentRepository) Document(ctx context.Context, documentID int64) (*types.Document, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(sq.Eq{"document_id": documentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document query: %w", err)
	}

	var doc types.Document
	err = pgxscan.Get(ctx, r.db, &doc, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	return &doc, nil
}

func (r *DocumentRepository) Approve(ctx context.Context, documentID int64) error {
	return r.setStatus(ctx, documentID, types.StatusApproved)
}

func (r *DocumentRepository) Reject(ctx context.Context, documentID int64) error {
	return r.setStatus(ctx, documentID, types.StatusRejected)
}

func (r *DocumentRepository) setStatus(ctx context.Context, documentID int64, status string) error {
	query, args, err := psql().
		Update(documentTableName).
		Set("status", status).
		Where(sq.Eq{"document_id": documentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate document status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrDocumentNotFound
	}

	return nil
}

// MarkReceived moves a document to DocumentsReceived and carries its parent
// funding request along. Document update, parent lookup, and parent update
// share one transaction: readers never observe the document received while
// the request is not.
func (r *DocumentRepository) MarkReceived(ctx context.Context, documentID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin mark-received transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := psql().
		Update(documentTableName).
		Set("status", types.StatusDocumentsReceived).
		Where(sq.Eq{"document_id": documentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate mark-received document query: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark document received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrDocumentNotFound
	}

	requestID, err := requestIDForDocument(ctx, tx, documentID)
	if err != nil {
		return err
	}

	query, args, err = psql().
		Update(fundingRequestTableName).
		Set("status", types.StatusDocumentsReceived).
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate mark-received request query: %w", err)
	}

	tag, err = tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark funding request received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrFundingRequestNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit mark-received transaction: %w", err)
	}

	return nil
}

// CloseRequest resolves the funding request owning the given document,
// closes it, and closes every sibling document of that request. All the
// sibling documents transition together or none do.
func (r *DocumentRepository) CloseRequest(ctx context.Context, documentID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin close-request transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	requestID, err := requestIDForDocument(ctx, tx, documentID)
	if err != nil {
		return err
	}

	query, args, err := psql().
		Update(fundingRequestTableName).
		Set("status", types.StatusClosed).
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate close request query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to close funding request: %w", err)
	}

	query, args, err = psql().
		Update(documentTableName).
		Set("status", types.StatusClosed).
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate close documents query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to close documents: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit close-request transaction: %w", err)
	}

	return nil
}

func requestIDForDocument(ctx context.Context, tx pgx.Tx, documentID int64) (int64, error) {
	query, args, err := psql().
		Select("request_id").
		From(documentTableName).
		Where(sq.Eq{"document_id": documentID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate request-id lookup: %w", err)
	}

	var requestID int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&requestID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, types.ErrDocumentNotFound
		}
		return 0, fmt.Errorf("failed to resolve request for document: %w", err)
	}

	return requestID, nil
}
