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

var (
	attachmentColumns     = utils.StructTagValues(types.Attachment{})
	attachmentInfoColumns = utils.StructTagValues(types.AttachmentInfo{})
)

type AttachmentRepository struct {
	db DB
}

func NewAttachmentRepository(pool *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{db: pool}
}

// InfosByRequest lists attachment metadata without pulling payloads.
func (r *AttachmentRepository) InfosByRequest(ctx context.Context, requestID int64) ([]*types.AttachmentInfo, error) {
	query, args, err := psql().
		Select(attachmentInfoColumns...).
		From(attachmentTableName).
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("uploaded_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate attachment infos query: %w", err)
	}

	var infos []*types.AttachmentInfo
	err = pgxscan.Select(ctx, r.db, &infos, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attachment infos: %w", err)
	}

	return infos, nil
}

// Attachment fetches a full attachment, payload included, for download.
func (r *AttachmentRepository) Attachment(ctx context.Context, attachmentID int64) (*types.Attachment, error) {
	query, args, err := psql().
		Select(attachmentColumns...).
		From(attachmentTableName).
		Where(sq.Eq{"attachment_id": attachmentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate attachment query: %w", err)
	}

	var attachment types.Attachment
	err = pgxscan.Get(ctx, r.db, &attachment, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch attachment: %w", err)
	}

	return &attachment, nil
}
