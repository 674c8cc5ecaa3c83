package store

import (
	"context"
	"fmt"
	"time"

	"bumblebee/internal/pii"
	"bumblebee/internal/utils"
	"bumblebee/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const donationTableName = "donations"

var donationColumns = utils.StructTagValues(types.Donation{})

var donationSummaryColumns = []string{
	"d.donation_id",
	"d.company_id",
	"c.company_name",
	"d.donation_date",
	"d.donation_type",
	"d.donation_amount",
	"d.donor_name",
	"d.donor_email",
	"d.payment_status",
	"d.document_path IS NOT NULL AS has_document",
}

// DonationRepository persists donations. Donor identity and tax numbers are
// encrypted before any statement is built, so plaintext never reaches the
// database; the detail read path is the only one that decrypts.
type DonationRepository struct {
	db     DB
	cipher *pii.Cipher
}

func NewDonationRepository(pool *pgxpool.Pool, cipher *pii.Cipher) *DonationRepository {
	return &DonationRepository{db: pool, cipher: cipher}
}

// Create inserts a donation with an optional supporting document. The
// reference code is a shareable identifier returned to the donor alongside
// the generated row id.
func (r *DonationRepository) Create(ctx context.Context, donation *types.Donation) error {
	encryptedID, err := r.cipher.Encrypt(donation.DonorIDNumber)
	if err != nil {
		return fmt.Errorf("failed to encrypt donor id number: %w", err)
	}

	encryptedTax, err := r.cipher.Encrypt(donation.DonorTaxNumber)
	if err != nil {
		return fmt.Errorf("failed to encrypt donor tax number: %w", err)
	}

	donation.ReferenceCode = utils.NanoID()
	donation.DonationDate = time.Now()
	donation.PaymentStatus = types.PaymentStatusPending

	query, args, err := psql().
		Insert(donationTableName).
		Columns("reference_code", "company_id", "donation_date", "donation_type", "donation_amount",
			"donor_name", "donor_id_number", "donor_tax_number", "donor_email", "donor_phone",
			"document_path", "payment_status").
		Values(donation.ReferenceCode, donation.CompanyID, donation.DonationDate, donation.DonationType, donation.DonationAmount,
			donation.DonorName, encryptedID, encryptedTax, donation.DonorEmail, donation.DonorPhone,
			donation.DocumentPath, donation.PaymentStatus).
		Suffix("RETURNING donation_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create donation query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&donation.DonationID); err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	return nil
}

// Donation is the authorized detail read: donor identity and tax numbers
// come back decrypted. A row whose ciphertext cannot be decrypted is
// reported as an error, never as plaintext-looking garbage.
func (r *DonationRepository) Donation(ctx context.Context, donationID int64) (*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"donation_id": donationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation query: %w", err)
	}

	var donation types.Donation
	err = pgxscan.Get(ctx, r.db, &donation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to fetch donation: %w", err)
	}

	donation.DonorIDNumber, err = r.cipher.Decrypt(donation.DonorIDNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt donor id number: %w", err)
	}

	donation.DonorTaxNumber, err = r.cipher.Decrypt(donation.DonorTaxNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt donor tax number: %w", err)
	}

	return &donation, nil
}

func (r *DonationRepository) Summaries(ctx context.Context) ([]*types.DonationSummary, error) {
	query, args, err := psql().
		Select(donationSummaryColumns...).
		From(donationTableName + " d").
		LeftJoin("companies c ON d.company_id = c.company_id").
		OrderBy("d.donation_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation summaries query: %w", err)
	}

	var summaries []*types.DonationSummary
	err = pgxscan.Select(ctx, r.db, &summaries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donation summaries: %w", err)
	}

	return summaries, nil
}

// ByDonorEmail lists a donor's own donations. Sensitive fields stay out of
// the column list entirely.
func (r *DonationRepository) ByDonorEmail(ctx context.Context, email string) ([]*types.DonationSummary, error) {
	query, args, err := psql().
		Select(donationSummaryColumns...).
		From(donationTableName + " d").
		LeftJoin("companies c ON d.company_id = c.company_id").
		Where(sq.Eq{"d.donor_email": email}).
		OrderBy("d.donation_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donations-by-email query: %w", err)
	}

	var summaries []*types.DonationSummary
	err = pgxscan.Select(ctx, r.db, &summaries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donations by email: %w", err)
	}

	return summaries, nil
}

// Approve marks a donation's payment as processed.
func (r *DonationRepository) Approve(ctx context.Context, donationID int64) error {
	query, args, err := psql().
		Update(donationTableName).
		Set("payment_status", types.PaymentStatusProcessed).
		Where(sq.Eq{"donation_id": donationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate approve donation query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to approve donation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrDonationNotFound
	}

	return nil
}

// DonationDocument returns the supporting document payload plus the fields
// used to build a download filename. Absent payloads map to not-found.
func (r *DonationRepository) DonationDocument(ctx context.Context, donationID int64) ([]byte, string, time.Time, error) {
	query, args, err := psql().
		Select("document_path", "donor_name", "donation_date").
		From(donationTableName).
		Where(sq.Eq{"donation_id": donationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("failed to generate donation document query: %w", err)
	}

	var row struct {
		DocumentPath []byte    `db:"document_path"`
		DonorName    string    `db:"donor_name"`
		DonationDate time.Time `db:"donation_date"`
	}
	err = pgxscan.Get(ctx, r.db, &row, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, "", time.Time{}, types.ErrDonationNotFound
		}
		return nil, "", time.Time{}, fmt.Errorf("failed to fetch donation document: %w", err)
	}

	if len(row.DocumentPath) == 0 {
		return nil, "", time.Time{}, types.ErrDocumentNotFound
	}

	return row.DocumentPath, row.DonorName, row.DonationDate, nil
}
