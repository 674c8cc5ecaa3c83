package store

import (
	"context"
	"testing"
	"time"

	"bumblebee/internal/pii"
	"bumblebee/internal/utils"
	"bumblebee/pkg/types"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDonationEncryptsDonorFields(t *testing.T) {
	cipher := pii.New("unit-test-key")
	db := &fakeDB{
		steps: []stmtResult{
			{vals: []any{int64(21)}},
		},
	}
	repo := &DonationRepository{db: db, cipher: cipher}

	donation := &types.Donation{
		DonationType:   "Monetary",
		DonationAmount: 1500,
		DonorName:      "Sipho Dlamini",
		DonorIDNumber:  "8203155012089",
		DonorTaxNumber: "9012345678",
		DonorEmail:     "sipho@example.net",
	}

	require.NoError(t, repo.Create(context.Background(), donation))

	assert.Equal(t, int64(21), donation.DonationID)
	assert.Len(t, donation.ReferenceCode, utils.NanoidSize)
	assert.Equal(t, types.PaymentStatusPending, donation.PaymentStatus)

	require.Len(t, db.statements, 1)
	args := db.statements[0].args
	assert.NotContains(t, args, "8203155012089", "plaintext id number must never reach the database")
	assert.NotContains(t, args, "9012345678", "plaintext tax number must never reach the database")

	// Insert column order: reference, company, date, type, amount, name,
	// id number, tax number, email, phone, document, status.
	encryptedID, ok := args[6].(string)
	require.True(t, ok)
	decrypted, err := cipher.Decrypt(encryptedID)
	require.NoError(t, err)
	assert.Equal(t, "8203155012089", decrypted)

	encryptedTax, ok := args[7].(string)
	require.True(t, ok)
	decrypted, err = cipher.Decrypt(encryptedTax)
	require.NoError(t, err)
	assert.Equal(t, "9012345678", decrypted)
}

func TestDonationDecryptsOnDetailRead(t *testing.T) {
	cipher := pii.New("unit-test-key")

	encryptedID, err := cipher.Encrypt("8203155012089")
	require.NoError(t, err)
	encryptedTax, err := cipher.Encrypt("9012345678")
	require.NoError(t, err)

	when := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	db := &fakeDB{
		queries: []queryResult{
			{
				cols: donationColumns,
				rows: [][]any{{
					int64(21), "ref123abc456", int64(3), when, "Monetary", 1500.0,
					"Sipho Dlamini", encryptedID, encryptedTax,
					"sipho@example.net", "", []byte(nil), types.PaymentStatusPending,
				}},
			},
		},
	}
	repo := &DonationRepository{db: db, cipher: cipher}

	donation, err := repo.Donation(context.Background(), 21)
	require.NoError(t, err)

	assert.Equal(t, "8203155012089", donation.DonorIDNumber)
	assert.Equal(t, "9012345678", donation.DonorTaxNumber)
	assert.Equal(t, "ref123abc456", donation.ReferenceCode)
	require.NotNil(t, donation.CompanyID)
	assert.Equal(t, int64(3), *donation.CompanyID)
}

func TestDonationUndecryptableRowIsAnError(t *testing.T) {
	writer := pii.New("writer-key")
	reader := pii.New("reader-key")

	encryptedID, err := writer.Encrypt("8203155012089")
	require.NoError(t, err)

	db := &fakeDB{
		queries: []queryResult{
			{
				cols: donationColumns,
				rows: [][]any{{
					int64(21), "ref123abc456", nil, time.Now(), "Monetary", 1500.0,
					"Sipho Dlamini", encryptedID, "not base64 at all!",
					"sipho@example.net", "", []byte(nil), types.PaymentStatusPending,
				}},
			},
		},
	}
	repo := &DonationRepository{db: db, cipher: reader}

	_, err = repo.Donation(context.Background(), 21)
	require.Error(t, err, "a row that cannot be decrypted must not come back as garbage")
}

func TestDonationNotFound(t *testing.T) {
	db := &fakeDB{
		queries: []queryResult{
			{cols: donationColumns},
		},
	}
	repo := &DonationRepository{db: db, cipher: pii.New("unit-test-key")}

	_, err := repo.Donation(context.Background(), 404)
	assert.ErrorIs(t, err, types.ErrDonationNotFound)
}

func TestApproveDonationMarksPaymentProcessed(t *testing.T) {
	db := &fakeDB{
		steps: []stmtResult{
			{tag: pgconn.NewCommandTag("UPDATE 1")},
		},
	}
	repo := &DonationRepository{db: db, cipher: pii.New("unit-test-key")}

	require.NoError(t, repo.Approve(context.Background(), 21))
	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0].args, types.PaymentStatusProcessed)
}

func TestDonationDocumentMissingPayload(t *testing.T) {
	db := &fakeDB{
		queries: []queryResult{
			{
				cols: []string{"document_path", "donor_name", "donation_date"},
				rows: [][]any{{[]byte(nil), "Sipho Dlamini", time.Now()}},
			},
		},
	}
	repo := &DonationRepository{db: db, cipher: pii.New("unit-test-key")}

	_, _, _, err := repo.DonationDocument(context.Background(), 21)
	assert.ErrorIs(t, err, types.ErrDocumentNotFound)
}

func TestDonationDocumentReturnsNamingFields(t *testing.T) {
	when := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	db := &fakeDB{
		queries: []queryResult{
			{
				cols: []string{"document_path", "donor_name", "donation_date"},
				rows: [][]any{{[]byte("%PDF-1.7 receipt"), "Sipho Dlamini", when}},
			},
		},
	}
	repo := &DonationRepository{db: db, cipher: pii.New("unit-test-key")}

	content, donorName, donationDate, err := repo.DonationDocument(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 receipt"), content)
	assert.Equal(t, "Sipho Dlamini", donorName)
	assert.Equal(t, when, donationDate)
}
