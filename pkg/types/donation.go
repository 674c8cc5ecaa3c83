package types

import "time"

// Donation records a contribution. DonorIDNumber and DonorTaxNumber are
// persisted as ciphertext only; the store encrypts before insert and
// decrypts on the authorized detail read path.
type Donation struct {
	DonationID     int64     `db:"donation_id" json:"donationId"`
	ReferenceCode  string    `db:"reference_code" json:"referenceCode"`
	CompanyID      *int64    `db:"company_id" json:"companyId,omitempty"`
	DonationDate   time.Time `db:"donation_date" json:"donationDate"`
	DonationType   string    `db:"donation_type" json:"donationType"`
	DonationAmount float64   `db:"donation_amount" json:"donationAmount"`
	DonorName      string    `db:"donor_name" json:"donorName"`
	DonorIDNumber  string    `db:"donor_id_number" json:"donorIdNumber,omitempty"`
	DonorTaxNumber string    `db:"donor_tax_number" json:"donorTaxNumber,omitempty"`
	DonorEmail     string    `db:"donor_email" json:"donorEmail"`
	DonorPhone     string    `db:"donor_phone" json:"donorPhone"`
	DocumentPath   []byte    `db:"document_path" json:"-"`
	PaymentStatus  string    `db:"payment_status" json:"paymentStatus"`
}

// DonationSummary is a donation joined with its company for listings.
// Sensitive donor fields are omitted.
type DonationSummary struct {
	DonationID     int64     `db:"donation_id" json:"donationId"`
	CompanyID      *int64    `db:"company_id" json:"companyId,omitempty"`
	CompanyName    *string   `db:"company_name" json:"companyName,omitempty"`
	DonationDate   time.Time `db:"donation_date" json:"donationDate"`
	DonationType   string    `db:"donation_type" json:"donationType"`
	DonationAmount float64   `db:"donation_amount" json:"donationAmount"`
	DonorName      string    `db:"donor_name" json:"donorName"`
	DonorEmail     string    `db:"donor_email" json:"donorEmail"`
	PaymentStatus  string    `db:"payment_status" json:"paymentStatus"`
	HasDocument    bool      `db:"has_document" json:"hasDocument"`
}
