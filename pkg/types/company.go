package types

import "time"

type Company struct {
	CompanyID       int64     `db:"company_id" json:"companyId"`
	CompanyName     string    `db:"company_name" json:"companyName"`
	ContactEmail    string    `db:"contact_email" json:"contactEmail"`
	ContactPhone    string    `db:"contact_phone" json:"contactPhone"`
	Description     string    `db:"description" json:"description"`
	DateJoined      time.Time `db:"date_joined" json:"dateJoined"`
	Status          string    `db:"status" json:"status"`
	RejectionReason *string   `db:"rejection_reason" json:"rejectionReason,omitempty"`
	UserID          int64     `db:"user_id" json:"userId"`
}
