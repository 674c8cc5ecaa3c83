package types

import "time"

type DashboardStats struct {
	TotalUsers           int64 `json:"totalUsers"`
	TotalCompanies       int64 `json:"totalCompanies"`
	TotalDonations       int64 `json:"totalDonations"`
	TotalFundingRequests int64 `json:"totalFundingRequests"`
}

type DonationReportItem struct {
	DonationID     int64     `db:"donation_id" json:"donationId"`
	DonationDate   time.Time `db:"donation_date" json:"donationDate"`
	DonationType   string    `db:"donation_type" json:"donationType"`
	DonationAmount float64   `db:"donation_amount" json:"donationAmount"`
	DonorName      string    `db:"donor_name" json:"donorName"`
	CompanyName    *string   `db:"company_name" json:"companyName,omitempty"`
}

type FundingRequestReportItem struct {
	RequestID          int64     `db:"request_id" json:"requestId"`
	CompanyName        string    `db:"company_name" json:"companyName"`
	ContactEmail       string    `db:"contact_email" json:"contactEmail"`
	ContactPhone       string    `db:"contact_phone" json:"contactPhone"`
	ProjectDescription string    `db:"project_description" json:"projectDescription"`
	ProjectImpact      *string   `db:"project_impact" json:"projectImpact,omitempty"`
	RequestedAmount    float64   `db:"requested_amount" json:"requestedAmount"`
	Status             string    `db:"status" json:"status"`
	AdminMessage       *string   `db:"admin_message" json:"adminMessage,omitempty"`
	SubmittedAt        time.Time `db:"submitted_at" json:"submittedAt"`
}
