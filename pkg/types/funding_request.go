package types

import "time"

type FundingRequest struct {
	RequestID          int64     `db:"request_id" json:"requestId"`
	CompanyID          int64     `db:"company_id" json:"companyId"`
	ProjectDescription string    `db:"project_description" json:"projectDescription"`
	RequestedAmount    float64   `db:"requested_amount" json:"requestedAmount"`
	ProjectImpact      string    `db:"project_impact" json:"projectImpact"`
	Status             string    `db:"status" json:"status"`
	SubmittedAt        time.Time `db:"submitted_at" json:"submittedAt"`
	AdminMessage       *string   `db:"admin_message" json:"adminMessage,omitempty"`
}

// FundingRequestSummary is a funding request joined with its company for
// listing screens. HasAttachments is derived, not stored.
type FundingRequestSummary struct {
	FundingRequest
	CompanyName    string `db:"company_name" json:"companyName"`
	HasAttachments bool   `db:"has_attachments" json:"hasAttachments"`
}

// Attachment is a file uploaded alongside a funding request. FileContent is
// written once at submission and never mutated. ContentType holds the
// client-declared type, which is an untrusted hint; downloads re-classify
// the payload from its leading bytes.
type Attachment struct {
	AttachmentID int64     `db:"attachment_id" json:"attachmentId"`
	RequestID    int64     `db:"request_id" json:"requestId"`
	FileName     string    `db:"file_name" json:"fileName"`
	FileContent  []byte    `db:"file_content" json:"-"`
	ContentType  string    `db:"content_type" json:"-"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploadedAt"`
}

// AttachmentInfo is attachment metadata without the payload.
type AttachmentInfo struct {
	AttachmentID int64     `db:"attachment_id" json:"attachmentId"`
	RequestID    int64     `db:"request_id" json:"requestId"`
	FileName     string    `db:"file_name" json:"fileName"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploadedAt"`
}
