package types

import "time"

// Document is a deliverable uploaded by a company against a funding request.
// Its status mirrors the parent request for the received and closed
// transitions; those changes always happen together in one transaction.
type Document struct {
	DocumentID   int64     `db:"document_id" json:"documentId"`
	DocumentName string    `db:"document_name" json:"documentName"`
	DocumentType string    `db:"document_type" json:"documentType"`
	UploadDate   time.Time `db:"upload_date" json:"uploadDate"`
	Status       string    `db:"status" json:"status"`
	CompanyID    int64     `db:"company_id" json:"companyId"`
	RequestID    int64     `db:"request_id" json:"requestId"`
	FileContent  []byte    `db:"file_content" json:"-"`
}

// DocumentSummary joins a document with its company and request for the
// admin listing.
type DocumentSummary struct {
	DocumentID         int64     `db:"document_id" json:"documentId"`
	DocumentName       string    `db:"document_name" json:"documentName"`
	DocumentType       string    `db:"document_type" json:"documentType"`
	UploadDate         time.Time `db:"upload_date" json:"uploadDate"`
	Status             string    `db:"status" json:"status"`
	CompanyID          int64     `db:"company_id" json:"companyId"`
	RequestID          int64     `db:"request_id" json:"requestId"`
	CompanyName        string    `db:"company_name" json:"companyName"`
	ProjectDescription string    `db:"project_description" json:"projectDescription"`
}
