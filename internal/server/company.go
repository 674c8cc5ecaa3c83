package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"bumblebee/pkg/types"
)

// allowedUploadExtensions is the allowlist for company uploads. The check
// is on the declared filename only; downloads re-classify from content.
var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// readUpload validates an uploaded file against the extension allowlist and
// the configured size cap, then reads it fully into memory. Payloads live in
// relational columns, so the whole file has to fit before the insert.
func (s *Service) readUpload(header *multipart.FileHeader) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExtensions[ext] {
		return nil, fmt.Errorf("file type %q is not allowed", ext)
	}

	if header.Size > s.config.MaxUploadBytes {
		return nil, fmt.Errorf("file %q exceeds the %d byte limit", header.Filename, s.config.MaxUploadBytes)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, s.config.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(content)) > s.config.MaxUploadBytes {
		return nil, fmt.Errorf("file %q exceeds the %d byte limit", header.Filename, s.config.MaxUploadBytes)
	}

	return content, nil
}

// handleCompanyInfo returns a company record. With a userId query parameter
// the lookup is scoped to that owner, so a company actor can only read its
// own record.
func (s *Service) handleCompanyInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var company *types.Company
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			s.badRequest(w, "invalid userId")
			return
		}
		company, err = s.companies.CompanyForUser(r.Context(), id, userID)
		if err != nil {
			s.respondStoreError(w, err, "failed to fetch company for user")
			return
		}
	} else {
		company, err = s.companies.Company(r.Context(), id)
		if err != nil {
			s.respondStoreError(w, err, "failed to fetch company")
			return
		}
	}

	s.respondJSON(w, http.StatusOK, company)
}

func (s *Service) handleFundingRequestHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	requests, err := s.requests.History(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch funding request history")
		return
	}
	s.respondJSON(w, http.StatusOK, requests)
}

type fundingRequestInput struct {
	CompanyID          int64   `form:"companyId"`
	ProjectDescription string  `form:"projectDescription"`
	RequestedAmount    float64 `form:"requestedAmount"`
	ProjectImpact      string  `form:"projectImpact"`
}

func (in *fundingRequestInput) validate() map[string]string {
	fieldErrors := map[string]string{}

	if in.CompanyID <= 0 {
		fieldErrors["companyId"] = "a valid company id is required"
	}
	if strings.TrimSpace(in.ProjectDescription) == "" {
		fieldErrors["projectDescription"] = "project description is required"
	}
	if in.RequestedAmount <= 0 {
		fieldErrors["requestedAmount"] = "requested amount must be positive"
	}
	if strings.TrimSpace(in.ProjectImpact) == "" {
		fieldErrors["projectImpact"] = "project impact is required"
	}

	return fieldErrors
}

// handleRequestFunding accepts a multipart submission: the request fields
// plus zero or more attachment files. The request and its attachments are
// stored in one transaction.
func (s *Service) handleRequestFunding(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.badRequest(w, "invalid multipart form")
		return
	}

	var input fundingRequestInput
	if err := decoder.Decode(&input, r.MultipartForm.Value); err != nil {
		s.badRequest(w, "invalid form values")
		return
	}

	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		s.respondJSON(w, http.StatusBadRequest, map[string]any{"fieldErrors": fieldErrors})
		return
	}

	var attachments []types.Attachment
	for _, header := range r.MultipartForm.File["attachments"] {
		content, err := s.readUpload(header)
		if err != nil {
			s.badRequest(w, err.Error())
			return
		}

		attachments = append(attachments, types.Attachment{
			FileName:    header.Filename,
			FileContent: content,
			ContentType: header.Header.Get("Content-Type"),
		})
	}

	request := &types.FundingRequest{
		CompanyID:          input.CompanyID,
		ProjectDescription: strings.TrimSpace(input.ProjectDescription),
		RequestedAmount:    input.RequestedAmount,
		ProjectImpact:      strings.TrimSpace(input.ProjectImpact),
	}

	if err := s.requests.Create(r.Context(), request, attachments); err != nil {
		s.respondStoreError(w, err, "failed to create funding request")
		return
	}

	s.respondJSON(w, http.StatusCreated, request)
}

func (s *Service) handleFundingRequestConfirmation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	details, err := s.requests.Details(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch funding request confirmation")
		return
	}
	s.respondJSON(w, http.StatusOK, details)
}

type documentUploadInput struct {
	CompanyID int64 `form:"companyId"`
	RequestID int64 `form:"requestId"`
}

// handleUploadDocument stores a deliverable uploaded by a company against
// one of its funding requests.
func (s *Service) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.badRequest(w, "invalid multipart form")
		return
	}

	var input documentUploadInput
	if err := decoder.Decode(&input, r.MultipartForm.Value); err != nil {
		s.badRequest(w, "invalid form values")
		return
	}
	if input.CompanyID <= 0 || input.RequestID <= 0 {
		s.badRequest(w, "companyId and requestId are required")
		return
	}

	headers := r.MultipartForm.File["document"]
	if len(headers) == 0 {
		s.badRequest(w, "a document file is required")
		return
	}
	header := headers[0]

	content, err := s.readUpload(header)
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	doc := &types.Document{
		DocumentName: header.Filename,
		DocumentType: header.Header.Get("Content-Type"),
		CompanyID:    input.CompanyID,
		RequestID:    input.RequestID,
		FileContent:  content,
	}

	if err := s.documents.Create(r.Context(), doc); err != nil {
		s.respondStoreError(w, err, "failed to store document")
		return
	}

	s.respondJSON(w, http.StatusCreated, doc)
}
