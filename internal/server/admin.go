package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bumblebee/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.reports.Dashboard(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "failed to load dashboard stats")
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

// User management

func (s *Service) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.Users(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "failed to list users")
		return
	}
	s.respondJSON(w, http.StatusOK, users)
}

func (s *Service) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	user, err := s.users.User(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch user")
		return
	}
	s.respondJSON(w, http.StatusOK, user)
}

type adminUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (s *Service) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input adminUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	if input.Email == "" || input.Password == "" {
		s.badRequest(w, "email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.internalServerError(w)
		return
	}

	user := &types.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(hash),
		Role:      input.Role,
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		s.respondStoreError(w, err, "failed to create user")
		return
	}

	s.respondJSON(w, http.StatusCreated, user)
}

func (s *Service) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var input adminUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	user := &types.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      input.Role,
	}

	if err := s.users.Update(r.Context(), id, user); err != nil {
		s.respondStoreError(w, err, "failed to update user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Company management

func (s *Service) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companies.Companies(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "failed to list companies")
		return
	}
	s.respondJSON(w, http.StatusOK, companies)
}

func (s *Service) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	company, err := s.companies.Company(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch company")
		return
	}
	s.respondJSON(w, http.StatusOK, company)
}

func (s *Service) handleApproveCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.companies.Approve(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "failed to approve company")
		return
	}

	s.respondMessage(w, http.StatusOK, "company approved successfully")
}

func (s *Service) handleRejectCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	if err := s.companies.Reject(r.Context(), id, input.Reason); err != nil {
		s.respondStoreError(w, err, "failed to reject company")
		return
	}

	s.respondMessage(w, http.StatusOK, "company rejected")
}

// Donation management

func (s *Service) handleListDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := s.donations.Summaries(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "failed to list donations")
		return
	}
	s.respondJSON(w, http.StatusOK, donations)
}

func (s *Service) handleGetDonation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	donation, err := s.donations.Donation(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch donation")
		return
	}
	s.respondJSON(w, http.StatusOK, donation)
}

func (s *Service) handleApproveDonation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.donations.Approve(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "failed to approve donation")
		return
	}

	donation, err := s.donations.Donation(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch approved donation")
		return
	}
	s.respondJSON(w, http.StatusOK, donation)
}

func (s *Service) handleDonationDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	content, donorName, donationDate, err := s.donations.DonationDocument(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch donation document")
		return
	}

	fileName := fmt.Sprintf("Donation_%s_%s", donorName, donationDate.Format("20060102"))
	s.serveFile(w, content, fileName, "")
}

// Funding request management

func (s *Service) handleListFundingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.requests.Summaries(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "failed to list funding requests")
		return
	}
	s.respondJSON(w, http.StatusOK, requests)
}

func (s *Service) handleFundingRequestDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	details, err := s.requests.Details(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch funding request details")
		return
	}
	s.respondJSON(w, http.StatusOK, details)
}

func (s *Service) handleApproveFundingRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	var input struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	if err := s.requests.Approve(r.Context(), id, input.Message); err != nil {
		s.respondStoreError(w, err, "failed to approve funding request")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleRejectFundingRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.requests.Reject(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "failed to reject funding request")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleListAttachments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	infos, err := s.attachments.InfosByRequest(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to list attachments")
		return
	}
	s.respondJSON(w, http.StatusOK, infos)
}

func (s *Service) handleDownloadAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	attachment, err := s.attachments.Attachment(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch attachment")
		return
	}

	s.serveFile(w, attachment.FileContent, attachment.FileName, attachment.ContentType)
}

// Document management

func (s *Service) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := s.documents.Summaries(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "failed to list documents")
		return
	}
	s.respondJSON(w, http.StatusOK, documents)
}

func (s *Service) handleApproveDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.documents.Approve(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "failed to approve document")
		return
	}

	s.respondMessage(w, http.StatusOK, "document approved")
}

func (s *Service) handleRejectDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.documents.Reject(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "failed to reject document")
		return
	}

	s.respondMessage(w, http.StatusOK, "document rejected")
}

func (s *Service) handleDocumentReceived(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.documents.MarkReceived(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "failed to mark document received")
		return
	}

	s.respondMessage(w, http.StatusOK, "document marked as received")
}

func (s *Service) handleCloseRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if err := s.documents.CloseRequest(r.Context(), id); err != nil {
		s.respondStoreError(w, err, "failed to close funding request")
		return
	}

	s.respondMessage(w, http.StatusOK, "funding request closed")
}

func (s *Service) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	doc, err := s.documents.Document(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch document")
		return
	}

	s.serveFile(w, doc.FileContent, doc.DocumentName, doc.DocumentType)
}

// Reports

func (s *Service) handleDonationReport(w http.ResponseWriter, r *http.Request) {
	items, err := s.reports.DonationReport(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "failed to build donation report")
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Service) handleFundingRequestReport(w http.ResponseWriter, r *http.Request) {
	items, err := s.reports.FundingRequestReport(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "failed to build funding request report")
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}
