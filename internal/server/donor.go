package server

import (
	"net/http"
	"net/mail"
	"strings"

	"bumblebee/internal/utils"
	"bumblebee/pkg/types"
)

func (s *Service) handleDonorFundingRequests(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.requests.ForDonors(r.Context())
	if err != nil {
		s.respondStoreError(w, err, "failed to list funding requests for donors")
		return
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

func (s *Service) handleSearchFundingRequests(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		s.badRequest(w, "search term q is required")
		return
	}

	summaries, err := s.requests.Search(r.Context(), term)
	if err != nil {
		s.respondStoreError(w, err, "failed to search funding requests")
		return
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

type donationInput struct {
	CompanyID      int64   `form:"companyId"`
	DonationType   string  `form:"donationType"`
	DonationAmount float64 `form:"donationAmount"`
	DonorName      string  `form:"donorName"`
	DonorIDNumber  string  `form:"donorIdNumber"`
	DonorTaxNumber string  `form:"donorTaxNumber"`
	DonorEmail     string  `form:"donorEmail"`
	DonorPhone     string  `form:"donorPhone"`
}

func (in *donationInput) validate() map[string]string {
	fieldErrors := map[string]string{}

	if strings.TrimSpace(in.DonationType) == "" {
		fieldErrors["donationType"] = "donation type is required"
	}
	if in.DonationAmount <= 0 {
		fieldErrors["donationAmount"] = "donation amount must be positive"
	}
	if strings.TrimSpace(in.DonorName) == "" {
		fieldErrors["donorName"] = "donor name is required"
	}
	if _, err := mail.ParseAddress(in.DonorEmail); err != nil {
		fieldErrors["donorEmail"] = "a valid email is required"
	}

	return fieldErrors
}

// handleDonate accepts a multipart donation submission with an optional
// supporting document. The sensitive donor fields are encrypted by the
// store before they are written.
func (s *Service) handleDonate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.badRequest(w, "invalid multipart form")
		return
	}

	var input donationInput
	if err := decoder.Decode(&input, r.MultipartForm.Value); err != nil {
		s.badRequest(w, "invalid form values")
		return
	}

	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		s.respondJSON(w, http.StatusBadRequest, map[string]any{"fieldErrors": fieldErrors})
		return
	}

	var document []byte
	if headers := r.MultipartForm.File["document"]; len(headers) > 0 {
		content, err := s.readUpload(headers[0])
		if err != nil {
			s.badRequest(w, err.Error())
			return
		}
		document = content
	}

	donation := &types.Donation{
		DonationType:   strings.TrimSpace(input.DonationType),
		DonationAmount: input.DonationAmount,
		DonorName:      strings.TrimSpace(input.DonorName),
		DonorIDNumber:  strings.TrimSpace(input.DonorIDNumber),
		DonorTaxNumber: strings.TrimSpace(input.DonorTaxNumber),
		DonorEmail:     strings.TrimSpace(input.DonorEmail),
		DonorPhone:     strings.TrimSpace(input.DonorPhone),
		DocumentPath:   document,
	}
	if input.CompanyID > 0 {
		donation.CompanyID = utils.Int64Ptr(input.CompanyID)
	}

	if err := s.donations.Create(r.Context(), donation); err != nil {
		s.respondStoreError(w, err, "failed to create donation")
		return
	}

	s.respondJSON(w, http.StatusCreated, donation)
}

func (s *Service) handleDonorDonation(w http.ResponseWriter, r *http.Request) {
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

func (s *Service) handleDonationsForUser(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if _, err := mail.ParseAddress(email); err != nil {
		s.badRequest(w, "invalid email")
		return
	}

	summaries, err := s.donations.ByDonorEmail(r.Context(), email)
	if err != nil {
		s.respondStoreError(w, err, "failed to fetch donations for donor")
		return
	}
	s.respondJSON(w, http.StatusOK, summaries)
}
