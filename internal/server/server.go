// Package server exposes the JSON API over the stores. Handlers stay thin:
// decode, call a repository, map sentinel errors to status codes. All
// workflow and classification logic lives below this layer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bumblebee/internal/store"
	"bumblebee/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	users       *store.UserRepository
	companies   *store.CompanyRepository
	requests    *store.FundingRequestRepository
	attachments *store.AttachmentRepository
	documents   *store.DocumentRepository
	donations   *store.DonationRepository
	reports     *store.ReportRepository

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	users *store.UserRepository,
	companies *store.CompanyRepository,
	requests *store.FundingRequestRepository,
	attachments *store.AttachmentRepository,
	documents *store.DocumentRepository,
	donations *store.DonationRepository,
	reports *store.ReportRepository,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,

		users:       users,
		companies:   companies,
		requests:    requests,
		attachments: attachments,
		documents:   documents,
		donations:   donations,
		reports:     reports,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	// Account
	r.HandleFunc("/api/account/register", s.handleRegister, http.MethodPost)
	r.HandleFunc("/api/account/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/api/account/forgot-password", s.handleForgotPassword, http.MethodPost)
	r.HandleFunc("/api/account/reset-password", s.handleResetPassword, http.MethodPost)

	// Admin
	r.HandleFunc("/api/admin/dashboard", s.handleDashboard, http.MethodGet)
	r.HandleFunc("/api/admin/users", s.handleListUsers, http.MethodGet)
	r.HandleFunc("/api/admin/users", s.handleCreateUser, http.MethodPost)
	r.HandleFunc("/api/admin/users/:id", s.handleGetUser, http.MethodGet)
	r.HandleFunc("/api/admin/users/:id", s.handleUpdateUser, http.MethodPut)
	r.HandleFunc("/api/admin/users/:id", s.handleDeleteUser, http.MethodDelete)

	r.HandleFunc("/api/admin/companies", s.handleListCompanies, http.MethodGet)
	r.HandleFunc("/api/admin/companies/:id", s.handleGetCompany, http.MethodGet)
	r.HandleFunc("/api/admin/companies/:id/approve", s.handleApproveCompany, http.MethodPost)
	r.HandleFunc("/api/admin/companies/:id/reject", s.handleRejectCompany, http.MethodPost)

	r.HandleFunc("/api/admin/donations", s.handleListDonations, http.MethodGet)
	r.HandleFunc("/api/admin/donations/:id", s.handleGetDonation, http.MethodGet)
	r.HandleFunc("/api/admin/donations/:id/approve", s.handleApproveDonation, http.MethodPut)
	r.HandleFunc("/api/admin/donations/:id/document", s.handleDonationDocument, http.MethodGet)

	r.HandleFunc("/api/admin/funding-requests", s.handleListFundingRequests, http.MethodGet)
	r.HandleFunc("/api/admin/funding-requests/:id", s.handleFundingRequestDetails, http.MethodGet)
	r.HandleFunc("/api/admin/funding-requests/:id/approve", s.handleApproveFundingRequest, http.MethodPost)
	r.HandleFunc("/api/admin/funding-requests/:id/reject", s.handleRejectFundingRequest, http.MethodPost)
	r.HandleFunc("/api/admin/funding-requests/:id/attachments", s.handleListAttachments, http.MethodGet)
	r.HandleFunc("/api/admin/attachments/:id/download", s.handleDownloadAttachment, http.MethodGet)

	r.HandleFunc("/api/admin/documents", s.handleListDocuments, http.MethodGet)
	r.HandleFunc("/api/admin/documents/:id/approve", s.handleApproveDocument, http.MethodPost)
	r.HandleFunc("/api/admin/documents/:id/reject", s.handleRejectDocument, http.MethodPost)
	r.HandleFunc("/api/admin/documents/:id/received", s.handleDocumentReceived, http.MethodPost)
	r.HandleFunc("/api/admin/documents/:id/close", s.handleCloseRequest, http.MethodPost)
	r.HandleFunc("/api/admin/documents/:id/download", s.handleDownloadDocument, http.MethodGet)

	r.HandleFunc("/api/admin/reports/donations", s.handleDonationReport, http.MethodGet)
	r.HandleFunc("/api/admin/reports/funding-requests", s.handleFundingRequestReport, http.MethodGet)

	// Company
	r.HandleFunc("/api/company/:id", s.handleCompanyInfo, http.MethodGet)
	r.HandleFunc("/api/company/:id/funding-requests", s.handleFundingRequestHistory, http.MethodGet)
	r.HandleFunc("/api/company/funding-requests", s.handleRequestFunding, http.MethodPost)
	r.HandleFunc("/api/company/funding-requests/:id/confirmation", s.handleFundingRequestConfirmation, http.MethodGet)
	r.HandleFunc("/api/company/attachments/:id/download", s.handleDownloadAttachment, http.MethodGet)
	r.HandleFunc("/api/company/documents", s.handleUploadDocument, http.MethodPost)

	// Donor
	r.HandleFunc("/api/donor/funding-requests", s.handleDonorFundingRequests, http.MethodGet)
	r.HandleFunc("/api/donor/funding-requests/search", s.handleSearchFundingRequests, http.MethodGet)
	r.HandleFunc("/api/donor/donations", s.handleDonate, http.MethodPost)
	r.HandleFunc("/api/donor/donations/:id", s.handleDonorDonation, http.MethodGet)
	r.HandleFunc("/api/donor/users/:email/donations", s.handleDonationsForUser, http.MethodGet)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
