// Package seed loads a small development dataset: an admin account, a
// company with a funding request, and a donation. It goes through the same
// repositories as the API, so seeded rows get hashed passwords, encrypted
// donor fields, and reference codes exactly like real ones.
package seed

import (
	"context"
	"errors"
	"fmt"

	"bumblebee/internal/store"
	"bumblebee/pkg/types"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	users     *store.UserRepository
	companies *store.CompanyRepository
	requests  *store.FundingRequestRepository
	donations *store.DonationRepository
	verbose   bool
}

func New(
	users *store.UserRepository,
	companies *store.CompanyRepository,
	requests *store.FundingRequestRepository,
	donations *store.DonationRepository,
	verbose bool,
) *Seeder {
	return &Seeder{
		users:     users,
		companies: companies,
		requests:  requests,
		donations: donations,
		verbose:   verbose,
	}
}

// Run is idempotent per email: accounts that already exist are left alone.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return err
	}

	company, err := s.seedCompany(ctx)
	if err != nil {
		return err
	}
	if company == nil {
		return nil
	}

	if err := s.seedFundingRequest(ctx, company); err != nil {
		return err
	}

	return s.seedDonation(ctx, company)
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	const email = "admin@bumblebee.local"

	_, err := s.users.UserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, types.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("AdminPass123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &types.User{
		FirstName: "Bumble",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hash),
		Role:      types.RoleAdmin,
	}

	if err := s.users.Register(ctx, admin, nil); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	s.dump(admin)
	return nil
}

// seedCompany registers a company account plus its company row in one
// transaction, the same path the public registration endpoint takes.
// A nil company return means the account already existed.
func (s *Seeder) seedCompany(ctx context.Context) (*types.Company, error) {
	const email = "owner@honeyworks.example"

	if _, err := s.users.UserByEmail(ctx, email); err == nil {
		return nil, nil
	} else if !errors.Is(err, types.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check for company owner: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("OwnerPass123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash owner password: %w", err)
	}

	user := &types.User{
		FirstName: "Harriet",
		LastName:  "Combs",
		Email:     email,
		Password:  string(hash),
		Role:      types.RoleCompany,
	}

	company := &types.Company{
		CompanyName:  "Honeyworks Collective",
		ContactEmail: email,
		ContactPhone: "+27 21 555 0142",
		Description:  "Community kitchens and food gardens in the Western Cape",
	}

	if err := s.users.Register(ctx, user, company); err != nil {
		return nil, fmt.Errorf("failed to seed company: %w", err)
	}

	if err := s.companies.Approve(ctx, company.CompanyID); err != nil {
		return nil, fmt.Errorf("failed to approve seeded company: %w", err)
	}
	company.Status = types.StatusApproved

	s.dump(user, company)
	return company, nil
}

func (s *Seeder) seedFundingRequest(ctx context.Context, company *types.Company) error {
	request := &types.FundingRequest{
		CompanyID:          company.CompanyID,
		ProjectDescription: "Outfit two new community kitchens with commercial stoves",
		RequestedAmount:    85000,
		ProjectImpact:      "Roughly 400 additional meals served per week",
	}

	attachments := []types.Attachment{
		{
			FileName:    "kitchen-quote.txt",
			FileContent: []byte("Quotation: 2x commercial stove, installed. Total R82,450 incl VAT.\n"),
			ContentType: "text/plain",
		},
	}

	if err := s.requests.Create(ctx, request, attachments); err != nil {
		return fmt.Errorf("failed to seed funding request: %w", err)
	}

	s.dump(request)
	return nil
}

func (s *Seeder) seedDonation(ctx context.Context, company *types.Company) error {
	donation := &types.Donation{
		CompanyID:      &company.CompanyID,
		DonationType:   "Monetary",
		DonationAmount: 1500,
		DonorName:      "Sipho Dlamini",
		DonorIDNumber:  "8203155012089",
		DonorTaxNumber: "9012345678",
		DonorEmail:     "sipho@example.net",
		DonorPhone:     "+27 82 555 0199",
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		return fmt.Errorf("failed to seed donation: %w", err)
	}

	s.dump(donation)
	return nil
}

func (s *Seeder) dump(records ...any) {
	if !s.verbose {
		return
	}
	for _, record := range records {
		pp.Println(record)
	}
}
