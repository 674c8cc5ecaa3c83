package server

import (
	"testing"

	"bumblebee/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestRegisterInputValidate(t *testing.T) {
	valid := registerInput{
		FirstName: "Sipho",
		LastName:  "Dlamini",
		Email:     "sipho@example.net",
		Password:  "longenough",
		Role:      types.RoleDonor,
	}

	t.Run("valid donor", func(t *testing.T) {
		input := valid
		assert.Empty(t, input.validate())
	})

	t.Run("company requires a company name", func(t *testing.T) {
		input := valid
		input.Role = types.RoleCompany
		fieldErrors := input.validate()
		assert.Contains(t, fieldErrors, "companyName")

		input.CompanyName = "Honeyworks"
		assert.Empty(t, input.validate())
	})

	t.Run("invalid email", func(t *testing.T) {
		input := valid
		input.Email = "not-an-address"
		assert.Contains(t, input.validate(), "email")
	})

	t.Run("short password", func(t *testing.T) {
		input := valid
		input.Password = "short"
		assert.Contains(t, input.validate(), "password")
	})

	t.Run("unknown role", func(t *testing.T) {
		input := valid
		input.Role = "Superuser"
		assert.Contains(t, input.validate(), "role")
	})

	t.Run("blank names", func(t *testing.T) {
		input := valid
		input.FirstName = "  "
		input.LastName = ""
		fieldErrors := input.validate()
		assert.Contains(t, fieldErrors, "firstName")
		assert.Contains(t, fieldErrors, "lastName")
	})
}

func TestFundingRequestInputValidate(t *testing.T) {
	valid := fundingRequestInput{
		CompanyID:          3,
		ProjectDescription: "New kitchens",
		RequestedAmount:    85000,
		ProjectImpact:      "400 meals per week",
	}

	assert.Empty(t, valid.validate())

	t.Run("rejects non-positive amount", func(t *testing.T) {
		input := valid
		input.RequestedAmount = 0
		assert.Contains(t, input.validate(), "requestedAmount")
	})

	t.Run("rejects missing company", func(t *testing.T) {
		input := valid
		input.CompanyID = 0
		assert.Contains(t, input.validate(), "companyId")
	})
}

func TestDonationInputValidate(t *testing.T) {
	valid := donationInput{
		DonationType:   "Monetary",
		DonationAmount: 1500,
		DonorName:      "Sipho Dlamini",
		DonorEmail:     "sipho@example.net",
	}

	assert.Empty(t, valid.validate())

	t.Run("rejects bad email", func(t *testing.T) {
		input := valid
		input.DonorEmail = "nope"
		assert.Contains(t, input.validate(), "donorEmail")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		input := valid
		input.DonationAmount = -5
		assert.Contains(t, input.validate(), "donationAmount")
	})
}
