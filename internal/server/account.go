package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"bumblebee/internal/utils"
	"bumblebee/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

type registerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`

	// Company fields, required only for the Company role.
	CompanyName        string `json:"companyName"`
	ContactPhone       string `json:"contactPhone"`
	CompanyDescription string `json:"companyDescription"`
}

func (in *registerInput) validate() map[string]string {
	fieldErrors := map[string]string{}

	if strings.TrimSpace(in.FirstName) == "" {
		fieldErrors["firstName"] = "first name is required"
	}
	if strings.TrimSpace(in.LastName) == "" {
		fieldErrors["lastName"] = "last name is required"
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		fieldErrors["email"] = "a valid email is required"
	}
	if len(in.Password) < 8 {
		fieldErrors["password"] = "password must be at least 8 characters"
	}

	switch in.Role {
	case types.RoleAdmin, types.RoleDonor:
	case types.RoleCompany:
		if strings.TrimSpace(in.CompanyName) == "" {
			fieldErrors["companyName"] = "company name is required"
		}
	default:
		fieldErrors["role"] = "unknown role"
	}

	return fieldErrors
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		s.respondJSON(w, http.StatusBadRequest, map[string]any{"fieldErrors": fieldErrors})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.internalServerError(w)
		return
	}

	user := &types.User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Password:  string(hash),
		Role:      input.Role,
	}

	var company *types.Company
	if input.Role == types.RoleCompany {
		company = &types.Company{
			CompanyName:  strings.TrimSpace(input.CompanyName),
			ContactEmail: user.Email,
			ContactPhone: strings.TrimSpace(input.ContactPhone),
			Description:  strings.TrimSpace(input.CompanyDescription),
		}
	}

	if err := s.users.Register(ctx, user, company); err != nil {
		s.logger.WithError(err).Error("failed to register user")
		s.badRequest(w, "registration failed")
		return
	}

	s.respondMessage(w, http.StatusCreated, "registration successful")
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	user, err := s.users.UserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid login attempt"})
			return
		}
		s.logger.WithError(err).Error("failed to fetch user for login")
		s.internalServerError(w)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		s.respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid login attempt"})
		return
	}

	result := &types.LoginResult{
		UserID:    user.UserID,
		Role:      user.Role,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	if user.Role == types.RoleCompany {
		company, err := s.companies.CompanyByUser(ctx, user.UserID)
		if err != nil {
			if errors.Is(err, types.ErrCompanyNotFound) {
				s.badRequest(w, "company record not found for user")
				return
			}
			s.logger.WithError(err).Error("failed to fetch company for login")
			s.internalServerError(w)
			return
		}
		result.CompanyID = utils.Int64Ptr(company.CompanyID)
		result.CompanyName = utils.StringPtr(company.CompanyName)
	}

	s.respondJSON(w, http.StatusOK, result)
}

type emailInput struct {
	Email string `json:"email"`
}

func (s *Service) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	var input emailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	if _, err := s.users.UserByEmail(ctx, input.Email); err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.notFound(w, "email not found")
			return
		}
		s.logger.WithError(err).Error("failed to look up email")
		s.internalServerError(w)
		return
	}

	s.respondMessage(w, http.StatusOK, "email found, proceed to reset password")
}

type resetPasswordInput struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (s *Service) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var ctx = r.Context()

	var input resetPasswordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	if len(input.NewPassword) < 8 {
		s.badRequest(w, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.internalServerError(w)
		return
	}

	if err := s.users.ResetPassword(ctx, input.Email, string(hash)); err != nil {
		s.respondStoreError(w, err, "failed to reset password")
		return
	}

	s.respondMessage(w, http.StatusOK, "password reset successfully")
}
