package types

import "errors"

// Sentinel errors distinguishing an absent row from an operational failure.
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrCompanyNotFound        = errors.New("company not found")
	ErrFundingRequestNotFound = errors.New("funding request not found")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrDonationNotFound       = errors.New("donation not found")
	ErrAttachmentNotFound     = errors.New("attachment not found")
)
