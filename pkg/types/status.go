package types

// Entity status vocabulary. These exact strings are stored in the database
// and returned to clients, so they are part of the wire contract.
const (
	StatusPending           = "Pending"
	StatusApproved          = "Approved"
	StatusRejected          = "Rejected"
	StatusDocumentsReceived = "DocumentsReceived"
	StatusClosed            = "Closed"
)

// Donation payment lifecycle.
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusProcessed = "Processed"
)

// User roles.
const (
	RoleAdmin   = "Admin"
	RoleCompany = "Company"
	RoleDonor   = "Donor"
)
