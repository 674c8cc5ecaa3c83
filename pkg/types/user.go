package types

import "time"

type User struct {
	UserID    int64     `db:"user_id" json:"userId"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  string    `db:"last_name" json:"lastName"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// LoginResult is returned after a successful credential check. Company users
// carry their company identity so the client can scope subsequent requests.
type LoginResult struct {
	UserID      int64   `json:"userId"`
	Role        string  `json:"role"`
	Email       string  `json:"email"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	CompanyID   *int64  `json:"companyId,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
}
