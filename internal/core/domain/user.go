package domain

import "time"

// UserIdentity is who the portal user is, as returned by the login contract.
type UserIdentity struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// User is an account held by the local authenticator.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Identity() UserIdentity {
	return UserIdentity{ID: u.ID, Name: u.Name, Email: u.Email}
}
