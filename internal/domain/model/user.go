package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	HashedPassword   string     `json:"-"` // Not exposed
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Active           bool       `json:"active"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	Roles            []string   `json:"roles"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
