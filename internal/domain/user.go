// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"time"
)

var ErrUsernameEmpty = errors.New("username empty")

type Username string

// User is a directory entry. Credential is the raw data of the sign-in,
// stored verbatim and never checked.
type User struct {
	Username   Username  `json:"username"`
	Credential string    `json:"-"`
	Owner      ConnID    `json:"conn"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in coordinators.
func NewUser(username Username, credential string, owner ConnID) (*User, error) {
	if username == "" {
		return nil, ErrUsernameEmpty
	}
	return &User{
		Username:   username,
		Credential: credential,
		Owner:      owner,
		SignedInAt: time.Now(),
	}, nil
}
