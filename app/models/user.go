package models

import (
	"errors"
	"time"
)

// Validate checks the username and that a password hash is present.
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return err
	}
	if u.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}
	return nil
}

// BeforeCreate stamps the creation time for this instance.
func (u *User) BeforeCreate(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
}

func (u *User) String() string {
	return u.Username
}
