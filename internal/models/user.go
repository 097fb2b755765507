package models

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var emailRX = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday"`
}

// NormalizeName falls back to the login when no display name was supplied.
// Applied at the storage boundary on both create and update.
func (u *User) NormalizeName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// ValidateUser checks field constraints and returns the aggregated violations,
// or nil when the user is well formed.
func ValidateUser(u *User) error {
	ve := &ValidationError{}

	if strings.TrimSpace(u.Email) == "" {
		ve.add("email", "must not be blank")
	} else if !emailRX.MatchString(u.Email) {
		ve.add("email", "must be a valid email address")
	}

	if strings.TrimSpace(u.Login) == "" {
		ve.add("login", "must not be blank")
	} else if strings.ContainsFunc(u.Login, unicode.IsSpace) {
		ve.add("login", "must not contain whitespace")
	}

	if !u.Birthday.IsZero() && u.Birthday.After(time.Now()) {
		ve.add("birthday", "must not be in the future")
	}

	return ve.orNil()
}
