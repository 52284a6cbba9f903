package model

import "time"

// User is the credential-store side record for a registered account.
// The password hash is stored separately from this record.
type User struct {
	Username  string    `json:"-"`
	Created   time.Time `json:"created"`
	LastLogin time.Time `json:"last_login"`
}
