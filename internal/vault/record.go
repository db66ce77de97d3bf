package vault

import "time"

// Record holds one account's access secrets and metadata. AccountName
// is the unique key and is immutable after creation. AccountID is
// discovered by the identity check, never supplied by the user.
type Record struct {
	AccountName     string `json:"account_name"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
	Region          string `json:"region"`
	AccountID       string `json:"account_id,omitempty"`
	ProfileName     string `json:"profile_name,omitempty"`

	// Stored opaquely for assume-role flows; not used by validation.
	MFASerial  string `json:"mfa_serial,omitempty"`
	RoleARN    string `json:"role_arn,omitempty"`
	ExternalID string `json:"external_id,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// IsExpired reports whether the record has an expiry in the past.
// Records without an expiry never expire.
func (r *Record) IsExpired() bool {
	return r.ExpiresAt != nil && time.Now().After(*r.ExpiresAt)
}

// IsTemporary reports whether the record carries a session token.
// Temporary-ness and expiry are independent: a temporary record with
// no expiry is valid indefinitely.
func (r *Record) IsTemporary() bool {
	return r.SessionToken != ""
}

// Clone returns a deep copy so callers cannot mutate store-held state.
func (r *Record) Clone() *Record {
	c := *r
	if r.LastUsed != nil {
		t := *r.LastUsed
		c.LastUsed = &t
	}
	if r.ExpiresAt != nil {
		t := *r.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}
