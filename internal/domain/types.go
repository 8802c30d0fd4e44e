package domain

import "time"

// Credential is the opaque upstream session identity supplied by the auth
// collaborator. The pipeline never mutates or derives it.
type Credential struct {
	SessionCookie string `json:"sessionCookie"`
	CSRFToken     string `json:"csrfToken"`
}

// Valid reports whether the credential can be attached to an upstream call.
func (c Credential) Valid() bool {
	return c.SessionCookie != "" && c.CSRFToken != ""
}

// DateWindow is an inclusive aggregation range.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Status represents a lightweight state value.
type Status string
