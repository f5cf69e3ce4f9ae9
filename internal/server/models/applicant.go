// Package models defines the persisted shapes of the application workflow.
package models

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// ProtectedDocument references one encrypted file at rest: the content
// identifier of the pinned ciphertext plus opaque wrapped-key material
// (a single wrap or a JSON map of admin address to wrap — the server never
// interprets it). Created once at submission, immutable thereafter.
type ProtectedDocument struct {
	CID string `json:"cid"`
	Key string `json:"key"`
}

// Valid reports whether the reference is structurally complete.
func (d ProtectedDocument) Valid() bool {
	return d.CID != "" && d.Key != ""
}

// Applicant is one candidate for verified-professional status.
type Applicant struct {
	ID             string            `json:"id"`
	Address        string            `json:"address"`
	Alias          string            `json:"alias"`
	Email          string            `json:"email"`
	Specialty      string            `json:"specialty"`
	Region         string            `json:"region"`
	Message        string            `json:"message,omitempty"`
	Experience     string            `json:"experience"`
	Credentials    string            `json:"credentials"`
	LicenseIssuer  string            `json:"licenseIssuer"`
	LicenseFile    ProtectedDocument `json:"licenseFile"`
	NationalIDFile ProtectedDocument `json:"nationalIdFile"`
	Status         ApplicationStatus `json:"status"`
	IsActive       bool              `json:"isActive"`
	MintTx         string            `json:"mintTx,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
