// Package license exposes the activation state consulted before a PDF
// export. The gate is a metadata oracle over a locally installed key record;
// key validation itself happens in the external activation tooling and is
// deliberately not modeled here.
package license

import "time"

// KeyType values observed in install records.
const (
	KeyStandard = "standard"
	KeyPremium  = "premium"
	KeyTrial    = "trial"
)

// InstallInfo is the install record written at activation time.
type InstallInfo struct {
	Key         string     `json:"key"`
	KeyType     string     `json:"key_type"`
	Company     string     `json:"company,omitempty"`
	UserName    string     `json:"user_name,omitempty"`
	InstallID   string     `json:"install_id"`
	ActivatedAt time.Time  `json:"activated_at"`
	Expiry      *time.Time `json:"expiry,omitempty"` // nil = perpetual
}

// Gate answers the activation queries the orchestrator needs before allowing
// an export.
type Gate interface {
	// IsActivated reports whether a non-expired key is installed.
	IsActivated() bool
	// InstallInfo returns the install record, if any.
	InstallInfo() (*InstallInfo, bool)
	// IsExpired reports whether the given record is past its expiry.
	IsExpired(info *InstallInfo) bool
	// DaysRemaining returns the whole days before expiry, or -1 when the
	// installed key never expires (or no key is installed).
	DaysRemaining() int
}
