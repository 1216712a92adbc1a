package license

import (
	"encoding/json"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
)

// FileGate reads the install record from config/license.json once per
// process. A missing or unreadable file simply means trial mode.
type FileGate struct {
	info *InstallInfo

	// Now is overridable in tests.
	Now func() time.Time
}

// NewFileGate loads the install record at path. Any read or decode failure
// degrades to trial mode rather than blocking the application.
func NewFileGate(path string) *FileGate {
	g := &FileGate{Now: time.Now}
	data, err := os.ReadFile(path)
	if err != nil {
		return g
	}
	var info InstallInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return g
	}
	g.info = &info
	return g
}

// WriteInstallInfo persists an install record, stamping an install id when
// absent. Used by the activation command.
func WriteInstallInfo(path string, info InstallInfo) error {
	if info.InstallID == "" {
		info.InstallID = uuid.NewString()
	}
	if info.ActivatedAt.IsZero() {
		info.ActivatedAt = time.Now()
	}
	data, err := json.MarshalIndent(info, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func (g *FileGate) IsActivated() bool {
	return g.info != nil && !g.IsExpired(g.info)
}

func (g *FileGate) InstallInfo() (*InstallInfo, bool) {
	if g.info == nil {
		return nil, false
	}
	return g.info, true
}

func (g *FileGate) IsExpired(info *InstallInfo) bool {
	if info == nil || info.Expiry == nil {
		return false
	}
	return g.Now().After(*info.Expiry)
}

func (g *FileGate) DaysRemaining() int {
	if g.info == nil || g.info.Expiry == nil {
		return -1
	}
	left := g.info.Expiry.Sub(g.Now())
	if left <= 0 {
		return 0
	}
	// Ceiling: "expires later today" counts as 1, an exact multiple of 24h
	// counts as that many days, never one more.
	return int(math.Ceil(left.Hours() / 24))
}

var _ Gate = (*FileGate)(nil)
