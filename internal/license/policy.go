package license

import "fmt"

// ExportMode is the outcome of the export gating decision.
type ExportMode int

const (
	// ExportAllow renders without watermark.
	ExportAllow ExportMode = iota
	// ExportWatermark renders with the trial banner.
	ExportWatermark
	// ExportBlock refuses the export entirely.
	ExportBlock
)

// warnThresholdDays is how close to expiry a valid key triggers a renewal
// warning.
const warnThresholdDays = 7

// Decision is what the orchestrator acts on before rendering.
type Decision struct {
	Mode ExportMode
	// Reason is a user-facing explanation for Block, or a renewal warning
	// for Allow when the key is close to expiry.
	Reason string
	// DaysRemaining mirrors Gate.DaysRemaining at decision time.
	DaysRemaining int
}

// Error signals a blocked export.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "licence: " + e.Reason
}

// Decide applies the export policy: an expired paid key blocks, an absent or
// trial key allows with watermark, a valid key allows silently and warns when
// it is about to expire.
func Decide(g Gate) Decision {
	days := g.DaysRemaining()
	if !g.IsActivated() {
		if info, ok := g.InstallInfo(); ok && g.IsExpired(info) {
			keyType := info.KeyType
			if keyType == "" {
				keyType = KeyStandard
			}
			return Decision{
				Mode:          ExportBlock,
				Reason:        fmt.Sprintf("votre licence %s a expiré", keyType),
				DaysRemaining: days,
			}
		}
		return Decision{Mode: ExportWatermark, DaysRemaining: days}
	}
	d := Decision{Mode: ExportAllow, DaysRemaining: days}
	if days != -1 && days <= warnThresholdDays {
		d.Reason = fmt.Sprintf("votre licence expire dans %d jour(s)", days)
	}
	return d
}
