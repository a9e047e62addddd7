package domain

// BargainBehavior tags how aggressively the storefront widget negotiates.
// Opaque to this service; consumed downstream by the bargaining widget.
type BargainBehavior string

const (
	BehaviorLow    BargainBehavior = "low"
	BehaviorMedium BargainBehavior = "medium"
	BehaviorHigh   BargainBehavior = "high"
)

// IsValid checks if the behavior belongs to the closed set
func (b BargainBehavior) IsValid() bool {
	switch b {
	case BehaviorLow, BehaviorMedium, BehaviorHigh:
		return true
	default:
		return false
	}
}
