// Package entity contains the domain types for per-origin permission decisions.
package entity

// Decision represents a per-origin or default notification permission setting.
type Decision int

const (
	// DecisionDefault is a placeholder meaning "no explicit default configured".
	// It is never stored as a per-origin value and resolves to FallbackDecision
	// when read.
	DecisionDefault Decision = iota

	// DecisionAsk means the user must be prompted before notifications are shown.
	DecisionAsk

	// DecisionAllow means the origin may show notifications.
	DecisionAllow

	// DecisionBlock means the origin may not show notifications.
	DecisionBlock
)

// FallbackDecision is what DecisionDefault resolves to when read.
const FallbackDecision = DecisionAsk

// Resolve maps the DecisionDefault sentinel to the fallback constant.
func (d Decision) Resolve() Decision {
	if d == DecisionDefault {
		return FallbackDecision
	}
	return d
}

// Valid reports whether d is one of the known decision values.
func (d Decision) Valid() bool {
	return d >= DecisionDefault && d <= DecisionBlock
}

// DecisionFromInt64 converts a persisted integer to a Decision.
// Unknown values map to DecisionDefault so corrupt prefs fail safe.
func DecisionFromInt64(v int64) Decision {
	d := Decision(v)
	if !d.Valid() {
		return DecisionDefault
	}
	return d
}

func (d Decision) String() string {
	switch d {
	case DecisionDefault:
		return "default"
	case DecisionAsk:
		return "ask"
	case DecisionAllow:
		return "allow"
	case DecisionBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ParseDecision converts a config/CLI string to a Decision.
// Unknown strings map to DecisionDefault.
func ParseDecision(s string) Decision {
	switch s {
	case "ask":
		return DecisionAsk
	case "allow":
		return DecisionAllow
	case "block":
		return DecisionBlock
	default:
		return DecisionDefault
	}
}
