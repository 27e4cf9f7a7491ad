// Package traffic provides road condition lookups for points along a route.
package traffic

import "context"

// Condition categorizes traffic flow at a point.
type Condition string

const (
	// ConditionGood means traffic flows at 80% or more of free-flow speed.
	ConditionGood Condition = "Good"
	// ConditionModerate means traffic flows at 50-80% of free-flow speed.
	ConditionModerate Condition = "Moderate"
	// ConditionCongested means traffic flows below 50% of free-flow speed.
	ConditionCongested Condition = "Congested"
	// ConditionUnknown means no flow data was available.
	ConditionUnknown Condition = "Unknown"
)

// Color returns the display color conventionally paired with a condition.
func (c Condition) Color() string {
	switch c {
	case ConditionGood:
		return "green"
	case ConditionModerate:
		return "yellow"
	case ConditionCongested:
		return "red"
	default:
		return "gray"
	}
}

// Flow describes traffic flow at a point.
type Flow struct {
	Condition     Condition
	CurrentSpeed  float64 // km/h
	FreeFlowSpeed float64 // km/h
	Confidence    float64 // 0-1, provider confidence in the measurement
}

// Categorize derives a Condition from current and free-flow speeds.
func Categorize(currentSpeed, freeFlowSpeed float64) Condition {
	if freeFlowSpeed <= 0 {
		return ConditionUnknown
	}
	ratio := currentSpeed / freeFlowSpeed
	switch {
	case ratio >= 0.8:
		return ConditionGood
	case ratio >= 0.5:
		return ConditionModerate
	default:
		return ConditionCongested
	}
}

// UnknownFlow is returned when flow data cannot be retrieved. Traffic lookups
// are best-effort; an unknown reading never aborts route computation.
func UnknownFlow() *Flow {
	return &Flow{Condition: ConditionUnknown}
}

// Provider defines the interface for traffic flow providers.
type Provider interface {
	// FlowAt returns traffic flow at a point. Implementations degrade to
	// UnknownFlow on failure instead of returning an error.
	FlowAt(ctx context.Context, lat, lng float64) *Flow

	// Name returns the provider identifier for logging and metrics.
	Name() string
}
