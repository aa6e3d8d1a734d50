package fleet

import (
	"github.com/zhulik/fleetscaler/internal/core"
)

// Partition keeps the first desiredCount ordinals running and stops the rest.
// Workers with a token ordinal are reported as unranked and left alone.
func Partition(classification Classification, desiredCount int) core.Plan {
	plan := core.Plan{
		DesiredCount: desiredCount,
		ToStart:      []string{},
		ToStop:       []string{},
		Unranked:     []string{},
		Shadowed:     append([]string{}, classification.Shadowed...),
	}

	for _, slot := range classification.Slots {
		switch {
		case !slot.Ordinal.Numeric():
			plan.Unranked = append(plan.Unranked, slot.InstanceID)
		case slot.Ordinal.Value() <= desiredCount:
			plan.ToStart = append(plan.ToStart, slot.InstanceID)
		default:
			plan.ToStop = append(plan.ToStop, slot.InstanceID)
		}
	}

	return plan
}
