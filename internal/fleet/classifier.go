package fleet

import (
	"cmp"
	"slices"

	"github.com/zhulik/fleetscaler/internal/core"
)

type Classification struct {
	// One slot per distinct ordinal. Numeric ordinals first, ascending, then tokens.
	Slots []core.Slot
	// Instance ids that lost an ordinal collision, in snapshot order.
	Shadowed []string
}

// Classify maps ordinals to instance ids across the snapshot. When two instances carry the
// same ordinal, the later one in snapshot order wins and the earlier one is shadowed.
func Classify(instances []core.Instance) Classification {
	byOrdinal := make(map[core.Ordinal]string, len(instances))

	var shadowed []string

	for _, instance := range instances {
		slot, ok := ParseSlot(instance)
		if !ok {
			continue
		}

		if previous, exists := byOrdinal[slot.Ordinal]; exists {
			shadowed = append(shadowed, previous)
		}

		byOrdinal[slot.Ordinal] = slot.InstanceID
	}

	slots := make([]core.Slot, 0, len(byOrdinal))
	for ordinal, instanceID := range byOrdinal {
		slots = append(slots, core.Slot{Ordinal: ordinal, InstanceID: instanceID})
	}

	slices.SortFunc(slots, compareSlots)

	return Classification{
		Slots:    slots,
		Shadowed: shadowed,
	}
}

func compareSlots(a, b core.Slot) int {
	switch {
	case a.Ordinal.Numeric() && b.Ordinal.Numeric():
		return cmp.Compare(a.Ordinal.Value(), b.Ordinal.Value())
	case a.Ordinal.Numeric():
		return -1
	case b.Ordinal.Numeric():
		return 1
	default:
		return cmp.Compare(a.Ordinal.Token(), b.Ordinal.Token())
	}
}
