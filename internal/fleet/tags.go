package fleet

import (
	"strconv"
	"strings"

	"github.com/zhulik/fleetscaler/internal/core"
)

// ParseSlot turns an instance into a worker slot. The second return value is false when the
// instance is not a worker: no Name tag, or a Name whose first token is not exactly "Worker".
// A non-numeric index is not an error, it yields a token ordinal.
func ParseSlot(instance core.Instance) (core.Slot, bool) {
	name, ok := instance.Tags[core.TagKeyName]
	if !ok {
		return core.Slot{}, false
	}

	parts := strings.Split(name, core.OrdinalSeparator)
	if parts[0] != core.WorkerNamePrefix {
		return core.Slot{}, false
	}

	var token string
	if len(parts) > 1 {
		token = parts[1]
	}

	return core.Slot{
		Ordinal:    parseOrdinal(token),
		InstanceID: instance.ID,
	}, true
}

func parseOrdinal(token string) core.Ordinal {
	value, err := strconv.Atoi(token)
	if err != nil {
		return core.TokenOrdinal(token)
	}

	return core.NumericOrdinal(value)
}
