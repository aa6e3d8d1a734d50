package core

import (
	"strconv"
)

// Ordinal is a worker's logical index. It is either numeric or an opaque token kept as-is
// from a malformed name tag. Ordinal is comparable and is used as a map key.
type Ordinal struct {
	value   int
	token   string
	numeric bool
}

func NumericOrdinal(value int) Ordinal {
	return Ordinal{value: value, token: strconv.Itoa(value), numeric: true}
}

func TokenOrdinal(token string) Ordinal {
	return Ordinal{token: token}
}

func (o Ordinal) Numeric() bool {
	return o.numeric
}

// Value is meaningful only for numeric ordinals.
func (o Ordinal) Value() int {
	return o.value
}

func (o Ordinal) Token() string {
	return o.token
}

func (o Ordinal) String() string {
	return o.token
}

func (o Ordinal) MarshalJSON() ([]byte, error) {
	if o.numeric {
		return []byte(strconv.Itoa(o.value)), nil
	}

	return []byte(strconv.Quote(o.token)), nil
}
