package flags

import (
	"errors"
	"fmt"
)

var errUnknownValue = errors.New("unknown value")

type EnumFlag struct {
	selected     string
	possible     []string
	defaultValue string
}

func (e *EnumFlag) Set(value string) error {
	for _, enum := range e.possible {
		if enum == value {
			e.selected = value

			return nil
		}
	}

	return fmt.Errorf("%w %q, allowed values are %v", errUnknownValue, value, e.possible)
}

func (e *EnumFlag) Get() any {
	return e.String()
}

func (e *EnumFlag) String() string {
	if e.selected == "" {
		return e.defaultValue
	}

	return e.selected
}
