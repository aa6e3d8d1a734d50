package utils

import (
	"errors"
	"fmt"
)

var ErrPanicked = errors.New("panic")

// Try runs fun and turns a panic into an ErrPanicked error.
func Try(fun func() error) (err error) { //nolint:nonamedreturns
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()

	return fun()
}
