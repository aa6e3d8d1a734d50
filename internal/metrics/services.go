package metrics

import (
	"github.com/samber/do"
	"github.com/zhulik/fleetscaler/internal/core"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*Recorder, error) {
		return NewRecorder(), nil
	})
	do.Provide(injector, func(injector *do.Injector) (core.Recorder, error) {
		return do.Invoke[*Recorder](injector)
	})
}
