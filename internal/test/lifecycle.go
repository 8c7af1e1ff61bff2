package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects appended hooks so tests can drive
// OnStart/OnStop by hand instead of running a full fx app.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append keeps the hook for the test to invoke.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called whenever a shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown reports the request without blocking when nobody listens.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
