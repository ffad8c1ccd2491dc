// Package logger provides the structured logger shared by every layer of
// the autocompletion index, built on zap the same way the rest of this
// module's ambient stack is: one named, production-configured sugared
// logger per service, falling back to a no-op logger rather than failing
// startup if the logger itself cannot be built.
package logger

import "go.uber.org/zap"

// New builds a production-configured, sugared zap logger named for the
// given service. If the production config fails to build (which normally
// only happens from a bad encoder config, never from something a caller
// can fix), a no-op logger is returned instead of an error so that a
// logging misconfiguration never prevents the index itself from starting.
func New(service string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(service).Sugar()
}
