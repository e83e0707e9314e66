// Package corelog wires the core's recoverable-error reporting (unmapped
// access in the mmu, DMA source out of range in the ppu) through a
// structured logger. The cartridge package does not log: out-of-range
// bank accesses return the sentinel byte without a log entry.
package corelog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a logger that discards output by default. Library consumers
// attach their own logrus output via (*logrus.Logger).SetOutput on the
// returned value, or supply their own logger entirely with an Option.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Component scopes a logger to a single subsystem, the way the teacher's
// mmu/cartridge code tags every line with the offending address.
func Component(l *logrus.Logger, name string) *logrus.Entry {
	return l.WithField("component", name)
}
