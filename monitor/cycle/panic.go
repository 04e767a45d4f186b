package cycle

import (
	"errors"
	"fmt"
	"strings"

	"oledcpu/hal"
)

// ErrPanic wraps a panic recovered inside a cycle.
var ErrPanic = errors.New("panic")

// PanicInfo contains details about a recovered panic.
type PanicInfo struct {
	Step  string
	Value any
	Stack []byte
}

// guard runs fn and turns a panic into an error wrapping ErrPanic.
func (o *Orchestrator) guard(step string, fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			info := PanicInfo{Step: step, Value: v, Stack: captureStack()}
			logPanic(o.log, info)
			err = fmt.Errorf("%s: %w: %v", step, ErrPanic, v)
		}
	}()
	return fn()
}

func logPanic(l hal.Logger, info PanicInfo) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf("cycle panic: step=%s panic=%v", info.Step, info.Value))
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		l.WriteLineString(line)
	}
}
