//go:build !tinygo

package cycle

import "runtime/debug"

func captureStack() []byte {
	return debug.Stack()
}
