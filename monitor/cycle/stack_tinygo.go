//go:build tinygo

package cycle

func captureStack() []byte { return nil }
