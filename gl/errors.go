package gl

import (
	"errors"
	"fmt"
)

// Sentinel errors of the GL core. Callers branch with errors.Is.
var (
	// ErrInvalidArgument marks malformed descriptor construction or
	// call arguments. It indicates a programmer error.
	ErrInvalidArgument = errors.New("gl: invalid argument")

	// ErrInvalidState marks an operation on a descriptor or context in
	// the wrong lifecycle state, e.g. a destroyed descriptor.
	ErrInvalidState = errors.New("gl: invalid state")

	// ErrGPU marks a GL error observed around a named operation.
	ErrGPU = errors.New("gl: GPU error")
)

// CheckError polls glGetError after a named operation and wraps any
// non-zero result in ErrGPU.
func CheckError(api API, op string) error {
	if code := api.GetError(); code != NoError {
		return fmt.Errorf("%w: 0x%04x after %s", ErrGPU, uint32(code), op)
	}
	return nil
}
