//go:build opencl
// +build opencl

package gpu

import (
	"log/slog"
)

// newDeviceBackend creates the device backend when the opencl build tag is
// present.
func newDeviceBackend(logger *slog.Logger) Backend {
	return NewOpenCLBackend(logger)
}
