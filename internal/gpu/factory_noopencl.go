//go:build !opencl
// +build !opencl

package gpu

import (
	"log/slog"
)

// newDeviceBackend returns the unavailable stub when compiled without OpenCL
// support. The Manager turns this into an abort for the default policy.
func newDeviceBackend(logger *slog.Logger) Backend {
	return NewOpenCLBackend(logger)
}
