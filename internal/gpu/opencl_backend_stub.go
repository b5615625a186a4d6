//go:build !opencl
// +build !opencl

package gpu

import "log/slog"

// OpenCLBackend is a stub type when the binary is built without OpenCL
type OpenCLBackend struct {
	logger *slog.Logger
}

func NewOpenCLBackend(logger *slog.Logger) *OpenCLBackend {
	return &OpenCLBackend{logger: logger}
}

// Stub implementations to satisfy the Backend interface
func (b *OpenCLBackend) Grayscale(pix []byte, width, height int) ([]byte, error) {
	return nil, ErrBackendUnavailable
}

func (b *OpenCLBackend) GetDeviceInfo() DeviceInfo {
	return DeviceInfo{Name: "OpenCL not available"}
}

func (b *OpenCLBackend) IsAvailable() bool {
	return false
}

func (b *OpenCLBackend) Initialize() error {
	return ErrBackendUnavailable
}

func (b *OpenCLBackend) Cleanup() error {
	return nil
}
