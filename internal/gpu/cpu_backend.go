package gpu

import (
	"fmt"
	"log/slog"
	"runtime"
)

// CPUBackend implements Backend on the host. It is never selected
// automatically; the default policy is GPU-or-abort.
type CPUBackend struct {
	logger      *slog.Logger
	initialized bool
}

// NewCPUBackend creates a new CPU backend instance
func NewCPUBackend(logger *slog.Logger) *CPUBackend {
	return &CPUBackend{
		logger: logger,
	}
}

// Initialize prepares the CPU backend for use
func (c *CPUBackend) Initialize() error {
	if c.initialized {
		return nil
	}
	c.initialized = true
	c.logger.Info("CPU backend initialized")
	return nil
}

// Cleanup releases any resources (none for CPU backend)
func (c *CPUBackend) Cleanup() error {
	c.initialized = false
	return nil
}

// IsAvailable checks if the backend is available (always true for CPU)
func (c *CPUBackend) IsAvailable() bool {
	return true
}

// GetDeviceInfo returns device information for CPU
func (c *CPUBackend) GetDeviceInfo() DeviceInfo {
	return DeviceInfo{
		Name:          fmt.Sprintf("CPU (%s)", runtime.GOARCH),
		Vendor:        runtime.GOOS,
		Version:       "host",
		DriverVersion: runtime.Version(),
		ComputeUnits:  runtime.NumCPU(),
	}
}

// Grayscale applies the same averaging rule as the device kernel: for each
// pixel gray = (c0+c1+c2)/3 with truncating integer division, fourth channel
// untouched.
func (c *CPUBackend) Grayscale(pix []byte, width, height int) ([]byte, error) {
	if !c.initialized {
		return nil, fmt.Errorf("CPU backend not initialized")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pix))
	}

	out := make([]byte, len(pix))
	for i := 0; i < width*height; i++ {
		o := i * 4
		gray := byte((int(pix[o]) + int(pix[o+1]) + int(pix[o+2])) / 3)
		out[o] = gray
		out[o+1] = gray
		out[o+2] = gray
		out[o+3] = pix[o+3]
	}

	return out, nil
}
