package gpu

import "errors"

// ErrNoDevice is returned when no GPU-class compute device can be found on
// any available platform.
var ErrNoDevice = errors.New("no GPU-class compute device available")

// ErrBackendUnavailable is returned when the selected backend was compiled
// out or cannot run on this host.
var ErrBackendUnavailable = errors.New("compute backend unavailable")

// DeviceInfo contains information about the selected compute device
type DeviceInfo struct {
	Name          string `json:"name"`
	Vendor        string `json:"vendor"`
	Version       string `json:"version"`
	DriverVersion string `json:"driverVersion"`
	GlobalMemory  int64  `json:"globalMemory"` // in bytes
	ComputeUnits  int    `json:"computeUnits"`
}

// Backend defines the interface for grayscale compute backends.
// This interface allows for multiple implementations (OpenCL, CPU) behind a
// consistent API.
//
// Implementation notes:
// - Backends own their device objects and must release them in Cleanup
// - Backend selection policy lives in the Manager, not the backend
// - Initialize must be called once before the first Grayscale call
type Backend interface {
	// Grayscale converts a 4-channel image to grayscale.
	//
	// pix holds width*height pixels of 4 bytes each in row-major order.
	// For every pixel the three color channels are replaced by their
	// integer-truncated average and the fourth channel passes through
	// unchanged. The result is a fresh buffer of the same size.
	Grayscale(pix []byte, width, height int) ([]byte, error)

	// GetDeviceInfo returns information about the compute device.
	GetDeviceInfo() DeviceInfo

	// IsAvailable checks if the backend can run without performing heavy
	// initialization. Used by the Manager to validate the configured
	// backend.
	IsAvailable() bool

	// Initialize prepares the backend for use: device discovery, context
	// and queue creation, kernel compilation.
	Initialize() error

	// Cleanup releases any device resources held by the backend. It is
	// safe to call after a failed Initialize and must be called when the
	// backend is no longer needed.
	Cleanup() error
}
