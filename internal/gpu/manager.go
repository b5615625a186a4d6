package gpu

import (
	"fmt"
	"log/slog"
	"sync"
)

// Manager handles backend selection and lifecycle. The policy is strict:
// "auto" and "opencl" require a GPU-class device and abort otherwise, "cpu"
// must be asked for explicitly. There is no silent fallback.
type Manager struct {
	backend Backend
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewManager creates a new manager for the configured backend preference and
// initializes it. On error nothing is left allocated.
func NewManager(logger *slog.Logger, preference string) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		logger: logger,
	}

	if err := m.selectAndInitialize(preference); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) selectAndInitialize(preference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var backend Backend
	switch preference {
	case "", "auto", "opencl":
		backend = newDeviceBackend(m.logger)
		if !backend.IsAvailable() {
			return fmt.Errorf("backend %q: %w", preference, ErrNoDevice)
		}
	case "cpu":
		backend = NewCPUBackend(m.logger)
	default:
		return fmt.Errorf("unknown backend %q", preference)
	}

	if err := backend.Initialize(); err != nil {
		_ = backend.Cleanup()
		return fmt.Errorf("initializing %q backend: %w", preference, err)
	}

	m.backend = backend
	return nil
}

// GetBackend returns the current backend
func (m *Manager) GetBackend() Backend {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.backend
}

// Grayscale converts a 4-channel image using the selected backend
func (m *Manager) Grayscale(pix []byte, width, height int) ([]byte, error) {
	backend := m.GetBackend()
	if backend == nil {
		return nil, fmt.Errorf("no backend available")
	}
	return backend.Grayscale(pix, width, height)
}

// GetDeviceInfo returns device information from the current backend
func (m *Manager) GetDeviceInfo() DeviceInfo {
	backend := m.GetBackend()
	if backend == nil {
		return DeviceInfo{Name: "No backend available"}
	}
	return backend.GetDeviceInfo()
}

// IsGPUAvailable returns true if a device backend is active
func (m *Manager) IsGPUAvailable() bool {
	backend := m.GetBackend()
	if backend == nil {
		return false
	}
	_, isCPU := backend.(*CPUBackend)
	return !isCPU
}

// GetBackendType returns a string describing the current backend type
func (m *Manager) GetBackendType() string {
	backend := m.GetBackend()
	if backend == nil {
		return "none"
	}
	if _, isCPU := backend.(*CPUBackend); isCPU {
		return "cpu"
	}
	return "opencl"
}

// Cleanup releases resources held by the current backend
func (m *Manager) Cleanup() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		if err := m.backend.Cleanup(); err != nil {
			return err
		}
		m.backend = nil
	}
	return nil
}
