package gpu

import (
	"errors"
	"log/slog"
	"testing"
)

func TestManager_CPU(t *testing.T) {
	logger := slog.Default()
	manager, err := NewManager(logger, "cpu")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Cleanup()

	backend := manager.GetBackend()
	if backend == nil {
		t.Fatal("Manager should have a backend")
	}
	if manager.GetBackendType() != "cpu" {
		t.Errorf("Expected backend type cpu, got %s", manager.GetBackendType())
	}
	if manager.IsGPUAvailable() {
		t.Error("CPU backend must not report as GPU")
	}

	out, err := manager.Grayscale([]byte{30, 60, 90, 255}, 1, 1)
	if err != nil {
		t.Fatalf("Grayscale failed: %v", err)
	}
	if out[0] != 60 || out[3] != 255 {
		t.Errorf("Unexpected result %v", out)
	}
}

func TestManager_UnknownPreference(t *testing.T) {
	_, err := NewManager(slog.Default(), "vulkan")
	if err == nil {
		t.Fatal("Expected error for unknown backend preference")
	}
}

func TestManager_AutoRequiresDevice(t *testing.T) {
	// Without a GPU-class device (or when compiled without the opencl tag)
	// the default policy must abort before any buffer work, never fall back
	// to the CPU.
	manager, err := NewManager(slog.Default(), "auto")
	if err != nil {
		if !errors.Is(err, ErrNoDevice) && !errors.Is(err, ErrBackendUnavailable) {
			t.Errorf("Expected a device availability error, got %v", err)
		}
		return
	}
	defer manager.Cleanup()

	if !manager.IsGPUAvailable() {
		t.Error("auto must never select the CPU backend")
	}
}

func TestManager_Cleanup(t *testing.T) {
	manager, err := NewManager(slog.Default(), "cpu")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if manager.GetBackend() != nil {
		t.Error("Backend should be nil after cleanup")
	}
	if _, err := manager.Grayscale([]byte{0, 0, 0, 0}, 1, 1); err == nil {
		t.Error("Expected error after cleanup")
	}
}
