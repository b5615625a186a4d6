//go:build opencl
// +build opencl

package gpu

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/jgillich/go-opencl/cl"
)

// Availability must be decided by the first platform alone. A GPU sitting on
// a later platform (a CPU-only ICD registered ahead of the vendor driver)
// must not make the backend available.
func TestOpenCLBackend_FirstPlatformOnly(t *testing.T) {
	platforms, err := cl.GetPlatforms()
	if err != nil || len(platforms) == 0 {
		t.Skip("No OpenCL platforms available")
	}

	devices, err := platforms[0].GetDevices(cl.DeviceTypeGPU)
	if err != nil && err != cl.ErrDeviceNotFound {
		t.Fatalf("Querying first platform devices: %v", err)
	}

	backend := NewOpenCLBackend(slog.Default())
	if got, want := backend.IsAvailable(), len(devices) > 0; got != want {
		t.Errorf("Availability = %v, first platform has GPU = %v; discovery must stop at the first platform", got, want)
	}
}

func TestOpenCLBackend(t *testing.T) {
	logger := slog.Default()
	backend := NewOpenCLBackend(logger)
	if !backend.IsAvailable() {
		t.Skip("No OpenCL GPU device available")
	}

	if err := backend.Initialize(); err != nil {
		t.Fatalf("Failed to initialize OpenCL backend: %v", err)
	}
	defer backend.Cleanup()

	info := backend.GetDeviceInfo()
	if info.Name == "" {
		t.Error("Expected a device name")
	}

	out, err := backend.Grayscale([]byte{30, 60, 90, 255}, 1, 1)
	if err != nil {
		t.Fatalf("Grayscale failed: %v", err)
	}
	if !bytes.Equal(out, []byte{60, 60, 60, 255}) {
		t.Errorf("Expected (60, 60, 60, 255), got %v", out)
	}
}

func TestOpenCLBackend_MatchesCPU(t *testing.T) {
	logger := slog.Default()
	backend := NewOpenCLBackend(logger)
	if !backend.IsAvailable() {
		t.Skip("No OpenCL GPU device available")
	}
	if err := backend.Initialize(); err != nil {
		t.Fatalf("Failed to initialize OpenCL backend: %v", err)
	}
	defer backend.Cleanup()

	cpu := NewCPUBackend(logger)
	if err := cpu.Initialize(); err != nil {
		t.Fatalf("Failed to initialize CPU backend: %v", err)
	}
	defer cpu.Cleanup()

	w, h := 64, 48
	pix := make([]byte, w*h*4)
	for i := range pix {
		pix[i] = byte(i * 7)
	}

	gpuOut, err := backend.Grayscale(pix, w, h)
	if err != nil {
		t.Fatalf("OpenCL grayscale failed: %v", err)
	}
	cpuOut, err := cpu.Grayscale(pix, w, h)
	if err != nil {
		t.Fatalf("CPU grayscale failed: %v", err)
	}

	if !bytes.Equal(gpuOut, cpuOut) {
		t.Error("Device and host results must be byte-identical")
	}
}
