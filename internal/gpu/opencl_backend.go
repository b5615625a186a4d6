//go:build opencl
// +build opencl

package gpu

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// OpenCLBackend implements Backend against the first GPU-class device of the
// first platform that has one. Initialize performs device discovery, context
// and queue creation and the runtime kernel build; Grayscale allocates the
// per-image buffers, binds arguments and dispatches one 2-D NDRange with one
// work-item per pixel.
type OpenCLBackend struct {
	logger      *slog.Logger
	initialized bool
	available   bool
	deviceInfo  DeviceInfo

	device  *cl.Device
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernel  *cl.Kernel
}

// NewOpenCLBackend creates a new OpenCL backend instance
func NewOpenCLBackend(logger *slog.Logger) *OpenCLBackend {
	backend := &OpenCLBackend{
		logger: logger,
	}

	device, err := firstGPUDevice()
	if err != nil {
		logger.Warn("OpenCL device not available", "error", err)
		backend.available = false
	} else {
		backend.device = device
		backend.available = true
	}

	return backend
}

// firstGPUDevice selects the first GPU-class device on the first available
// platform. Discovery stops there: a GPU registered on a later platform does
// not count, and the run aborts instead of falling through to it.
func firstGPUDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, fmt.Errorf("querying OpenCL platforms: %w", err)
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("querying OpenCL platforms: %w", ErrNoDevice)
	}
	devices, err := platforms[0].GetDevices(cl.DeviceTypeGPU)
	if err != nil && err != cl.ErrDeviceNotFound {
		return nil, fmt.Errorf("querying devices on first platform: %w", err)
	}
	if len(devices) == 0 {
		return nil, ErrNoDevice
	}
	return devices[0], nil
}

// Initialize creates the context, the in-order command queue and builds the
// embedded kernel source for the selected device. Everything acquired is
// released again if any later step fails.
func (b *OpenCLBackend) Initialize() error {
	if !b.available {
		return ErrNoDevice
	}
	if b.initialized {
		return nil
	}

	b.logger.Debug("Initializing OpenCL backend", "device", b.device.Name())

	ok := false
	defer func() {
		if !ok {
			b.release()
		}
	}()

	context, err := cl.CreateContext([]*cl.Device{b.device})
	if err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	b.context = context

	queue, err := context.CreateCommandQueue(b.device, 0)
	if err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	b.queue = queue

	program, err := context.CreateProgramWithSource([]string{grayscaleKernelSource})
	if err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	b.program = program

	if err := program.BuildProgram([]*cl.Device{b.device}, ""); err != nil {
		if buildErr, isBuildErr := err.(cl.BuildError); isBuildErr {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}

	kernel, err := program.CreateKernel(grayscaleKernelName)
	if err != nil {
		return fmt.Errorf("creating kernel %q: %w", grayscaleKernelName, err)
	}
	b.kernel = kernel

	b.deviceInfo = DeviceInfo{
		Name:          b.device.Name(),
		Vendor:        b.device.Vendor(),
		Version:       b.device.Version(),
		DriverVersion: b.device.DriverVersion(),
		GlobalMemory:  b.device.GlobalMemSize(),
		ComputeUnits:  b.device.MaxComputeUnits(),
	}

	b.initialized = true
	ok = true
	b.logger.Info("OpenCL backend initialized",
		"device", b.deviceInfo.Name,
		"vendor", b.deviceInfo.Vendor,
		"compute_units", b.deviceInfo.ComputeUnits,
		"global_memory_gb", float64(b.deviceInfo.GlobalMemory)/(1<<30))

	return nil
}

// Grayscale uploads pix to a read-only device buffer, dispatches the kernel
// over a width x height grid with a runtime-chosen work-group size, and
// performs a blocking read of the write-only output buffer. The upload blocks
// too, so the host slice is never referenced by an in-flight transfer.
func (b *OpenCLBackend) Grayscale(pix []byte, width, height int) ([]byte, error) {
	if !b.initialized {
		if err := b.Initialize(); err != nil {
			return nil, fmt.Errorf("initializing OpenCL backend: %w", err)
		}
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	size := width * height * 4
	if len(pix) != size {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", size, len(pix))
	}

	inputBuf, err := b.context.CreateEmptyBuffer(cl.MemReadOnly, size)
	if err != nil {
		return nil, fmt.Errorf("allocating input buffer: %w", err)
	}
	defer inputBuf.Release()

	outputBuf, err := b.context.CreateEmptyBuffer(cl.MemWriteOnly, size)
	if err != nil {
		return nil, fmt.Errorf("allocating output buffer: %w", err)
	}
	defer outputBuf.Release()

	if _, err := b.queue.EnqueueWriteBuffer(inputBuf, true, 0, size, unsafe.Pointer(&pix[0]), nil); err != nil {
		return nil, fmt.Errorf("writing input buffer: %w", err)
	}

	if err := b.kernel.SetArgs(inputBuf, outputBuf, int32(width), int32(height)); err != nil {
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}

	// One work-item per pixel; the runtime picks the work-group size.
	if _, err := b.queue.EnqueueNDRangeKernel(b.kernel, nil, []int{width, height}, nil, nil); err != nil {
		return nil, fmt.Errorf("enqueueing kernel: %w", err)
	}

	out := make([]byte, size)
	if _, err := b.queue.EnqueueReadBuffer(outputBuf, true, 0, size, unsafe.Pointer(&out[0]), nil); err != nil {
		return nil, fmt.Errorf("reading output buffer: %w", err)
	}

	return out, nil
}

// GetDeviceInfo returns information about the OpenCL device
func (b *OpenCLBackend) GetDeviceInfo() DeviceInfo {
	return b.deviceInfo
}

// IsAvailable checks if a GPU-class OpenCL device was found
func (b *OpenCLBackend) IsAvailable() bool {
	return b.available
}

// Cleanup releases all device objects held by the backend
func (b *OpenCLBackend) Cleanup() error {
	b.logger.Debug("Cleaning up OpenCL backend")
	b.release()
	b.initialized = false
	return nil
}

func (b *OpenCLBackend) release() {
	if b.kernel != nil {
		b.kernel.Release()
		b.kernel = nil
	}
	if b.program != nil {
		b.program.Release()
		b.program = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.context != nil {
		b.context.Release()
		b.context = nil
	}
}
