package gpu

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeviceBackend(t *testing.T) {
	logger := slog.Default()

	// The factory must always hand back a backend; availability depends on
	// the build tag and the host hardware.
	backend := newDeviceBackend(logger)
	assert.NotNil(t, backend)

	if !backend.IsAvailable() {
		// Unavailable device backends must refuse to initialize rather
		// than pretend to work.
		assert.Error(t, backend.Initialize())
		assert.NoError(t, backend.Cleanup())
		return
	}

	assert.NoError(t, backend.Initialize())
	info := backend.GetDeviceInfo()
	assert.NotEmpty(t, info.Name)
	assert.NoError(t, backend.Cleanup())
}
