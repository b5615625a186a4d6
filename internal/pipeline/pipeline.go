// Package pipeline runs the one-shot grayscale conversion: load, reshape to
// the device layout, hand off to the compute backend, reshape back and save.
// Each stage is a hard precondition for the next; the first failure aborts
// the run.
package pipeline

import (
	"fmt"
	"time"

	"github.com/i210429-muhammadalikhan/clgray/internal/config"
	"github.com/i210429-muhammadalikhan/clgray/internal/gpu"
	"github.com/i210429-muhammadalikhan/clgray/internal/imageio"
	"github.com/i210429-muhammadalikhan/clgray/internal/logger"
	"github.com/i210429-muhammadalikhan/clgray/internal/metrics"
	"go.uber.org/zap"
)

type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		log: log.Named("pipeline"),
	}
}

// Run executes the whole conversion once. Device resources are released on
// every exit path, not only the successful one.
func (p *Pipeline) Run() (err error) {
	backend := p.cfg.Backend
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.RunsTotal.WithLabelValues(backend, status).Inc()
	}()

	var input *imageio.PixelBuffer
	if err := p.stage("load", func() error {
		var loadErr error
		input, loadErr = imageio.Load(p.cfg.Input)
		return loadErr
	}); err != nil {
		return err
	}

	input = imageio.Clamp(input, p.cfg.MaxDimension)
	metrics.ImagePixels.Set(float64(input.Width * input.Height))
	metrics.ImageBytes.Set(float64(input.Width * input.Height * 4))

	var rgba *imageio.PixelBuffer
	if err := p.stage("convert_in", func() error {
		var convErr error
		rgba, convErr = imageio.ConvertChannels(input, imageio.FormatRGBA)
		return convErr
	}); err != nil {
		return err
	}

	// Device discovery happens after the image is loaded, so a missing
	// input never touches the compute runtime and a missing device never
	// allocates a buffer.
	var manager *gpu.Manager
	if err := p.stage("device_init", func() error {
		var mgrErr error
		manager, mgrErr = gpu.NewManager(logger.Device(p.cfg.Logger.Verbosity), p.cfg.Backend)
		return mgrErr
	}); err != nil {
		return err
	}
	defer func() {
		if cleanupErr := manager.Cleanup(); cleanupErr != nil {
			p.log.Warn("backend cleanup failed", zap.Error(cleanupErr))
		}
	}()
	backend = manager.GetBackendType()

	info := manager.GetDeviceInfo()
	p.log.Debug("compute device selected",
		zap.String("backend", backend),
		zap.String("device", info.Name),
		zap.String("vendor", info.Vendor))

	var converted []byte
	if err := p.stage("grayscale", func() error {
		var grayErr error
		converted, grayErr = manager.Grayscale(rgba.Pix, rgba.Width, rgba.Height)
		return grayErr
	}); err != nil {
		return err
	}

	output := &imageio.PixelBuffer{
		Width:  rgba.Width,
		Height: rgba.Height,
		Format: imageio.FormatRGBA,
		Pix:    converted,
	}

	var rgb *imageio.PixelBuffer
	if err := p.stage("convert_out", func() error {
		var convErr error
		rgb, convErr = imageio.ConvertChannels(output, imageio.FormatRGB)
		return convErr
	}); err != nil {
		return err
	}

	if err := p.stage("save", func() error {
		return imageio.Save(p.cfg.Output, rgb)
	}); err != nil {
		return err
	}

	p.log.Info("grayscale conversion finished",
		zap.String("input", p.cfg.Input),
		zap.String("output", p.cfg.Output),
		zap.Int("width", rgb.Width),
		zap.Int("height", rgb.Height),
		zap.String("backend", backend))

	return nil
}

func (p *Pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	metrics.StageDuration.WithLabelValues(name).Observe(float64(elapsed.Microseconds()) / 1000.0)

	if err != nil {
		p.log.Error("pipeline stage failed", zap.String("stage", name), zap.Error(err))
		return fmt.Errorf("stage %s: %w", name, err)
	}
	p.log.Debug("pipeline stage finished", zap.String("stage", name), zap.Duration("elapsed", elapsed))
	return nil
}
