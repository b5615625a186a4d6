package main

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/i210429-muhammadalikhan/clgray/internal/gpu"
	"github.com/i210429-muhammadalikhan/clgray/internal/logger"
	"github.com/urfave/cli/v2"
)

func devicesCommand() *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "Report the compute device the configured backend would use",
		Action: func(c *cli.Context) error {
			banner := figure.NewFigure("clgray", "", true)
			banner.Print()
			fmt.Println("")

			manager, err := gpu.NewManager(logger.Device(cfg.Logger.Verbosity), cfg.Backend)
			if err != nil {
				return fmt.Errorf("backend %q: %w", cfg.Backend, err)
			}
			defer manager.Cleanup()

			info := manager.GetDeviceInfo()
			fmt.Printf("Backend:       %s\n", manager.GetBackendType())
			fmt.Printf("Device:        %s\n", info.Name)
			fmt.Printf("Vendor:        %s\n", info.Vendor)
			fmt.Printf("Version:       %s\n", info.Version)
			fmt.Printf("Driver:        %s\n", info.DriverVersion)
			if info.GlobalMemory > 0 {
				fmt.Printf("Global memory: %.2f GiB\n", float64(info.GlobalMemory)/(1<<30))
			}
			if info.ComputeUnits > 0 {
				fmt.Printf("Compute units: %d\n", info.ComputeUnits)
			}
			return nil
		},
	}
}
