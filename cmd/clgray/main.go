package main

import (
	"fmt"
	"os"

	"github.com/i210429-muhammadalikhan/clgray/internal/config"
	"github.com/i210429-muhammadalikhan/clgray/internal/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	cfg        *config.Config
	rootLogger *zap.Logger
)

func main() {
	app := &cli.App{
		Name:  "clgray",
		Usage: "Convert an image to grayscale on an OpenCL compute device",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Load configuration from `FILE`",
				EnvVars: []string{"CLGRAY_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			switch path := c.String("config"); {
			case path != "":
				cfg, err = config.LoadConfig(path)
			case fileExists(config.DefaultConfigPath):
				cfg, err = config.LoadConfig(config.DefaultConfigPath)
			default:
				cfg = config.Default()
			}
			if err != nil {
				return err
			}

			zapLogger, err := logger.New(cfg.Logger.Verbosity)
			if err != nil {
				return err
			}
			rootLogger = zapLogger.Named("cli")
			return nil
		},
		Commands: []*cli.Command{
			runCommand(),
			devicesCommand(),
			initCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		if rootLogger != nil {
			rootLogger.Fatal("failed to run app", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
