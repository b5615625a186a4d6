package main

import (
	"fmt"

	"github.com/i210429-muhammadalikhan/clgray/internal/pipeline"
	"github.com/urfave/cli/v2"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the grayscale conversion once",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "input",
				Usage: "Input image `FILE` (overrides config)",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output image `FILE` (overrides config)",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Compute backend: auto, opencl or cpu (overrides config)",
			},
		},
		Action: func(c *cli.Context) error {
			if v := c.String("input"); v != "" {
				cfg.Input = v
			}
			if v := c.String("output"); v != "" {
				cfg.Output = v
			}
			if v := c.String("backend"); v != "" {
				cfg.Backend = v
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := pipeline.New(cfg, rootLogger).Run(); err != nil {
				return err
			}

			fmt.Printf("Grayscale conversion has been completed. The output was saved as %s\n", cfg.Output)
			return nil
		},
	}
}
