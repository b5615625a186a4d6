package main

import (
	"fmt"
	"os"

	"github.com/i210429-muhammadalikhan/clgray/fixtures"
	"github.com/i210429-muhammadalikhan/clgray/internal/config"
	"github.com/urfave/cli/v2"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default config.yaml to the working directory",
		Action: func(c *cli.Context) error {
			if fileExists(config.DefaultConfigPath) {
				return fmt.Errorf("%s already exists", config.DefaultConfigPath)
			}
			if err := os.WriteFile(config.DefaultConfigPath, fixtures.ConfigTemplate, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", config.DefaultConfigPath)
			return nil
		},
	}
}
