package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize taskflow in the current directory",
	Long: `Initialize taskflow in the current directory.
Writes a .taskflow.yaml configuration file and creates the data directory.`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing configuration")
}

func runInit(_ *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ".taskflow.yaml")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("configuration already exists, use --force to overwrite")
	}

	defaults := map[string]interface{}{
		"log": map[string]interface{}{
			"level":  "info",
			"format": "auto",
		},
		"storage": map[string]interface{}{
			"backend": "json",
			"dir":     ".taskflow",
		},
		"server": map[string]interface{}{
			"host": "127.0.0.1",
			"port": 8787,
		},
		"tasks": map[string]interface{}{
			"default_category": "personal",
			"activity_cap":     200,
		},
	}
	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(cwd, ".taskflow"), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	fmt.Println("Initialized taskflow in", cwd)
	fmt.Println("Configuration file: .taskflow.yaml")
	return nil
}
