package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/m3rciful/recruitbot/core/cmd"
	"github.com/m3rciful/recruitbot/internal/app"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "path to the YAML config (overrides CONFIG_PATH)")
	pflag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	err := cmd.Run(cmd.Options{
		ConfigPath:        configPath,
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := app.Load(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("recruitbot: %v", err)
	}
}
