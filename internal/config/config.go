package config

import (
	"log"
	"os"
)

const (
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultAppEnv        = "dev"
	defaultExtractScript = "scripts/extract_volume.py"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port   string
	DBPath string
	AppEnv string

	// FreeCADPython is a python interpreter with FreeCAD importable. Empty
	// disables the geometric kernel; volumes then come from the
	// deterministic hash estimator only.
	FreeCADPython string
	ExtractScript string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Port:          os.Getenv("PORT"),
		DBPath:        os.Getenv("DB_PATH"),
		AppEnv:        os.Getenv("APP_ENV"),
		FreeCADPython: os.Getenv("FREECAD_PYTHON"),
		ExtractScript: os.Getenv("EXTRACT_SCRIPT"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = defaultAppEnv
	}
	if cfg.ExtractScript == "" {
		cfg.ExtractScript = defaultExtractScript
	}

	if cfg.FreeCADPython == "" {
		log.Print("warning: FREECAD_PYTHON is not set, volumes use hash estimates only")
	}

	return cfg
}

// IsDev reports whether the process runs in the development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == defaultAppEnv
}
