package settings

import (
	"comfyhost/logger"
)

type (
	Config struct {
		Server  ServerConfig  `toml:"server" validate:"required"`
		Paths   PathsConfig   `toml:"paths" validate:"required"`
		Logging logger.Config `toml:"logging" validate:"required"`
	}

	ServerConfig struct {
		Host        string `toml:"host" validate:"required"`
		Port        int    `toml:"port" validate:"required,min=1,max=65535"`
		FrontendDir string `toml:"frontendDir" validate:"required"`
	}

	// PathsConfig points at the ComfyUI directories being served.
	PathsConfig struct {
		Workflows string `toml:"workflows" validate:"required"`
		Models    string `toml:"models" validate:"required"`
		Media     string `toml:"media"` // empty disables the media endpoints
	}
)
