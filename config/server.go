package config

import (
	"sync"
)

var (
	serverOnce   sync.Once
	serverConfig *ServerConfig
)

type ServerConfig struct {
	Port            string
	MaxUploadSizeMB int
	LogLevel        string
}

func GetServerConfig() *ServerConfig {
	serverOnce.Do(func() {
		serverConfig = &ServerConfig{
			Port:            lookup("SERVER_PORT", "8080"),
			MaxUploadSizeMB: lookupInt("MAX_UPLOAD_SIZE_MB", 20),
			LogLevel:        lookup("LOG_LEVEL", "info"),
		}
	})
	return serverConfig
}
