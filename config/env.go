// Package config exposes one lazy getter per subsystem. Values come from
// the process environment, seeded from the project .env file, with an
// optional YAML overlay pointed to by CONFIG_FILE for keys the environment
// does not set.
package config

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	envOnce    sync.Once
	fileValues map[string]string
)

func loadEnv() {
	envOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		configDir := filepath.Dir(filename)

		rootDir := filepath.Dir(configDir)
		envPath := filepath.Join(rootDir, ".env")

		if err := godotenv.Load(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, falling back to environment variables", envPath)
		}

		if path := os.Getenv("CONFIG_FILE"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("Warning: can't read config file %s: %v", path, err)
				return
			}
			values := make(map[string]string)
			if err := yaml.Unmarshal(data, &values); err != nil {
				log.Printf("Warning: can't parse config file %s: %v", path, err)
				return
			}
			fileValues = values
		}
	})
}

// lookup returns the value for key, preferring the environment over the
// YAML overlay, or def when neither is set.
func lookup(key, def string) string {
	loadEnv()
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v, ok := fileValues[key]; ok && v != "" {
		return v
	}
	return def
}

func lookupInt(key string, def int) int {
	v := lookup(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}

func lookupBool(key string, def bool) bool {
	v := lookup(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a boolean, using %v", key, v, def)
		return def
	}
	return b
}
