package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Settings are the runtime options shared by every command.
// Tournament data itself lives in the repository under DataDir.
type Settings struct {
	DataDir      string
	Addr         string
	LogLevel     string
	Sound        string
	TickInterval time.Duration
}

const (
	// SoundBeep plays alerts through the system speaker.
	SoundBeep = "beep"
	// SoundOff disables audio entirely.
	SoundOff = "off"
)

var (
	// DefaultAddr is where the web UI listens if not configured.
	DefaultAddr = "127.0.0.1:7070"
	// DefaultTickInterval is one clock second.
	DefaultTickInterval = time.Second
)

// DefaultSettings returns the initial settings.
func DefaultSettings() Settings {
	return Settings{
		DataDir:      DefaultDataDir(),
		Addr:         DefaultAddr,
		LogLevel:     "",
		Sound:        SoundBeep,
		TickInterval: DefaultTickInterval,
	}
}

// Load reads an optional .env file and overlays POKERCLOCK_* variables on the defaults.
func Load(envFiles ...string) (Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), err
	}

	settings := DefaultSettings()
	settings.DataDir = getEnv("POKERCLOCK_DATA_DIR", settings.DataDir)
	settings.Addr = getEnv("POKERCLOCK_ADDR", settings.Addr)
	settings.LogLevel = getEnv("POKERCLOCK_LOG_LEVEL", settings.LogLevel)
	settings.Sound = getEnv("POKERCLOCK_SOUND", settings.Sound)
	settings.TickInterval = getEnvAsDuration("POKERCLOCK_TICK", settings.TickInterval)
	return Normalize(settings)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
