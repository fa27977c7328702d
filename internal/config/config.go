// Package config loads environment configuration for JoyBridge.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr     = "0.0.0.0:8790"
	defaultDataDir        = "./data"
	defaultRemoteWidth    = 1920
	defaultRemoteHeight   = 1080
	defaultMoveSteps      = 6
	defaultStepIntervalMs = 20
	defaultLongPressMs    = 300
	defaultWalkRadius     = 120
	defaultSkillRadius    = 160
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr     string
	DataDir        string
	ProfilePath    string
	RemoteWidth    int
	RemoteHeight   int
	MoveSteps      int
	StepIntervalMs int
	LongPressMs    int
	WalkCenterX    int
	WalkCenterY    int
	WalkRadius     int
	SkillCenterX   int
	SkillCenterY   int
	SkillRadius    int
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		DataDir:        defaultDataDir,
		ProfilePath:    filepath.Join(defaultDataDir, "profiles.yaml"),
		RemoteWidth:    defaultRemoteWidth,
		RemoteHeight:   defaultRemoteHeight,
		MoveSteps:      defaultMoveSteps,
		StepIntervalMs: defaultStepIntervalMs,
		LongPressMs:    defaultLongPressMs,
		WalkRadius:     defaultWalkRadius,
		SkillRadius:    defaultSkillRadius,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.ProfilePath = envString("PROFILE_PATH", filepath.Join(cfg.DataDir, "profiles.yaml"))

	width, err := envInt("REMOTE_WIDTH", cfg.RemoteWidth)
	if err != nil {
		return Config{}, err
	}
	if width <= 0 {
		return Config{}, fmt.Errorf("REMOTE_WIDTH must be > 0")
	}
	cfg.RemoteWidth = width

	height, err := envInt("REMOTE_HEIGHT", cfg.RemoteHeight)
	if err != nil {
		return Config{}, err
	}
	if height <= 0 {
		return Config{}, fmt.Errorf("REMOTE_HEIGHT must be > 0")
	}
	cfg.RemoteHeight = height

	steps, err := envInt("MOVE_STEPS", cfg.MoveSteps)
	if err != nil {
		return Config{}, err
	}
	if steps <= 0 {
		return Config{}, fmt.Errorf("MOVE_STEPS must be > 0")
	}
	cfg.MoveSteps = steps

	stepInterval, err := envInt("STEP_INTERVAL_MS", cfg.StepIntervalMs)
	if err != nil {
		return Config{}, err
	}
	if stepInterval <= 0 {
		return Config{}, fmt.Errorf("STEP_INTERVAL_MS must be > 0")
	}
	cfg.StepIntervalMs = stepInterval

	longPress, err := envInt("LONG_PRESS_MS", cfg.LongPressMs)
	if err != nil {
		return Config{}, err
	}
	if longPress <= 0 {
		return Config{}, fmt.Errorf("LONG_PRESS_MS must be > 0")
	}
	cfg.LongPressMs = longPress

	cfg.WalkCenterX, err = envInt("WALK_CENTER_X", cfg.RemoteWidth/4)
	if err != nil {
		return Config{}, err
	}
	cfg.WalkCenterY, err = envInt("WALK_CENTER_Y", cfg.RemoteHeight*3/4)
	if err != nil {
		return Config{}, err
	}
	cfg.WalkRadius, err = envInt("WALK_RADIUS", cfg.WalkRadius)
	if err != nil {
		return Config{}, err
	}
	if cfg.WalkRadius <= 0 {
		return Config{}, fmt.Errorf("WALK_RADIUS must be > 0")
	}

	cfg.SkillCenterX, err = envInt("SKILL_CENTER_X", cfg.RemoteWidth*3/4)
	if err != nil {
		return Config{}, err
	}
	cfg.SkillCenterY, err = envInt("SKILL_CENTER_Y", cfg.RemoteHeight*3/4)
	if err != nil {
		return Config{}, err
	}
	cfg.SkillRadius, err = envInt("SKILL_RADIUS", cfg.SkillRadius)
	if err != nil {
		return Config{}, err
	}
	if cfg.SkillRadius <= 0 {
		return Config{}, fmt.Errorf("SKILL_RADIUS must be > 0")
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"'`)
	return key, value, true
}
