// Package config loads game settings from an optional JSON file and
// VICESTREETS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Garsondee/vice-streets/internal/game"
)

// EnvPrefix is prepended to every environment override, e.g.
// VICESTREETS_SIM_SEED=42.
const EnvPrefix = "VICESTREETS"

// WorldConfig is the playfield size in pixels.
type WorldConfig struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

// SimConfig holds simulation timing and seeding.
type SimConfig struct {
	FrameMs      int    `json:"frameMs" mapstructure:"frameMs"`
	Seed         uint64 `json:"seed" mapstructure:"seed"` // 0 derives a seed from the clock
	RegenDelayMs int    `json:"regenDelayMs" mapstructure:"regenDelayMs"`
}

// VehicleConfig holds vehicle tuning.
type VehicleConfig struct {
	CollisionCooldownMs int `json:"collisionCooldownMs" mapstructure:"collisionCooldownMs"`
}

// AudioConfig holds sound output settings.
type AudioConfig struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Volume  float64 `json:"volume" mapstructure:"volume"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// StorageConfig points at the save-game database.
type StorageConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// WindowConfig holds desktop window settings.
type WindowConfig struct {
	Scale float64 `json:"scale" mapstructure:"scale"`
}

// Config is the full set of settings.
type Config struct {
	World    WorldConfig   `json:"world" mapstructure:"world"`
	Sim      SimConfig     `json:"sim" mapstructure:"sim"`
	Vehicles VehicleConfig `json:"vehicles" mapstructure:"vehicles"`
	Audio    AudioConfig   `json:"audio" mapstructure:"audio"`
	Log      LogConfig     `json:"log" mapstructure:"log"`
	Storage  StorageConfig `json:"storage" mapstructure:"storage"`
	Window   WindowConfig  `json:"window" mapstructure:"window"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("world.width", 1024)
	v.SetDefault("world.height", 768)

	v.SetDefault("sim.frameMs", 16)
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.regenDelayMs", 2000)

	v.SetDefault("vehicles.collisionCooldownMs", 0)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)

	v.SetDefault("log.level", "info")
	v.SetDefault("storage.path", "vicestreets.db")
	v.SetDefault("window.scale", 1)
}

// Load reads settings. An empty path or a missing file means defaults plus
// environment; a file that exists but does not parse is an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil && !isMissing(err) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func isMissing(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

func (c Config) validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: world size %vx%v must be positive", c.World.Width, c.World.Height)
	case c.Sim.FrameMs <= 0:
		return fmt.Errorf("config: sim.frameMs %d must be positive", c.Sim.FrameMs)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("config: audio.volume %v outside [0,1]", c.Audio.Volume)
	}
	return nil
}

// SimOptions converts the settings into simulation options.
func (c Config) SimOptions() []game.Option {
	opts := []game.Option{
		game.WithWorldSize(c.World.Width, c.World.Height),
		game.WithFrameInterval(time.Duration(c.Sim.FrameMs) * time.Millisecond),
		game.WithRegenDelay(time.Duration(c.Sim.RegenDelayMs) * time.Millisecond),
		game.WithVehicleCollisionCooldown(time.Duration(c.Vehicles.CollisionCooldownMs) * time.Millisecond),
	}
	if c.Sim.Seed != 0 {
		opts = append(opts, game.WithSeed(c.Sim.Seed))
	}
	return opts
}
