package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// DefaultRoomCount is the number of rooms provisioned for a fresh hotel.
const DefaultRoomCount = 45

// HotelConfig holds user-facing settings for the hotel.
// Source: optional TOML configuration file
type HotelConfig struct {
	Provisioning ProvisioningConfig `toml:"provisioning"`
}

// ProvisioningConfig only applies when no persisted dataset exists yet.
type ProvisioningConfig struct {
	RoomCount int `toml:"room_count"`
}

// DefaultHotelConfig returns the settings used when no file is present.
func DefaultHotelConfig() *HotelConfig {
	return &HotelConfig{
		Provisioning: ProvisioningConfig{RoomCount: DefaultRoomCount},
	}
}

// LoadHotelConfig loads hotel configuration from a TOML file. A missing file
// yields the defaults.
func LoadHotelConfig(path string) (*HotelConfig, error) {
	cfg := DefaultHotelConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultHotelConfig(), nil
		}
		return nil, fmt.Errorf("failed to load hotel config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *HotelConfig) Validate() error {
	if c.Provisioning.RoomCount < 1 {
		return fmt.Errorf("provisioning.room_count must be at least 1, got %d", c.Provisioning.RoomCount)
	}
	return nil
}
