package actuators

import (
	"errors"
	"fmt"

	"github.com/markusressel/coolctl/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// ErrDispatch indicates that a duty command could not be delivered
// to the underlying device.
var ErrDispatch = errors.New("dispatch failed")

var (
	ActuatorMap = cmap.New[Actuator]()
)

type Actuator interface {
	GetId() string

	GetConfig() configuration.ActuatorConfig

	// GetChannels returns the output channels driven by this actuator.
	GetChannels() []string

	// SetDuty applies the given duty in percent [0..100] to the
	// given channel.
	SetDuty(channel string, percent int) (err error)

	// GetDuty reads the duty currently applied to the given channel
	// from the device.
	GetDuty(channel string) (percent int, err error)

	// GetLastDuty returns the duty last successfully applied to the
	// given channel, or false if no command succeeded yet.
	GetLastDuty(channel string) (int, bool)
}

func NewActuator(config configuration.ActuatorConfig) (Actuator, error) {
	if config.HwMon != nil {
		return &HwMonActuator{
			Config:   config,
			LastDuty: map[string]int{},
		}, nil
	}

	if config.File != nil {
		return &FileActuator{
			Config:   config,
			LastDuty: map[string]int{},
		}, nil
	}

	if config.Cmd != nil {
		return &CmdActuator{
			Config:   config,
			LastDuty: map[string]int{},
		}, nil
	}

	return nil, fmt.Errorf("no matching actuator backend for: %s", config.ID)
}
