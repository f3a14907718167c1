package configuration

// Actuator ids are fixed roles. Which signal drives which role is wired
// into the aggregation policy, only the curve and the backend of a role
// are user configurable.
const (
	ActuatorPump        = "pump"
	ActuatorRadiator    = "radiator"
	ActuatorMotherboard = "motherboard"
)

var ActuatorRoles = []string{ActuatorPump, ActuatorRadiator, ActuatorMotherboard}

type ActuatorConfig struct {
	ID string `json:"id"`
	// Curve is the id of the curve profile used to compute the duty for this actuator
	Curve string `json:"curve"`
	// Channels are the named output channels this actuator drives,
	// all channels of an actuator receive the same duty
	Channels []string `json:"channels"`

	HwMon *HwMonActuatorConfig `json:"hwmon,omitempty"`
	File  *FileActuatorConfig  `json:"file,omitempty"`
	Cmd   *CmdActuatorConfig   `json:"cmd,omitempty"`
}

type HwMonActuatorConfig struct {
	Platform string `json:"platform"`
	// Outputs maps a channel name to the pwm index on the matched chip
	Outputs map[string]int `json:"outputs"`

	// resolved at startup from the detected hwmon chips
	PwmOutputs map[string]string `json:"pwmOutputs"`
}

type FileActuatorConfig struct {
	// Paths maps a channel name to the file the duty is written to
	Paths map[string]string `json:"paths"`
}

type CmdActuatorConfig struct {
	SetDuty *CmdConfig `json:"setDuty"`
	GetDuty *CmdConfig `json:"getDuty,omitempty"`
}

type CmdConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
