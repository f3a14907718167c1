package configuration

// The signal a sensor feeds is encoded in its id. The set of signals is
// fixed, it mirrors the physical layout of the cooling loop.
const (
	SignalCpu         = "cpu"
	SignalGpu         = "gpu"
	SignalCoolant     = "coolant"
	SignalMotherboard = "motherboard"
)

var Signals = []string{SignalCpu, SignalGpu, SignalCoolant, SignalMotherboard}

type SensorConfig struct {
	ID    string             `json:"id"`
	HwMon *HwMonSensorConfig `json:"hwmon,omitempty"`
	File  *FileSensorConfig  `json:"file,omitempty"`
	Cmd   *CmdSensorConfig   `json:"cmd,omitempty"`
}

type HwMonSensorConfig struct {
	Platform string `json:"platform"`
	Index    int    `json:"index"`

	// resolved at startup from the detected hwmon chips
	TempInput string `json:"tempInput"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
