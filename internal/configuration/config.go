package configuration

import (
	"os"
	"time"

	"github.com/markusressel/coolctl/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// Interval is the time between two monitoring cycles.
	Interval time.Duration `json:"interval"`
	// ReadTimeout is the maximum time a single sensor read may take
	// before its reading is treated as absent for the cycle.
	ReadTimeout time.Duration `json:"readTimeout"`
	// HistorySize is the number of raw readings kept per signal.
	HistorySize int `json:"historySize"`
	// SmoothingFactor is the exponential smoothing alpha, in (0..1].
	SmoothingFactor float64 `json:"smoothingFactor"`
	// DegradedThreshold is the number of consecutive absent readings
	// after which a signal is considered degraded.
	DegradedThreshold int `json:"degradedThreshold"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`

	Sensors   []SensorConfig   `json:"sensors"`
	Actuators []ActuatorConfig `json:"actuators"`
	Curves    []CurveConfig    `json:"curves"`
	Limits    LimitsConfig     `json:"limits"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("coolctl")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/coolctl/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/coolctl/coolctl.db")

	viper.SetDefault("interval", 2*time.Second)
	viper.SetDefault("readTimeout", 1*time.Second)
	viper.SetDefault("historySize", 10)
	viper.SetDefault("smoothingFactor", 0.2)
	viper.SetDefault("degradedThreshold", 5)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("sensors", []SensorConfig{})
	viper.SetDefault("actuators", []ActuatorConfig{})
	viper.SetDefault("curves", []CurveConfig{})
	viper.SetDefault("limits", LimitsConfig{
		SignalCpu:         95.0,
		SignalGpu:         90.0,
		SignalCoolant:     50.0,
		SignalMotherboard: 80.0,
	})
}

// DetectAndReadConfigFile detects the path of the first config file found and reads it
func DetectAndReadConfigFile() string {
	readConfigFile()
	return GetFilePath()
}

// GetFilePath returns the path of the config file in use.
// Note: this is only populated _after_ the config file has been read.
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

func readConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
}

// LoadConfig unmarshals the read config file into CurrentConfig
func LoadConfig() {
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			profilePointsHookFunc(),
		)),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
