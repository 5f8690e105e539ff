package pgnsim

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"io"
	"io/ioutil"
	"os"
	"time"
)

const (
	DefaultInterval      = 200 * time.Millisecond
	DefaultPriority      = 3
	DefaultSourceAddress = 0x23
)

type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Config struct {
	Interval      Duration
	Priority      uint8
	SourceAddress uint8
	GNSSDetailed  bool
	Source        string
	Readings      Readings
}

func DefaultConfig() *Config {
	return &Config{
		Interval:      Duration{DefaultInterval},
		Priority:      DefaultPriority,
		SourceAddress: DefaultSourceAddress,
		Source:        SourceConstant,
		Readings:      DefaultReadings(),
	}
}

func LoadConfig(fileName string) (*Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open file %s", fileName)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader decodes TOML on top of DefaultConfig, so keys left
// out keep their default.
func LoadConfigFromReader(configReader io.Reader) (*Config, error) {
	configData, err := ioutil.ReadAll(configReader)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read config reader")
	}
	config := DefaultConfig()
	if _, err := toml.Decode(string(configData), config); err != nil {
		return nil, errors.Wrap(err, "unable to load simulator configuration")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Interval.Duration <= 0 {
		return errors.Errorf("interval must be positive, got %v", c.Interval.Duration)
	}
	if c.Priority > 7 {
		return errors.Errorf("priority must be between 0 and 7, got %d", c.Priority)
	}
	switch c.Source {
	case SourceConstant, SourceRamp:
	default:
		return errors.Errorf("unknown reading source %q", c.Source)
	}
	return nil
}
