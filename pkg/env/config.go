// Package env provides configuration shared by the binaries.
package env

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/arduino.go/pkg/board"
	"github.com/robotalks/arduino.go/pkg/bridge"
	"github.com/robotalks/arduino.go/pkg/transport"
)

// Config provides common options to connect to a board.
type Config struct {
	// Port is a serial device path or a ws:// URL.
	Port        string
	BaudRate    int
	ReadTimeout time.Duration

	// MQTTBrokerURL specifies the MQTT broker for the bridge.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// ID identifies the board on the broker.
	ID           string
	PollPins     PinList
	PollInterval time.Duration
}

var defaultConfig = Config{
	BaudRate:      board.DefaultBaudRate,
	ReadTimeout:   board.DefaultReadTimeout,
	MQTTBrokerURL: "mqtt://localhost:1883/arduino/",
	PollInterval:  time.Second,
}

func init() {
	loadEnv(&defaultConfig, os.Getenv)
}

func loadEnv(c *Config, getenv func(string) string) {
	if val := getenv("ARDUINO_PORT"); val != "" {
		c.Port = val
	}
	if val := getenv("ARDUINO_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			c.BaudRate = baud
		} else {
			glog.Warningf("ignore ARDUINO_BAUD %q: %v", val, err)
		}
	}
	if val := getenv("ARDUINO_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.ReadTimeout = d
		} else {
			glog.Warningf("ignore ARDUINO_READ_TIMEOUT %q: %v", val, err)
		}
	}
	if val := getenv("ARDUINO_MQTT_URL"); val != "" {
		c.MQTTBrokerURL = val
	}
	if val := getenv("ARDUINO_ID"); val != "" {
		c.ID = val
	}
	if val := getenv("ARDUINO_POLL_PINS"); val != "" {
		if err := c.PollPins.Set(val); err != nil {
			glog.Warningf("ignore ARDUINO_POLL_PINS %q: %v", val, err)
		}
	}
	if val := getenv("ARDUINO_POLL_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.PollInterval = d
		} else {
			glog.Warningf("ignore ARDUINO_POLL_INTERVAL %q: %v", val, err)
		}
	}
}

// SetupFlags sets up command line flags for the board connection.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial device or ws:// URL of the board.")
	flag.IntVar(&defaultConfig.BaudRate, "baud", defaultConfig.BaudRate, "Baud rate.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Timeout of each read attempt.")
}

// SetupBridgeFlags sets up command line flags for the MQTT bridge.
func SetupBridgeFlags() {
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Board ID on the broker, defaults to machine ID.")
	flag.Var(&defaultConfig.PollPins, "poll", "Comma separated analog pins to poll.")
	flag.DurationVar(&defaultConfig.PollInterval, "poll-interval", defaultConfig.PollInterval, "Analog polling interval.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	conf.PollPins = append(PinList(nil), defaultConfig.PollPins...)
	return &conf
}

// Open connects to the board.
func (c *Config) Open() (*board.Controller, error) {
	if c.Port == "" {
		return nil, fmt.Errorf("board port must be specified")
	}
	t, err := transport.Open(c.Port, c.BaudRate)
	if err != nil {
		return nil, err
	}
	ctl := board.New(t)
	if c.ReadTimeout > 0 {
		ctl.ReadTimeout = c.ReadTimeout
	}
	return ctl, nil
}

// MustOpen connects to the board and fails on error.
func (c *Config) MustOpen() *board.Controller {
	ctl, err := c.Open()
	if err != nil {
		log.Fatalln(err)
	}
	return ctl
}

// NewBridge creates a bridge for the board.
func (c *Config) NewBridge(ctl *board.Controller) (*bridge.Bridge, error) {
	id := c.ID
	if id == "" {
		if id = MachineID(); id == "" {
			return nil, fmt.Errorf("board id must be specified")
		}
	}
	b, err := bridge.New(ctl, c.MQTTBrokerURL, id)
	if err != nil {
		return nil, fmt.Errorf("create MQTT bridge error: %w", err)
	}
	b.Meta = bridge.Meta{
		Description: ctl.String(),
		Address:     c.Port,
		BaudRate:    c.BaudRate,
	}
	b.PollPins = c.PollPins
	b.PollInterval = c.PollInterval
	return b, nil
}

// RunBridge runs the bridge until interrupted and closes the board.
func (c *Config) RunBridge(ctx context.Context, ctl *board.Controller) error {
	b, err := c.NewBridge(ctl)
	if err != nil {
		return err
	}
	glog.Infof("bridging %s as %q", ctl, b.ID)
	err = b.Run(ctx)
	if closeErr := c.CloseBoard(ctl); closeErr != nil {
		glog.Warningf("close board: %v", closeErr)
	}
	return err
}

// CloseBoard closes the board, waiting at most two read timeouts for
// the firmware to accept the shutdown command. The port is released
// either way.
func (c *Config) CloseBoard(ctl *board.Controller) error {
	timeout := c.ReadTimeout
	if timeout <= 0 {
		timeout = board.DefaultReadTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*timeout)
	defer cancel()
	return ctl.CloseContext(ctx)
}

// PinList is a flag.Value of comma separated pins.
type PinList []board.Pin

// String implements flag.Value.
func (l *PinList) String() string {
	if l == nil {
		return ""
	}
	strs := make([]string, len(*l))
	for n, pin := range *l {
		strs[n] = strconv.Itoa(int(pin))
	}
	return strings.Join(strs, ",")
}

// Set implements flag.Value.
func (l *PinList) Set(val string) error {
	pins, err := ParsePins(strings.Split(val, ",")...)
	if err != nil {
		return err
	}
	*l = pins
	return nil
}

// ParsePins parses pin numbers, validating each can be encoded.
func ParsePins(strs ...string) ([]board.Pin, error) {
	pins := make([]board.Pin, 0, len(strs))
	for _, s := range strs {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid pin %q: %w", s, err)
		}
		if err = board.ValidatePin(board.Pin(n)); err != nil {
			return nil, err
		}
		pins = append(pins, board.Pin(n))
	}
	return pins, nil
}
