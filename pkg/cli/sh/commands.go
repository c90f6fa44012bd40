package sh

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/arduino.go/pkg/board"
	"github.com/robotalks/arduino.go/pkg/env"
	"github.com/robotalks/arduino.go/pkg/transport"
)

// PinState is the printable state of a pin.
type PinState struct {
	Pin   int    `json:"pin"`
	Level string `json:"level"`
}

// AnalogValue is the printable result of an analog read.
type AnalogValue struct {
	Pin   int    `json:"pin"`
	Value string `json:"value"`
}

func parsePin(c *ishell.Context, n int) (board.Pin, bool) {
	if len(c.Args) <= n {
		c.Err(fmt.Errorf("PIN required"))
		return 0, false
	}
	pins, err := env.ParsePins(c.Args[n])
	if err != nil {
		c.Err(err)
		return 0, false
	}
	if len(pins) == 0 {
		c.Err(fmt.Errorf("PIN required"))
		return 0, false
	}
	return pins[0], true
}

func digitalCmd(level board.Level) func(c *ishell.Context) {
	return MustBeConnected(func(c *ishell.Context) {
		pin, ok := parsePin(c, 0)
		if !ok {
			return
		}
		s := ShellFrom(c)
		err := s.Do(func(ctx context.Context, ctl *board.Controller) error {
			if level == board.High {
				return ctl.SetHigh(ctx, pin)
			}
			return ctl.SetLow(ctx, pin)
		})
		if err != nil {
			c.Err(err)
			return
		}
		s.Print(c, PinState{Pin: int(pin), Level: level.String()}, "OK")
	})
}

var (
	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			ports, err := transport.ListPorts()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if ports == nil {
					ports = []transport.PortInfo{}
				}
				s.Print(c, ports, "")
				return
			}
			if len(ports) == 0 {
				c.Println("No serial ports found")
				return
			}
			for _, p := range ports {
				c.Println(p.String())
			}
		},
	}

	// ConnectCmd connects a board.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[PORT [BAUD]]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				s.Config.Port = c.Args[0]
			}
			if len(c.Args) > 1 {
				baud, err := strconv.Atoi(c.Args[1])
				if err != nil {
					c.Err(fmt.Errorf("Invalid BAUD: %v", err))
					return
				}
				s.Config.BaudRate = baud
			}
			if err := s.Connect(); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd stops the firmware and disconnects.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Disconnect(); err != nil {
				c.Err(err)
			}
		},
	}

	// InfoCmd prints connection info.
	InfoCmd = ishell.Cmd{
		Name:    "info",
		Aliases: []string{"i"},
		Help:    "",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			s.Print(c, map[string]interface{}{
				"port":      s.Config.Port,
				"baud_rate": s.Config.BaudRate,
				"outputs":   s.Board.Outputs(),
			}, s.Board.String())
		}),
	}

	// OutputsCmd configures output pins.
	OutputsCmd = ishell.Cmd{
		Name:    "outputs",
		Aliases: []string{"o"},
		Help:    "PIN...",
		Func: MustBeConnected(func(c *ishell.Context) {
			pins, err := env.ParsePins(c.Args...)
			if err != nil {
				c.Err(err)
				return
			}
			s := ShellFrom(c)
			var configured []board.Pin
			err = s.Do(func(ctx context.Context, ctl *board.Controller) (err error) {
				configured, err = ctl.ConfigureOutputs(ctx, pins...)
				return
			})
			if err != nil {
				c.Err(err)
				return
			}
			s.Print(c, configured, fmt.Sprintf("Outputs: %v", configured))
		}),
	}

	// HighCmd sets a pin high.
	HighCmd = ishell.Cmd{
		Name:    "high",
		Aliases: []string{"h"},
		Help:    "PIN",
		Func:    digitalCmd(board.High),
	}

	// LowCmd sets a pin low.
	LowCmd = ishell.Cmd{
		Name: "low",
		Help: "PIN",
		Func: digitalCmd(board.Low),
	}

	// StateCmd prints cached pin levels.
	StateCmd = ishell.Cmd{
		Name:    "state",
		Aliases: []string{"s"},
		Help:    "[PIN]",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				pin, ok := parsePin(c, 0)
				if !ok {
					return
				}
				level := s.Board.State(pin)
				s.Print(c, PinState{Pin: int(pin), Level: level.String()}, level.String())
				return
			}
			levels := s.Board.States()
			states := make([]PinState, 0, len(levels))
			for pin, level := range levels {
				states = append(states, PinState{Pin: int(pin), Level: level.String()})
			}
			sort.Slice(states, func(i, j int) bool { return states[i].Pin < states[j].Pin })
			if s.OutputJSON {
				s.Print(c, states, "")
				return
			}
			for _, st := range states {
				c.Printf("%d: %s\n", st.Pin, st.Level)
			}
		}),
	}

	// AnalogWriteCmd writes an analog value.
	AnalogWriteCmd = ishell.Cmd{
		Name:    "analog.write",
		Aliases: []string{"aw"},
		Help:    "PIN VALUE(0-255)",
		Func: MustBeConnected(func(c *ishell.Context) {
			pin, ok := parsePin(c, 0)
			if !ok {
				return
			}
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			value, err := strconv.Atoi(c.Args[1])
			if err != nil {
				c.Err(fmt.Errorf("Invalid VALUE: %v", err))
				return
			}
			s := ShellFrom(c)
			err = s.Do(func(ctx context.Context, ctl *board.Controller) error {
				return ctl.AnalogWrite(ctx, pin, value)
			})
			if err != nil {
				c.Err(err)
				return
			}
			s.Print(c, AnalogValue{Pin: int(pin), Value: strconv.Itoa(value)}, "OK")
		}),
	}

	// AnalogReadCmd reads an analog pin.
	AnalogReadCmd = ishell.Cmd{
		Name:    "analog.read",
		Aliases: []string{"ar"},
		Help:    "PIN",
		Func: MustBeConnected(func(c *ishell.Context) {
			pin, ok := parsePin(c, 0)
			if !ok {
				return
			}
			s := ShellFrom(c)
			var r board.Reading
			err := s.Do(func(ctx context.Context, ctl *board.Controller) (err error) {
				r, err = ctl.AnalogRead(ctx, pin)
				return
			})
			if err != nil {
				c.Err(err)
				return
			}
			s.Print(c, AnalogValue{Pin: int(pin), Value: string(r)}, string(r))
		}),
	}

	// OffCmd sets all output pins low.
	OffCmd = ishell.Cmd{
		Name: "off",
		Help: "",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			err := s.Do(func(ctx context.Context, ctl *board.Controller) error {
				return ctl.AllOff(ctx)
			})
			if err != nil {
				c.Err(err)
				return
			}
			s.Print(c, s.Board.Outputs(), "OK")
		}),
	}
)
