package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/arduino.go/pkg/board"
	"github.com/robotalks/arduino.go/pkg/env"
	fx "github.com/robotalks/arduino.go/pkg/framework"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool
	CmdTimeout  time.Duration

	Shell  *ishell.Shell
	Config *env.Config
	Board  *board.Controller
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	cmdTimeout = 10 * time.Second

	// commands
	commands = []*ishell.Cmd{
		&PortsCmd,
		&ConnectCmd,
		&DisconnectCmd,
		&InfoCmd,
		&OutputsCmd,
		&HighCmd,
		&LowCmd,
		&StateCmd,
		&AnalogWriteCmd,
		&AnalogReadCmd,
		&OffCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.DurationVar(&cmdTimeout, "cmd-timeout", cmdTimeout, "Timeout of each board command.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		CmdTimeout:  cmdTimeout,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Board == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// Do runs a board operation with the command timeout.
// When the timeout expires the shell stops waiting for the operation.
func (s *Shell) Do(fn func(ctx context.Context, ctl *board.Controller) error) error {
	if s.Board == nil {
		return fmt.Errorf("not connected")
	}
	ctx := context.Background()
	if s.CmdTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.CmdTimeout)
		defer cancel()
	}
	ctl := s.Board
	return fx.RunWithContextCancel(ctx, nil, func() error {
		return fn(ctx, ctl)
	})
}

// Print prints a result, in JSON if requested.
func (s *Shell) Print(c *ishell.Context, v interface{}, text string) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Println(text)
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Connect opens the board using the config.
func (s *Shell) Connect() error {
	ctl, err := s.Config.Open()
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Board = ctl
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", s.Config.Port))
	return nil
}

// Disconnect closes the current board.
func (s *Shell) Disconnect() error {
	if s.Board == nil {
		return nil
	}
	ctl := s.Board
	s.Board = nil
	s.Shell.SetPrompt(unconnectedPrompt)
	ctx := context.Background()
	if s.CmdTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.CmdTimeout)
		defer cancel()
	}
	return ctl.CloseContext(ctx)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.Port != "" {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Port)
		}
		if err := s.Connect(); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.Port, err)
		}
	}
	defer s.Disconnect()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
