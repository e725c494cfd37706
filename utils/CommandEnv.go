package utils

import (
	"os"
	"time"

	"github.com/poppolopoppo/slngen/internal/base"
)

/***************************************
 * Command Flags
 ***************************************/

type CommandFlags struct {
	Quiet          BoolVar
	Verbose        BoolVar
	Trace          BoolVar
	VeryVerbose    BoolVar
	Debug          BoolVar
	Timestamp      BoolVar
	LogAll         base.StringSet
	LogFile        Filename
	WarningAsError BoolVar
}

var GetCommandFlags = NewGlobalCommandParsableFlags("global command options", &CommandFlags{})

func (flags *CommandFlags) Flags(cfv CommandFlagsVisitor) {
	cfv.Variable("q", "disable all messages", &flags.Quiet)
	cfv.Variable("v", "turn on verbose mode", &flags.Verbose)
	cfv.Variable("t", "print more informations about progress", &flags.Trace)
	cfv.Variable("V", "turn on very verbose mode", &flags.VeryVerbose)
	cfv.Variable("d", "turn on debug messages", &flags.Debug)
	cfv.Variable("T", "turn on timestamp logging", &flags.Timestamp)
	cfv.Variable("LogAll", "force to output all messages for given log categories", &flags.LogAll)
	cfv.Variable("LogFile", "output log to specified file (default: stderr)", &flags.LogFile)
	cfv.Variable("WX", "consider warnings as errors", &flags.WarningAsError)
}
func (flags *CommandFlags) Apply() error {
	for _, category := range flags.LogAll {
		base.SetLogCategoryLevel(category, base.LOG_ALL)
	}

	if flags.LogFile.Valid() {
		if err := UFS.MkdirEx(flags.LogFile.Dirname); err != nil {
			return err
		}
		outp, err := os.Create(flags.LogFile.String())
		if err != nil {
			return err
		}
		base.GetLogger().SetWriter(outp)
		CommandEnv.OnExit(func(*CommandEnvT) error {
			base.FlushLog()
			return outp.Close()
		})
	}

	base.GetLogger().SetShowTimestamp(flags.Timestamp.Get())

	if flags.Debug.Get() {
		base.GetLogger().SetLevel(base.LOG_DEBUG)
	}
	if flags.Verbose.Get() {
		base.GetLogger().SetLevel(base.LOG_VERBOSE)
	}
	if flags.Trace.Get() {
		base.GetLogger().SetLevel(base.LOG_TRACE)
	}
	if flags.VeryVerbose.Get() {
		base.GetLogger().SetLevel(base.LOG_VERYVERBOSE)
	}
	if flags.Quiet.Get() {
		base.GetLogger().SetLevel(base.LOG_ERROR)
	}
	base.SetLogWarningAsError(flags.WarningAsError.Get())
	return nil
}

/***************************************
 * Command Env
 ***************************************/

type CommandEnvT struct {
	prefix    string
	startedAt time.Time

	commandLines []CommandLine
	onExit       []func(*CommandEnvT) error
}

var CommandEnv *CommandEnvT

func InitCommandEnv(prefix string, args []string, startedAt time.Time) (*CommandEnvT, error) {
	CommandEnv = &CommandEnvT{
		prefix:    prefix,
		startedAt: startedAt,
	}

	// parse global flags early-on
	for _, cl := range NewCommandLine(args) {
		for _, it := range GlobalParsableFlags.arguments {
			if err := it.Parse(cl); err != nil {
				return nil, err
			}
		}
		if !cl.Empty() { // remove empty command-lines
			CommandEnv.commandLines = append(CommandEnv.commandLines, cl)
		}
	}

	// apply global command flags early-on
	if err := GetCommandFlags().Apply(); err != nil {
		return nil, err
	}

	base.LogVerbose(LogCommand, "%s started with %d command(s)", prefix, len(CommandEnv.commandLines))
	return CommandEnv, nil
}
func (env *CommandEnvT) Prefix() string       { return env.prefix }
func (env *CommandEnvT) StartedAt() time.Time { return env.startedAt }

func (env *CommandEnvT) OnExit(e func(*CommandEnvT) error) {
	env.onExit = append(env.onExit, e)
}

// Close fires exit delegates in reverse registration order.
func (env *CommandEnvT) Close() (err error) {
	for i := len(env.onExit) - 1; i >= 0; i-- {
		if er := env.onExit[i](env); er != nil && err == nil {
			err = er
		}
	}
	env.onExit = nil
	return
}

// Run executes every command found on the command-line. A command-line which doesn't start
// with a command name is parsed by defaultCommand.
func (env *CommandEnvT) Run(defaultCommand func() CommandItem) error {
	var commands []CommandItem
	for _, cl := range env.commandLines {
		if name, _ := cl.PeekArg(0); defaultCommand != nil {
			if _, err := FindCommand(name); err != nil {
				cmd := defaultCommand()
				if err = cmd.Parse(cl); err != nil {
					return err
				}
				commands = append(commands, cmd)
				continue
			}
		}

		cmd, err := ParseCommand(cl)
		if err != nil {
			return err
		}
		commands = append(commands, cmd)
	}

	if len(commands) == 0 {
		if defaultCommand == nil {
			base.LogWarning(LogCommand, "missing argument, use `help` to learn about command usage")
			return nil
		}
		commands = append(commands, defaultCommand())
	}

	defer base.LogBenchmark(LogCommand, "%s run %d command(s)", env.prefix, len(commands)).Close()

	for _, cmd := range commands {
		if err := cmd.Run(); err != nil {
			return err
		}
	}
	return nil
}
