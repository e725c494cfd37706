package utils

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/poppolopoppo/slngen/internal/base"
)

var LogCommand = base.NewLogCategory("Command")

var allCommands = map[string]*commandItem{}

var GlobalParsableFlags commandItem

/***************************************
 * CommandLine
 ***************************************/

type CommandLine interface {
	PeekArg(int) (string, bool)
	ConsumeArg(int) (string, error)
	Empty() bool
	fmt.Stringer
}

func splitArgsIFN(args []string, each func([]string) error) error {
	first := 0
	for last := 0; last < len(args); last++ {
		if strings.TrimSpace(args[last]) == `--` {
			break // '--' disables all command-line switches
		}
		if strings.TrimSpace(args[last]) == `-and` {
			if first < last {
				if err := each(args[first:last]); err != nil {
					return err
				}
			}
			first = last + 1
		}
	}

	if first < len(args) {
		return each(args[first:])
	}

	return nil
}

func NewCommandLine(args []string) (result []CommandLine) {
	splitArgsIFN(args, func(split []string) error {
		base.LogTrace(LogCommand, "process arguments -> %v", base.MakeStringer(func() string {
			return strings.Join(base.Map(func(a string) string {
				return fmt.Sprintf("%q", a)
			}, split...), ", ")
		}))

		result = append(result, &commandLine{
			args: base.CopySlice(split...),
		})
		return nil
	})

	return
}

type commandLine struct {
	args []string
}

func (x *commandLine) String() string {
	return strings.Join(x.args, " ")
}
func (x *commandLine) Empty() bool {
	return len(x.args) == 0
}
func (x *commandLine) PeekArg(i int) (string, bool) {
	if i >= len(x.args) {
		return "", false
	}
	return x.args[i], true
}
func (x *commandLine) ConsumeArg(i int) (string, error) {
	if i >= len(x.args) {
		return "", fmt.Errorf("missing argument(s)")
	}
	consumed := x.args[i]
	x.args = append(x.args[:i], x.args[i+1:]...)
	return consumed, nil
}

/***************************************
 * CommandArgument
 ***************************************/

type CommandArgument interface {
	Name() string
	Consume() bool
	Parse(CommandLine) error
	Help(*base.StructuredFile)
}

type commandBasicArgument struct {
	Long        string
	Description string
	Optional    bool
}

func (x *commandBasicArgument) Name() string { return x.Long }
func (x *commandBasicArgument) Format() string {
	if x.Optional {
		return fmt.Sprint("[", x.Long, "]*")
	}
	return fmt.Sprint("<", x.Long, ">+")
}
func (x *commandBasicArgument) Help(w *base.StructuredFile) {
	w.Println("%s", x.Format())
	w.ScopeIndent(func() {
		w.Println("%s", x.Description)
	})
}

/***************************************
 * CommandConsumeArgument
 ***************************************/

type commandConsumeManyArguments[T any, P interface {
	*T
	PersistentVar
}] struct {
	Value *[]T
	commandBasicArgument
}

func (x *commandConsumeManyArguments[T, P]) Consume() bool { return true }
func (x *commandConsumeManyArguments[T, P]) Parse(cl CommandLine) error {
	*x.Value = []T{}

	for {
		arg, err := cl.ConsumeArg(0)
		if err != nil {
			break
		}

		var it T
		if err = P(&it).Set(arg); err != nil {
			return fmt.Errorf("argument %q: %w", x.Long, err)
		}
		*x.Value = append(*x.Value, it)
	}

	if len(*x.Value) == 0 && !x.Optional {
		return fmt.Errorf("missing argument %q", x.Long)
	}
	return nil
}

func OptionCommandConsumeMany[T any, P interface {
	*T
	PersistentVar
}](name, description string, value *[]T, optional bool) CommandOptionFunc {
	return OptionCommandArg(&commandConsumeManyArguments[T, P]{
		Value: value,
		commandBasicArgument: commandBasicArgument{
			Long:        name,
			Description: description,
			Optional:    optional,
		},
	})
}

/***************************************
 * CommandParsableFlagsArgument
 ***************************************/

type CommandFlagsVisitor interface {
	Variable(name, usage string, value PersistentVar)
}

type CommandParsableFlags interface {
	Flags(CommandFlagsVisitor)
}

type commandParsableFunctor func(name, usage string, value PersistentVar)

func (x commandParsableFunctor) Variable(name, usage string, value PersistentVar) {
	x(name, usage, value)
}

func VisitParsableFlags(parsable CommandParsableFlags, each func(name, usage string, value PersistentVar)) {
	parsable.Flags(commandParsableFunctor(each))
}

type commandPersistentVar struct {
	Name, Usage string
	Value       PersistentVar
}

type commandParsableArgument struct {
	Value     CommandParsableFlags
	Variables []commandPersistentVar
	// switches found on the command-line, in order, kept to be replayed over other config layers
	Explicit []commandPersistentAssignment
	commandBasicArgument
}

type commandPersistentAssignment struct {
	Name, Input string
}

// ParseFlagArgument matches "-Name=Value", or "-Name" alone for boolean variables.
func ParseFlagArgument(name, input string, value PersistentVar) (bool, string, error) {
	if len(input) < 2 || input[0] != '-' || !strings.HasPrefix(input[1:], name) {
		return false, "", nil
	}

	rest := input[1+len(name):]
	switch {
	case len(rest) == 0:
		if boolean, ok := value.(interface{ IsBoolFlag() bool }); ok && boolean.IsBoolFlag() {
			return true, "true", value.Set("true")
		}
		return false, "", nil
	case rest[0] == '=':
		return true, rest[1:], value.Set(rest[1:])
	default:
		return false, "", nil
	}
}

func (x *commandParsableArgument) Consume() bool { return false }
func (x *commandParsableArgument) Parse(cl CommandLine) (err error) {
	x.Explicit = x.Explicit[:0]
	for _, v := range x.Variables {
		for i := 0; ; {
			arg, ok := cl.PeekArg(i)
			if !ok || arg == "--" {
				break
			}

			var matched bool
			var input string
			if matched, input, err = ParseFlagArgument(v.Name, arg, v.Value); err != nil {
				return fmt.Errorf("flag -%s: %w", v.Name, err)
			}
			if matched {
				cl.ConsumeArg(i)
				x.Explicit = append(x.Explicit, commandPersistentAssignment{Name: v.Name, Input: input})
				continue
			}
			i++
		}
	}
	return nil
}
func (x *commandParsableArgument) Help(w *base.StructuredFile) {
	w.Println("%s", x.Description)
	w.ScopeIndent(func() {
		for _, v := range x.Variables {
			w.Print("-%s", v.Name)
			w.Align(32)
			w.Println("%s (default: %q)", v.Usage, v.Value.String())
		}
	})
}

// Replay applies the switches parsed from the command-line to another instance of the same flags.
func (x *commandParsableArgument) Replay(dst CommandParsableFlags) (err error) {
	values := make(map[string]PersistentVar, len(x.Variables))
	VisitParsableFlags(dst, func(name, usage string, value PersistentVar) {
		values[name] = value
	})
	for _, it := range x.Explicit {
		if value, ok := values[it.Name]; ok {
			base.LogDebug(LogCommand, "replay command-line flag -%s=%s", it.Name, it.Input)
			if err = value.Set(it.Input); err != nil {
				return fmt.Errorf("flag -%s: %w", it.Name, err)
			}
		}
	}
	return nil
}

func newCommandParsableFlags(name, description string, value CommandParsableFlags) *commandParsableArgument {
	arg := &commandParsableArgument{
		Value: value,
		commandBasicArgument: commandBasicArgument{
			Long:        name,
			Description: description,
			Optional:    true,
		},
	}

	VisitParsableFlags(arg.Value, func(name, usage string, value PersistentVar) {
		base.Assert(func() bool { return len(name) > 0 })
		base.Assert(func() bool { return len(usage) > 0 })

		arg.Variables = append(arg.Variables, commandPersistentVar{
			Name:  name,
			Usage: usage,
			Value: value,
		})
	})

	return arg
}

func OptionCommandParsableFlags(name, description string, value CommandParsableFlags) CommandOptionFunc {
	return OptionCommandArg(newCommandParsableFlags(name, description, value))
}

func NewGlobalCommandParsableFlags[T any, P interface {
	*T
	CommandParsableFlags
}](description string, flags *T) func() P {
	parsable := P(flags)
	GlobalParsableFlags.Options(OptionCommandParsableFlags(
		fmt.Sprintf("%T", parsable),
		description,
		parsable))
	return func() P {
		return parsable
	}
}

/***************************************
 * CommandItem
 ***************************************/

type CommandDetails struct {
	Category, Name string
	Description    string
}

type CommandContext interface {
	Details() CommandDetails
	Options(...CommandOptionFunc)
	ReplayFlags(CommandParsableFlags) error
}

type CommandItem interface {
	CommandContext
	Arguments() []CommandArgument
	Parse(CommandLine) error
	Run() error
	Usage() string
	Help(*base.StructuredFile)
	fmt.Stringer
}

type commandItem struct {
	CommandDetails

	arguments []CommandArgument
	run       []func(CommandContext) error
}

func (x *commandItem) Details() CommandDetails      { return x.CommandDetails }
func (x *commandItem) Arguments() []CommandArgument { return x.arguments }
func (x *commandItem) String() string               { return fmt.Sprint(x.Category, "/", x.Name) }

func (x *commandItem) Options(options ...CommandOptionFunc) {
	for _, opt := range options {
		opt(x)
	}
}
func (x *commandItem) ReplayFlags(dst CommandParsableFlags) error {
	for _, it := range x.arguments {
		if parsable, ok := it.(*commandParsableArgument); ok {
			if err := parsable.Replay(dst); err != nil {
				return err
			}
		}
	}
	return nil
}
func (x *commandItem) Parse(cl CommandLine) error {
	// first switch/non-positional arguments
	for _, it := range x.arguments {
		if it.Consume() {
			continue
		}
		if err := it.Parse(cl); err != nil {
			return err
		}
	}

	// then detect unknown command flags
	var unknownFlags []string
	for i := 0; ; {
		arg, ok := cl.PeekArg(i)
		if !ok {
			break
		}
		if len(arg) > 0 && arg[0] == '-' {
			cl.ConsumeArg(i)
			if arg == "--" {
				// special case: using "--" will ignore option parsing for the rest of the command-line
				break
			}
			unknownFlags = append(unknownFlags, arg)
			continue
		}
		i++
	}
	if len(unknownFlags) > 0 {
		base.LogWarning(LogCommand, "unknown command flags: %q", strings.Join(unknownFlags, ", "))
	}

	// then consume positional arguments
	for _, it := range x.arguments {
		if !it.Consume() {
			continue
		}
		if err := it.Parse(cl); err != nil {
			return err
		}
	}

	// unused arguments fail parsing
	var unusedArguments []string
	for i := 0; ; i++ {
		if arg, ok := cl.PeekArg(i); ok {
			unusedArguments = append(unusedArguments, arg)
		} else {
			break
		}
	}
	if len(unusedArguments) > 0 {
		return fmt.Errorf("unused command arguments: %q", strings.Join(unusedArguments, ", "))
	}
	return nil
}
func (x *commandItem) Run() error {
	for _, run := range x.run {
		base.LogTrace(LogCommand, "run command %q", x)
		if err := run(x); err != nil {
			return fmt.Errorf("run command %q failed with: %w", x.Name, err)
		}
	}
	return nil
}
func (x *commandItem) Usage() (format string) {
	format = x.Name
	for _, a := range x.arguments {
		if consume, ok := a.(interface{ Format() string }); ok && a.Consume() {
			format = fmt.Sprint(format, " ", consume.Format())
		}
	}
	return format
}
func (x *commandItem) Help(w *base.StructuredFile) {
	w.Println("%s", x.Usage())
	w.ScopeIndent(func() {
		w.Println("%s", x.Description)
		for _, a := range x.arguments {
			a.Help(w)
		}
	})
}

/***************************************
 * NewCommand
 ***************************************/

type CommandOptionFunc func(*commandItem)

func OptionCommandArg(arg CommandArgument) CommandOptionFunc {
	return func(ci *commandItem) {
		ci.arguments = append(ci.arguments, arg)
	}
}
func OptionCommandRun(run func(CommandContext) error) CommandOptionFunc {
	return func(ci *commandItem) {
		ci.run = append(ci.run, run)
	}
}

func NewCommand(
	category, name, description string,
	options ...CommandOptionFunc,
) func() CommandItem {
	key := strings.ToUpper(name)
	base.Assert(func() bool {
		_, found := allCommands[key]
		return !found
	})

	result := &commandItem{
		CommandDetails: CommandDetails{
			Category:    category,
			Name:        name,
			Description: description,
		},
	}
	result.Options(options...)
	allCommands[key] = result

	return func() CommandItem {
		return result
	}
}

/***************************************
 * Commandable
 ***************************************/

type Commandable interface {
	Init(CommandContext) error
	Run(CommandContext) error
}

func NewCommandable[T any, P interface {
	*T
	Commandable
}](category, name, description string, cmd *T) func() CommandItem {
	return NewCommand(category, name, description,
		func(ci *commandItem) {
			base.LogPanicIfFailed(LogCommand, P(cmd).Init(ci))
		},
		OptionCommandRun(P(cmd).Run))
}

/***************************************
 * AllCommands
 ***************************************/

func GetAllCommands() []CommandItem {
	cmds := make([]*commandItem, 0, len(allCommands))
	for _, it := range allCommands {
		cmds = append(cmds, it)
	}
	sort.Slice(cmds, func(i, j int) bool {
		if c := strings.Compare(cmds[i].Category, cmds[j].Category); c != 0 {
			return c < 0
		}
		return strings.Compare(cmds[i].Name, cmds[j].Name) < 0
	})
	return base.Map(func(it *commandItem) CommandItem { return it }, cmds...)
}

func FindCommand(name string) (CommandItem, error) {
	if cmd, found := allCommands[strings.ToUpper(name)]; found {
		return cmd, nil
	}
	return nil, fmt.Errorf("unknown command %q", name)
}

func ParseCommand(cl CommandLine) (cmd CommandItem, err error) {
	var name string
	if name, err = cl.ConsumeArg(0); err != nil {
		return
	}
	if cmd, err = FindCommand(name); err == nil {
		err = cmd.Parse(cl)
	}
	return
}

func PrintCommandHelp(w io.Writer, prefix string) error {
	f := base.NewStructuredFile(w, "  ", base.STRUCTUREDFILE_NONE)

	f.Println("%s <command> [-Flag=Value]... [-and <command>...]", prefix)
	f.Println("generate Visual Studio solutions from project metadata manifests")

	lastCategory := ""
	for _, cmd := range GetAllCommands() {
		details := cmd.Details()
		if lastCategory != details.Category {
			lastCategory = details.Category
			f.Println("")
			f.Println("-- %s --", details.Category)
		}
		f.ScopeIndent(func() {
			cmd.Help(f)
		})
	}

	if len(GlobalParsableFlags.arguments) > 0 {
		f.Println("")
		f.Println("-- Global --")
		f.ScopeIndent(func() {
			for _, a := range GlobalParsableFlags.arguments {
				a.Help(f)
			}
		})
	}
	return f.Err()
}

/***************************************
 * HelpCommand
 ***************************************/

type HelpCommand struct {
	Commands []StringVar
}

func (x *HelpCommand) Init(cc CommandContext) error {
	cc.Options(OptionCommandConsumeMany("command_name", "print specific informations if a command name is provided", &x.Commands, true))
	return nil
}
func (x *HelpCommand) Run(cc CommandContext) error {
	w := base.GetLogger()
	sb := strings.Builder{}

	if len(x.Commands) == 0 {
		if err := PrintCommandHelp(&sb, CommandEnv.Prefix()); err != nil {
			return err
		}
	} else {
		f := base.NewStructuredFile(&sb, "  ", base.STRUCTUREDFILE_NONE)
		for _, name := range x.Commands {
			cmd, err := FindCommand(name.Get())
			if err != nil {
				return err
			}
			cmd.Help(f)
		}
		if err := f.Err(); err != nil {
			return err
		}
	}

	w.Forwardln(sb.String())
	return nil
}

var CommandHelp = NewCommandable("Misc", "help", "print help about command usage", &HelpCommand{})
