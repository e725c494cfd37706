package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCommandFlags struct {
	Name    StringVar
	Enabled BoolVar
	Values  FileSet
}

func (x *testCommandFlags) Flags(cfv CommandFlagsVisitor) {
	cfv.Variable("Name", "name of the thing", &x.Name)
	cfv.Variable("Enabled", "toggle", &x.Enabled)
	cfv.Variable("NameSuffix", "never matches -Name", &x.Values)
}

func TestNewCommandLineSplitsOnAnd(t *testing.T) {
	cls := NewCommandLine([]string{"generate", "-v", "-and", "help", "--", "-and", "x"})
	require.Len(t, cls, 2)
	assert.Equal(t, "generate -v", cls[0].String())
	assert.Equal(t, "help -- -and x", cls[1].String())
}

func TestParseFlagArgument(t *testing.T) {
	var name StringVar
	ok, input, err := ParseFlagArgument("Name", "-Name=foo=bar", &name)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "foo=bar", input)
	assert.Equal(t, StringVar("foo=bar"), name)

	ok, _, _ = ParseFlagArgument("Name", "-NameSuffix=x", &name)
	assert.False(t, ok)
	ok, _, _ = ParseFlagArgument("Name", "-Name", &name)
	assert.False(t, ok, "only booleans accept a naked switch")

	var enabled BoolVar
	ok, input, err = ParseFlagArgument("Enabled", "-Enabled", &enabled)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", input)
	assert.True(t, enabled.Get())

	_, _, err = ParseFlagArgument("Enabled", "-Enabled=maybe", &enabled)
	assert.Error(t, err)
}

func TestCommandParsableFlagsReplay(t *testing.T) {
	flags := &testCommandFlags{}
	arg := newCommandParsableFlags("test", "test flags", flags)

	cl := NewCommandLine([]string{"-Name=A", "positional", "-Enabled", "-NameSuffix=x.json;y.json"})[0]
	require.NoError(t, arg.Parse(cl))
	assert.Equal(t, "positional", cl.String())
	assert.Equal(t, StringVar("A"), flags.Name)
	assert.True(t, flags.Enabled.Get())
	assert.Equal(t, 2, flags.Values.Len())

	other := &testCommandFlags{Name: "B"}
	require.NoError(t, arg.Replay(other))
	assert.Equal(t, StringVar("A"), other.Name)
	assert.True(t, other.Enabled.Get())
	assert.Equal(t, flags.Values, other.Values)
}

type testCommandable struct {
	Flags  testCommandFlags
	Inputs []StringVar
	ran    int
}

func (x *testCommandable) Init(cc CommandContext) error {
	cc.Options(
		OptionCommandParsableFlags("testCommandable", "test command flags", &x.Flags),
		OptionCommandConsumeMany("inputs", "positional inputs", &x.Inputs, false))
	return nil
}
func (x *testCommandable) Run(cc CommandContext) error {
	x.ran++
	return nil
}

var testCommand = &testCommandable{}
var getTestCommand = NewCommandable("Test", "test-command", "command used by tests", testCommand)

func TestParseCommand(t *testing.T) {
	cl := NewCommandLine([]string{"TEST-COMMAND", "a", "-Name=x", "b"})[0]
	cmd, err := ParseCommand(cl)
	require.NoError(t, err)
	assert.Same(t, getTestCommand(), cmd)
	assert.Equal(t, []StringVar{"a", "b"}, testCommand.Inputs)
	assert.Equal(t, StringVar("x"), testCommand.Flags.Name)

	require.NoError(t, cmd.Run())
	assert.Equal(t, 1, testCommand.ran)

	_, err = ParseCommand(NewCommandLine([]string{"test-command"})[0])
	assert.Error(t, err, "positional inputs are required")

	_, err = ParseCommand(NewCommandLine([]string{"unknown"})[0])
	assert.Error(t, err)
}

func TestPrintCommandHelp(t *testing.T) {
	sb := strings.Builder{}
	require.NoError(t, PrintCommandHelp(&sb, "slngen"))
	help := sb.String()
	assert.Contains(t, help, "test-command <inputs>+")
	assert.Contains(t, help, "-Name")
	assert.Contains(t, help, "-Profiling")
}
