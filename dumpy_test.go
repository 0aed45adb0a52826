package dumpy_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toheart/dumpy"
)

func newDumper(t *testing.T, opts ...dumpy.Option) *dumpy.Dumper {
	t.Helper()
	d, err := dumpy.New(opts...)
	require.NoError(t, err)
	return d
}

func configure(t *testing.T, d *dumpy.Dumper, name string, value any) {
	t.Helper()
	require.NoError(t, d.Configure(name, value))
}

func TestConfigureRoundTrip(t *testing.T) {
	d := newDumper(t)
	values := map[string]any{
		dumpy.OptStrMaxLength:      100,
		dumpy.OptBoolLowercase:     true,
		dumpy.OptNullLowercase:     true,
		dumpy.OptRoundDouble:       3,
		dumpy.OptReplaceNewline:    false,
		dumpy.OptArrayMaxElements:  7,
		dumpy.OptArrayIndenting:    "\t",
		dumpy.OptObjectLimitedInfo: true,
	}
	for _, name := range dumpy.OptionNames() {
		want, ok := values[name]
		require.True(t, ok, "no test value for %s", name)
		configure(t, d, name, want)
		got, err := d.GetConfigOption(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
	assert.Equal(t, values, d.Options(), spew.Sdump(d.Options()))
}

func TestConfigureUnknownOption(t *testing.T) {
	d := newDumper(t)

	err := d.Configure("foo", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dumpy.ErrInvalidOption))
	assert.Contains(t, err.Error(), `"foo"`)

	_, err = d.GetConfigOption("foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dumpy.ErrUnknownOption))

	// the key set never grows
	assert.Len(t, d.Options(), len(dumpy.OptionNames()))
}

func TestConfigureAcceptsAnyValueType(t *testing.T) {
	d := newDumper(t)
	configure(t, d, dumpy.OptStrMaxLength, "3")
	assert.Equal(t, `"abc..."`, d.Dump("abcdef"))

	configure(t, d, dumpy.OptBoolLowercase, 1)
	assert.Equal(t, "true", d.Dump(true))
}

func TestDefaults(t *testing.T) {
	d := newDumper(t)
	want := map[string]any{
		dumpy.OptStrMaxLength:      50,
		dumpy.OptBoolLowercase:     false,
		dumpy.OptNullLowercase:     false,
		dumpy.OptRoundDouble:       false,
		dumpy.OptReplaceNewline:    true,
		dumpy.OptArrayMaxElements:  20,
		dumpy.OptArrayIndenting:    "    ",
		dumpy.OptObjectLimitedInfo: false,
	}
	assert.Equal(t, want, d.Options())
}

func TestNewWithOptions(t *testing.T) {
	d := newDumper(t, dumpy.WithOption(dumpy.OptNullLowercase, true))
	assert.Equal(t, "null", d.Dump(nil))

	_, err := dumpy.New(dumpy.WithOption("nope", 1))
	assert.True(t, errors.Is(err, dumpy.ErrInvalidOption))
}

func TestWithEnv(t *testing.T) {
	t.Setenv(dumpy.EnvBoolLowercase, "true")
	t.Setenv(dumpy.EnvStrMaxLength, "4")
	t.Setenv(dumpy.EnvArrayMaxElements, "not-a-number")
	t.Setenv(dumpy.EnvRoundDouble, "false")

	d := newDumper(t, dumpy.WithEnv())
	assert.Equal(t, "true", d.Dump(true))
	assert.Equal(t, `"abcd..."`, d.Dump("abcdefgh"))

	max, err := d.GetConfigOption(dumpy.OptArrayMaxElements)
	require.NoError(t, err)
	assert.Equal(t, dumpy.DefaultArrayMaxElements, max)

	round, err := d.GetConfigOption(dumpy.OptRoundDouble)
	require.NoError(t, err)
	assert.Equal(t, false, round)
}

func TestWithLogger(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	d := newDumper(t, dumpy.WithLogger(logger))

	configure(t, d, dumpy.OptArrayIndenting, "  ")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "option updated", hook.LastEntry().Message)
	assert.Equal(t, dumpy.OptArrayIndenting, hook.LastEntry().Data["option"])

	assert.Error(t, d.Configure("bogus", 1))
	assert.Equal(t, "configure rejected", hook.LastEntry().Message)
}

func TestDumpBool(t *testing.T) {
	d := newDumper(t)
	assert.Equal(t, "TRUE", d.Dump(true))
	assert.Equal(t, "FALSE", d.Dump(false))

	configure(t, d, dumpy.OptBoolLowercase, true)
	assert.Equal(t, "true", d.Dump(true))
	assert.Equal(t, "false", d.Dump(false))
}

func TestDumpNull(t *testing.T) {
	d := newDumper(t)
	var nilPtr *int
	var nilMap map[string]int
	var nilSlice []int

	assert.Equal(t, "NULL", d.Dump(nil))
	assert.Equal(t, "NULL", d.Dump(nilPtr))
	assert.Equal(t, "NULL", d.Dump(nilMap))
	assert.Equal(t, "NULL", d.Dump(nilSlice))

	configure(t, d, dumpy.OptNullLowercase, true)
	assert.Equal(t, "null", d.Dump(nil))
}

func TestDumpNumbers(t *testing.T) {
	d := newDumper(t)
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"positive", 123, "123"},
		{"negative", -42, "-42"},
		{"octal literal", 0123, "83"},
		{"hex literal", 0x1A, "26"},
		{"binary literal", 0b1, "1"},
		{"int8", int8(-8), "-8"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"float", 1.234, "1.234"},
		{"float exponent literal", 1.2e4, "12000"},
		{"tiny float", 7e-10, "7.0E-10"},
		{"small float", 0.00001, "1.0E-5"},
		{"small positional float", 0.0001, "0.0001"},
		{"huge float", 1.5e300, "1.5E+300"},
		{"float32", float32(3.14), "3.14"},
		{"pointer to int", intPtr(5), "5"},
		{"complex", complex(1, 2), "(1+2i)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Dump(tt.input))
		})
	}
}

func intPtr(i int) *int { return &i }

func TestDumpRoundDouble(t *testing.T) {
	d := newDumper(t)
	configure(t, d, dumpy.OptRoundDouble, 0)
	assert.Equal(t, "1", d.Dump(1.23456789))

	configure(t, d, dumpy.OptRoundDouble, 2)
	assert.Equal(t, "1.01", d.Dump(1.005))
	assert.Equal(t, "-1.01", d.Dump(-1.005))
	assert.Equal(t, "3.14", d.Dump(3.14159))

	configure(t, d, dumpy.OptRoundDouble, false)
	assert.Equal(t, "3.14159", d.Dump(3.14159))
}

func TestDumpString(t *testing.T) {
	d := newDumper(t)
	assert.Equal(t, `"foobar"`, d.Dump("foobar"))
	assert.Equal(t, `"bytes"`, d.Dump([]byte("bytes")))

	configure(t, d, dumpy.OptStrMaxLength, 50)
	long := strings.Repeat("A", 51)
	assert.Equal(t, `"`+strings.Repeat("A", 50)+`..."`, d.Dump(long))
	assert.Equal(t, `"`+strings.Repeat("A", 50)+`"`, d.Dump(long[:50]))
}

func TestDumpStringNewlines(t *testing.T) {
	d := newDumper(t)
	assert.Equal(t, `"one\ntwo\nthree"`, d.Dump("one\ntwo\r\nthree"))

	configure(t, d, dumpy.OptReplaceNewline, false)
	assert.Equal(t, "\"one\ntwo\"", d.Dump("one\ntwo"))

	// truncation happens before escaping
	configure(t, d, dumpy.OptReplaceNewline, true)
	configure(t, d, dumpy.OptStrMaxLength, 3)
	assert.Equal(t, `"ab\n..."`, d.Dump("ab\ncd"))
}

func TestDumpHandles(t *testing.T) {
	d := newDumper(t)
	assert.True(t, strings.HasPrefix(d.Dump(func() {}), "<func func() 0x"))
	assert.True(t, strings.HasPrefix(d.Dump(make(chan int)), "<chan chan int 0x"))
}

func TestFdump(t *testing.T) {
	d := newDumper(t)
	var buf bytes.Buffer
	require.NoError(t, d.Fdump(&buf, dumpy.List(1)))
	assert.Equal(t, "[\n    1,\n]\n", buf.String())
}

func TestSdump(t *testing.T) {
	assert.Equal(t, "TRUE", dumpy.Sdump(true))
	assert.Equal(t, "[\n    \"a\",\n]\n", dumpy.Sdump([]string{"a"}))
}
