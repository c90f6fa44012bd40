package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandEncode(t *testing.T) {
	testCases := []struct {
		name   string
		cmd    Command
		expect []byte
	}{
		{"outputs", &ConfigureOutputs{Pins: []Pin{2, 4, 7}}, []byte{3, 50, 52, 55}},
		{"no outputs", &ConfigureOutputs{}, []byte{0}},
		{"low", &SetDigital{Pin: 13, Level: Low}, []byte{'0', 61}},
		{"high", &SetDigital{Pin: 2, Level: High}, []byte{'1', '2'}},
		{"analog write one digit", &WriteAnalog{Pin: 9, Value: 0x05}, []byte{'3', '0', '5', '9'}},
		{"analog write two digits", &WriteAnalog{Pin: 9, Value: 0xa3}, []byte{'3', 'A', '3', '9'}},
		{"analog write zero", &WriteAnalog{Pin: 3, Value: 0}, []byte{'3', '0', '0', '3'}},
		{"analog write max", &WriteAnalog{Pin: 3, Value: 255}, []byte{'3', 'F', 'F', '3'}},
		{"analog read", &ReadAnalog{Pin: 0}, []byte{'4', '0'}},
		{"max pin", &ReadAnalog{Pin: MaxPin}, []byte{'4', 0xff}},
		{"shutdown", &Shutdown{}, []byte{'5'}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.cmd.Encode()
			require.NoError(t, err)
			require.Equal(t, tc.expect, b)
		})
	}
}

func TestCommandEncodeInvalid(t *testing.T) {
	tooMany := make([]Pin, 256)
	testCases := []struct {
		name string
		cmd  Command
	}{
		{"negative pin", &SetDigital{Pin: -1, Level: High}},
		{"pin too large", &SetDigital{Pin: MaxPin + 1}},
		{"negative output", &ConfigureOutputs{Pins: []Pin{1, -2}}},
		{"too many outputs", &ConfigureOutputs{Pins: tooMany}},
		{"negative value", &WriteAnalog{Pin: 3, Value: -1}},
		{"value too large", &WriteAnalog{Pin: 3, Value: 256}},
		{"analog write bad pin", &WriteAnalog{Pin: -3, Value: 1}},
		{"analog read bad pin", &ReadAnalog{Pin: -1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cmd.Encode()
			require.True(t, errors.Is(err, ErrInvalidArgument), "unexpected error %v", err)
			var argErr *ArgumentError
			require.True(t, errors.As(err, &argErr))
		})
	}
}

func TestCommandString(t *testing.T) {
	require.Equal(t, "ConfigureOutputs(2,4)", (&ConfigureOutputs{Pins: []Pin{2, 4}}).String())
	require.Equal(t, "SetDigital(3,HIGH)", (&SetDigital{Pin: 3, Level: High}).String())
	require.Equal(t, "WriteAnalog(3,200)", (&WriteAnalog{Pin: 3, Value: 200}).String())
}
