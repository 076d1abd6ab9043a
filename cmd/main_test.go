package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	cases := []struct {
		data   string
		fail   bool
		expect string
	}{
		{"1 + 2 * (3 + 4)\n", false, "= 15\n"},
		{"print(2 + 3)\n* 4", false, "5\n= 20\n"},
		{"print(1) / 0", true, "1\n"},
		{"(1 + 2", true, ""},
	}

	for _, c := range cases {
		var out bytes.Buffer
		err := run(strings.NewReader(c.data), &out, false, zerolog.Nop())
		if c.fail {
			assert.Error(t, err, c.data)
		} else {
			require.NoError(t, err, c.data)
		}

		assert.Equal(t, c.expect, out.String(), c.data)
	}
}

func TestRunEmitLLVM(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader("print(2 + 3) * 4"), &out, true, zerolog.Nop()))

	assert.Contains(t, out.String(), "define i32 @main()")
	assert.NotContains(t, out.String(), "= 20")
}
