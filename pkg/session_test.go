package chibi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	color.NoColor = true

	in := strings.Join([]string{
		"1 + 2 * (3 + 4)",
		"",
		"   ",
		"1 / 0",
		"print(2 + 3) * 4",
		"(1 + 2",
		"10 / 3",
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, NewSession(strings.NewReader(in), &out).Run())

	expect := Banner + "\n" +
		Prompt + "= 15\n" +
		Prompt + Prompt +
		Prompt + "error: evaluating (1 / 0): division by zero\n" +
		Prompt + "5\n= 20\n" +
		Prompt + "error: parse error at token 4: expected ')'\n" +
		Prompt + "= 3\n" +
		Prompt

	assert.Equal(t, expect, out.String())
}

func TestSessionEmptyInput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewSession(strings.NewReader(""), &out).Run())

	assert.Equal(t, Banner+"\n"+Prompt, out.String())
}

func TestSessionLongLine(t *testing.T) {
	// Longer than bufio.Scanner's default 64 KiB token limit
	in := strings.Repeat("1 + ", 20000) + "1\n2 + 2\n"

	var out bytes.Buffer
	require.NoError(t, NewSession(strings.NewReader(in), &out).Run())

	assert.Equal(t, Banner+"\n"+Prompt+"= 20001\n"+Prompt+"= 4\n"+Prompt, out.String())
}

func TestSessionContinuesAfterDeepNesting(t *testing.T) {
	color.NoColor = true

	deep := strings.Repeat("(", MaxNestingDepth+1) + "1" + strings.Repeat(")", MaxNestingDepth+1)
	in := deep + "\n2 + 2"

	var out bytes.Buffer
	require.NoError(t, NewSession(strings.NewReader(in), &out).Run())

	assert.Contains(t, out.String(), "error: parse error at token 10000 '(': expression nested too deeply\n")
	assert.True(t, strings.HasSuffix(out.String(), Prompt+"= 4\n"+Prompt))
}
