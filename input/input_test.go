package input_test

import (
	"strings"
	"testing"

	"github.com/justDeeevin/NuhxBoard/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parseLineTest struct {
	name           string
	line           string
	expectedResult *input.Event
}
type errorLineTest struct {
	name string
	line string
}

func TestParseLine(t *testing.T) {
	testCases := []parseLineTest{
		{
			"key down",
			"key 65 down",
			&input.Event{Kind: input.KindKey, Code: 65, Pressed: true},
		},
		{
			"key up",
			"key 160 up",
			&input.Event{Kind: input.KindKey, Code: 160, Pressed: false},
		},
		{
			"button down",
			"button 0 down",
			&input.Event{Kind: input.KindButton, Code: 0, Pressed: true},
		},
		{
			"wheel",
			"wheel 0 -1",
			&input.Event{Kind: input.KindWheel, DX: 0, DY: -1},
		},
		{
			"move with fractional coordinates",
			"move 103.5 240.25",
			&input.Event{Kind: input.KindMove, X: 103.5, Y: 240.25},
		},
		{
			"extra whitespace tolerated",
			"  key   65   down  ",
			&input.Event{Kind: input.KindKey, Code: 65, Pressed: true},
		},
		{"blank line", "", nil},
		{"whitespace-only line", "   \t ", nil},
		{"comment line", "# capture started", nil},
	}

	for _, item := range testCases {
		t.Run("parses "+item.name, func(t *testing.T) {
			res, err := input.ParseLine(item.line)

			require.NoError(t, err)

			assert.Equal(t, item.expectedResult, res)
		})
	}

	errorTestCases := []errorLineTest{
		{"unknown verb", "touch 3 down"},
		{"key missing state", "key 65"},
		{"key state gobble", "key 65 pressed"},
		{"key code malformed", "key abc down"},
		{"key code negative", "key -2 down"},
		{"wheel missing axis", "wheel 1"},
		{"wheel dx malformed", "wheel x 1"},
		{"wheel dy malformed", "wheel 1 y"},
		{"move x malformed", "move ten 20"},
		{"move extra field", "move 1 2 3"},
	}

	for _, item := range errorTestCases {
		t.Run("fails on "+item.name, func(t *testing.T) {
			res, err := input.ParseLine(item.line)

			require.Error(t, err)
			assert.Nil(t, res)
		})
	}
}

var result *input.Event

func BenchmarkParseLine(b *testing.B) {
	line := "key 160 down"

	var r *input.Event

	for i := 0; i < b.N; i++ {
		r, _ = input.ParseLine(line)
	}

	result = r
}

func TestReadLines(t *testing.T) {
	ch, done := input.ReadLines(strings.NewReader("key 65 down\nwheel 0 1\n"))

	var lines []string
loop:
	for {
		select {
		case line := <-ch:
			lines = append(lines, line)
		case <-done:
			break loop
		}
	}

	assert.Equal(t, []string{"key 65 down", "wheel 0 1"}, lines)
}
