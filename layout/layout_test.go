package layout_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/justDeeevin/NuhxBoard/geometry"
	"github.com/justDeeevin/NuhxBoard/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLayout = `{
  "Version": 2,
  "Width": 1060,
  "Height": 300,
  "Elements": [
    {
      "__type": "KeyboardKey",
      "Id": 1,
      "Boundaries": [
        {"X": 0, "Y": 0},
        {"X": 40, "Y": 0},
        {"X": 40, "Y": 40},
        {"X": 0, "Y": 40}
      ],
      "TextPosition": {"X": 20, "Y": 20},
      "KeyCodes": [65],
      "Text": "a",
      "ShiftText": "A",
      "ChangeOnCaps": true
    },
    {
      "__type": "MouseKey",
      "Id": 2,
      "Boundaries": [
        {"X": 50, "Y": 0},
        {"X": 90, "Y": 0},
        {"X": 70, "Y": 40}
      ],
      "TextPosition": {"X": 70, "Y": 15},
      "KeyCodes": [0],
      "Text": "LMB"
    },
    {
      "__type": "MouseScroll",
      "Id": 3,
      "Boundaries": [
        {"X": 100, "Y": 0},
        {"X": 140, "Y": 0},
        {"X": 120, "Y": 40}
      ],
      "TextPosition": {"X": 120, "Y": 15},
      "KeyCodes": [],
      "Text": "Up"
    },
    {
      "__type": "MouseSpeedIndicator",
      "Id": 4,
      "Location": {"X": 200, "Y": 150},
      "Radius": 50
    }
  ]
}`

func TestLoadSampleLayout(t *testing.T) {
	l, err := layout.Load(strings.NewReader(sampleLayout))
	require.NoError(t, err)

	require.NotNil(t, l.Version)
	assert.Equal(t, 2, *l.Version)
	assert.InDelta(t, 1060.0, l.Width, 0)
	assert.InDelta(t, 300.0, l.Height, 0)
	require.Len(t, l.Elements, 4)

	key, ok := l.Elements[0].(*layout.KeyboardKey)
	require.True(t, ok)
	assert.Equal(t, uint32(1), key.ID())
	assert.Equal(t, []uint32{65}, key.KeyCodes)
	assert.Equal(t, "a", key.Text)
	assert.Equal(t, "A", key.ShiftText)
	assert.True(t, key.ChangeOnCaps)
	assert.Len(t, key.Boundaries, 4)

	// MouseKey and MouseScroll share a field shape but must stay distinct
	// types; the tag is load-bearing.
	_, ok = l.Elements[1].(*layout.MouseKey)
	assert.True(t, ok)
	_, ok = l.Elements[2].(*layout.MouseScroll)
	assert.True(t, ok)

	indicator, ok := l.Elements[3].(*layout.MouseSpeedIndicator)
	require.True(t, ok)
	assert.InDelta(t, 50.0, indicator.Radius, 0)
}

func TestLayoutRoundTrip(t *testing.T) {
	first, err := layout.Load(strings.NewReader(sampleLayout))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, layout.Save(&buf, first))

	encoded := buf.String()

	second, err := layout.Load(strings.NewReader(encoded))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// The tags must survive re-encoding verbatim.
	for _, tag := range []string{"KeyboardKey", "MouseKey", "MouseScroll", "MouseSpeedIndicator"} {
		assert.Contains(t, encoded, `"__type": "`+tag+`"`)
	}

	assert.Contains(t, encoded, `"Version": 2`)
}

func TestVersionOmittedWhenAbsent(t *testing.T) {
	l := &layout.Layout{Width: 10, Height: 10}

	encoded, err := json.Marshal(l)
	require.NoError(t, err)

	assert.NotContains(t, string(encoded), "Version")
}

func TestUnknownFieldsIgnored(t *testing.T) {
	doc := `{
  "Width": 10, "Height": 10, "FutureField": {"a": 1},
  "Elements": [
    {"__type": "MouseScroll", "Id": 1, "Boundaries": [], "TextPosition": {"X": 0, "Y": 0},
     "KeyCodes": [], "Text": "", "SomethingNew": 5}
  ]
}`

	_, err := layout.Load(strings.NewReader(doc))
	assert.NoError(t, err)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		path string
	}{
		{
			"missing type tag",
			`{"Width": 10, "Height": 10, "Elements": [{"Id": 1}]}`,
			"Elements[0].__type",
		},
		{
			"unrecognized type tag",
			`{"Width": 10, "Height": 10, "Elements": [{"__type": "Trackball", "Id": 1}]}`,
			"Elements[0].__type",
		},
		{
			"zero width",
			`{"Width": 0, "Height": 10, "Elements": []}`,
			"Width",
		},
		{
			"version above byte range",
			`{"Version": 256, "Width": 10, "Height": 10, "Elements": []}`,
			"Version",
		},
		{
			"negative version",
			`{"Version": -1, "Width": 10, "Height": 10, "Elements": []}`,
			"Version",
		},
		{
			"duplicate ids",
			`{"Width": 10, "Height": 10, "Elements": [
				{"__type": "MouseSpeedIndicator", "Id": 7, "Location": {"X": 0, "Y": 0}, "Radius": 5},
				{"__type": "MouseSpeedIndicator", "Id": 7, "Location": {"X": 9, "Y": 9}, "Radius": 5}
			]}`,
			"Elements[1].Id",
		},
		{
			"keyboard key without keycodes",
			`{"Width": 10, "Height": 10, "Elements": [
				{"__type": "KeyboardKey", "Id": 1, "Boundaries": [], "TextPosition": {"X": 0, "Y": 0},
				 "KeyCodes": [], "Text": "a", "ShiftText": "A", "ChangeOnCaps": false}
			]}`,
			"Elements[0].KeyCodes",
		},
		{
			"non-positive indicator radius",
			`{"Width": 10, "Height": 10, "Elements": [
				{"__type": "MouseSpeedIndicator", "Id": 1, "Location": {"X": 0, "Y": 0}, "Radius": 0}
			]}`,
			"Elements[0].Radius",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := layout.Load(strings.NewReader(tc.doc))
			require.Error(t, err)

			var schemaErr *layout.SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tc.path, schemaErr.Path)
		})
	}
}

func TestTranslate(t *testing.T) {
	key := &layout.KeyboardKey{
		Id:           1,
		Boundaries:   []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		TextPosition: geometry.Point{X: 5, Y: 5},
	}

	key.Translate(geometry.Point{X: 3, Y: -2}, true)

	assert.Equal(t, geometry.Point{X: 3, Y: -2}, key.Boundaries[0])
	assert.Equal(t, geometry.Point{X: 8, Y: 3}, key.TextPosition)

	key.Translate(geometry.Point{X: 1, Y: 1}, false)
	assert.Equal(t, geometry.Point{X: 8, Y: 3}, key.TextPosition, "text anchored when moveText is off")
}

func TestCloneIsDeep(t *testing.T) {
	key := &layout.MouseKey{
		Id:         2,
		Boundaries: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		KeyCodes:   []uint32{0},
	}

	clone := key.Clone().(*layout.MouseKey)
	clone.Boundaries[0] = geometry.Point{X: 99, Y: 99}
	clone.KeyCodes[0] = 42

	assert.Equal(t, geometry.Point{X: 0, Y: 0}, key.Boundaries[0])
	assert.Equal(t, uint32(0), key.KeyCodes[0])
}
