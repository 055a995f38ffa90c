package layout

import (
	"encoding/json"
	"fmt"
)

// The element union is serialized with a `__type` tag flattened next to the
// element's own fields, so the codec probes the tag first and then decodes
// the remaining fields into the matching concrete type. Unknown extra
// fields are ignored for forward compatibility with the legacy format.

type layoutDocument struct {
	Version  *int              `json:"Version,omitempty"`
	Width    float64           `json:"Width"`
	Height   float64           `json:"Height"`
	Elements []json.RawMessage `json:"Elements"`
}

func (l *Layout) UnmarshalJSON(data []byte) error {
	var doc layoutDocument

	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("could not parse layout document: %w", err)
	}

	elements := make([]Element, 0, len(doc.Elements))

	for i, raw := range doc.Elements {
		element, err := unmarshalElement(i, raw)
		if err != nil {
			return err
		}

		elements = append(elements, element)
	}

	l.Version = doc.Version
	l.Width = doc.Width
	l.Height = doc.Height
	l.Elements = elements

	return nil
}

func (l Layout) MarshalJSON() ([]byte, error) {
	doc := layoutDocument{
		Version:  l.Version,
		Width:    l.Width,
		Height:   l.Height,
		Elements: make([]json.RawMessage, 0, len(l.Elements)),
	}

	for i, element := range l.Elements {
		raw, err := marshalElement(element)
		if err != nil {
			return nil, fmt.Errorf("could not encode Elements[%d]: %w", i, err)
		}

		doc.Elements = append(doc.Elements, raw)
	}

	return json.Marshal(doc)
}

func unmarshalElement(index int, raw json.RawMessage) (Element, error) {
	path := fmt.Sprintf("Elements[%d]", index)

	var probe struct {
		Type *string `json:"__type"`
	}

	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, schemaErrorf(path, "not an object: %v", err)
	}

	if probe.Type == nil {
		return nil, schemaErrorf(path+".__type", "missing element type tag")
	}

	var (
		element Element
		err     error
	)

	switch *probe.Type {
	case TagKeyboardKey:
		var el KeyboardKey
		err = json.Unmarshal(raw, &el)
		element = &el
	case TagMouseKey:
		var el MouseKey
		err = json.Unmarshal(raw, &el)
		element = &el
	case TagMouseScroll:
		var el MouseScroll
		err = json.Unmarshal(raw, &el)
		element = &el
	case TagMouseSpeedIndicator:
		var el MouseSpeedIndicator
		err = json.Unmarshal(raw, &el)
		element = &el
	default:
		return nil, schemaErrorf(path+".__type", "unrecognized element type %q", *probe.Type)
	}

	if err != nil {
		return nil, schemaErrorf(path, "bad %s: %v", *probe.Type, err)
	}

	return element, nil
}

func marshalElement(element Element) (json.RawMessage, error) {
	// The tag field comes first so re-encoded documents stay byte-similar
	// to the reference tool's output.
	switch el := element.(type) {
	case *KeyboardKey:
		return json.Marshal(struct {
			Type string `json:"__type"`
			*KeyboardKey
		}{el.typeTag(), el})
	case *MouseKey:
		return json.Marshal(struct {
			Type string `json:"__type"`
			*MouseKey
		}{el.typeTag(), el})
	case *MouseScroll:
		return json.Marshal(struct {
			Type string `json:"__type"`
			*MouseScroll
		}{el.typeTag(), el})
	case *MouseSpeedIndicator:
		return json.Marshal(struct {
			Type string `json:"__type"`
			*MouseSpeedIndicator
		}{el.typeTag(), el})
	default:
		return nil, fmt.Errorf("unsupported element type %T", element)
	}
}
