// Package input defines the normalized event feed. A capture collaborator
// (any process with access to OS input hooks) writes one event per line to a
// pipe or serial port; this package parses those lines into typed events.
//
// The protocol:
//
//	key <code> down|up
//	button <code> down|up
//	wheel <dx> <dy>
//	move <x> <y>
package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Kind int

const (
	KindKey Kind = iota
	KindButton
	KindWheel
	KindMove
)

// Event is one normalized input event. Only the fields relevant to Kind are
// populated.
type Event struct {
	Kind    Kind
	Code    uint32
	Pressed bool
	DX, DY  int
	X, Y    float64
}

// ParseLine parses one protocol line. Blank lines and comment lines
// (leading '#') yield a nil event with no error, so callers can skip them
// without special-casing.
func ParseLine(line string) (*Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil, nil
	}

	switch fields[0] {
	case "key":
		return parseKeyed(KindKey, fields)
	case "button":
		return parseKeyed(KindButton, fields)
	case "wheel":
		if len(fields) != 3 {
			return nil, fmt.Errorf("wheel event needs 2 arguments, got %d", len(fields)-1)
		}

		dx, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("could not parse wheel dx: %w", err)
		}

		dy, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("could not parse wheel dy: %w", err)
		}

		return &Event{Kind: KindWheel, DX: dx, DY: dy}, nil
	case "move":
		if len(fields) != 3 {
			return nil, fmt.Errorf("move event needs 2 arguments, got %d", len(fields)-1)
		}

		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse move x: %w", err)
		}

		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse move y: %w", err)
		}

		return &Event{Kind: KindMove, X: x, Y: y}, nil
	default:
		return nil, fmt.Errorf("unknown event %q", fields[0])
	}
}

func parseKeyed(kind Kind, fields []string) (*Event, error) {
	if len(fields) != 3 {
		return nil, fmt.Errorf("%s event needs 2 arguments, got %d", fields[0], len(fields)-1)
	}

	code, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s code: %w", fields[0], err)
	}

	var pressed bool
	switch fields[2] {
	case "down":
		pressed = true
	case "up":
		pressed = false
	default:
		return nil, fmt.Errorf("state value unexpected: %q", fields[2])
	}

	return &Event{Kind: kind, Code: uint32(code), Pressed: pressed}, nil
}

// ReadLines streams r line by line. The done channel receives once when r is
// exhausted.
func ReadLines(r io.Reader) (<-chan string, <-chan bool) {
	ch := make(chan string)
	done := make(chan bool)

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			ch <- scanner.Text()
		}
		done <- true
	}()

	return ch, done
}
