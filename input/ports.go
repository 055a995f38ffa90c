package input

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// OpenDevice opens a serial capture device for line reading. The returned
// closer releases the port.
func OpenDevice(path string, baudRate int) (r io.Reader, closer func() error, err error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baudRate,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not open device %s: %w", path, err)
	}

	// Capture feeds idle while the user is away from the keyboard; an
	// effectively unbounded read timeout keeps the scanner blocked instead
	// of erroring.
	if err := port.SetReadTimeout(10 * time.Hour); err != nil {
		port.Close()

		return nil, nil, fmt.Errorf("could not set read timeout on %s: %w", path, err)
	}

	return port, port.Close, nil
}

// AvailableDevices lists serial port names that look like capture devices.
func AvailableDevices() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("could not list serial ports: %w", err)
	}

	return names, nil
}
