package serial

import "io"

// Device is a device that can be attached to the Controller. Exchange is
// called once per transferred byte with the byte shifted out, and returns
// the byte shifted in.
type Device interface {
	Exchange(out uint8) uint8
}

// nullDevice is an implementation of Device that
// always shifts in 0xFF. This is the same as if no
// device is plugged in.
type nullDevice struct{}

// Exchange always returns 0xFF.
func (n nullDevice) Exchange(uint8) uint8 { return 0xFF }

// writerDevice captures every byte it receives to an io.Writer. Test
// ROMs print their results this way.
type writerDevice struct {
	w io.Writer
}

// NewWriterDevice returns a Device that writes every byte it receives
// to w, and acts as if nothing is plugged in otherwise.
func NewWriterDevice(w io.Writer) Device {
	return &writerDevice{w: w}
}

// Exchange writes out to the underlying writer.
func (d *writerDevice) Exchange(out uint8) uint8 {
	_, _ = d.w.Write([]byte{out})
	return 0xFF
}
