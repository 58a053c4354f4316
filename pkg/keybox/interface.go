package keybox

// Device defines the interface for keybox scanners (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Frames() <-chan Frame
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
