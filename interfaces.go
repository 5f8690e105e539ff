package pgnsim

// Sender transmits an encoded payload. *pgncan.Connection satisfies it.
type Sender interface {
	Send(priority uint8, pgn uint32, sa uint8, payload []byte) error
	Close() error
	Name() string
}
