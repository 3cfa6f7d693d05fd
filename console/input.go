package console

import "bufio"

// ReaderInput reads confirmation characters from the same stream the
// console reads commands from.
type ReaderInput struct {
	r *bufio.Reader
}

// ReadChar blocks until a byte is available.
func (in ReaderInput) ReadChar() (byte, error) {
	return in.r.ReadByte()
}
