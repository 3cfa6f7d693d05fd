package rhtest

import "io"

// InputProvider yields operator input one character at a time. ReadChar
// blocks until a character is available.
type InputProvider interface {
	ReadChar() (byte, error)
}

// ScriptedInput replays a fixed character sequence and then reports io.EOF.
type ScriptedInput struct {
	chars []byte
	pos   int
}

// NewScriptedInput creates an input provider that replays chars.
func NewScriptedInput(chars string) *ScriptedInput {
	return &ScriptedInput{chars: []byte(chars)}
}

// ReadChar returns the next scripted character.
func (s *ScriptedInput) ReadChar() (byte, error) {
	if s.pos >= len(s.chars) {
		return 0, io.EOF
	}

	c := s.chars[s.pos]
	s.pos++

	return c, nil
}

// Consumed returns the number of characters read so far.
func (s *ScriptedInput) Consumed() int {
	return s.pos
}
