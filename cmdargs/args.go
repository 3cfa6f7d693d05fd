package cmdargs

// Args binds the positional tokens of one command invocation.
type Args struct {
	tokens []string
}

// New wraps the tokens of a command invocation.
func New(tokens []string) Args {
	return Args{tokens: tokens}
}

// Len returns the number of tokens.
func (a Args) Len() int {
	return len(a.tokens)
}

// Require returns a UsageError carrying the syntax line and hints if fewer
// than n tokens were given.
func (a Args) Require(n int, syntax string, hints ...string) error {
	if len(a.tokens) >= n {
		return nil
	}

	return &UsageError{Syntax: syntax, Hints: hints}
}

// Uint parses token i as an unsigned integer of bitSize bits.
func (a Args) Uint(i int, field string, bitSize int) (uint64, error) {
	if i >= len(a.tokens) {
		return 0, &ValidationError{Field: field, Reason: "missing"}
	}

	v, err := ParseUint(a.tokens[i], bitSize)
	if err != nil {
		return 0, &ValidationError{
			Field:  field,
			Token:  a.tokens[i],
			Reason: err.Error(),
		}
	}

	return v, nil
}

// Uint32 parses token i as a 32-bit unsigned integer.
func (a Args) Uint32(i int, field string) (uint32, error) {
	v, err := a.Uint(i, field, 32)
	return uint32(v), err
}

// Uint64 parses token i as a 64-bit unsigned integer.
func (a Args) Uint64(i int, field string) (uint64, error) {
	return a.Uint(i, field, 64)
}

// OptionalUint32 parses token i if present and returns def otherwise.
func (a Args) OptionalUint32(i int, field string, def uint32) (uint32, error) {
	if i >= len(a.tokens) {
		return def, nil
	}

	return a.Uint32(i, field)
}

// OptionalUint64 parses token i if present and returns def otherwise.
func (a Args) OptionalUint64(i int, field string, def uint64) (uint64, error) {
	if i >= len(a.tokens) {
		return def, nil
	}

	return a.Uint64(i, field)
}

// Bool parses token i as 0 or 1.
func (a Args) Bool(i int, field string) (bool, error) {
	v, err := a.Uint(i, field, 32)
	if err != nil {
		return false, err
	}

	if v > 1 {
		return false, OutOfRange(field, v, 0, 1)
	}

	return v == 1, nil
}
