package csr

// ReadBool reads a single-bit enable register.
func ReadBool(b Bank, a Addr) (bool, error) {
	v, err := b.Read(a)
	if err != nil {
		return false, err
	}

	return v&1 == 1, nil
}

// WriteBool writes a single-bit enable register.
func WriteBool(b Bank, a Addr, on bool) error {
	var v uint32
	if on {
		v = 1
	}

	return b.Write(a, v)
}

// SetRefresh disables refresh when rate is 0, otherwise enables it and
// programs the rate.
func SetRefresh(b Bank, rate uint32) error {
	if rate == 0 {
		return WriteBool(b, RefreshEnable, false)
	}

	if err := WriteBool(b, RefreshEnable, true); err != nil {
		return err
	}

	return b.Write(RefreshRate, rate)
}

// ReadTimer returns the cycle count held by a physical timer channel.
func ReadTimer(b Bank, channel uint32) (uint32, error) {
	return b.Read(Timer(channel))
}

// WriteTimer programs the cycle count of a physical timer channel.
func WriteTimer(b Bank, channel, cycles uint32) error {
	return b.Write(Timer(channel), cycles)
}

// WritePattern selects the row parity and writes the pattern into it.
func WritePattern(b Bank, parity, value uint32) error {
	if err := b.Write(PatternSelect, parity); err != nil {
		return err
	}

	return b.Write(PatternData, value)
}

// ReadPattern returns the pattern held for the given row parity.
func ReadPattern(b Bank, parity uint32) (uint32, error) {
	if parity == 1 {
		return b.Read(PatternOdd)
	}

	return b.Read(PatternEven)
}
