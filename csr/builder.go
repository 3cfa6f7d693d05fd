package csr

// Builder can build simulated register banks.
type Builder struct {
	dataWidth   uint32
	refreshRate uint32
}

// MakeBuilder creates a builder with default configuration.
func MakeBuilder() Builder {
	return Builder{
		dataWidth:   128,
		refreshRate: 6240,
	}
}

// WithDataWidth sets the DRAM data path width in bits reported by the bank.
func (b Builder) WithDataWidth(bits uint32) Builder {
	b.dataWidth = bits
	return b
}

// WithRefreshRate sets the refresh rate the bank comes out of reset with.
func (b Builder) WithRefreshRate(rate uint32) Builder {
	b.refreshRate = rate
	return b
}

// Build creates a SimBank in its reset state: refresh enabled, auto-precharge
// and double-pattern disabled, patterns and timers zero.
func (b Builder) Build(name string) *SimBank {
	bank := &SimBank{
		name:     name,
		regs:     make(map[Addr]uint32),
		readOnly: make(map[Addr]bool),
		faults:   make(map[Addr]error),
	}

	for _, a := range []Addr{
		AutoPrecharge, DoublePattern, PatternSelect, PatternData,
		PatternEven, PatternOdd, DDRPhyReadPhase, DDRPhyWritePhase,
	} {
		bank.regs[a] = 0
	}

	bank.regs[RefreshEnable] = 1
	bank.regs[RefreshRate] = b.refreshRate
	bank.regs[DataWidth] = b.dataWidth

	for ch := uint32(0); ch < NumTimerChannels; ch++ {
		bank.regs[Timer(ch)] = 0
	}

	bank.readOnly[DataWidth] = true
	bank.readOnly[PatternEven] = true
	bank.readOnly[PatternOdd] = true

	return bank
}
