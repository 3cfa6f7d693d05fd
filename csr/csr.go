// Package csr is the register access layer of the DRAM test controller.
//
// Every read and write goes to the Bank on each call. Nothing is cached on
// this side, since the hardware may change registers while a campaign runs.
package csr

import "fmt"

// Addr identifies a control/status register.
type Addr uint32

// Registers of the row-hammer test block and the DDR PHY.
const (
	RefreshEnable Addr = 0x00
	RefreshRate   Addr = 0x04
	AutoPrecharge Addr = 0x08
	DoublePattern Addr = 0x0c

	// PatternSelect chooses the row parity the next PatternData write
	// lands in: 0 for uniform/even rows, 1 for odd rows.
	PatternSelect Addr = 0x10
	PatternData   Addr = 0x14
	PatternEven   Addr = 0x18
	PatternOdd    Addr = 0x1c

	// DataWidth reports the width of the DRAM data path in bits. Read-only.
	DataWidth Addr = 0x20

	DDRPhyReadPhase  Addr = 0x80
	DDRPhyWritePhase Addr = 0x84

	timerBase Addr = 0x40
)

// NumTimerChannels is the number of physical timer channels of the test
// block.
const NumTimerChannels = 8

// Timer returns the register of a physical timer channel.
func Timer(channel uint32) Addr {
	return timerBase + Addr(4*channel)
}

// IsTimer reports whether a is a timer register and which channel it is.
func IsTimer(a Addr) (channel uint32, ok bool) {
	if a < timerBase || a >= Timer(NumTimerChannels) || (a-timerBase)%4 != 0 {
		return 0, false
	}

	return uint32(a-timerBase) / 4, true
}

var names = map[Addr]string{
	RefreshEnable:    "refresh_enable",
	RefreshRate:      "refresh_rate",
	AutoPrecharge:    "auto_precharge",
	DoublePattern:    "double_pattern",
	PatternSelect:    "pattern_select",
	PatternData:      "pattern_data",
	PatternEven:      "pattern_even",
	PatternOdd:       "pattern_odd",
	DataWidth:        "data_width",
	DDRPhyReadPhase:  "ddrphy_rdphase",
	DDRPhyWritePhase: "ddrphy_wrphase",
}

func (a Addr) String() string {
	if name, ok := names[a]; ok {
		return name
	}

	if ch, ok := IsTimer(a); ok {
		return fmt.Sprintf("timer%d", ch)
	}

	return fmt.Sprintf("csr@0x%02x", uint32(a))
}

// Bank reads and writes registers.
type Bank interface {
	Read(a Addr) (uint32, error)
	Write(a Addr, v uint32) error
}
