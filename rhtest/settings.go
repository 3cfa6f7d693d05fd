package rhtest

import (
	"fmt"
	"strings"

	"github.com/tr-rocks/litex/csr"
)

// Settings is the full configuration of a campaign. Everything but the
// attack table is read from hardware when the settings are collected.
type Settings struct {
	Entries       []AttackEntry
	Timers        []TimerReading
	Pattern       PatternReport
	PatternSelect uint32
	Refresh       bool
	RefreshRate   uint32
	AutoPrecharge bool
}

// ReadSettings collects the campaign configuration.
func ReadSettings(b csr.Bank, table *AttackTable) (Settings, error) {
	s := Settings{Entries: table.Entries()}

	for logical := uint32(0); logical <= NumTimers; logical++ {
		r, err := ReadTimer(b, logical)
		if err != nil {
			return Settings{}, err
		}

		s.Timers = append(s.Timers, r)
	}

	pattern, err := NewPatternEncoder(b).Show()
	if err != nil {
		return Settings{}, err
	}
	s.Pattern = pattern

	if s.PatternSelect, err = b.Read(csr.PatternSelect); err != nil {
		return Settings{}, err
	}

	if s.Refresh, err = csr.ReadBool(b, csr.RefreshEnable); err != nil {
		return Settings{}, err
	}

	if s.RefreshRate, err = b.Read(csr.RefreshRate); err != nil {
		return Settings{}, err
	}

	if s.AutoPrecharge, err = csr.ReadBool(b, csr.AutoPrecharge); err != nil {
		return Settings{}, err
	}

	return s, nil
}

func onOff(on bool) string {
	if on {
		return "enabled"
	}

	return "disabled"
}

func (s Settings) String() string {
	b := &strings.Builder{}

	b.WriteString("Row hammer test settings\n")

	fmt.Fprintf(b, "Attack table (%d of %d):\n", len(s.Entries), Capacity)
	if len(s.Entries) == 0 {
		b.WriteString("  empty\n")
	}

	for _, e := range s.Entries {
		fmt.Fprintf(b, "  [%2d] address 0x%08x, %d accesses\n",
			e.Order, e.Address, e.Count)
	}

	b.WriteString("Timers:\n")
	for _, t := range s.Timers {
		fmt.Fprintf(b, "  %s\n", t)
	}

	fmt.Fprintf(b, "%s\n", s.Pattern)
	fmt.Fprintf(b, "Pattern select: %d\n", s.PatternSelect)

	if s.Refresh {
		fmt.Fprintf(b, "Refresh: enabled, rate %d\n", s.RefreshRate)
	} else {
		b.WriteString("Refresh: disabled\n")
	}

	fmt.Fprintf(b, "Auto-precharge: %s\n", onOff(s.AutoPrecharge))
	fmt.Fprintf(b, "Double pattern: %s\n", onOff(s.Pattern.DoublePattern))

	return b.String()
}
