package rhtest

import (
	"fmt"

	"github.com/tr-rocks/litex/cmdargs"
	"github.com/tr-rocks/litex/csr"
)

// MapTimer converts an operator-facing timer id to its physical channel.
// Timer 0 is the aggregate counter; timers 1 to NumTimers sit one channel
// above their id, past the aggregate channel.
func MapTimer(logical uint32) (uint32, error) {
	switch {
	case logical == 0:
		return AggregateChannel, nil
	case logical <= NumTimers:
		return logical + 1, nil
	default:
		return 0, cmdargs.OutOfRange("timer_id", uint64(logical), 0, NumTimers)
	}
}

// TimerReading is the value of one timer channel as read from hardware.
type TimerReading struct {
	Logical  uint32
	Physical uint32
	Cycles   uint32
}

func (r TimerReading) String() string {
	if r.Logical == 0 {
		return fmt.Sprintf("Timer 0 (all states, channel %d): %d cycles",
			r.Physical, r.Cycles)
	}

	first := 2*r.Logical - 1
	return fmt.Sprintf("Timer %d (states %d-%d, channel %d): %d cycles",
		r.Logical, first, first+1, r.Physical, r.Cycles)
}

// SetTimer programs a logical timer and reads the channel back.
func SetTimer(b csr.Bank, logical, cycles uint32) (TimerReading, error) {
	physical, err := MapTimer(logical)
	if err != nil {
		return TimerReading{}, err
	}

	if err := csr.WriteTimer(b, physical, cycles); err != nil {
		return TimerReading{}, err
	}

	return ReadTimer(b, logical)
}

// ReadTimer reads the current value of a logical timer.
func ReadTimer(b csr.Bank, logical uint32) (TimerReading, error) {
	physical, err := MapTimer(logical)
	if err != nil {
		return TimerReading{}, err
	}

	cycles, err := csr.ReadTimer(b, physical)
	if err != nil {
		return TimerReading{}, err
	}

	return TimerReading{Logical: logical, Physical: physical, Cycles: cycles}, nil
}
