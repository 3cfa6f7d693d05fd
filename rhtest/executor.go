package rhtest

import (
	"errors"
	"fmt"
	"io"

	"github.com/tr-rocks/litex/csr"
)

// Executor performs the configured repeated-access sequence.
type Executor interface {
	Execute(entries []AttackEntry) error
}

// ErrNoTargets is reported when a campaign starts with an empty table.
var ErrNoTargets = errors.New("attack table is empty")

// ErrNoCycles is reported when the aggregate timer is zero.
var ErrNoCycles = errors.New("aggregate timer is zero")

// SimExecutor stands in for the hammering engine on hosts without the test
// block. It checks what the engine would check before starting and reports
// the access plan.
type SimExecutor struct {
	Bank csr.Bank
	Out  io.Writer
}

// Execute reports the number of accesses the campaign would make.
func (e *SimExecutor) Execute(entries []AttackEntry) error {
	if len(entries) == 0 {
		return &csr.HardwareError{Err: ErrNoTargets}
	}

	cycles, err := csr.ReadTimer(e.Bank, AggregateChannel)
	if err != nil {
		return err
	}

	if cycles == 0 {
		return &csr.HardwareError{
			Op:   "read",
			Addr: csr.Timer(AggregateChannel),
			Err:  ErrNoCycles,
		}
	}

	var perCycle uint64
	for _, entry := range entries {
		perCycle += uint64(entry.Count)
	}

	fmt.Fprintf(e.Out, "Hammering %d addresses for %d cycles, %d accesses\n",
		len(entries), cycles, perCycle*uint64(cycles))
	fmt.Fprintf(e.Out, "Row hammer test complete\n")

	return nil
}
