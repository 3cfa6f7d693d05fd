package rhtest

import (
	"fmt"
	"io"

	"github.com/rs/xid"

	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/hooking"
)

// State is a step of the campaign run sequence.
type State int

// Run sequence: Idle, SummaryDisplayed, AwaitingConfirmation, then Executing
// or Aborted, then back to Idle.
const (
	Idle State = iota
	SummaryDisplayed
	AwaitingConfirmation
	Executing
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case SummaryDisplayed:
		return "SummaryDisplayed"
	case AwaitingConfirmation:
		return "AwaitingConfirmation"
	case Executing:
		return "Executing"
	case Aborted:
		return "Aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// HookPosStateChange marks a transition of the run sequence.
var HookPosStateChange = &hooking.HookPos{Name: "StateChange"}

// HookPosCampaign marks the end of a campaign run, executed or not.
var HookPosCampaign = &hooking.HookPos{Name: "Campaign"}

// Transition is the hook item of HookPosStateChange.
type Transition struct {
	RunID string
	From  State
	To    State
}

// CampaignResult is the hook item of HookPosCampaign.
type CampaignResult struct {
	RunID   string
	Final   State
	Entries int
	Err     error
}

const prompt = "\nProceed? Y/n :"

// Controller shows the campaign settings, asks the operator to confirm and
// hands the campaign to the executor.
type Controller struct {
	hooking.HookableBase

	bank     csr.Bank
	table    *AttackTable
	executor Executor
	input    InputProvider
	out      io.Writer

	state State
	runID string
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Summary prints the campaign settings.
func (c *Controller) Summary() error {
	s, err := ReadSettings(c.bank, c.table)
	if err != nil {
		return err
	}

	fmt.Fprint(c.out, s)

	return nil
}

// Run walks the run sequence once and returns the state it ended in,
// Executing or Aborted. The controller is Idle again when Run returns.
// Execution failures are returned wrapped, never retried.
func (c *Controller) Run() (State, error) {
	c.runID = xid.New().String()

	if err := c.Summary(); err != nil {
		c.finish(Idle, err)
		return Idle, err
	}

	c.setState(SummaryDisplayed)
	c.setState(AwaitingConfirmation)

	confirmed, err := c.confirm()
	if err != nil {
		c.setState(Aborted)
		c.setState(Idle)
		err = fmt.Errorf("confirmation: %w", err)
		c.finish(Aborted, err)

		return Aborted, err
	}

	if !confirmed {
		c.setState(Aborted)
		fmt.Fprint(c.out, "\nExiting\n")
		c.setState(Idle)
		c.finish(Aborted, nil)

		return Aborted, nil
	}

	c.setState(Executing)
	err = c.executor.Execute(c.table.Entries())
	c.setState(Idle)

	if err != nil {
		err = fmt.Errorf("campaign execution: %w", err)
	}

	c.finish(Executing, err)

	return Executing, err
}

// confirm blocks until y, Y, n, N or a newline arrives. A bare newline
// confirms.
func (c *Controller) confirm() (bool, error) {
	for {
		fmt.Fprint(c.out, prompt)

		ch, err := c.input.ReadChar()
		if err != nil {
			return false, err
		}

		switch ch {
		case 'y', 'Y', '\n':
			return true, nil
		case 'n', 'N':
			return false, nil
		}
	}
}

func (c *Controller) setState(s State) {
	from := c.state
	c.state = s

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosStateChange,
		Item:   Transition{RunID: c.runID, From: from, To: s},
	})
}

func (c *Controller) finish(final State, err error) {
	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosCampaign,
		Item: CampaignResult{
			RunID:   c.runID,
			Final:   final,
			Entries: c.table.Len(),
			Err:     err,
		},
	})
}
