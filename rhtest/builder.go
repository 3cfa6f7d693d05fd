package rhtest

import (
	"io"
	"os"

	"github.com/tr-rocks/litex/csr"
)

// Builder can build campaign controllers.
type Builder struct {
	bank     csr.Bank
	executor Executor
	input    InputProvider
	out      io.Writer
}

// MakeBuilder creates a builder with default configuration.
func MakeBuilder() Builder {
	return Builder{
		out: os.Stdout,
	}
}

// WithBank sets the register bank of the test block.
func (b Builder) WithBank(bank csr.Bank) Builder {
	b.bank = bank
	return b
}

// WithExecutor sets the collaborator that runs the campaign. Without one,
// a SimExecutor on the same bank is used.
func (b Builder) WithExecutor(e Executor) Builder {
	b.executor = e
	return b
}

// WithInput sets where confirmation characters come from.
func (b Builder) WithInput(in InputProvider) Builder {
	b.input = in
	return b
}

// WithOutput sets where summaries and prompts are printed.
func (b Builder) WithOutput(w io.Writer) Builder {
	b.out = w
	return b
}

// Build creates a controller for the given attack table.
func (b Builder) Build(table *AttackTable) *Controller {
	if b.bank == nil {
		panic("rhtest: controller requires a register bank")
	}

	if b.input == nil {
		panic("rhtest: controller requires an input provider")
	}

	executor := b.executor
	if executor == nil {
		executor = &SimExecutor{Bank: b.bank, Out: b.out}
	}

	return &Controller{
		bank:     b.bank,
		table:    table,
		executor: executor,
		input:    b.input,
		out:      b.out,
	}
}
