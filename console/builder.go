package console

import (
	"bufio"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/hooking"
	"github.com/tr-rocks/litex/litedram"
	"github.com/tr-rocks/litex/rhtest"
)

// Builder can build consoles.
type Builder struct {
	bank          csr.Bank
	dram          litedram.Controller
	executor      rhtest.Executor
	in            io.Reader
	out           io.Writer
	logger        *zap.Logger
	prompt        string
	referenceSPD  []byte
	campaignHooks []hooking.Hook
}

// MakeBuilder creates a builder with default configuration.
func MakeBuilder() Builder {
	return Builder{
		in:     os.Stdin,
		out:    os.Stdout,
		logger: zap.NewNop(),
		prompt: "litex> ",
	}
}

// WithBank sets the register bank of the test block.
func (b Builder) WithBank(bank csr.Bank) Builder {
	b.bank = bank
	return b
}

// WithDRAM sets the calibration and test library.
func (b Builder) WithDRAM(dram litedram.Controller) Builder {
	b.dram = dram
	return b
}

// WithExecutor sets the campaign executor.
func (b Builder) WithExecutor(e rhtest.Executor) Builder {
	b.executor = e
	return b
}

// WithInput sets the operator input stream.
func (b Builder) WithInput(r io.Reader) Builder {
	b.in = r
	return b
}

// WithOutput sets where command output goes.
func (b Builder) WithOutput(w io.Writer) Builder {
	b.out = w
	return b
}

// WithLogger sets the operational logger.
func (b Builder) WithLogger(l *zap.Logger) Builder {
	b.logger = l
	return b
}

// WithPrompt sets the command prompt.
func (b Builder) WithPrompt(p string) Builder {
	b.prompt = p
	return b
}

// WithReferenceSPD sets the SPD image the gateware was generated with.
// `sdram spd` compares what it reads against it.
func (b Builder) WithReferenceSPD(image []byte) Builder {
	b.referenceSPD = image
	return b
}

// WithCampaignHook attaches a hook to the campaign controller.
func (b Builder) WithCampaignHook(h hooking.Hook) Builder {
	b.campaignHooks = append(b.campaignHooks, h)
	return b
}

// Build creates a console.
func (b Builder) Build(name string) *Console {
	if b.bank == nil {
		panic("console: a register bank is required")
	}

	in := bufio.NewReader(b.in)
	table := &rhtest.AttackTable{}

	campaign := rhtest.MakeBuilder().
		WithBank(b.bank).
		WithExecutor(b.executor).
		WithInput(ReaderInput{r: in}).
		WithOutput(b.out).
		Build(table)

	for _, h := range b.campaignHooks {
		campaign.AcceptHook(h)
	}

	c := &Console{
		name:         name,
		prompt:       b.prompt,
		bank:         b.bank,
		dram:         b.dram,
		table:        table,
		campaign:     campaign,
		patterns:     rhtest.NewPatternEncoder(b.bank),
		referenceSPD: b.referenceSPD,
		in:           in,
		out:          b.out,
		logger:       b.logger,
	}

	c.root = c.commandTree()

	return c
}
