// Package console is the interactive command line of the DRAM test
// controller. It reads one command per line, dispatches it through a cobra
// command tree and reports every error to the operator without leaving the
// loop.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tr-rocks/litex/cmdargs"
	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/litedram"
	"github.com/tr-rocks/litex/rhtest"
)

// Console owns the campaign configuration and the command tree. It runs on
// a single goroutine; commands execute one at a time.
type Console struct {
	name   string
	prompt string

	bank         csr.Bank
	dram         litedram.Controller
	table        *rhtest.AttackTable
	campaign     *rhtest.Controller
	patterns     *rhtest.PatternEncoder
	referenceSPD []byte

	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger

	root *cobra.Command
}

// Name returns the name of the console.
func (c *Console) Name() string {
	return c.name
}

// Table returns the attack table.
func (c *Console) Table() *rhtest.AttackTable {
	return c.table
}

// Campaign returns the campaign controller.
func (c *Console) Campaign() *rhtest.Controller {
	return c.campaign
}

// Run reads and executes commands until the input ends.
func (c *Console) Run() error {
	for {
		fmt.Fprint(c.out, c.prompt)

		line, err := c.in.ReadString('\n')
		if tokens := strings.Fields(line); len(tokens) > 0 {
			_ = c.Exec(tokens)
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// Exec runs a single command. The error, if any, has already been reported
// to the operator when Exec returns.
func (c *Console) Exec(tokens []string) error {
	c.logger.Debug("command", zap.Strings("tokens", tokens))

	c.root.SetArgs(tokens)
	err := c.root.Execute()
	if err != nil {
		c.report(tokens, err)
	}

	return err
}

func (c *Console) report(tokens []string, err error) {
	command := strings.Join(tokens, " ")

	var (
		usage      *cmdargs.UsageError
		validation *cmdargs.ValidationError
		capacity   *rhtest.CapacityError
		hardware   *csr.HardwareError
	)

	switch {
	case errors.As(err, &usage):
		fmt.Fprintln(c.out, usage.Error())
		c.logger.Debug("usage shown", zap.String("command", command))
		return
	case errors.As(err, &validation):
		c.logger.Info("invalid argument",
			zap.String("command", command),
			zap.String("field", validation.Field),
			zap.Error(err))
	case errors.As(err, &capacity):
		c.logger.Info("attack table refused entry",
			zap.String("command", command),
			zap.Int("order", capacity.Order),
			zap.Int("next", capacity.Next))
	case errors.As(err, &hardware):
		c.logger.Warn("hardware error",
			zap.String("command", command),
			zap.Error(err))
	default:
		c.logger.Warn("command failed",
			zap.String("command", command),
			zap.Error(err))
	}

	fmt.Fprintf(c.out, "Error: %v\n", err)
}
