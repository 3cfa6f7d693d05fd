package console

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tr-rocks/litex/cmdargs"
	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/rhtest"
)

func (c *Console) attackAdd(args cmdargs.Args) error {
	d := c.table.Describe()
	if err := args.Require(3,
		"attack-table add <order> <address> <count>",
		fmt.Sprintf("order: position in the attack sequence, 0 - %d", rhtest.Capacity-1),
		d.String(),
		"address: address to attack (ex. 0x1f)",
		"count: number of accesses before moving to the next address",
	); err != nil {
		return err
	}

	order, err := args.Uint32(0, "order")
	if err != nil {
		return err
	}

	address, err := args.Uint64(1, "address")
	if err != nil {
		return err
	}

	count, err := args.Uint32(2, "count")
	if err != nil {
		return err
	}

	if err := c.table.Add(int(order), address, count); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Entry %d: address 0x%x, %d accesses\n",
		order, address, count)

	return nil
}

func (c *Console) attackPop(_ cmdargs.Args) error {
	e, ok := c.table.Pop()
	if !ok {
		fmt.Fprintln(c.out, "Attack table is empty, nothing removed")
		return nil
	}

	fmt.Fprintf(c.out, "Removed entry %d: address 0x%x, %d accesses\n",
		e.Order, e.Address, e.Count)

	return nil
}

func (c *Console) attackDescribe(_ cmdargs.Args) error {
	fmt.Fprintln(c.out, c.table.Describe())

	for _, e := range c.table.Entries() {
		fmt.Fprintf(c.out, "  [%2d] address 0x%08x, %d accesses\n",
			e.Order, e.Address, e.Count)
	}

	return nil
}

func (c *Console) timerSet(args cmdargs.Args) error {
	if err := args.Require(1,
		"timer set <cycles> [<timer_id>]",
		"cycles: number of times to go through all the addresses (32-bit max)",
		fmt.Sprintf("timer_id (default 0): 0 for all %d states, "+
			"1 - %d for the state pairs 1-2, 3-4, 5-6, 7-8, 9-10",
			rhtest.NumCampaignStates, rhtest.NumTimers),
	); err != nil {
		return err
	}

	cycles, err := args.Uint32(0, "cycles")
	if err != nil {
		return err
	}

	logical, err := args.OptionalUint32(1, "timer_id", 0)
	if err != nil {
		return err
	}

	r, err := rhtest.SetTimer(c.bank, logical, cycles)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Timer %d (channel %d) set to %d\n",
		r.Logical, r.Physical, r.Cycles)

	return nil
}

func (c *Console) patternSet(args cmdargs.Args) error {
	widthHint := "pattern: 32-bit value, replicated to fill the data width"
	if width, err := c.bank.Read(csr.DataWidth); err == nil {
		widthHint += fmt.Sprintf(" (data width is %d)", width)
	}

	if err := args.Require(1,
		"pattern set <pattern> [<parity_selector>]",
		widthHint,
		"parity_selector (default 0): 0 for one-pattern or two-pattern "+
			"even rows, 1 for two-pattern odd rows",
	); err != nil {
		return err
	}

	value, err := args.Uint32(0, "pattern")
	if err != nil {
		return err
	}

	parity, err := args.OptionalUint32(1, "parity_selector", 0)
	if err != nil {
		return err
	}

	report, err := c.patterns.Set(value, parity)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, report)

	return nil
}

func (c *Console) refreshSet(args cmdargs.Args) error {
	if err := args.Require(1,
		"refresh-rate set <rate>",
		"rate: refresh rate during the campaign, 0 disables refresh",
	); err != nil {
		return err
	}

	rate, err := args.Uint32(0, "rate")
	if err != nil {
		return err
	}

	if err := csr.SetRefresh(c.bank, rate); err != nil {
		return err
	}

	if rate == 0 {
		fmt.Fprintln(c.out, "Refresh disabled")
	} else {
		fmt.Fprintf(c.out, "Refresh enabled, rate %d\n", rate)
	}

	return nil
}

func (c *Console) autoPrechargeSet(args cmdargs.Args) error {
	if err := args.Require(1,
		"auto-precharge set <0|1>",
		"1 - enable, 0 - disable (for single row hammer)",
	); err != nil {
		return err
	}

	on, err := args.Bool(0, "value")
	if err != nil {
		return err
	}

	if err := csr.WriteBool(c.bank, csr.AutoPrecharge, on); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Auto-precharge %s\n", enabled(on))

	return nil
}

func (c *Console) doublePatternSet(args cmdargs.Args) error {
	if err := args.Require(1,
		"double-pattern set <0|1>",
		"1 to enable two-pattern mode, 0 to use one pattern",
	); err != nil {
		return err
	}

	on, err := args.Bool(0, "enable")
	if err != nil {
		return err
	}

	if err := csr.WriteBool(c.bank, csr.DoublePattern, on); err != nil {
		return err
	}

	double, err := csr.ReadBool(c.bank, csr.DoublePattern)
	if err != nil {
		return err
	}

	if double {
		fmt.Fprintln(c.out, "Two-pattern enabled")
	} else {
		fmt.Fprintln(c.out, "One-pattern enabled")
	}

	return nil
}

func (c *Console) campaignSummary(_ cmdargs.Args) error {
	return c.campaign.Summary()
}

func (c *Console) campaignRun(_ cmdargs.Args) error {
	final, err := c.campaign.Run()
	c.logger.Info("campaign finished",
		zap.Stringer("state", final),
		zap.Int("entries", c.table.Len()),
		zap.Error(err))

	return err
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}

	return "disabled"
}
