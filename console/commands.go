package console

import (
	"github.com/spf13/cobra"

	"github.com/tr-rocks/litex/cmdargs"
)

type handler func(args cmdargs.Args) error

func leaf(use, short string, h handler) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return h(cmdargs.New(args))
		},
	}
}

func group(use, short string, children ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(children...)

	return cmd
}

func (c *Console) commandTree() *cobra.Command {
	root := &cobra.Command{
		Use:           c.name,
		Short:         "DRAM bring-up and row-hammer test console",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(c.out)
	root.SetErr(c.out)

	root.AddCommand(
		group("attack-table", "Configure the row-hammer attack table",
			leaf("add <order> <address> <count>",
				"Append an address to attack", c.attackAdd),
			leaf("pop", "Remove the last address to attack", c.attackPop),
			leaf("describe", "Show the attack table", c.attackDescribe),
		),
		group("timer", "Configure campaign timers",
			leaf("set <cycles> [<timer_id>]",
				"Set the number of passes through the attack sequence",
				c.timerSet),
		),
		group("pattern", "Configure the data pattern",
			leaf("set <pattern> [<parity_selector>]",
				"Set the pattern written before hammering", c.patternSet),
		),
		group("refresh-rate", "Configure refresh during the campaign",
			leaf("set <rate>",
				"Set the refresh rate, 0 disables refresh", c.refreshSet),
		),
		group("auto-precharge", "Configure auto-precharge",
			leaf("set <0|1>",
				"Enable or disable auto-precharge (single row hammer)",
				c.autoPrechargeSet),
		),
		group("double-pattern", "Configure one- or two-pattern mode",
			leaf("set <0|1>", "Enable or disable two-pattern mode",
				c.doublePatternSet),
		),
		group("campaign", "Inspect and start the row-hammer campaign",
			leaf("summary", "Show the campaign settings", c.campaignSummary),
			leaf("run", "Show the settings, confirm and start the campaign",
				c.campaignRun),
		),
	)

	if c.dram != nil {
		root.AddCommand(c.sdramCommands())
	}

	return root
}
