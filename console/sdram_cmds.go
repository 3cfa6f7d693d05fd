package console

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tr-rocks/litex/cmdargs"
	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/litedram"
)

func (c *Console) sdramCommands() *cobra.Command {
	return group("sdram", "DRAM initialization, calibration and tests",
		leaf("init", "Initialize SDRAM (init + calibration)", c.sdramInit),
		leaf("test", "Test SDRAM", c.sdramTest),
		leaf("cal", "Calibrate SDRAM", c.sdramCal),
		leaf("bist <burst_length> <random>",
			"Run the SDRAM built-in self-test", c.sdramBIST),
		leaf("hw-test <origin> <size> [<burst_length>]",
			"Run the hardware-accelerated memtest", c.sdramHWTest),
		leaf("force-rdphase <phase>", "Force the read phase", c.forceReadPhase),
		leaf("force-wrphase <phase>", "Force the write phase", c.forceWritePhase),
		leaf("rst-cmd-delay", "Reset the write leveling command delay",
			c.resetCmdDelay),
		leaf("force-cmd-delay <taps>", "Force the write leveling command delay",
			c.forceCmdDelay),
		leaf("rst-dat-delay <module>", "Reset the write leveling data delay",
			c.resetDatDelay),
		leaf("force-dat-delay <module> <taps>",
			"Force the write leveling data delay", c.forceDatDelay),
		leaf("rst-bitslip <module>", "Reset the write leveling bitslip",
			c.resetBitslip),
		leaf("force-bitslip <module> <bitslip>",
			"Force the write leveling bitslip", c.forceBitslip),
		leaf("mr-write <reg> <value>", "Write an SDRAM mode register",
			c.modeRegisterWrite),
		leaf("spd <spdaddr>", "Read the SDRAM SPD EEPROM", c.readSPD),
	)
}

func (c *Console) sdramInit(_ cmdargs.Args) error {
	return c.dram.Init()
}

func (c *Console) sdramTest(_ cmdargs.Args) error {
	errs, err := c.dram.MemTest()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%d errors found\n", errs)

	return nil
}

func (c *Console) sdramCal(_ cmdargs.Args) error {
	return litedram.WithSoftwareControl(c.dram, c.dram.Leveling)
}

func (c *Console) sdramBIST(args cmdargs.Args) error {
	if err := args.Require(2, "sdram bist <burst_length> <random>"); err != nil {
		return err
	}

	burst, err := args.Uint32(0, "burst_length")
	if err != nil {
		return err
	}

	random, err := args.Uint32(1, "random")
	if err != nil {
		return err
	}

	return c.dram.BIST(burst, random)
}

func (c *Console) sdramHWTest(args cmdargs.Args) error {
	if err := args.Require(2,
		"sdram hw-test <origin> <size> [<burst_length>]"); err != nil {
		return err
	}

	origin, err := args.Uint64(0, "origin")
	if err != nil {
		return err
	}

	size, err := args.Uint64(1, "size")
	if err != nil {
		return err
	}

	burst, err := args.OptionalUint64(2, "burst_length", 1)
	if err != nil {
		return err
	}

	errs, err := c.dram.HWTest(origin, size, burst)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%d errors found\n", errs)

	return nil
}

func (c *Console) forcePhase(
	args cmdargs.Args,
	syntax, what string,
	reg csr.Addr,
) error {
	if err := args.Require(1, syntax); err != nil {
		return err
	}

	phase, err := args.Uint32(0, "phase")
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Forcing %s phase to %d\n", what, phase)

	return c.bank.Write(reg, phase)
}

func (c *Console) forceReadPhase(args cmdargs.Args) error {
	return c.forcePhase(args, "sdram force-rdphase <phase>", "read",
		csr.DDRPhyReadPhase)
}

func (c *Console) forceWritePhase(args cmdargs.Args) error {
	return c.forcePhase(args, "sdram force-wrphase <phase>", "write",
		csr.DDRPhyWritePhase)
}

func (c *Console) resetCmdDelay(_ cmdargs.Args) error {
	return litedram.WithSoftwareControl(c.dram, c.dram.ResetCmdDelay)
}

func (c *Console) forceCmdDelay(args cmdargs.Args) error {
	if err := args.Require(1, "sdram force-cmd-delay <taps>"); err != nil {
		return err
	}

	taps, err := args.Uint32(0, "taps")
	if err != nil {
		return err
	}

	return litedram.WithSoftwareControl(c.dram, func() error {
		return c.dram.ForceCmdDelay(taps)
	})
}

func (c *Console) resetDatDelay(args cmdargs.Args) error {
	if err := args.Require(1, "sdram rst-dat-delay <module>"); err != nil {
		return err
	}

	module, err := args.Uint32(0, "module")
	if err != nil {
		return err
	}

	return litedram.WithSoftwareControl(c.dram, func() error {
		return c.dram.ResetDatDelay(module)
	})
}

func (c *Console) forceDatDelay(args cmdargs.Args) error {
	if err := args.Require(2, "sdram force-dat-delay <module> <taps>"); err != nil {
		return err
	}

	module, err := args.Uint32(0, "module")
	if err != nil {
		return err
	}

	taps, err := args.Uint32(1, "taps")
	if err != nil {
		return err
	}

	return litedram.WithSoftwareControl(c.dram, func() error {
		return c.dram.ForceDatDelay(module, taps)
	})
}

func (c *Console) resetBitslip(args cmdargs.Args) error {
	if err := args.Require(1, "sdram rst-bitslip <module>"); err != nil {
		return err
	}

	module, err := args.Uint32(0, "module")
	if err != nil {
		return err
	}

	return litedram.WithSoftwareControl(c.dram, func() error {
		return c.dram.ResetBitslip(module)
	})
}

func (c *Console) forceBitslip(args cmdargs.Args) error {
	if err := args.Require(2, "sdram force-bitslip <module> <bitslip>"); err != nil {
		return err
	}

	module, err := args.Uint32(0, "module")
	if err != nil {
		return err
	}

	bitslip, err := args.Uint32(1, "bitslip")
	if err != nil {
		return err
	}

	return litedram.WithSoftwareControl(c.dram, func() error {
		return c.dram.ForceBitslip(module, bitslip)
	})
}

func (c *Console) modeRegisterWrite(args cmdargs.Args) error {
	if err := args.Require(2, "sdram mr-write <reg> <value>"); err != nil {
		return err
	}

	reg, err := args.Uint(0, "reg", 8)
	if err != nil {
		return err
	}

	value, err := args.Uint(1, "value", 16)
	if err != nil {
		return err
	}

	return litedram.WithSoftwareControl(c.dram, func() error {
		fmt.Fprintf(c.out, "Writing 0x%04x to MR%d\n", value, reg)
		return c.dram.ModeRegisterWrite(uint8(reg), uint16(value))
	})
}

func (c *Console) readSPD(args cmdargs.Args) error {
	if err := args.Require(1, "sdram spd <spdaddr>",
		"spdaddr: 0b000 - 0b111, set by the A0, A1, A2 pins"); err != nil {
		return err
	}

	addr, err := args.Uint(0, "spdaddr", 8)
	if err != nil {
		return err
	}

	if addr > litedram.MaxSPDAddr {
		return &cmdargs.ValidationError{
			Field:  "spdaddr",
			Token:  fmt.Sprint(addr),
			Reason: "SPD EEPROM max address is 0b111 (defined by A0, A1, A2 pins)",
		}
	}

	image, err := c.dram.ReadSPD(uint8(addr))
	if err != nil {
		return err
	}

	fmt.Fprint(c.out, hex.Dump(image))

	if c.referenceSPD == nil {
		return nil
	}

	n := min(len(image), len(c.referenceSPD))
	if bytes.Equal(image[:n], c.referenceSPD[:n]) {
		fmt.Fprintln(c.out,
			"Memory contents matches the data used for gateware generation")
		return nil
	}

	fmt.Fprintln(c.out,
		"\nWARNING: memory differs from the data used during gateware generation:")
	fmt.Fprint(c.out, hex.Dump(c.referenceSPD))

	return nil
}
