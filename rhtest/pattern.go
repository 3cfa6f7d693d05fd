package rhtest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tr-rocks/litex/cmdargs"
	"github.com/tr-rocks/litex/csr"
)

// ErrZeroDataWidth is reported when the hardware claims a zero-bit data
// path.
var ErrZeroDataWidth = errors.New("data width is zero")

// Replicate returns the hexadecimal image of value repeated across a data
// path of width bits. Bits above width are dropped.
func Replicate(value uint32, width uint32) string {
	digits := int(width+3) / 4
	unit := fmt.Sprintf("%08x", value)
	full := strings.Repeat(unit, digits/8+1)
	image := []byte(full[len(full)-digits:])

	if rem := width % 4; rem != 0 && len(image) > 0 {
		top := hexValue(image[0]) & (1<<rem - 1)
		image[0] = "0123456789abcdef"[top]
	}

	return "0x" + string(image)
}

func hexValue(c byte) byte {
	if c >= 'a' {
		return c - 'a' + 10
	}

	return c - '0'
}

// PatternReport is the pattern configuration read back from hardware.
type PatternReport struct {
	Width         uint32
	DoublePattern bool
	Even          uint32
	Odd           uint32
}

func (r PatternReport) String() string {
	b := &strings.Builder{}

	if !r.DoublePattern {
		fmt.Fprintf(b, "One-pattern mode, data width %d bits\n", r.Width)
		fmt.Fprintf(b, "  Pattern: %s", Replicate(r.Even, r.Width))

		return b.String()
	}

	fmt.Fprintf(b, "Two-pattern mode, data width %d bits\n", r.Width)
	fmt.Fprintf(b, "  Even rows: %s\n", Replicate(r.Even, r.Width))
	fmt.Fprintf(b, "  Odd rows:  %s", Replicate(r.Odd, r.Width))

	return b.String()
}

// PatternEncoder writes data patterns and confirms them by reading the
// configuration back.
type PatternEncoder struct {
	bank csr.Bank
}

// NewPatternEncoder creates a PatternEncoder on a register bank.
func NewPatternEncoder(bank csr.Bank) *PatternEncoder {
	return &PatternEncoder{bank: bank}
}

// Set writes value to the rows selected by parity (0 for uniform or even
// rows, 1 for odd rows) and returns what the hardware holds afterwards.
func (e *PatternEncoder) Set(value, parity uint32) (PatternReport, error) {
	if parity > 1 {
		return PatternReport{},
			cmdargs.OutOfRange("parity_selector", uint64(parity), 0, 1)
	}

	if _, err := e.dataWidth(); err != nil {
		return PatternReport{}, err
	}

	if err := csr.WritePattern(e.bank, parity, value); err != nil {
		return PatternReport{}, err
	}

	return e.Show()
}

// Show reads the current pattern configuration from hardware.
func (e *PatternEncoder) Show() (PatternReport, error) {
	width, err := e.dataWidth()
	if err != nil {
		return PatternReport{}, err
	}

	double, err := csr.ReadBool(e.bank, csr.DoublePattern)
	if err != nil {
		return PatternReport{}, err
	}

	even, err := csr.ReadPattern(e.bank, 0)
	if err != nil {
		return PatternReport{}, err
	}

	odd, err := csr.ReadPattern(e.bank, 1)
	if err != nil {
		return PatternReport{}, err
	}

	return PatternReport{
		Width:         width,
		DoublePattern: double,
		Even:          even,
		Odd:           odd,
	}, nil
}

func (e *PatternEncoder) dataWidth() (uint32, error) {
	width, err := e.bank.Read(csr.DataWidth)
	if err != nil {
		return 0, err
	}

	if width == 0 {
		return 0, &csr.HardwareError{
			Op:   "read",
			Addr: csr.DataWidth,
			Err:  ErrZeroDataWidth,
		}
	}

	return width, nil
}
