// Package litedram is the boundary to the DRAM calibration and test library:
// initialization, leveling, BIST, hardware memtest, mode registers and SPD.
// The algorithms live behind Controller; this package only sequences calls.
package litedram

import "errors"

// SPDSize is the number of bytes read from an SPD EEPROM.
const SPDSize = 256

// MaxSPDAddr is the highest SPD EEPROM address selectable by the A0-A2 pins.
const MaxSPDAddr = 0b111

// Controller is the calibration and test library of the DRAM controller.
type Controller interface {
	// Init runs the initialization and calibration sequence.
	Init() error

	// MemTest runs the software memtest over main RAM and returns the
	// number of errors found.
	MemTest() (int, error)

	// Leveling runs read/write leveling.
	Leveling() error

	// SoftwareControl hands the DFI interface to software (on) or back to
	// the controller (off).
	SoftwareControl(on bool) error

	BIST(burstLength, random uint32) error
	HWTest(origin, size, burstLength uint64) (int, error)

	ResetCmdDelay() error
	ForceCmdDelay(taps uint32) error
	ResetDatDelay(module uint32) error
	ForceDatDelay(module, taps uint32) error
	ResetBitslip(module uint32) error
	ForceBitslip(module, bitslip uint32) error

	ModeRegisterWrite(reg uint8, value uint16) error
	ReadSPD(addr uint8) ([]byte, error)
}

// WithSoftwareControl runs fn with software control of the DRAM enabled and
// always gives control back to the controller afterwards.
func WithSoftwareControl(c Controller, fn func() error) (err error) {
	if err := c.SoftwareControl(true); err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, c.SoftwareControl(false))
	}()

	return fn()
}
