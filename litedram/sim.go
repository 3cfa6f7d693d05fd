package litedram

import (
	"errors"
	"fmt"

	"github.com/tr-rocks/litex/csr"
)

// ErrNoAck is reported when no SPD EEPROM answers at an address.
var ErrNoAck = errors.New("no acknowledge from SPD EEPROM")

// ErrNoSuchModule is reported for a data module the PHY does not have.
var ErrNoSuchModule = errors.New("no such module")

// ErrNotUnderSoftwareControl is reported for PHY adjustments made while the
// controller owns the DFI interface.
var ErrNotUnderSoftwareControl = errors.New("software control is off")

// SimController is an in-process Controller. It keeps the delay settings it
// is given and logs every call.
type SimController struct {
	Modules  uint32
	SPDAddr  uint8
	SPDImage []byte

	Calls []string

	softwareControl bool
	cmdDelay        uint32
	datDelay        map[uint32]uint32
	bitslip         map[uint32]uint32
	modeRegs        map[uint8]uint16
}

// NewSimController creates a SimController with the given number of data
// modules and an SPD EEPROM at address 0.
func NewSimController(modules uint32) *SimController {
	return &SimController{
		Modules:  modules,
		SPDImage: DefaultSPD(),
		datDelay: make(map[uint32]uint32),
		bitslip:  make(map[uint32]uint32),
		modeRegs: make(map[uint8]uint16),
	}
}

// DefaultSPD returns the SPD image of a DDR3-1600 4GB unbuffered module.
func DefaultSPD() []byte {
	image := make([]byte, SPDSize)
	copy(image, []byte{
		0x92, 0x10, 0x0b, 0x02, 0x04, 0x19, 0x00, 0x09,
		0x0b, 0x52, 0x01, 0x08, 0x0a, 0x00, 0xfe, 0x00,
		0x69, 0x78, 0x69, 0x3c, 0x69, 0x11, 0x18, 0x81,
		0x20, 0x08, 0x3c, 0x3c, 0x00, 0xf0, 0x83, 0x81,
	})

	return image
}

func (c *SimController) log(format string, args ...any) {
	c.Calls = append(c.Calls, fmt.Sprintf(format, args...))
}

// Init runs the initialization sequence.
func (c *SimController) Init() error {
	c.log("init")
	return nil
}

// MemTest finds no errors.
func (c *SimController) MemTest() (int, error) {
	c.log("memtest")
	return 0, nil
}

// Leveling runs leveling.
func (c *SimController) Leveling() error {
	c.log("leveling")
	return c.requireSoftwareControl()
}

// SoftwareControl switches DFI ownership.
func (c *SimController) SoftwareControl(on bool) error {
	c.log("software_control %v", on)
	c.softwareControl = on

	return nil
}

// BIST runs the built-in self-test.
func (c *SimController) BIST(burstLength, random uint32) error {
	c.log("bist %d %d", burstLength, random)
	return nil
}

// HWTest finds no errors.
func (c *SimController) HWTest(origin, size, burstLength uint64) (int, error) {
	c.log("hw_test 0x%x 0x%x %d", origin, size, burstLength)
	return 0, nil
}

// ResetCmdDelay resets the command delay.
func (c *SimController) ResetCmdDelay() error {
	c.log("rst_cmd_delay")
	c.cmdDelay = 0

	return c.requireSoftwareControl()
}

// ForceCmdDelay sets the command delay.
func (c *SimController) ForceCmdDelay(taps uint32) error {
	c.log("force_cmd_delay %d", taps)
	if err := c.requireSoftwareControl(); err != nil {
		return err
	}

	c.cmdDelay = taps

	return nil
}

// ResetDatDelay resets the data delay of a module.
func (c *SimController) ResetDatDelay(module uint32) error {
	return c.ForceDatDelay(module, 0)
}

// ForceDatDelay sets the data delay of a module.
func (c *SimController) ForceDatDelay(module, taps uint32) error {
	c.log("force_dat_delay %d %d", module, taps)
	if err := c.checkModule(module); err != nil {
		return err
	}

	c.datDelay[module] = taps

	return nil
}

// ResetBitslip resets the bitslip of a module.
func (c *SimController) ResetBitslip(module uint32) error {
	return c.ForceBitslip(module, 0)
}

// ForceBitslip sets the bitslip of a module.
func (c *SimController) ForceBitslip(module, bitslip uint32) error {
	c.log("force_bitslip %d %d", module, bitslip)
	if err := c.checkModule(module); err != nil {
		return err
	}

	c.bitslip[module] = bitslip

	return nil
}

// ModeRegisterWrite writes a DRAM mode register.
func (c *SimController) ModeRegisterWrite(reg uint8, value uint16) error {
	c.log("mr_write %d 0x%04x", reg, value)
	if err := c.requireSoftwareControl(); err != nil {
		return err
	}

	c.modeRegs[reg] = value

	return nil
}

// ModeRegister returns the last value written to a mode register.
func (c *SimController) ModeRegister(reg uint8) uint16 {
	return c.modeRegs[reg]
}

// DatDelay returns the data delay of a module.
func (c *SimController) DatDelay(module uint32) uint32 {
	return c.datDelay[module]
}

// CmdDelay returns the command delay.
func (c *SimController) CmdDelay() uint32 {
	return c.cmdDelay
}

// ReadSPD returns the SPD image if addr matches the EEPROM address.
func (c *SimController) ReadSPD(addr uint8) ([]byte, error) {
	c.log("spd %d", addr)
	if addr != c.SPDAddr {
		return nil, &csr.HardwareError{Err: ErrNoAck}
	}

	image := make([]byte, len(c.SPDImage))
	copy(image, c.SPDImage)

	return image, nil
}

func (c *SimController) checkModule(module uint32) error {
	if err := c.requireSoftwareControl(); err != nil {
		return err
	}

	if module >= c.Modules {
		return &csr.HardwareError{
			Err: fmt.Errorf("module %d: %w", module, ErrNoSuchModule),
		}
	}

	return nil
}

func (c *SimController) requireSoftwareControl() error {
	if !c.softwareControl {
		return &csr.HardwareError{Err: ErrNotUnderSoftwareControl}
	}

	return nil
}
