package csr

import (
	"errors"
	"sort"
	"sync"

	"github.com/tr-rocks/litex/hooking"
)

// HookPosRegRead marks a register read.
var HookPosRegRead = &hooking.HookPos{Name: "RegRead"}

// HookPosRegWrite marks a register write.
var HookPosRegWrite = &hooking.HookPos{Name: "RegWrite"}

// Access is the hook item of register reads and writes.
type Access struct {
	Addr  Addr
	Value uint32
	Err   error
}

// ErrNoSuchRegister is returned for addresses the bank does not decode.
var ErrNoSuchRegister = errors.New("no such register")

// ErrReadOnly is returned when writing a read-only register.
var ErrReadOnly = errors.New("register is read-only")

// SimBank is an in-process register bank that behaves like the test block
// of the controller. It is safe for concurrent use, as real registers are.
type SimBank struct {
	hooking.HookableBase

	name string

	lock     sync.Mutex
	regs     map[Addr]uint32
	readOnly map[Addr]bool
	faults   map[Addr]error
}

// Name returns the name of the bank.
func (b *SimBank) Name() string {
	return b.name
}

// Read returns the value of a register.
func (b *SimBank) Read(a Addr) (uint32, error) {
	b.lock.Lock()
	v, err := b.read(a)
	b.lock.Unlock()

	b.InvokeHook(hooking.HookCtx{
		Domain: b,
		Pos:    HookPosRegRead,
		Item:   Access{Addr: a, Value: v, Err: err},
	})

	return v, err
}

func (b *SimBank) read(a Addr) (uint32, error) {
	if err := b.faults[a]; err != nil {
		return 0, &HardwareError{Op: "read", Addr: a, Err: err}
	}

	v, ok := b.regs[a]
	if !ok {
		return 0, &HardwareError{Op: "read", Addr: a, Err: ErrNoSuchRegister}
	}

	return v, nil
}

// Write sets the value of a register.
func (b *SimBank) Write(a Addr, v uint32) error {
	b.lock.Lock()
	err := b.write(a, v)
	b.lock.Unlock()

	b.InvokeHook(hooking.HookCtx{
		Domain: b,
		Pos:    HookPosRegWrite,
		Item:   Access{Addr: a, Value: v, Err: err},
	})

	return err
}

func (b *SimBank) write(a Addr, v uint32) error {
	if err := b.faults[a]; err != nil {
		return &HardwareError{Op: "write", Addr: a, Err: err}
	}

	if _, ok := b.regs[a]; !ok {
		return &HardwareError{Op: "write", Addr: a, Err: ErrNoSuchRegister}
	}

	if b.readOnly[a] {
		return &HardwareError{Op: "write", Addr: a, Err: ErrReadOnly}
	}

	switch a {
	case RefreshEnable, AutoPrecharge, DoublePattern, PatternSelect:
		v &= 1
	case PatternData:
		if b.regs[PatternSelect] == 1 {
			b.regs[PatternOdd] = v
		} else {
			b.regs[PatternEven] = v
		}
	}

	b.regs[a] = v

	return nil
}

// InjectFault makes every access to a fail with err. A nil err clears the
// fault.
func (b *SimBank) InjectFault(a Addr, err error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if err == nil {
		delete(b.faults, a)
		return
	}

	b.faults[a] = err
}

// RegisterValue is one entry of a bank snapshot.
type RegisterValue struct {
	Name  string `json:"name"`
	Addr  uint32 `json:"addr"`
	Value uint32 `json:"value"`
}

// Snapshot returns all registers ordered by address. It does not trigger
// hooks.
func (b *SimBank) Snapshot() []RegisterValue {
	b.lock.Lock()
	defer b.lock.Unlock()

	values := make([]RegisterValue, 0, len(b.regs))
	for a, v := range b.regs {
		values = append(values, RegisterValue{
			Name:  a.String(),
			Addr:  uint32(a),
			Value: v,
		})
	}

	sort.Slice(values, func(i, j int) bool {
		return values[i].Addr < values[j].Addr
	})

	return values
}
