package csr

import "fmt"

// HardwareError is a failure reported by the register layer or by a hardware
// collaborator. It is passed to the operator as is and never retried.
type HardwareError struct {
	Op   string
	Addr Addr
	Err  error
}

func (e *HardwareError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("hardware error: %v", e.Err)
	}

	return fmt.Sprintf("hardware error: %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *HardwareError) Unwrap() error {
	return e.Err
}
