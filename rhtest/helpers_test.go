package rhtest_test

import (
	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/hooking"
)

func hookCounter(writes *int) hooking.Hook {
	return hooking.HookFunc(func(ctx hooking.HookCtx) {
		if ctx.Pos == csr.HookPosRegWrite {
			*writes++
		}
	})
}
