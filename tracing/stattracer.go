package tracing

import (
	"sync"

	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/hooking"
	"github.com/tr-rocks/litex/rhtest"
)

// Stats are the counters collected by a StatTracer.
type Stats struct {
	Reads     uint64 `json:"reads"`
	Writes    uint64 `json:"writes"`
	Faults    uint64 `json:"faults"`
	Campaigns uint64 `json:"campaigns"`
	Executed  uint64 `json:"executed"`
	Aborted   uint64 `json:"aborted"`
	Failed    uint64 `json:"failed"`
	LastRunID string `json:"last_run_id"`
}

// StatTracer counts register accesses and campaign outcomes.
type StatTracer struct {
	lock  sync.Mutex
	stats Stats
}

// NewStatTracer creates a StatTracer with all counters at zero.
func NewStatTracer() *StatTracer {
	return &StatTracer{}
}

// Stats returns a copy of the counters.
func (t *StatTracer) Stats() Stats {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.stats
}

// Func counts the hook item.
func (t *StatTracer) Func(ctx hooking.HookCtx) {
	t.lock.Lock()
	defer t.lock.Unlock()

	switch item := ctx.Item.(type) {
	case csr.Access:
		if item.Err != nil {
			t.stats.Faults++
		}

		switch ctx.Pos {
		case csr.HookPosRegRead:
			t.stats.Reads++
		case csr.HookPosRegWrite:
			t.stats.Writes++
		}
	case rhtest.CampaignResult:
		t.stats.Campaigns++
		t.stats.LastRunID = item.RunID

		switch {
		case item.Err != nil:
			t.stats.Failed++
		case item.Final == rhtest.Executing:
			t.stats.Executed++
		case item.Final == rhtest.Aborted:
			t.stats.Aborted++
		}
	}
}
