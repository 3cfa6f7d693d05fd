// Package tracing turns hook invocations from the register bank and the
// campaign controller into records and counters.
package tracing

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/datarecording"
	"github.com/tr-rocks/litex/hooking"
	"github.com/tr-rocks/litex/rhtest"
)

// Table names used by AccessTracer.
const (
	RegisterAccessTable = "register_access"
	CampaignEventTable  = "campaign_event"
)

// RegisterAccessEntry is one row of the register_access table.
type RegisterAccessEntry struct {
	Seq      uint64
	Time     string
	Bank     string
	Op       string
	Addr     uint32
	Register string
	Value    uint32
	Err      string
}

// CampaignEventEntry is one row of the campaign_event table. Kind is
// "transition" for state changes and "result" for the end of a run.
type CampaignEventEntry struct {
	Seq     uint64
	Time    string
	RunID   string
	Kind    string
	From    string
	To      string
	Entries int
	Err     string
}

type named interface {
	Name() string
}

// AccessTracer is a hook that records register accesses and campaign events
// into a DataRecorder.
type AccessTracer struct {
	lock     sync.Mutex
	recorder datarecording.DataRecorder
	logger   *zap.Logger

	traceReads bool
	seq        uint64
	err        error
	dropped    int
	now        func() time.Time
}

// NewAccessTracer creates the tracer tables on the recorder. Register reads
// are only recorded when traceReads is set; campaign summaries read every
// campaign register.
func NewAccessTracer(
	recorder datarecording.DataRecorder,
	traceReads bool,
	logger *zap.Logger,
) (*AccessTracer, error) {
	err := recorder.CreateTable(RegisterAccessTable, RegisterAccessEntry{})
	if err != nil {
		return nil, err
	}

	err = recorder.CreateTable(CampaignEventTable, CampaignEventEntry{})
	if err != nil {
		return nil, err
	}

	return &AccessTracer{
		recorder:   recorder,
		logger:     logger,
		traceReads: traceReads,
		now:        time.Now,
	}, nil
}

// Err returns the first error the recorder reported, if any. Recording stops
// at the first failure; the error carries the number of rows not recorded.
func (t *AccessTracer) Err() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.err == nil {
		return nil
	}

	return fmt.Errorf("%w (%d rows not recorded)", t.err, t.dropped)
}

// Dropped returns the number of rows not recorded.
func (t *AccessTracer) Dropped() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.dropped
}

// Func records the hook item.
func (t *AccessTracer) Func(ctx hooking.HookCtx) {
	t.lock.Lock()
	defer t.lock.Unlock()

	switch item := ctx.Item.(type) {
	case csr.Access:
		t.recordAccess(ctx, item)
	case rhtest.Transition:
		t.insert(CampaignEventTable, CampaignEventEntry{
			Seq:   t.next(),
			Time:  t.timestamp(),
			RunID: item.RunID,
			Kind:  "transition",
			From:  item.From.String(),
			To:    item.To.String(),
		})
	case rhtest.CampaignResult:
		t.insert(CampaignEventTable, CampaignEventEntry{
			Seq:     t.next(),
			Time:    t.timestamp(),
			RunID:   item.RunID,
			Kind:    "result",
			To:      item.Final.String(),
			Entries: item.Entries,
			Err:     errString(item.Err),
		})
	}
}

func (t *AccessTracer) recordAccess(ctx hooking.HookCtx, a csr.Access) {
	var op string

	switch ctx.Pos {
	case csr.HookPosRegRead:
		if !t.traceReads {
			return
		}
		op = "read"
	case csr.HookPosRegWrite:
		op = "write"
	default:
		return
	}

	bank := ""
	if n, ok := ctx.Domain.(named); ok {
		bank = n.Name()
	}

	t.insert(RegisterAccessTable, RegisterAccessEntry{
		Seq:      t.next(),
		Time:     t.timestamp(),
		Bank:     bank,
		Op:       op,
		Addr:     uint32(a.Addr),
		Register: a.Addr.String(),
		Value:    a.Value,
		Err:      errString(a.Err),
	})
}

func (t *AccessTracer) insert(table string, entry any) {
	if t.err != nil {
		t.dropped++
		return
	}

	err := t.recorder.InsertData(table, entry)
	if err == nil {
		return
	}

	t.logger.Error("recording stopped", zap.String("table", table), zap.Error(err))
	t.err = err
	t.dropped++
}

func (t *AccessTracer) next() uint64 {
	t.seq++
	return t.seq
}

func (t *AccessTracer) timestamp() string {
	return t.now().Format(time.RFC3339Nano)
}

func errString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}
