// Package monitoring serves the state of a running console over HTTP: the
// register banks, registered components, and the resource usage of the
// process.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
	"go.uber.org/zap"

	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/monitoring/web"
)

// RegisterSource is a register bank that can report all its values without
// side effects.
type RegisterSource interface {
	Name() string
	Snapshot() []csr.RegisterValue
}

// A Probe returns a pointer to a copy of the current state of a component.
// It is called from the server goroutine and must be safe for concurrent use.
type Probe func() any

type component struct {
	name  string
	probe Probe
}

// Monitor is an HTTP server that exposes the console state.
type Monitor struct {
	lock       sync.Mutex
	banks      []RegisterSource
	components []component

	portNumber     int
	profileSeconds int
	logger         *zap.Logger

	server *http.Server
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileSeconds: 1,
		logger:         zap.NewNop(),
	}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// replaced by a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("monitoring port not allowed, using a random port",
			zap.Int("port", portNumber))
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogger sets the logger of the monitor.
func (m *Monitor) WithLogger(l *zap.Logger) *Monitor {
	m.logger = l
	return m
}

// RegisterBank adds a register bank to /api/registers.
func (m *Monitor) RegisterBank(b RegisterSource) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.banks = append(m.banks, b)
}

// RegisterComponent makes the value returned by probe available under
// /api/component/{name}.
func (m *Monitor) RegisterComponent(name string, probe Probe) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.components = append(m.components, component{name: name, probe: probe})
}

// Handler returns the router of the monitor.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/registers", m.listRegisters).Methods(http.MethodGet)
	r.HandleFunc("/api/registers/{bank}", m.bankRegisters).
		Methods(http.MethodGet)
	r.HandleFunc("/api/list_components", m.listComponents).
		Methods(http.MethodGet)
	r.HandleFunc("/api/component/{name}", m.componentDetails).
		Methods(http.MethodGet)
	r.HandleFunc("/api/field/{json}", m.fieldValue).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts serving in the background and returns the URL of the
// server.
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", "localhost:"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	m.server = &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitoring server stopped", zap.Error(err))
		}
	}()

	m.logger.Info("monitoring server started", zap.String("url", url))

	return url, nil
}

// Shutdown stops the server started by StartServer.
func (m *Monitor) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

// OpenBrowser opens url in the default browser.
func (m *Monitor) OpenBrowser(url string) error {
	browser.Stdout = os.Stderr
	return browser.OpenURL(url)
}

type bankRsp struct {
	Name      string              `json:"name"`
	Registers []csr.RegisterValue `json:"registers"`
}

func (m *Monitor) listRegisters(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	banks := make([]RegisterSource, len(m.banks))
	copy(banks, m.banks)
	m.lock.Unlock()

	rsp := make([]bankRsp, 0, len(banks))
	for _, b := range banks {
		rsp = append(rsp, bankRsp{Name: b.Name(), Registers: b.Snapshot()})
	}

	m.writeJSON(w, rsp)
}

func (m *Monitor) bankRegisters(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["bank"]

	m.lock.Lock()
	var bank RegisterSource
	for _, b := range m.banks {
		if b.Name() == name {
			bank = b
		}
	}
	m.lock.Unlock()

	if bank == nil {
		http.Error(w, "Bank not found", http.StatusNotFound)
		return
	}

	m.writeJSON(w, bankRsp{Name: bank.Name(), Registers: bank.Snapshot()})
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.name)
	}
	m.lock.Unlock()

	m.writeJSON(w, names)
}

func (m *Monitor) componentDetails(w http.ResponseWriter, r *http.Request) {
	probe := m.findComponentOr404(w, mux.Vars(r)["name"])
	if probe == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(probe())
	serializer.SetMaxDepth(2)

	if err := serializer.Serialize(w); err != nil {
		m.fail(w, err)
	}
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) fieldValue(w http.ResponseWriter, r *http.Request) {
	req := fieldReq{}

	err := json.Unmarshal([]byte(mux.Vars(r)["json"]), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	probe := m.findComponentOr404(w, req.CompName)
	if probe == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(probe())
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := serializer.Serialize(w); err != nil {
		m.fail(w, err)
	}
}

func (m *Monitor) findComponentOr404(w http.ResponseWriter, name string) Probe {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, c := range m.components {
		if c.name == name {
			return c.probe
		}
	}

	http.Error(w, "Component not found", http.StatusNotFound)

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.fail(w, err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		m.fail(w, err)
		return
	}

	memory, err := proc.MemoryInfo()
	if err != nil {
		m.fail(w, err)
		return
	}

	m.writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memory.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(time.Duration(m.profileSeconds) * time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		m.fail(w, err)
		return
	}

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(data); err != nil {
		m.logger.Debug("monitoring response not delivered", zap.Error(err))
	}
}

func (m *Monitor) fail(w http.ResponseWriter, err error) {
	m.logger.Warn("monitoring request failed", zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
