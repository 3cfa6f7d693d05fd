package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tr-rocks/litex/console"
	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/datarecording"
	"github.com/tr-rocks/litex/litedram"
	"github.com/tr-rocks/litex/monitoring"
	"github.com/tr-rocks/litex/tracing"
)

// session is a console together with the services attached to it.
type session struct {
	console  *console.Console
	bank     *csr.SimBank
	stats    *tracing.StatTracer
	recorder datarecording.DataRecorder
	tracer   *tracing.AccessTracer
	monitor  *monitoring.Monitor
	logger   *zap.Logger
}

func newSession(
	cfg Config,
	in io.Reader,
	out io.Writer,
	logger *zap.Logger,
) (*session, error) {
	s := &session{
		bank: csr.MakeBuilder().
			WithDataWidth(cfg.DataWidth).
			WithRefreshRate(cfg.RefreshRate).
			Build("TestBlock"),
		stats:  tracing.NewStatTracer(),
		logger: logger,
	}
	s.bank.AcceptHook(s.stats)

	builder := console.MakeBuilder().
		WithBank(s.bank).
		WithDRAM(litedram.NewSimController(cfg.Modules)).
		WithReferenceSPD(litedram.DefaultSPD()).
		WithInput(in).
		WithOutput(out).
		WithLogger(logger).
		WithPrompt(cfg.Prompt).
		WithCampaignHook(s.stats)

	if cfg.Record {
		if err := s.startRecording(cfg, out); err != nil {
			return nil, err
		}

		builder = builder.WithCampaignHook(s.tracer)
	}

	s.console = builder.Build("litex")

	if cfg.Monitor {
		if err := s.startMonitor(cfg, out); err != nil {
			return nil, errors.Join(err, s.close())
		}
	}

	return s, nil
}

func (s *session) startRecording(cfg Config, out io.Writer) error {
	path := cfg.RecordPath
	if path == "" {
		path = datarecording.DefaultPath()
	}

	recorder, err := datarecording.New(path)
	if err != nil {
		return err
	}

	tracer, err := tracing.NewAccessTracer(recorder, cfg.TraceReads, s.logger)
	if err != nil {
		return errors.Join(err, recorder.Close())
	}

	s.recorder = recorder
	s.tracer = tracer
	s.bank.AcceptHook(tracer)

	fmt.Fprintf(out, "Recording session to %s\n", path)

	return nil
}

func (s *session) startMonitor(cfg Config, out io.Writer) error {
	s.monitor = monitoring.NewMonitor().
		WithLogger(s.logger).
		WithPortNumber(cfg.MonitorPort)

	s.monitor.RegisterBank(s.bank)
	s.monitor.RegisterComponent("Stats", func() any {
		stats := s.stats.Stats()
		return &stats
	})

	url, err := s.monitor.StartServer()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Monitoring console with %s\n", url)

	if cfg.OpenBrowser {
		if err := s.monitor.OpenBrowser(url); err != nil {
			s.logger.Warn("cannot open browser", zap.Error(err))
		}
	}

	return nil
}

func (s *session) close() error {
	var errs []error

	if s.monitor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		errs = append(errs, s.monitor.Shutdown(ctx))
	}

	if s.tracer != nil {
		errs = append(errs, s.tracer.Err())
	}

	if s.recorder != nil {
		errs = append(errs, s.recorder.Close())
	}

	return errors.Join(errs...)
}

func runConsole(cmd *cobra.Command, cfg Config, logger *zap.Logger) error {
	s, err := newSession(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}

	logger.Info("console started",
		zap.Uint32("data_width", cfg.DataWidth),
		zap.Bool("record", cfg.Record),
		zap.Bool("monitor", cfg.Monitor))

	runErr := s.console.Run()
	stats := s.stats.Stats()

	logger.Info("console stopped",
		zap.Uint64("writes", stats.Writes),
		zap.Uint64("campaigns", stats.Campaigns))

	return errors.Join(runErr, s.close())
}
