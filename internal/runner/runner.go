package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/opshelm/internal/extract"
	"github.com/teemow/opshelm/internal/instrumentation"
	"github.com/teemow/opshelm/internal/logging"
	"github.com/teemow/opshelm/internal/mail"
	"github.com/teemow/opshelm/internal/output"
	"github.com/teemow/opshelm/internal/report"
	"github.com/teemow/opshelm/internal/signal"
	"github.com/teemow/opshelm/internal/workspace"
)

// Workflow names, used for span names, run logs and Pushgateway grouping.
const (
	WorkflowDaily = "daily"
	WorkflowDemo  = "demo"
)

// Runner drives fetch, extract, render and write for one mail source.
type Runner struct {
	source    mail.Source
	registry  *workspace.Registry
	writer    *output.Writer
	extractor *extract.Extractor
	generator *report.Generator

	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger
	logger  *slog.Logger
	account string
	now     func() time.Time
	loc     *time.Location
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the wall clock used for fetch windows, report dates and
// file names.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithLocation sets the zone that defines calendar days.
func WithLocation(loc *time.Location) Option {
	return func(r *Runner) { r.loc = loc }
}

func WithMetrics(m *instrumentation.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

func WithAuditLogger(al *instrumentation.AuditLogger) Option {
	return func(r *Runner) { r.audit = al }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAccount records the mail account in run logs.
func WithAccount(account string) Option {
	return func(r *Runner) { r.account = account }
}

// New creates a Runner. Signals are resolved against registry and reports
// are written through writer.
func New(source mail.Source, registry *workspace.Registry, writer *output.Writer, opts ...Option) *Runner {
	r := &Runner{
		source:   source,
		registry: registry,
		writer:   writer,
		logger:   slog.Default(),
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.extractor = extract.New(registry,
		extract.WithClock(r.now),
		extract.WithLogger(r.logger))
	r.generator = report.New(
		report.WithClock(r.now),
		report.WithLocation(r.loc))

	return r
}

// Generator returns the report generator sharing the runner's clock.
func (r *Runner) Generator() *report.Generator {
	return r.generator
}

// Registry returns the workspace registry.
func (r *Runner) Registry() *workspace.Registry {
	return r.registry
}

// SourceName names the mail source, e.g. "gmail" or "file".
func (r *Runner) SourceName() string {
	return r.source.Name()
}

// Now returns the current time in the runner's zone.
func (r *Runner) Now() time.Time {
	return r.now().In(r.loc)
}

// Collect fetches messages received in [start, end) and extracts their signals.
func (r *Runner) Collect(ctx context.Context, start, end time.Time) ([]signal.Signal, int, error) {
	messages, err := r.fetch(ctx, start, end)
	if err != nil {
		return nil, 0, err
	}

	_, span := instrumentation.StartSpan(ctx, "pipeline.extract",
		attribute.Int(instrumentation.SpanAttrMessages, len(messages)))
	signals := r.extractor.Extract(messages)
	span.SetAttributes(attribute.Int(instrumentation.SpanAttrSignals, len(signals)))
	instrumentation.SetSpanSuccess(span)
	span.End()

	for _, s := range signals {
		r.metrics.RecordSignal(ctx, string(s.Kind()), s.Core().Workspace)
	}

	return signals, len(messages), nil
}

// CollectDays collects signals received in the last days days.
func (r *Runner) CollectDays(ctx context.Context, days int) ([]signal.Signal, error) {
	now := r.Now()
	start, end := mail.LastDays(now, days)
	if days <= 1 {
		start, _ = mail.Today(now)
	}
	signals, _, err := r.Collect(ctx, start, end)
	return signals, err
}

func (r *Runner) fetch(ctx context.Context, start, end time.Time) ([]mail.Message, error) {
	source := r.source.Name()
	ctx, span := instrumentation.StartMailSpan(ctx, source)
	defer span.End()

	begin := time.Now()
	messages, err := r.source.FetchMessages(ctx, start, end)
	if err != nil {
		r.metrics.RecordMailFetch(ctx, source, instrumentation.StatusError, 0, time.Since(begin))
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to fetch messages from %s: %w", source, err)
	}

	r.metrics.RecordMailFetch(ctx, source, instrumentation.StatusSuccess, len(messages), time.Since(begin))
	span.SetAttributes(attribute.Int(instrumentation.SpanAttrMessages, len(messages)))
	instrumentation.SetSpanSuccess(span)
	return messages, nil
}

// run opens the run span and logger shared by every workflow.
func (r *Runner) run(ctx context.Context, workflow string) (context.Context, *Summary, func(error)) {
	sum := &Summary{RunID: uuid.NewString(), Workflow: workflow}

	ctx, span := instrumentation.StartSpan(ctx, "run."+workflow,
		attribute.String(instrumentation.SpanAttrRunID, sum.RunID))
	logger := logging.WithRun(logging.WithOperation(r.logger, workflow), sum.RunID)

	begin := time.Now()
	logger.Info("run started", logging.Account(r.account), slog.String("source", r.source.Name()))

	return ctx, sum, func(err error) {
		if err != nil {
			instrumentation.SetSpanError(span, err)
			logger.Error("run failed", logging.Err(err))
		} else {
			instrumentation.SetSpanSuccess(span)
			logger.Info("run completed",
				slog.Int("messages", sum.Messages),
				slog.Int("signals", sum.Signals),
				slog.Int("files", len(sum.Files)),
				slog.Duration(logging.KeyDuration, time.Since(begin)))
		}
		span.End()
	}
}

// render produces one report, writes it to rel and records the outcome.
func (r *Runner) render(ctx context.Context, sum *Summary, name, rel, ws string, input int, fn func() string) error {
	ctx, span := instrumentation.StartReportSpan(ctx, name,
		attribute.String(instrumentation.SpanAttrRunID, sum.RunID),
		attribute.String(instrumentation.SpanAttrWorkspace, ws))
	defer span.End()

	rec := instrumentation.NewRunRecord(instrumentation.ActionReport, name).
		WithRun(sum.RunID).
		WithAccount(r.account).
		WithWorkspace(ws).
		WithSpanContext(ctx)

	begin := time.Now()
	path, err := r.writer.WriteFile(rel, fn())

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
		r.logger.Warn("report failed", logging.Report(name), logging.Workspace(ws), logging.Err(err))
	} else {
		instrumentation.SetSpanSuccess(span)
		sum.Files = append(sum.Files, path)
		r.logger.Debug("report written", logging.Report(name), logging.Path(path), logging.Count(input))
	}
	r.metrics.RecordReport(ctx, name, status, time.Since(begin))
	r.audit.Log(rec.WithOutput(path, input).Complete(err))

	return err
}

// queueFileName is the per-workspace customer queue file name.
func queueFileName(ws string) string {
	return report.NameCustomerQueue + "-" + strings.ToLower(ws) + ".md"
}

// ReadDailyReport returns today's copy of a report written by RunDaily.
// name is a report name such as report.NameDailyRunway.
func (r *Runner) ReadDailyReport(name string) (string, error) {
	return r.writer.ReadFile(filepath.Join(output.Timestamp(r.Now()), name+".md"))
}
