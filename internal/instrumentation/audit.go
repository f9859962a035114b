package instrumentation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/teemow/opshelm/internal/logging"
)

// Audit actions.
const (
	ActionReport = "report"
	ActionTool   = "tool"
)

// RunRecord captures one report generation or MCP tool call for the audit log.
type RunRecord struct {
	Action string // ActionReport or ActionTool
	Name   string // report or tool name

	RunID     string
	Account   string
	Workspace string
	Path      string
	Signals   int

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
	SpanID  string
}

// NewRunRecord starts timing an action.
func NewRunRecord(action, name string) *RunRecord {
	return &RunRecord{Action: action, Name: name, StartTime: time.Now()}
}

// WithRun sets the run id.
func (r *RunRecord) WithRun(runID string) *RunRecord {
	r.RunID = runID
	return r
}

// WithAccount sets the mail account the data came from.
func (r *RunRecord) WithAccount(account string) *RunRecord {
	r.Account = account
	return r
}

// WithWorkspace sets the workspace the action was scoped to.
func (r *RunRecord) WithWorkspace(workspace string) *RunRecord {
	r.Workspace = workspace
	return r
}

// WithOutput sets the written path and the number of signals rendered.
func (r *RunRecord) WithOutput(path string, signals int) *RunRecord {
	r.Path = path
	r.Signals = signals
	return r
}

// WithSpanContext copies trace ids from the span in ctx.
func (r *RunRecord) WithSpanContext(ctx context.Context) *RunRecord {
	r.TraceID, r.SpanID = SpanIDs(ctx)
	return r
}

// Complete stops timing and records the outcome.
func (r *RunRecord) Complete(err error) *RunRecord {
	r.Duration = time.Since(r.StartTime)
	r.Success = err == nil
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Status returns StatusSuccess or StatusError.
func (r *RunRecord) Status() string {
	if r.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns the record as slog attributes. Account names that are
// email addresses are hashed unless includePII is set.
func (r *RunRecord) LogAttrs(includePII bool) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("action", r.Action),
		slog.String("name", r.Name),
		slog.Duration(logging.KeyDuration, r.Duration),
		slog.Bool("success", r.Success),
	}

	if r.RunID != "" {
		attrs = append(attrs, slog.String(logging.KeyRunID, r.RunID))
	}
	if r.Account != "" {
		account := r.Account
		if !includePII && strings.Contains(account, "@") {
			account = logging.AnonymizeEmail(account)
		}
		attrs = append(attrs, slog.String(logging.KeyAccount, account))
	}
	if r.Workspace != "" {
		attrs = append(attrs, slog.String(logging.KeyWorkspace, r.Workspace))
	}
	if r.Path != "" {
		attrs = append(attrs, slog.String(logging.KeyPath, r.Path))
	}
	if r.Signals > 0 {
		attrs = append(attrs, slog.Int("signals", r.Signals))
	}
	if r.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", r.TraceID), slog.String("span_id", r.SpanID))
	}
	if r.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, r.Error))
	}
	return attrs
}

// AuditLogger writes RunRecords as structured log entries.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates an AuditLogger. A nil logger uses slog.Default().
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// Log writes r at info level on success and warn level on failure.
// A nil AuditLogger drops the record.
func (al *AuditLogger) Log(r *RunRecord) {
	if al == nil || !al.enabled {
		return
	}

	attrs := r.LogAttrs(al.includePII)
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if r.Success {
		al.logger.Info(r.Action+"_completed", args...)
	} else {
		al.logger.Warn(r.Action+"_failed", args...)
	}
}
