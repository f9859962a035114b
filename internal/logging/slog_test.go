package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "text", format: FormatText, want: "msg=hello"},
		{name: "json", format: FormatJSON, want: `"msg":"hello"`},
		{name: "json uppercase", format: "JSON", want: `"msg":"hello"`},
		{name: "unknown falls back to text", format: "xml", want: "msg=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf, slog.LevelInfo, tt.format).Info("hello")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, FormatText)
	logger.Info("quiet")
	assert.Empty(t, buf.String())

	logger.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, FormatText)

	WithRun(WithTool(WithOperation(logger, "report.daily"), "opshelm_daily_digest"), "run-1").Info("done")

	out := buf.String()
	assert.Contains(t, out, "operation=report.daily")
	assert.Contains(t, out, "tool=opshelm_daily_digest")
	assert.Contains(t, out, "run_id=run-1")
}

func TestAttrs(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"operation", Operation("extract"), KeyOperation, "extract"},
		{"account", Account("work"), KeyAccount, "work"},
		{"workspace", Workspace("Parex"), KeyWorkspace, "Parex"},
		{"report", Report("daily-runway"), KeyReport, "daily-runway"},
		{"count", Count(7), KeyCount, "7"},
		{"path", Path("/tmp/x.md"), KeyPath, "/tmp/x.md"},
		{"tool", Tool("opshelm_meeting_prep"), KeyTool, "opshelm_meeting_prep"},
		{"status", Status(StatusSuccess), KeyStatus, StatusSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, tt.attr.Key)
			assert.Equal(t, tt.wantVal, tt.attr.Value.String())
		})
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("test error"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "test error", attr.Value.String())

	// nil yields an empty group that slog omits
	assert.Equal(t, "", Err(nil).Key)

	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, FormatText).Info("ok", Err(nil))
	assert.NotContains(t, buf.String(), KeyError)
}

func TestAnonymizeEmail(t *testing.T) {
	got := AnonymizeEmail("jane@example.com")
	assert.True(t, strings.HasPrefix(got, "sender:"))
	assert.Len(t, got, len("sender:")+16)
	assert.NotContains(t, got, "jane")

	assert.Equal(t, got, AnonymizeEmail("Jane@Example.com"), "hash ignores case")
	assert.NotEqual(t, got, AnonymizeEmail("john@example.com"))
	assert.Equal(t, "", AnonymizeEmail(""))
}

func TestSender(t *testing.T) {
	attr := Sender("jane@example.com")
	assert.Equal(t, KeySender, attr.Key)
	assert.Equal(t, AnonymizeEmail("jane@example.com"), attr.Value.String())
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@Example.com", "example.com"},
		{"support@parex.com", "parex.com"},
		{"no-at-sign", ""},
		{"a@b@c", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDomain(tt.email))
		})
	}
}

func TestDomain(t *testing.T) {
	attr := Domain("ops@parkplace.com")
	assert.Equal(t, "sender_domain", attr.Key)
	assert.Equal(t, "parkplace.com", attr.Value.String())
}
