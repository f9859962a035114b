package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T, maxWorkspaces int) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"), maxWorkspaces)
	require.NoError(t, err)
	return m, reader
}

// counterValues returns the data points of an int64 counter keyed by the
// value of attribute key.
func counterValues(t *testing.T, reader *sdkmetric.ManualReader, name, key string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key(key))
				out[v.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestMetrics_RecordSignal(t *testing.T) {
	m, reader := newTestMetrics(t, 2)
	ctx := context.Background()

	m.RecordSignal(ctx, "ticket", "Parex")
	m.RecordSignal(ctx, "meeting", "Parex")
	m.RecordSignal(ctx, "ticket", "ParkPlace")
	m.RecordSignal(ctx, "task", "Acme")
	m.RecordSignal(ctx, "task", "Globex")

	assert.Equal(t, map[string]int64{"Parex": 2, "ParkPlace": 1, WorkspaceOther: 2},
		counterValues(t, reader, "signals_extracted_total", attrWorkspace))
	assert.Equal(t, map[string]int64{"ticket": 2, "meeting": 1, "task": 2},
		counterValues(t, reader, "signals_extracted_total", attrKind))
}

func TestMetrics_RecordMailFetch(t *testing.T) {
	m, reader := newTestMetrics(t, 10)
	ctx := context.Background()

	m.RecordMailFetch(ctx, SourceGmail, StatusSuccess, 12, 300*time.Millisecond)
	m.RecordMailFetch(ctx, SourceGmail, StatusError, 0, 50*time.Millisecond)
	m.RecordMailFetch(ctx, SourceFile, StatusSuccess, 3, time.Millisecond)

	assert.Equal(t, map[string]int64{StatusSuccess: 2, StatusError: 1},
		counterValues(t, reader, "mail_fetch_total", attrStatus))
	assert.Equal(t, map[string]int64{SourceGmail: 12, SourceFile: 3},
		counterValues(t, reader, "messages_fetched_total", attrSource))
}

func TestMetrics_RecordReportAndTool(t *testing.T) {
	m, reader := newTestMetrics(t, 10)
	ctx := context.Background()

	m.RecordReport(ctx, "daily-runway", StatusSuccess, time.Millisecond)
	m.RecordReport(ctx, "daily-runway", StatusError, time.Millisecond)
	m.RecordToolInvocation(ctx, "opshelm_meeting_prep", StatusSuccess, time.Second)
	m.RecordOAuthExchange(ctx, StatusError)

	assert.Equal(t, map[string]int64{"daily-runway": 2},
		counterValues(t, reader, "reports_generated_total", attrReport))
	assert.Equal(t, map[string]int64{"opshelm_meeting_prep": 1},
		counterValues(t, reader, "mcp_tool_invocations_total", attrTool))
	assert.Equal(t, map[string]int64{StatusError: 1},
		counterValues(t, reader, "oauth_code_exchange_total", attrResult))
}

func TestMetrics_NoOp(t *testing.T) {
	ctx := context.Background()
	for _, m := range []*Metrics{nil, {}} {
		m.RecordMailFetch(ctx, SourceGmail, StatusSuccess, 1, time.Second)
		m.RecordSignal(ctx, "ticket", "Parex")
		m.RecordReport(ctx, "daily-runway", StatusSuccess, time.Second)
		m.RecordOAuthExchange(ctx, StatusSuccess)
		m.RecordToolInvocation(ctx, "tool", StatusSuccess, time.Second)
	}
}
