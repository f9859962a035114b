package instrumentation

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Pusher sends a Prometheus registry to a Pushgateway. Batch commands exit
// before any scrape, so they push once on completion instead.
type Pusher struct {
	url    string
	pusher *push.Pusher
}

// NewPusher creates a Pusher for the default gatherer under job, labelled
// with the given grouping key/value pairs.
func NewPusher(url, job string, grouping map[string]string) *Pusher {
	return newPusher(url, job, prometheus.DefaultGatherer, grouping)
}

func newPusher(url, job string, g prometheus.Gatherer, grouping map[string]string) *Pusher {
	p := push.New(url, job).Gatherer(g)
	for k, v := range grouping {
		p = p.Grouping(k, v)
	}
	return &Pusher{url: url, pusher: p}
}

// Push replaces the job's metrics on the gateway.
func (p *Pusher) Push(ctx context.Context) error {
	if err := p.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", p.url, err)
	}
	return nil
}

// Push sends current metrics to the configured Pushgateway. It is a no-op
// when no gateway is configured or metrics are not Prometheus-backed.
func (p *Provider) Push(ctx context.Context, grouping map[string]string) error {
	if p.config.PushgatewayURL == "" || p.promExp == nil {
		return nil
	}
	return NewPusher(p.config.PushgatewayURL, p.config.PushJob, grouping).Push(ctx)
}
