package runner

import (
	"context"
	"path/filepath"

	"github.com/teemow/opshelm/internal/mail"
	"github.com/teemow/opshelm/internal/output"
	"github.com/teemow/opshelm/internal/report"
	"github.com/teemow/opshelm/internal/signal"
)

// Summary describes a completed run.
type Summary struct {
	RunID    string
	Workflow string
	Messages int
	Signals  int
	Counts   map[signal.Kind]int
	// Workspaces lists signal counts per workspace in order of first appearance.
	Workspaces []WorkspaceCount
	Files      []string
}

type WorkspaceCount struct {
	Name  string
	Count int
}

func (s *Summary) record(messages int, signals []signal.Signal) {
	s.Messages = messages
	s.Signals = len(signals)
	s.Counts = signal.CountByKind(signals)
	s.Workspaces = s.Workspaces[:0]
	for _, ws := range signal.Workspaces(signals) {
		s.Workspaces = append(s.Workspaces, WorkspaceCount{Name: ws, Count: len(signal.InWorkspace(signals, ws))})
	}
}

// RunDaily processes today's mail and writes the daily report set into
// <output>/<YYYY-MM-DD>/.
func (r *Runner) RunDaily(ctx context.Context) (sum *Summary, err error) {
	ctx, sum, done := r.run(ctx, WorkflowDaily)
	defer func() { done(err) }()

	now := r.Now()
	start, end := mail.Today(now)
	signals, messages, err := r.Collect(ctx, start, end)
	if err != nil {
		return nil, err
	}
	sum.record(messages, signals)

	if err := r.writeDaily(ctx, sum, signals, output.Timestamp(now)); err != nil {
		return nil, err
	}
	return sum, nil
}

// RunPeriod writes the accomplishment report for period into
// <output>/<period>-accomplishments-<YYYY-MM-DD>.md. A non-empty workspace
// restricts the report to that workspace.
func (r *Runner) RunPeriod(ctx context.Context, period report.Period, workspace string) (sum *Summary, err error) {
	ctx, sum, done := r.run(ctx, string(period))
	defer func() { done(err) }()

	now := r.Now()
	start, end := mail.LastDays(now, period.Days())
	signals, messages, err := r.Collect(ctx, start, end)
	if err != nil {
		return nil, err
	}
	sum.record(messages, signals)

	rel := string(period) + "-" + report.NameAccomplishments + "-" + output.Timestamp(now) + ".md"
	input := len(signal.InWorkspace(signals, workspace))
	err = r.render(ctx, sum, report.NameAccomplishments, rel, workspace, input, func() string {
		return r.generator.Accomplishments(signals, period, workspace)
	})
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// RunDemo writes the daily report set and a quarterly accomplishment report
// for whatever the source returns, directly into the output root.
func (r *Runner) RunDemo(ctx context.Context) (sum *Summary, err error) {
	ctx, sum, done := r.run(ctx, WorkflowDemo)
	defer func() { done(err) }()

	now := r.Now()
	start, end := mail.Today(now)
	signals, messages, err := r.Collect(ctx, start, end)
	if err != nil {
		return nil, err
	}
	sum.record(messages, signals)

	if err := r.writeDaily(ctx, sum, signals, ""); err != nil {
		return nil, err
	}

	rel := string(report.PeriodQuarterly) + "-" + report.NameAccomplishments + ".md"
	err = r.render(ctx, sum, report.NameAccomplishments, rel, "", len(signals), func() string {
		return r.generator.Accomplishments(signals, report.PeriodQuarterly, "")
	})
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// writeDaily writes the runway, one customer queue per active workspace,
// meeting prep and promise reminders into dir.
func (r *Runner) writeDaily(ctx context.Context, sum *Summary, signals []signal.Signal, dir string) error {
	date := r.Now()

	err := r.render(ctx, sum, report.NameDailyRunway, filepath.Join(dir, report.NameDailyRunway+".md"), "", len(signals), func() string {
		return r.generator.DailyDigest(signals, date)
	})
	if err != nil {
		return err
	}

	for _, ws := range r.registry.Active() {
		wsSignals := signal.InWorkspace(signals, ws.Name)
		err := r.render(ctx, sum, report.NameCustomerQueue, filepath.Join(dir, queueFileName(ws.Name)), ws.Name, len(wsSignals), func() string {
			return r.generator.CustomerQueue(wsSignals, ws.Name)
		})
		if err != nil {
			return err
		}
	}

	err = r.render(ctx, sum, report.NameMeetingPrep, filepath.Join(dir, report.NameMeetingPrep+".md"), "", len(signals), func() string {
		return r.generator.MeetingPrep(signals, "")
	})
	if err != nil {
		return err
	}

	return r.render(ctx, sum, report.NamePromiseReminders, filepath.Join(dir, report.NamePromiseReminders+".md"), "", len(signals), func() string {
		return r.generator.PromiseReminders(signals, "")
	})
}
