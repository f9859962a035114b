// Package report renders signals into Markdown documents.
//
// A Generator produces five reports: the daily runway digest, a customer
// ticket queue, meeting prep, promise reminders and a quarterly or yearly
// accomplishment summary. Generators only read signals and return strings;
// writing them anywhere is the caller's job.
//
// "Now" and the display location are injected so output is reproducible:
//
//	gen := report.New(report.WithClock(clock), report.WithLocation(time.UTC))
//	md := gen.PromiseReminders(signals, "Parex")
package report
