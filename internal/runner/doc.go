// Package runner wires a mail source, the signal extractor, the report
// generators and the output writer into the OpsHelm workflows.
//
// Each run gets a UUID run id that tags its logs, spans and audit records.
// Workflows:
//
//	daily      today's mail, reports in <output>/<YYYY-MM-DD>/
//	quarterly  last 90 days, <output>/quarterly-accomplishments-<date>.md
//	yearly     last 365 days, <output>/yearly-accomplishments-<date>.md
//	demo       the source's messages, every report flat in <output>/
package runner
