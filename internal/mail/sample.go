package mail

import "time"

var opsTeam = Address{Name: "Ops Team", Email: "ops@company.com"}

// SampleMessages returns the demo mailbox: tickets, meetings, a task and two
// promises across the Parex and ParkPlace workspaces, timed relative to now.
func SampleMessages(now time.Time) []Message {
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	return []Message{
		{
			ID:         "msg-001",
			Subject:    "[Parex] TICKET-123 Critical Database Issue",
			Body:       "We are experiencing critical database connectivity issues affecting all users. This needs immediate attention.",
			Preview:    "We are experiencing critical database connectivity issues...",
			From:       Address{Name: "Parex Support", Email: "support@parex.com"},
			To:         []Address{opsTeam},
			ReceivedAt: yesterday,
		},
		{
			ID:         "msg-002",
			Subject:    "Parex - High priority ticket INC-456",
			Body:       "Users reporting slow application response times. Need to investigate performance issues.",
			Preview:    "Users reporting slow application response times...",
			From:       Address{Name: "Parex Admin", Email: "admin@parex.com"},
			To:         []Address{opsTeam},
			ReceivedAt: now,
		},
		{
			ID:         "msg-003",
			Subject:    "ParkPlace Support Request - Backup Issue",
			Body:       "Automated backups have failed for the last 3 nights. Need help troubleshooting.",
			Preview:    "Automated backups have failed for the last 3 nights...",
			From:       Address{Name: "ParkPlace IT", Email: "it@parkplace.com"},
			To:         []Address{opsTeam},
			ReceivedAt: now,
		},
		{
			ID:         "msg-004",
			Subject:    "[Parex] Weekly Sync Meeting",
			Body:       "Weekly sync meeting to discuss ongoing projects and blockers. Please come prepared with status updates.",
			Preview:    "Weekly sync meeting to discuss ongoing projects...",
			From:       Address{Name: "Parex Manager", Email: "manager@parex.com"},
			To:         []Address{opsTeam, {Name: "Dev Team", Email: "dev@parex.com"}},
			ReceivedAt: now,
		},
		{
			ID:         "msg-005",
			Subject:    "ParkPlace Quarterly Review Meeting",
			Body:       "Quarterly business review meeting with ParkPlace stakeholders. Will discuss Q4 performance and Q1 goals.",
			Preview:    "Quarterly business review meeting with ParkPlace stakeholders...",
			From:       Address{Name: "ParkPlace Executive", Email: "exec@parkplace.com"},
			To:         []Address{opsTeam},
			ReceivedAt: tomorrow,
		},
		{
			ID:         "msg-006",
			Subject:    "Action Items: Complete security audit by Friday",
			Body:       "Please complete the security audit for all Parex systems by end of week. This is a high priority task.",
			Preview:    "Please complete the security audit for all Parex systems...",
			From:       Address{Name: "Security Team", Email: "security@company.com"},
			To:         []Address{opsTeam},
			ReceivedAt: now,
		},
		{
			ID:         "msg-007",
			Subject:    "Re: Infrastructure Upgrade Timeline",
			Body:       "I promise to deliver the infrastructure upgrade for ParkPlace by next Monday EOD. All components will be tested and deployed.",
			Preview:    "I promise to deliver the infrastructure upgrade...",
			From:       opsTeam,
			To:         []Address{{Name: "ParkPlace IT", Email: "it@parkplace.com"}},
			ReceivedAt: yesterday,
			IsRead:     true,
		},
		{
			ID:         "msg-008",
			Subject:    "Committed to delivering Parex API fixes",
			Body:       "I am committed to delivering the API fixes for Parex by deadline Friday. This will resolve the integration issues.",
			Preview:    "I am committed to delivering the API fixes...",
			From:       Address{Name: "Dev Team", Email: "dev@company.com"},
			To:         []Address{{Name: "Parex Admin", Email: "admin@parex.com"}},
			ReceivedAt: now,
			IsRead:     true,
		},
	}
}
