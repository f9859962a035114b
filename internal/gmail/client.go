package gmail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/teemow/opshelm/internal/google"
	"github.com/teemow/opshelm/internal/logging"
	"github.com/teemow/opshelm/internal/mail"
)

// DefaultMaxResults is the number of messages fetched per range.
const DefaultMaxResults = 100

// Gmail caps list page sizes at 500; 100 keeps individual calls small.
const pageSize = 100

// Client reads messages from one Gmail account.
type Client struct {
	svc        *gmail.UsersService
	account    string
	maxResults int64
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithMaxResults caps the number of messages a single fetch returns.
func WithMaxResults(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Gmail client for account using tokens from tp.
// Extra client options are passed to the Gmail service.
func NewClient(ctx context.Context, tp google.TokenProvider, account string, clientOpts []option.ClientOption, opts ...Option) (*Client, error) {
	ts, err := tp.TokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := gmail.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, clientOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return NewClientWithService(svc, account, opts...), nil
}

// NewClientWithService wraps an existing Gmail service.
func NewClientWithService(svc *gmail.Service, account string, opts ...Option) *Client {
	c := &Client{
		svc:        svc.Users,
		account:    account,
		maxResults: DefaultMaxResults,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// Name identifies the source in logs and metrics.
func (c *Client) Name() string { return "gmail" }

// FetchMessages returns up to the configured maximum of messages received in
// [start, end), newest first.
func (c *Client) FetchMessages(ctx context.Context, start, end time.Time) ([]mail.Message, error) {
	q := RangeQuery(start, end)

	ids, err := c.ListMessageIDs(ctx, q, c.maxResults)
	if err != nil {
		return nil, err
	}

	messages := make([]mail.Message, 0, len(ids))
	for _, id := range ids {
		m, err := c.GetMessage(ctx, id)
		if err != nil {
			return nil, err
		}
		messages = append(messages, ToMessage(m))
	}

	c.logger.Debug("fetched gmail messages",
		logging.Account(c.account),
		slog.String("query", q),
		logging.Count(len(messages)))

	return messages, nil
}

// ListMessageIDs lists ids of messages matching q, making as many page
// requests as needed to collect up to maxResults ids.
func (c *Client) ListMessageIDs(ctx context.Context, q string, maxResults int64) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		remaining := maxResults - int64(len(ids))
		if remaining <= 0 {
			break
		}

		req := c.svc.Messages.List("me").Q(q).MaxResults(min(remaining, pageSize)).Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		for _, m := range res.Messages {
			ids = append(ids, m.Id)
		}

		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(ids)) > maxResults {
		ids = ids[:maxResults]
	}

	return ids, nil
}

// GetMessage retrieves a full Gmail message
func (c *Client) GetMessage(ctx context.Context, messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// RangeQuery builds a Gmail search query for messages received in
// [start, end). Gmail accepts epoch seconds for after/before.
func RangeQuery(start, end time.Time) string {
	return fmt.Sprintf("after:%d before:%d", start.Unix(), end.Unix())
}
