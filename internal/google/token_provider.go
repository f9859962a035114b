package google

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenProvider supplies OAuth token sources for Google APIs.
// This abstraction lets the Gmail client run against cached tokens or
// against a fixed token in tests.
type TokenProvider interface {
	// TokenSourceForAccount returns a token source for the specified account
	TokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error)

	// HasTokenForAccount checks if a token exists for the specified account
	HasTokenForAccount(account string) bool
}

// FileTokenProvider provides tokens cached on disk by the auth command.
type FileTokenProvider struct {
	conf *oauth2.Config
}

// NewFileTokenProvider creates a new file-based token provider
func NewFileTokenProvider(conf *oauth2.Config) *FileTokenProvider {
	return &FileTokenProvider{conf: conf}
}

// TokenSourceForAccount loads the cached token for account.
func (p *FileTokenProvider) TokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	return GetTokenSourceForAccount(ctx, p.conf, account)
}

// HasTokenForAccount checks if a token file exists for the specified account
func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	return HasTokenForAccount(account)
}

// StaticTokenProvider serves one fixed token for every account.
type StaticTokenProvider struct {
	Token *oauth2.Token
}

func (p StaticTokenProvider) TokenSourceForAccount(context.Context, string) (oauth2.TokenSource, error) {
	return oauth2.StaticTokenSource(p.Token), nil
}

func (p StaticTokenProvider) HasTokenForAccount(string) bool {
	return p.Token != nil
}
