package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/opshelm/internal/google"
	"github.com/teemow/opshelm/internal/instrumentation"
	"github.com/teemow/opshelm/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize read-only Gmail access for an account",
		Long: `Without --code, print the Google consent URL for --account.
Open it, approve read-only Gmail access, then run again with --code to
exchange the authorization code and cache the token locally.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd.Context(), globals, code)
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code returned by the consent page")
	return cmd
}

func runAuth(ctx context.Context, o globalOptions, code string) error {
	a, err := newApp(ctx, o)
	if err != nil {
		return err
	}
	defer a.close()

	conf, err := google.NewOAuthConfig(a.cfg.Google.ClientID, a.cfg.Google.ClientSecret)
	if err != nil {
		return err
	}

	account := a.cfg.Account
	if code == "" {
		if google.HasTokenForAccount(account) {
			fmt.Printf("A token is already cached for account %q; authorizing again replaces it.\n\n", account)
		}
		fmt.Printf("Visit this URL to authorize Gmail read access for account %q:\n\n%s\n\n", account, google.GetAuthURL(conf, account))
		fmt.Printf("Then run: opshelm auth --account %s --code <code>\n", account)
		return nil
	}

	err = google.SaveTokenForAccount(ctx, conf, account, code)
	result := instrumentation.StatusSuccess
	if err != nil {
		result = instrumentation.StatusError
	}
	a.provider.Metrics().RecordOAuthExchange(ctx, result)
	if err != nil {
		a.logger.Warn("token exchange failed", logging.Account(account), logging.Err(err))
		return fmt.Errorf("failed to exchange authorization code for account %s: %w", account, err)
	}

	a.logger.Info("token cached", logging.Account(account))
	fmt.Printf("Token cached for account %q.\n", account)
	return nil
}
