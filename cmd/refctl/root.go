package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/iota-uz/refconsole/pkg/configuration"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

// Exit codes beyond the generic failure.
const (
	exitConflict     = 2
	exitCheckFailed  = 3
	exitCommitFailed = 4
)

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

type rootOptions struct {
	baseURL       string
	authorization string
	timeout       time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "refctl",
		Short:         "Reference data operator tool: search and bulk delete against the upstream API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Upstream base URL (default UPSTREAM_BASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.authorization, "authorization", "", "Authorization header value (default UPSTREAM_AUTHORIZATION)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout (default UPSTREAM_TIMEOUT)")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newCheckDeleteCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	return cmd
}

// client falls back to the environment for every flag left empty.
func (o *rootOptions) client() (*refapi.Client, error) {
	if _, err := configuration.LoadEnv([]string{".env", ".env.local"}); err != nil {
		return nil, err
	}
	baseURL, authorization, timeout := o.baseURL, o.authorization, o.timeout
	if baseURL == "" {
		baseURL = os.Getenv("UPSTREAM_BASE_URL")
	}
	if authorization == "" {
		authorization = os.Getenv("UPSTREAM_AUTHORIZATION")
	}
	if timeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("UPSTREAM_TIMEOUT")); err == nil {
			timeout = d
		}
	}
	if baseURL == "" {
		return nil, errors.New("missing --base-url (or UPSTREAM_BASE_URL)")
	}
	return refapi.NewClient(refapi.Options{
		BaseURL:       baseURL,
		Authorization: authorization,
		Timeout:       timeout,
	})
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}
