package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	baseURL  string
	username string
	password string
	timeout  time.Duration
}

// session is a signed-in backend connection
type session struct {
	api  *backend.Client
	user *domain.Identity
	ctx  context.Context
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()

	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "susuctl",
		Short:         "Command-line companion to the susu collection dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", os.Getenv("SUSU_BASE_URL"), "collection API base URL (env SUSU_BASE_URL)")
	flags.StringVar(&opts.username, "username", os.Getenv("SUSU_USERNAME"), "backend username (env SUSU_USERNAME)")
	flags.StringVar(&opts.password, "password", os.Getenv("SUSU_PASSWORD"), "backend password (env SUSU_PASSWORD)")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "per-request timeout")

	root.AddCommand(newReportsCmd(opts), newCyclesCmd(opts))
	return root
}

// connect signs in and returns a context that carries the backend credentials
func (o *globalOptions) connect(ctx context.Context) (*session, error) {
	if strings.TrimSpace(o.baseURL) == "" {
		return nil, errors.New("--base-url or SUSU_BASE_URL is required")
	}
	if o.username == "" || o.password == "" {
		return nil, errors.New("--username and --password are required")
	}

	api := backend.NewClient(strings.TrimRight(o.baseURL, "/"), o.timeout)
	user, creds, err := services.NewAuthService(api).Login(ctx, o.username, o.password)
	if err != nil {
		if msg := backend.Message(err); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}
	return &session{api: api, user: user, ctx: backend.WithCredentials(ctx, creds)}, nil
}

func (s *session) close() {
	_ = services.NewAuthService(s.api).Logout(s.ctx)
}
