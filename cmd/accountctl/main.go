// accountctl is a small terminal client for the account API. It drives the
// same gateway, repository, use-case and state-store stack the web frontend
// uses, with credentials persisted under the user's config directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gestion-esports/account-system/internal/client"
	"github.com/gestion-esports/account-system/internal/core/state"
	"github.com/gestion-esports/account-system/internal/core/usecase"
	"github.com/gestion-esports/account-system/internal/infrastructure/config"
	"github.com/gestion-esports/account-system/internal/infrastructure/tokenstore"
	"github.com/gestion-esports/account-system/pkg/logger"
)

const usage = `usage: accountctl <command> [flags]

commands:
  register         create an account and log in
  login            log in
  whoami           show the current account
  logout           end the session
  forgot-password  request a password reset mail
  reset-password   redeem a reset token
  watch            poll session validity until interrupted
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "accountctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadClient(ctx, nil)
	if err != nil {
		return err
	}

	level := "info"
	if cfg.EnableDebugTools {
		level = "debug"
	}
	log := logger.Init(level, true, os.Stderr)

	path, err := tokenstore.DefaultPath()
	if err != nil {
		return err
	}

	gw, err := client.NewGateway(client.GatewayConfig{
		BaseURL:              cfg.APIURL,
		Timeout:              cfg.APITimeout,
		AuthTokenKey:         cfg.AuthTokenKey,
		RefreshTokenKey:      cfg.RefreshTokenKey,
		SessionCheckInterval: cfg.HeartbeatInterval,
		Analytics:            cfg.EnableAnalytics,
	}, tokenstore.NewFile(path), log)
	if err != nil {
		return err
	}
	defer gw.Close()

	repo := client.NewAPIRepository(gw, log)
	store := state.New(
		usecase.NewLoginUseCase(repo),
		usecase.NewRegisterUseCase(repo),
		usecase.NewLogoutUseCase(repo),
	)
	defer store.Close()

	switch args[0] {
	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		username := fs.String("username", "", "display name")
		_ = fs.Parse(args[1:])

		if err := store.Register(ctx, *email, *password, *username); err != nil {
			return err
		}
		st := store.Snapshot()
		fmt.Printf("registered and logged in as %s (%s)\n", st.User.Username, st.User.Email)
		return nil

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		_ = fs.Parse(args[1:])

		if err := store.Login(ctx, *email, *password); err != nil {
			return err
		}
		st := store.Snapshot()
		fmt.Printf("logged in as %s (%s), role %s\n", st.User.Username, st.User.Email, st.User.Role)
		return nil

	case "whoami":
		user, err := repo.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s (%s), role %s, member since %s\n",
			user.Username, user.Email, user.Role, user.CreatedAt.Format("2006-01-02"))
		return nil

	case "logout":
		if err := store.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "forgot-password":
		fs := flag.NewFlagSet("forgot-password", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		_ = fs.Parse(args[1:])

		uc := usecase.NewForgotPasswordUseCase(repo)
		if err := uc.Execute(ctx, usecase.ForgotPasswordInput{Email: *email}); err != nil {
			return err
		}
		fmt.Println("reset mail requested")
		return nil

	case "reset-password":
		fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
		token := fs.String("token", "", "reset token from the mail")
		password := fs.String("password", "", "new password")
		_ = fs.Parse(args[1:])

		if err := repo.ResetPassword(ctx, *token, *password); err != nil {
			return err
		}
		fmt.Println("password updated")
		return nil

	case "watch":
		fs := flag.NewFlagSet("watch", flag.ExitOnError)
		interval := fs.Duration("interval", cfg.HeartbeatInterval, "time between session checks")
		_ = fs.Parse(args[1:])

		hb := client.NewHeartbeat(gw, exitNavigator{}, client.HeartbeatOptions{
			Interval: *interval,
			OnExpired: func() {
				fmt.Println("session expired, log in again")
				stop()
			},
		}, log)

		fmt.Printf("watching session every %s (ctrl-c to stop)\n", *interval)
		hb.Run(ctx)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// exitNavigator is the terminal stand-in for browser navigation. Unused
// while watch installs an OnExpired callback, but required by the
// heartbeat contract.
type exitNavigator struct{}

func (exitNavigator) Redirect(path string, replace bool) {
	fmt.Printf("session expired, continue at %s\n", path)
	os.Exit(1)
}
