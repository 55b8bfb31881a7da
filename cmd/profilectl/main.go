// Package main: консольная страница настроек профиля.
//
//	profilectl -api http://localhost:8080 -user alice -password secret show
//	profilectl ... toggle enable_tg_bot on
//	profilectl ... bind 123456789
//	profilectl ... passwd newpassword newpassword
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/magabrotheeeer/profile-settings/internal/client/api"
	"github.com/magabrotheeeer/profile-settings/internal/client/settings"
	"github.com/magabrotheeeer/profile-settings/internal/client/store"
	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

const usage = `usage: profilectl [flags] <command>

commands:
  show                      print notification settings
  toggle <field> <on|off>   switch a notification preference
  bind <tg_id>              bind a Telegram account
  passwd <new> <repeat>     change password
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// terminalNotifier печатает тосты в терминал.
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) Success(msg string) { fmt.Fprintln(n.out, "✔", msg) }
func (n terminalNotifier) Error(msg string)   { fmt.Fprintln(n.out, "✘", msg) }

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("profilectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage, "\nflags:\n")
		fs.PrintDefaults()
	}
	apiURL := fs.String("api", envOr("PROFILE_API_URL", "http://localhost:8080"), "profile API base URL")
	username := fs.String("user", os.Getenv("PROFILE_USER"), "username")
	password := fs.String("password", os.Getenv("PROFILE_PASSWORD"), "password")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("command is required")
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client := api.New(*apiURL, nil)
	if _, err := client.Login(ctx, *username, *password); err != nil {
		logger.Error("login failed", sl.Err(err))
		return fmt.Errorf("login: %w", err)
	}

	infoStore := store.New()
	if err := infoStore.Load(ctx, client); err != nil {
		logger.Error("failed to load user info", sl.Err(err))
		return fmt.Errorf("load user info: %w", err)
	}

	notifier := terminalNotifier{out: stdout}
	notice := settings.NewNotificationPanel(logger, client, infoStore, notifier)
	passwd := settings.NewPasswordPanel(logger, client, notifier)

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "show":
		if len(rest) != 0 {
			return errors.New("usage: show")
		}
	case "toggle":
		if len(rest) != 2 {
			return errors.New("usage: toggle <field> <on|off>")
		}
		on, err := parseSwitch(rest[1])
		if err != nil {
			return err
		}
		patch, err := settings.Toggle(rest[0], on)
		if err != nil {
			return fmt.Errorf("%w (fields: %s)", err, strings.Join(settings.ToggleFields, ", "))
		}
		if _, err := notice.SetPreference(ctx, patch); err != nil {
			return err
		}
	case "bind":
		if len(rest) != 1 {
			return errors.New("usage: bind <tg_id>")
		}
		notice.SetTelegramInput(rest[0])
		sent, err := notice.BindTelegram(ctx)
		if err != nil {
			return err
		}
		if !sent {
			return errors.New("telegram id is empty")
		}
	case "passwd":
		if len(rest) != 2 {
			return errors.New("usage: passwd <new> <repeat>")
		}
		form := settings.PasswordForm{Password: rest[0], RePassword: rest[1]}
		if err := passwd.Submit(ctx, form); err != nil {
			return err
		}
		// Сессия после смены пароля остаётся рабочей.
		if err := infoStore.Load(ctx, client); err != nil {
			logger.Error("failed to reload user info", sl.Err(err))
			return fmt.Errorf("reload user info: %w", err)
		}
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	info, _ := infoStore.Get()
	printNotice(stdout, info)
	return nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

func printNotice(w io.Writer, info models.UserInfo) {
	mark := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	tg := string(info.TgID)
	if !info.TgID.Bound() {
		tg = "not bound"
	}
	fmt.Fprintf(w, "user:                        %s\n", info.Username)
	fmt.Fprintf(w, "telegram:                    %s\n", tg)
	fmt.Fprintf(w, "%-28s %s\n", settings.FieldEnableTgBot+":", mark(info.EnableTgBot))
	fmt.Fprintf(w, "%-28s %s\n", settings.FieldWhenServiceAlmostExpired+":", mark(info.WhenServiceAlmostExpired))
	fmt.Fprintf(w, "%-28s %s\n", settings.FieldWhenPurchased+":", mark(info.WhenPurchased))
	fmt.Fprintf(w, "%-28s %s\n", settings.FieldWhenBalanceChanged+":", mark(info.WhenBalanceChanged))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
