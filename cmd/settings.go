package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/smartbiz/config"
	"github.com/etnz/smartbiz/notify"
	"github.com/etnz/smartbiz/renderer"
	"github.com/etnz/smartbiz/sheet"
	"github.com/etnz/smartbiz/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type settingsCmd struct{}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "display the shop settings" }
func (*settingsCmd) Usage() string {
	return `sbz settings

  Displays the receipt, bank, printer, label, Telegram and sync settings.
`
}

func (*settingsCmd) SetFlags(*flag.FlagSet) {}

func (*settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	last, err := sheet.LastSync(ctx, w.store)
	if err != nil {
		log.Warn().Err(err).Msg("cannot read the last sync time")
	}
	printMarkdown(renderer.SettingsMarkdown(w.settings, last))
	return subcommands.ExitSuccess
}

// setter sets a setting from its text value.
type setter func(s *config.Settings, v string) error

func setString(field func(*config.Settings) *string) setter {
	return func(s *config.Settings, v string) error {
		*field(s) = v
		return nil
	}
}

func setInt(field func(*config.Settings) *int) setter {
	return func(s *config.Settings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid number %q", v)
		}
		*field(s) = n
		return nil
	}
}

func setBool(field func(*config.Settings) *bool) setter {
	return func(s *config.Settings, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", v)
		}
		*field(s) = b
		return nil
	}
}

// settingKeys are the names of the settings settings-set can change.
var settingKeys = map[string]setter{
	"invoice.store":    setString(func(s *config.Settings) *string { return &s.Invoice.StoreName }),
	"invoice.address":  setString(func(s *config.Settings) *string { return &s.Invoice.Address }),
	"invoice.phone":    setString(func(s *config.Settings) *string { return &s.Invoice.Phone }),
	"invoice.footer":   setString(func(s *config.Settings) *string { return &s.Invoice.FooterMessage }),
	"bank.id":          setString(func(s *config.Settings) *string { return &s.Bank.BankID }),
	"bank.account":     setString(func(s *config.Settings) *string { return &s.Bank.AccountNo }),
	"bank.name":        setString(func(s *config.Settings) *string { return &s.Bank.AccountName }),
	"printer.paper":    setString(func(s *config.Settings) *string { return &s.Printer.PaperSize }),
	"printer.auto":     setBool(func(s *config.Settings) *bool { return &s.Printer.AutoPrint }),
	"printer.logo":     setBool(func(s *config.Settings) *bool { return &s.Printer.ShowLogo }),
	"printer.copies":   setInt(func(s *config.Settings) *int { return &s.Printer.Copies }),
	"barcode.width":    setInt(func(s *config.Settings) *int { return &s.Barcode.Width }),
	"barcode.height":   setInt(func(s *config.Settings) *int { return &s.Barcode.Height }),
	"barcode.font":     setInt(func(s *config.Settings) *int { return &s.Barcode.FontSize }),
	"barcode.name":     setBool(func(s *config.Settings) *bool { return &s.Barcode.ShowName }),
	"barcode.price":    setBool(func(s *config.Settings) *bool { return &s.Barcode.ShowPrice }),
	"barcode.per-row":  setInt(func(s *config.Settings) *int { return &s.Barcode.LabelsPerRow }),
	"telegram.token":   setString(func(s *config.Settings) *string { return &s.Telegram.BotToken }),
	"telegram.chat":    setString(func(s *config.Settings) *string { return &s.Telegram.ChatID }),
	"telegram.enabled": setBool(func(s *config.Settings) *bool { return &s.Telegram.Enabled }),
	"sync.url":         setString(func(s *config.Settings) *string { return &s.ScriptURL }),
}

// applySettings sets every key=value of args on s, then validates s.
func applySettings(s *config.Settings, args []string) error {
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%q is not a key=value pair", arg)
		}
		set, ok := settingKeys[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			return fmt.Errorf("unknown setting %q", key)
		}
		if err := set(s, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return s.Validate()
}

func settingNames() string {
	var names []string
	for k := range settingKeys {
		names = append(names, k)
	}
	slices.Sort(names)
	return strings.Join(names, "\n    ")
}

type settingsSetCmd struct {
	password string
}

func (*settingsSetCmd) Name() string     { return "settings-set" }
func (*settingsSetCmd) Synopsis() string { return "change the shop settings" }
func (*settingsSetCmd) Usage() string {
	return `sbz settings-set -password <password> <key>=<value>...

  Changes settings. The admin password is required. Keys are:
    ` + settingNames() + `

Usage Examples:
$ sbz settings-set -password admin telegram.token=123:ABC telegram.chat=-100200 telegram.enabled=true
`
}

func (c *settingsSetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "password", "", "Admin password")
}

func (c *settingsSetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("nothing to change")
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	if err := config.CheckPassword(ctx, w.store, c.password); err != nil {
		return fail(err)
	}
	s := w.settings
	if err := applySettings(&s, f.Args()); err != nil {
		return usage("%v", err)
	}
	if err := config.Save(ctx, w.store, s); err != nil {
		return fail(err)
	}
	last, _ := sheet.LastSync(ctx, w.store)
	printMarkdown(renderer.SettingsMarkdown(s, last))
	return subcommands.ExitSuccess
}

type passwordCmd struct {
	current string
	next    string
}

func (*passwordCmd) Name() string     { return "password" }
func (*passwordCmd) Synopsis() string { return "change the admin password" }
func (*passwordCmd) Usage() string {
	return `sbz password -old <password> -new <password>

  Changes the admin password protecting the settings. The password of a new
  shop is "` + config.DefaultPassword + `".
`
}

func (c *passwordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.current, "old", "", "Current admin password")
	f.StringVar(&c.next, "new", "", "New admin password")
}

func (c *passwordCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	if err := config.SetPassword(ctx, w.store, c.current, c.next); err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, "Password changed.")
	return subcommands.ExitSuccess
}

type telegramTestCmd struct{}

func (*telegramTestCmd) Name() string     { return "telegram-test" }
func (*telegramTestCmd) Synopsis() string { return "send a test message to the Telegram chat" }
func (*telegramTestCmd) Usage() string {
	return `sbz telegram-test

  Sends a test message with the configured bot token and chat id, whether
  or not notifications are enabled.
`
}

func (*telegramTestCmd) SetFlags(*flag.FlagSet) {}

func (*telegramTestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	if err := notify.New(w.settings.Telegram, env.Currency).Test(ctx); err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, "Test message sent.")
	return subcommands.ExitSuccess
}

type resetCmd struct {
	password string
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "erase the workspace" }
func (*resetCmd) Usage() string {
	return `sbz reset -password <password>

  Erases every product, contact, transaction and setting, and the sync
  backup. The next command starts again from the demo data.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "password", "", "Admin password")
}

func (c *resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	if err := config.CheckPassword(ctx, w.store, c.password); err != nil {
		return fail(err)
	}
	if err := store.Clear(ctx, w.store); err != nil {
		return fail(err)
	}
	log.Info().Str("store", env.Store).Str("data", env.Data).Msg("workspace erased")
	fmt.Fprintln(stdout, "Workspace erased.")
	return subcommands.ExitSuccess
}
