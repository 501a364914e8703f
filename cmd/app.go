// Package cmd implements the sbz command line application to run a shop:
// sell and buy products, keep the stock, track the debts of customers and to
// suppliers, and mirror the books to a spreadsheet.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/config"
	"github.com/etnz/smartbiz/notify"
	"github.com/etnz/smartbiz/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	route(c, &dashboardCmd{}, Dashboard, true)
	route(c, &insightCmd{}, Dashboard, false)
	route(c, &assistCmd{}, Dashboard, false)

	route(c, &productsCmd{}, Inventory, true)
	route(c, &productAddCmd{}, Inventory, false)
	route(c, &productEditCmd{}, Inventory, false)
	route(c, &productDeleteCmd{}, Inventory, false)

	route(c, &sellCmd{}, Sales, true)
	route(c, &receiptCmd{}, Sales, false)
	route(c, &purchaseCmd{}, Purchases, true)

	route(c, &financeCmd{}, Finance, true)
	route(c, newCashCmd(smartbiz.Income), Finance, false)
	route(c, newCashCmd(smartbiz.Expense), Finance, false)
	route(c, &txEditCmd{}, Finance, false)
	route(c, &txDeleteCmd{}, Finance, false)

	route(c, &contactsCmd{}, Contacts, true)
	route(c, &contactAddCmd{}, Contacts, false)
	route(c, &contactEditCmd{}, Contacts, false)
	route(c, &contactDeleteCmd{}, Contacts, false)
	route(c, &historyCmd{}, Contacts, false)

	route(c, &debtsCmd{}, Debt, true)
	route(c, newSettleCmd(smartbiz.DebtCollection), Debt, false)
	route(c, newSettleCmd(smartbiz.DebtPayment), Debt, false)

	route(c, &reportCmd{}, Reports, true)

	route(c, &settingsCmd{}, Settings, true)
	route(c, &settingsSetCmd{}, Settings, false)
	route(c, &passwordCmd{}, Settings, false)
	route(c, &telegramTestCmd{}, Settings, false)
	route(c, &resetCmd{}, Settings, false)

	c.Register(&syncCmd{}, "sync")
	c.Register(&pullCmd{}, "sync")
	c.Register(&autoSyncCmd{}, "sync")

	c.Register(&viewCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeKind   = flag.String("store", "", "Store kind: dir, sqlite or memory. Overrides "+config.EnvStore+".")
	dataPath    = flag.String("data", "", "Store location, a folder or a SQLite file. Overrides "+config.EnvData+".")
	envFile     = flag.String("env", ".env", "dotenv file read at startup")
	verbose     = flag.Bool("v", false, "Log debug messages")
	rawMarkdown = flag.Bool("markdown", false, "Print raw Markdown instead of rendering it")
)

// env is the process configuration, read by Init.
var env config.Env

// openStore opens the workspace store.
var openStore = store.Open

// Init reads the process configuration and sets up logging. It must be
// called once the flags are parsed.
func Init() error {
	setupLogging(zerolog.InfoLevel)
	e, err := config.LoadEnv(*envFile)
	if err != nil {
		return err
	}
	if err := e.Override(*storeKind, *dataPath); err != nil {
		return err
	}
	env = e
	lvl := env.Level()
	if *verbose {
		lvl = zerolog.DebugLevel
	}
	setupLogging(lvl)
	return nil
}

func setupLogging(lvl zerolog.Level) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// workspace is the opened shop: its store, books and settings.
type workspace struct {
	store    store.Store
	ledger   *smartbiz.Ledger
	settings config.Settings
}

// openWorkspace opens the store and loads the books and the settings. Sales
// and purchases are notified on Telegram when it is enabled.
func openWorkspace(ctx context.Context) (*workspace, error) {
	st, err := openStore(env.Store, env.Data)
	if err != nil {
		return nil, err
	}
	l, err := smartbiz.Load(ctx, st)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("cannot load the books: %w", err)
	}
	l.Region = env.Region
	s, err := config.Load(ctx, st)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("cannot load the settings: %w", err)
	}
	if s.Telegram.Enabled {
		l.SetNotifier(notify.New(s.Telegram, env.Currency))
	}
	log.Debug().Str("store", env.Store).Str("data", env.Data).Int("transactions", len(l.Transactions())).Msg("workspace opened")
	return &workspace{store: st, ledger: l, settings: s}, nil
}

// save waits for the pending notifications, then writes the books.
func (w *workspace) save(ctx context.Context) error {
	w.ledger.Wait()
	if err := smartbiz.Save(ctx, w.store, w.ledger); err != nil {
		return fmt.Errorf("cannot save the books: %w", err)
	}
	return nil
}

func (w *workspace) close() {
	w.ledger.Wait()
	if err := w.store.Close(); err != nil {
		log.Warn().Err(err).Msg("cannot close the store")
	}
}

// fail reports err and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// usage reports a usage error.
func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
