package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/hashcash-ledger/config"
	"github.com/luca-patrignani/hashcash-ledger/ledger"
	"github.com/luca-patrignani/hashcash-ledger/storage"
)

func main() {
	configFlag := flag.String("config", "", "YAML configuration file")
	dataFlag := flag.String("data", "", "state file (file backend) or database directory (badger backend)")
	storeFlag := flag.String("store", "", "storage backend: file|badger")
	ownerFlag := flag.String("owner", "", "identifier credited with mining rewards")
	rewardFlag := flag.String("reward", "", "amount minted by every mined block")
	debugFlag := flag.Bool("debug", false, "log proof search progress")
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [OPTIONS]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	overrideConfig(&cfg, *dataFlag, *storeFlag, *ownerFlag, *rewardFlag, *debugFlag)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	if cfg.Debug {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	os.Exit(run(cfg, logger))
}

func overrideConfig(cfg *config.Config, data, store, owner, reward string, debug bool) {
	if data != "" {
		cfg.Storage.Path = data
	}
	if store != "" {
		cfg.Storage.Backend = store
	}
	if owner != "" {
		cfg.Owner = owner
	}
	if reward != "" {
		cfg.MiningReward = reward
	}
	cfg.Debug = cfg.Debug || debug
}

func run(cfg config.Config, logger *slog.Logger) int {
	reward, err := cfg.Reward()
	if err != nil {
		logger.Error(err.Error())
		return 2
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "err", err)
		return 1
	}
	defer store.Close()

	l, err := openLedger(store, cfg.Owner, logger)
	if err != nil {
		logger.Error("failed to restore ledger", "path", cfg.Storage.Path, "err", err)
		return 1
	}

	printTitle(logger)
	pterm.Info.Printfln("Mining rewards of %s go to %s", reward.String(), pterm.LightCyan(cfg.Owner))

	s := newShell(l, store, reward, ptermPrompter{}, logger)
	if err := s.run(context.Background()); err != nil {
		logger.Error("session aborted", "err", err)
		return 1
	}
	pterm.Println("Done!")
	return 0
}

// openLedger restores the ledger from store, or starts a new one from the
// genesis block when nothing was saved yet. A saved ledger that does not
// decode or does not verify is an error: it is never patched up.
func openLedger(store storage.Store, owner string, logger *slog.Logger) (*ledger.Ledger, error) {
	opts := []ledger.Option{ledger.WithOwner(owner), ledger.WithLogger(logger)}

	raw, err := store.Load()
	if errors.Is(err, storage.ErrNoState) {
		logger.Info("no saved ledger found, starting from the genesis block", storeAttrs(store)...)
		return ledger.New(opts...), nil
	}
	if err != nil {
		return nil, err
	}

	l, err := ledger.Load(raw, opts...)
	if err != nil {
		return nil, err
	}
	if err := l.VerifyChain(); err != nil {
		return nil, fmt.Errorf("saved ledger rejected: %w", err)
	}
	attrs := append([]any{"owner", l.Owner(), "blocks", l.Height(), "pending", len(l.Pending())}, storeAttrs(store)...)
	logger.Info("ledger restored", attrs...)
	return l, nil
}

// storeAttrs describes where the ledger is kept, for the startup log.
func storeAttrs(store storage.Store) []any {
	switch s := store.(type) {
	case *storage.FileStore:
		return []any{"file", s.Path()}
	case *storage.BadgerStore:
		savedAt, err := s.SavedAt()
		if err != nil {
			return []any{"store", config.BackendBadger}
		}
		return []any{"store", config.BackendBadger, "saved_at", savedAt.Format(time.RFC3339)}
	}
	return nil
}

func printTitle(logger *slog.Logger) {
	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Hash", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("cash", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		logger.Error(err.Error())
	}
	pterm.Print(title)
}
