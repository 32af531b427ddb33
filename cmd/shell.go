package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
	"github.com/luca-patrignani/hashcash-ledger/ledger"
	"github.com/luca-patrignani/hashcash-ledger/storage"
)

const (
	cmdAdd          = "Add a new transaction"
	cmdMine         = "Mine a new block"
	cmdBlocks       = "Output the blockchain blocks"
	cmdParticipants = "Output the participants"
	cmdCheck        = "Check transaction validity"
	cmdCorrupt      = "Manipulate the chain"
	cmdQuit         = "Quit"
)

var menu = []string{cmdAdd, cmdMine, cmdBlocks, cmdParticipants, cmdCheck, cmdCorrupt, cmdQuit}

// prompter reads the user's choices.
type prompter interface {
	Select(text string, options []string) (string, error)
	Text(text string, defaultValue string) (string, error)
}

type ptermPrompter struct{}

func (ptermPrompter) Select(text string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithDefaultText(text).WithOptions(options).Show()
}

func (ptermPrompter) Text(text string, defaultValue string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultText(text).WithDefaultValue(defaultValue).Show()
}

// shell dispatches menu commands to the ledger and persists the result.
type shell struct {
	ledger *ledger.Ledger
	store  storage.Store
	reward chain.Amount
	prompt prompter
	logger *slog.Logger
}

// newShell returns a shell acting for the ledger's owner.
func newShell(l *ledger.Ledger, store storage.Store, reward chain.Amount, p prompter, logger *slog.Logger) *shell {
	return &shell{
		ledger: l,
		store:  store,
		reward: reward,
		prompt: p,
		logger: logger,
	}
}

// run loops over commands until the user quits. The chain is verified after
// every command; a corrupted chain ends the session with an error wrapping
// ledger.ErrChainCorrupted.
func (s *shell) run(ctx context.Context) error {
	for {
		choice, err := s.prompt.Select("Please choose", menu)
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}
		quit, err := s.dispatch(ctx, choice)
		if err != nil {
			return err
		}
		if err := s.ledger.VerifyChain(); err != nil {
			printBlocks(s.ledger.Blocks())
			pterm.Error.Println("Invalid blockchain!")
			return err
		}
		if quit {
			pterm.Info.Println("User left!")
			return nil
		}
		owner := s.ledger.Owner()
		printBalance(owner, s.ledger.Balance(owner))
	}
}

func (s *shell) dispatch(ctx context.Context, choice string) (quit bool, err error) {
	switch choice {
	case cmdAdd:
		return false, s.addTransaction()
	case cmdMine:
		return false, s.mine(ctx)
	case cmdBlocks:
		printBlocks(s.ledger.Blocks())
	case cmdParticipants:
		printParticipants(s.ledger.Participants())
	case cmdCheck:
		if s.ledger.VerifyPending() {
			pterm.Success.Println("All transactions are valid")
		} else {
			pterm.Warning.Println("There are invalid transactions")
		}
	case cmdCorrupt:
		s.ledger.CorruptGenesis()
		pterm.Warning.Println("Genesis block overwritten")
	case cmdQuit:
		return true, nil
	default:
		pterm.Error.Printfln("Input %q was invalid, please pick a value from the list", choice)
	}
	return false, nil
}

// addTransaction only fails on persistence errors; rejected transfers are
// reported and the session goes on.
func (s *shell) addTransaction() error {
	sender, err := s.prompt.Text("Enter the sender of the transaction", s.ledger.Owner())
	if err != nil {
		return err
	}
	recipient, err := s.prompt.Text("Enter the recipient of the transaction", "")
	if err != nil {
		return err
	}
	input, err := s.prompt.Text("Your transaction amount please", "1.0")
	if err != nil {
		return err
	}
	amount, err := chain.ParseAmount(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil
	}

	if err := s.ledger.Admit(recipient, sender, amount); err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			pterm.Error.Printfln("Transaction failed! %s has only %s", sender, s.ledger.Balance(sender).String())
		} else {
			pterm.Error.Printfln("Transaction failed! %v", err)
		}
		return nil
	}
	if err := s.persist(); err != nil {
		return err
	}
	pterm.Success.Println("Added transaction!")
	printPending(s.ledger.Pending())
	return nil
}

// mine runs the proof search behind a spinner. Ctrl-C interrupts the search
// and leaves the ledger as it was.
func (s *shell) mine(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	spinner, err := pterm.DefaultSpinner.Start("Searching for a proof of work ...")
	if err != nil {
		s.logger.Error(err.Error())
	}
	block, err := s.ledger.Mine(ctx, s.ledger.Owner(), s.reward)
	if errors.Is(err, context.Canceled) {
		spinner.Warning("Mining interrupted, nothing was changed")
		return nil
	}
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	if err := s.persist(); err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("Mined block %d with proof %d", block.Index, block.Proof))
	return nil
}

func (s *shell) persist() error {
	raw, err := s.ledger.Save()
	if err != nil {
		return err
	}
	if err := s.store.Save(raw); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	s.logger.Debug("ledger persisted", "bytes", len(raw))
	return nil
}
