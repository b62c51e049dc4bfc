package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/SscSPs/simbank_ledger/internal/core/domain"
	"github.com/SscSPs/simbank_ledger/internal/dto"
	"github.com/SscSPs/simbank_ledger/internal/platform/config"
	"github.com/SscSPs/simbank_ledger/pkg/database"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&openAccountCmd{},
	&setStatusCmd{},
	&adjustCmd{},
	&setTxnStatusCmd{},
	&reconcileCmd{},
	&regenerateOTPCmd{},
	&cancelPaymentCmd{},
}

// missing reports an empty required flag on stderr.
func missing(flags map[string]string) bool {
	for name, v := range flags {
		if strings.TrimSpace(v) == "" {
			fmt.Fprintf(os.Stderr, "Error: -%s is required.\n", name)
			return true
		}
	}
	return false
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending database migrations" }
func (*migrateCmd) Usage() string {
	return `migrate

  Applies every pending migration from MIGRATIONS_PATH to PGSQL_URL.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, slogStderr())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("migrations applied: %t\n", applied)
	return subcommands.ExitSuccess
}

type openAccountCmd struct {
	user, name, kind, currency string
}

func (*openAccountCmd) Name() string     { return "open-account" }
func (*openAccountCmd) Synopsis() string { return "open a zero-balance account for a user" }
func (*openAccountCmd) Usage() string {
	return `open-account -user <id> -name <name> -kind CURRENT|SAVINGS|INVESTMENT -currency <ISO code>
`
}

func (c *openAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "owner user id (required)")
	f.StringVar(&c.name, "name", "", "display name (required)")
	f.StringVar(&c.kind, "kind", string(domain.KindCurrent), "account kind")
	f.StringVar(&c.currency, "currency", "GBP", "ISO 4217 currency code")
}

func (c *openAccountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if missing(map[string]string{"user": c.user, "name": c.name}) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, e *env) error {
		acc, err := e.services.Account.OpenAccount(ctx, dto.OpenAccountRequest{
			UserID:       c.user,
			Name:         c.name,
			Kind:         domain.AccountKind(strings.ToUpper(c.kind)),
			CurrencyCode: c.currency,
		}, *actor)
		if err != nil {
			return err
		}
		return printJSON(dto.ToAccountResponse(acc))
	})
}

type setStatusCmd struct {
	account, status string
}

func (*setStatusCmd) Name() string     { return "set-status" }
func (*setStatusCmd) Synopsis() string { return "move an account through its lifecycle" }
func (*setStatusCmd) Usage() string {
	return `set-status -account <id> -status PENDING|OPEN|FROZEN|CLOSED

  CLOSED is final and requires a zero balance and no holdings.
`
}

func (c *setStatusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account id (required)")
	f.StringVar(&c.status, "status", "", "new status (required)")
}

func (c *setStatusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if missing(map[string]string{"account": c.account, "status": c.status}) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, e *env) error {
		acc, err := e.services.Account.SetAccountStatus(ctx, c.account, domain.AccountStatus(strings.ToUpper(c.status)), *actor)
		if err != nil {
			return err
		}
		return printJSON(dto.ToAccountResponse(acc))
	})
}

type adjustCmd struct {
	account     string
	delta       int64
	description string
}

func (*adjustCmd) Name() string     { return "adjust" }
func (*adjustCmd) Synopsis() string { return "credit or debit an account out of band" }
func (*adjustCmd) Usage() string {
	return `adjust -account <id> -delta <minor units> -description <text>

  A positive delta credits, a negative one debits. The balance never drops below zero.
`
}

func (c *adjustCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account id (required)")
	f.Int64Var(&c.delta, "delta", 0, "signed amount in minor units (required)")
	f.StringVar(&c.description, "description", "", "ledger description (required)")
}

func (c *adjustCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if missing(map[string]string{"account": c.account, "description": c.description}) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, e *env) error {
		posting, err := e.services.Admin.AdminAdjust(ctx, dto.AdjustBalanceRequest{
			AccountID:   c.account,
			Delta:       c.delta,
			Description: c.description,
		}, *actor)
		if err != nil {
			return err
		}
		return printJSON(dto.PostingResponse{TransactionID: posting.Transaction.TransactionID, NewBalance: posting.NewBalance})
	})
}

type setTxnStatusCmd struct {
	txn, status, message string
}

func (*setTxnStatusCmd) Name() string     { return "set-txn-status" }
func (*setTxnStatusCmd) Synopsis() string { return "re-tag a ledger entry" }
func (*setTxnStatusCmd) Usage() string {
	return `set-txn-status -txn <id> -status POSTED|PENDING|ERROR|REVERSED [-message <text>]

  Moving an entry into or out of POSTED adjusts the account balance by its amount.
`
}

func (c *setTxnStatusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txn, "txn", "", "transaction id (required)")
	f.StringVar(&c.status, "status", "", "new status (required)")
	f.StringVar(&c.message, "message", "", "admin message shown to the customer")
}

func (c *setTxnStatusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if missing(map[string]string{"txn": c.txn, "status": c.status}) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, e *env) error {
		txn, err := e.services.Admin.SetTransactionStatus(ctx, c.txn, dto.SetTransactionStatusRequest{
			Status:       domain.TransactionStatus(strings.ToUpper(c.status)),
			AdminMessage: c.message,
		}, *actor)
		if err != nil {
			return err
		}
		return printJSON(dto.ToTransactionResponse(txn))
	})
}

type reconcileCmd struct {
	account string
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "compare balances with their ledgers" }
func (*reconcileCmd) Usage() string {
	return `reconcile [-account <id>]

  Checks one account, or every account when -account is omitted. Exits non-zero on drift.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "account id; all accounts when empty")
}

func (c *reconcileCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, e *env) error {
		ids := []string{c.account}
		if c.account == "" {
			var err error
			if ids, err = allAccountIDs(ctx, e); err != nil {
				return err
			}
		}

		drifted := 0
		for _, id := range ids {
			report, err := e.services.Ledger.Reconcile(ctx, id)
			if err != nil {
				return err
			}
			if !report.Consistent() {
				drifted++
				if err := printJSON(report); err != nil {
					return err
				}
			}
		}
		fmt.Fprintf(os.Stderr, "%d accounts checked, %d drifted\n", len(ids), drifted)
		if drifted > 0 {
			return fmt.Errorf("ledger drift on %d accounts", drifted)
		}
		return nil
	})
}

func allAccountIDs(ctx context.Context, e *env) ([]string, error) {
	const page = 100
	var ids []string
	for offset := 0; ; offset += page {
		accounts, err := e.store.Accounts().ListAccounts(ctx, page, offset)
		if err != nil {
			return nil, err
		}
		for _, acc := range accounts {
			ids = append(ids, acc.AccountID)
		}
		if len(accounts) < page {
			return ids, nil
		}
	}
}

type regenerateOTPCmd struct {
	payment string
}

func (*regenerateOTPCmd) Name() string     { return "regenerate-otp" }
func (*regenerateOTPCmd) Synopsis() string { return "issue a fresh passcode for a pending payment" }
func (*regenerateOTPCmd) Usage() string {
	return `regenerate-otp -payment <id>

  The previous passcode stops working. The new one is printed once.
`
}

func (c *regenerateOTPCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.payment, "payment", "", "payment id (required)")
}

func (c *regenerateOTPCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if missing(map[string]string{"payment": c.payment}) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, e *env) error {
		res, err := e.services.Payment.RegenerateOTP(ctx, c.payment, *actor)
		if err != nil {
			return err
		}
		return printJSON(dto.InitiatePaymentResponse{Payment: dto.ToPaymentResponse(&res.Payment), OTP: res.OTP})
	})
}

type cancelPaymentCmd struct {
	payment string
}

func (*cancelPaymentCmd) Name() string     { return "cancel-payment" }
func (*cancelPaymentCmd) Synopsis() string { return "cancel a pending payment regardless of owner" }
func (*cancelPaymentCmd) Usage() string {
	return `cancel-payment -payment <id>
`
}

func (c *cancelPaymentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.payment, "payment", "", "payment id (required)")
}

func (c *cancelPaymentCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if missing(map[string]string{"payment": c.payment}) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, e *env) error {
		p, err := e.services.Payment.ForceCancelPayment(ctx, c.payment, *actor)
		if err != nil {
			return err
		}
		return printJSON(dto.ToPaymentResponse(p))
	})
}
