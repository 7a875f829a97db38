package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/mmynk/fairly/internal/calculator"
	"github.com/mmynk/fairly/internal/money"
)

// Commands returns every fairlyctl subcommand writing to out and errOut.
// currency is the default for the -currency flag.
func Commands(out, errOut io.Writer, currency string) []subcommands.Command {
	return []subcommands.Command{
		&balancesCmd{snapshotFlags: snapshotFlags{defaultCurrency: currency}, out: out, errOut: errOut},
		&settleCmd{snapshotFlags: snapshotFlags{defaultCurrency: currency}, out: out, errOut: errOut},
	}
}

// snapshotFlags are shared by every command that reads a snapshot.
type snapshotFlags struct {
	defaultCurrency string

	file     string
	currency string
}

func (s *snapshotFlags) register(f *flag.FlagSet) {
	if s.defaultCurrency == "" {
		s.defaultCurrency = "USD"
	}
	f.StringVar(&s.file, "f", "", "Snapshot JSON file, or - for stdin.")
	f.StringVar(&s.currency, "currency", s.defaultCurrency, "ISO 4217 code used to format amounts.")
}

func (s *snapshotFlags) load() (*Snapshot, calculator.Balances, error) {
	snap, err := ReadSnapshot(s.file)
	if err != nil {
		return nil, nil, err
	}
	members, expenses := snap.Inputs()
	return snap, calculator.ComputeBalances(members, expenses), nil
}

type balancesCmd struct {
	snapshotFlags
	out, errOut io.Writer
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "print every member's net balance" }
func (*balancesCmd) Usage() string {
	return `fairlyctl balances -f <snapshot.json> [-currency <code>]

  Prints each member's balance, largest first. Positive balances are owed
  money; negative balances owe money.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *balancesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, balances, err := c.load()
	if err != nil {
		fmt.Fprintln(c.errOut, err)
		return subcommands.ExitFailure
	}
	warnUnbalanced(c.errOut, balances)

	rows := slices.Clone(balances)
	slices.SortStableFunc(rows, func(a, b calculator.MemberBalance) int {
		return b.Amount.Cmp(a.Amount)
	})

	names := snap.names()
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tBALANCE")
	for _, b := range rows {
		fmt.Fprintf(w, "%s\t%s\n", names[b.MemberID], money.Format(b.Amount, strings.ToUpper(c.currency)))
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintln(c.errOut, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type settleCmd struct {
	snapshotFlags
	out, errOut io.Writer
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "suggest the payments that clear every balance" }
func (*settleCmd) Usage() string {
	return `fairlyctl settle -f <snapshot.json> [-currency <code>]

  Prints the suggested transfers, one per line, in the order they were
  planned. Prints "all settled" when nobody owes anything.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *settleCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, balances, err := c.load()
	if err != nil {
		fmt.Fprintln(c.errOut, err)
		return subcommands.ExitFailure
	}
	warnUnbalanced(c.errOut, balances)

	settlements := calculator.PlanSettlements(balances)
	if len(settlements) == 0 {
		fmt.Fprintln(c.out, "all settled")
		return subcommands.ExitSuccess
	}

	names := snap.names()
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tTO\tAMOUNT")
	for _, s := range settlements {
		fmt.Fprintf(w, "%s\t%s\t%s\n", names[s.FromUserID], names[s.ToUserID], money.Format(s.Amount, strings.ToUpper(c.currency)))
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintln(c.errOut, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// warnUnbalanced flags snapshots whose expenses involve people outside the
// member list, since the engine drops those amounts.
func warnUnbalanced(w io.Writer, balances calculator.Balances) {
	total := balances.Total()
	if money.IsSettled(total) {
		return
	}
	fmt.Fprintf(w, "warning: balances sum to %s; some expenses reference unknown members\n", money.Fixed(total))
}
