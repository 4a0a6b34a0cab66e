package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/spf13/cobra"
)

// withServices opens the book and hands its services to fn.
func withServices(cmd *cobra.Command, fn func(container *portssvc.ServiceContainer, formats services.Formatters) error) error {
	repos, closeBook, err := openBook(cmd.Context())
	if err != nil {
		return err
	}
	defer closeBook()
	return fn(services.NewServiceContainer(cfg, repos), services.NewFormatters(cfg))
}

var currencyCmd = &cobra.Command{
	Use:   "currency",
	Short: "Manage currencies",
}

var (
	curLabel  string
	curSymbol string
	curDigits int
)

var currencySaveCmd = &cobra.Command{
	Use:   "save [code]",
	Short: "Create or update a currency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(container *portssvc.ServiceContainer, _ services.Formatters) error {
			saved, err := container.Book.SaveCurrency(cmd.Context(), domain.Currency{
				Code: args[0], Label: curLabel, Symbol: curSymbol, Digits: curDigits,
			}, flagUser)
			if err != nil {
				return err
			}
			fmt.Printf("Currency saved: %s (%s) %d digits\n", saved.Code, saved.Label, saved.Digits)
			return nil
		})
	},
}

var currencyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List currencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(container *portssvc.ServiceContainer, _ services.Formatters) error {
			currencies, err := container.Book.ListCurrencies(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%-6s %-30s %-6s %s\n", "CODE", "LABEL", "SYMBOL", "DIGITS")
			for _, c := range currencies {
				fmt.Printf("%-6s %-30s %-6s %d\n", c.Code, c.Label, c.Symbol, c.Digits)
			}
			return nil
		})
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the chart of accounts",
}

var (
	acctLabel    string
	acctCurrency string
	acctRoot     bool
)

var accountSaveCmd = &cobra.Command{
	Use:   "save [number]",
	Short: "Create or update an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(container *portssvc.ServiceContainer, _ services.Formatters) error {
			saved, err := container.Book.SaveAccount(cmd.Context(), domain.Account{
				Number: args[0], Label: acctLabel, Currency: acctCurrency, IsRoot: acctRoot,
			}, flagUser)
			if err != nil {
				return err
			}
			fmt.Printf("Account saved: %s (%s) %s\n", saved.Number, saved.Label, saved.Currency)
			return nil
		})
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with their rough totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(container *portssvc.ServiceContainer, formats services.Formatters) error {
			accounts, err := container.Book.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			currencies, err := container.Book.ListCurrencies(cmd.Context())
			if err != nil {
				return err
			}
			digits := make(map[string]int, len(currencies))
			for _, c := range currencies {
				digits[c.Code] = c.Digits
			}

			fmt.Printf("%-12s %-30s %-4s %16s %16s %16s %16s\n", "NUMBER", "LABEL", "CUR",
				"CURRENT DEBIT", "CURRENT CREDIT", "FUTURE DEBIT", "FUTURE CREDIT")
			for _, a := range accounts {
				label := a.Label
				if len(label) > 28 {
					label = label[:28] + ".."
				}
				d := digits[a.Currency]
				fmt.Printf("%-12s %-30s %-4s %16s %16s %16s %16s\n", a.Number, label, a.Currency,
					formats.Amounts.Format(a.CurrentRoughDebit, d), formats.Amounts.Format(a.CurrentRoughCredit, d),
					formats.Amounts.Format(a.FutureRoughDebit, d), formats.Amounts.Format(a.FutureRoughCredit, d))
			}
			return nil
		})
	},
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Manage ledgers",
}

var (
	ledgerLabel     string
	ledgerLastClose string
)

var ledgerSaveCmd = &cobra.Command{
	Use:   "save [mnemo]",
	Short: "Create or update a ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(container *portssvc.ServiceContainer, formats services.Formatters) error {
			ledger := domain.Ledger{Mnemo: args[0], Label: ledgerLabel}
			if ledgerLastClose != "" {
				closed, err := formats.Dates.Parse(ledgerLastClose)
				if err != nil {
					return fmt.Errorf("invalid closing date %q: %w", ledgerLastClose, err)
				}
				ledger.LastClose = &closed
			}
			saved, err := container.Book.SaveLedger(cmd.Context(), ledger, flagUser)
			if err != nil {
				return err
			}
			fmt.Printf("Ledger saved: %s (%s)\n", saved.Mnemo, saved.Label)
			return nil
		})
	},
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledgers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(container *portssvc.ServiceContainer, formats services.Formatters) error {
			ledgers, err := container.Book.ListLedgers(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%-6s %-30s %s\n", "MNEMO", "LABEL", "LAST CLOSE")
			for _, l := range ledgers {
				closed := "-"
				if l.LastClose != nil {
					closed = formats.Dates.Format(*l.LastClose)
				}
				fmt.Printf("%-6s %-30s %s\n", l.Mnemo, l.Label, closed)
			}
			return nil
		})
	},
}

var exerciseCmd = &cobra.Command{
	Use:   "exercise [begin] [end]",
	Short: "Open the current exercise",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(container *portssvc.ServiceContainer, formats services.Formatters) error {
			var bounds [2]time.Time
			for i, s := range args {
				t, err := formats.Dates.Parse(s)
				if err != nil {
					return fmt.Errorf("invalid exercise date %q: %w", s, err)
				}
				bounds[i] = t
			}
			dossier, err := container.Book.OpenExercise(cmd.Context(), bounds[0], bounds[1], flagUser)
			if err != nil {
				return err
			}
			fmt.Printf("Exercise: %s - %s\n", formats.Dates.Format(*dossier.ExeBegin), formats.Dates.Format(*dossier.ExeEnd))
			return nil
		})
	},
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild the rough totals of accounts and ledgers from the rough entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(container *portssvc.ServiceContainer, _ services.Formatters) error {
			if err := container.Remediation.RecomputeRoughTotals(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Rough totals recomputed.")
			return nil
		})
	},
}

func init() {
	currencySaveCmd.Flags().StringVar(&curLabel, "label", "", "Currency label")
	currencySaveCmd.Flags().StringVar(&curSymbol, "symbol", "", "Currency symbol")
	currencySaveCmd.Flags().IntVar(&curDigits, "digits", 2, "Digits after the decimal separator")
	currencyCmd.AddCommand(currencySaveCmd)
	currencyCmd.AddCommand(currencyListCmd)

	accountSaveCmd.Flags().StringVar(&acctLabel, "label", "", "Account label")
	accountSaveCmd.Flags().StringVar(&acctCurrency, "currency", "", "Account currency (ISO 4217)")
	accountSaveCmd.Flags().BoolVar(&acctRoot, "root", false, "Root account: entries cannot be imputed to it")
	accountSaveCmd.MarkFlagRequired("currency")
	accountCmd.AddCommand(accountSaveCmd)
	accountCmd.AddCommand(accountListCmd)

	ledgerSaveCmd.Flags().StringVar(&ledgerLabel, "label", "", "Ledger label")
	ledgerSaveCmd.Flags().StringVar(&ledgerLastClose, "last-close", "", "Last closing date")
	ledgerCmd.AddCommand(ledgerSaveCmd)
	ledgerCmd.AddCommand(ledgerListCmd)

	rootCmd.AddCommand(currencyCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(recomputeCmd)
}
