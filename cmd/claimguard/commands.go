package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	accountModels "claimguard/internal/accounts/models"
	"claimguard/internal/app"
	claimModels "claimguard/internal/claims/models"
	"claimguard/internal/platform/config"
	"claimguard/internal/platform/logger"
	"claimguard/internal/verification"
)

// buildApp loads config from the --config flag and the environment. Logs go
// to stderr so command output stays clean on stdout.
func buildApp(cmd *cobra.Command) (*app.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logger.NewWithWriter(os.Stderr, cfg.LogLevel))
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load claims and accounts and serve the operator console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			return a.Serve(cmd.Context())
		},
	}
}

func claimsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "List, submit and verify claims",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the claims visible to the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loaded(cmd, loadClaims)
			if err != nil {
				return err
			}
			printClaims(cmd.OutOrStdout(), a.Claims.List())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reload",
		Short: "Re-read the claim list and report its size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loaded(cmd, loadClaims)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d claims (version %d)\n", a.ClaimStore.Len(), a.ClaimStore.Version())
			return nil
		},
	})

	submit := &cobra.Command{
		Use:   "submit",
		Short: "File a new claim for the session's user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hospital, _ := cmd.Flags().GetString("hospital")
			service, _ := cmd.Flags().GetString("service")
			amount, _ := cmd.Flags().GetFloat64("amount")

			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			res, err := a.Claims.Submit(cmd.Context(), claimModels.SubmitRequest{
				HospitalName:       hospital,
				ServiceDescription: service,
				Amount:             amount,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Message)
			if res.Notice != "" {
				fmt.Fprintln(out, res.Notice)
			}
			return nil
		},
	}
	submit.Flags().String("hospital", "", "hospital name")
	submit.Flags().String("service", "", "service description, one of the catalog entries")
	submit.Flags().Float64("amount", 0, "paid amount")
	_ = submit.MarkFlagRequired("hospital")
	_ = submit.MarkFlagRequired("service")
	cmd.AddCommand(submit)

	cmd.AddCommand(&cobra.Command{
		Use:   "verify CLAIM_ID",
		Short: "Score a claim and persist the verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := claimModels.ParseClaimID(args[0])
			if err != nil {
				return err
			}
			a, err := loaded(cmd, loadClaims)
			if err != nil {
				return err
			}
			cycle, err := a.Verifier.Verify(cmd.Context(), id)
			if cycle != nil {
				printCycle(cmd.OutOrStdout(), cycle)
			}
			return err
		},
	})

	return cmd
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts and toggle their verification (admin sessions only)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print accounts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loaded(cmd, loadAccounts)
			if err != nil {
				return err
			}
			printAccounts(cmd.OutOrStdout(), a.Accounts.List())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle ACCOUNT_ID",
		Short: "Flip an account's verified flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := accountModels.ParseAccountID(args[0])
			if err != nil {
				return err
			}
			a, err := loaded(cmd, loadAccounts)
			if err != nil {
				return err
			}
			current, err := a.AccountStore.Get(id)
			if err != nil {
				return fmt.Errorf("account %s: %w", id, err)
			}
			res, err := a.Accounts.Toggle(cmd.Context(), id, current.IsVerified)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	})

	return cmd
}

type loader func(ctx context.Context, a *app.App) error

func loadClaims(ctx context.Context, a *app.App) error {
	return a.Claims.Load(ctx)
}

func loadAccounts(ctx context.Context, a *app.App) error {
	if a.Accounts == nil {
		return errors.New("account management requires an admin session")
	}
	return a.Accounts.Load(ctx)
}

func loaded(cmd *cobra.Command, load loader) (*app.App, error) {
	a, err := buildApp(cmd)
	if err != nil {
		return nil, err
	}
	if err := load(cmd.Context(), a); err != nil {
		return nil, err
	}
	return a, nil
}

func printClaims(w io.Writer, claims []claimModels.Claim) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSUBMITTER\tHOSPITAL\tSERVICE\tAMOUNT\tSTATUS")
	for _, c := range claims {
		submitter := c.Submitter.Username
		if submitter == "" {
			submitter = c.Submitter.ID.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			c.ID, submitter, c.HospitalName, c.ServiceDescription, c.Amount.Float64(), c.EffectiveStatus())
	}
	_ = tw.Flush()
}

func printAccounts(w io.Writer, accounts []accountModels.Account) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tVERIFIED")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", a.ID, a.Username, a.Email, a.IsVerified)
	}
	_ = tw.Flush()
}

func printCycle(w io.Writer, c *verification.Cycle) {
	fmt.Fprintf(w, "cycle %s for claim %s: %s\n", c.ID, c.ClaimID, c.State)
	for i, st := range c.Path() {
		if i > 0 {
			fmt.Fprint(w, " -> ")
		}
		fmt.Fprint(w, st)
	}
	fmt.Fprintln(w)
	if c.Verdict != nil {
		fmt.Fprintf(w, "verdict: %s (service code %s, p=%.2f)\n", c.Verdict.Label, c.Verdict.ServiceCode, c.Verdict.Probability)
	}
	if c.Notice != "" {
		fmt.Fprintln(w, c.Notice)
	}
}
