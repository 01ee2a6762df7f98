package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "github.com/Hudmebac/heggiegame-sub000/internal/cli"
	"github.com/Hudmebac/heggiegame-sub000/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "heggiectl",
		Short:        "Command-line client for the heggie game server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "server base URL")

	root.AddCommand(
		newStateCmd(&apiBase),
		newNewGameCmd(&apiBase),
		newTradeCmd(&apiBase),
		newTravelCmd(&apiBase),
		newEncounterCmd(&apiBase),
		newVentureCmd(&apiBase),
		newMissionCmd(&apiBase),
		newLoanCmd(&apiBase),
		newSaveCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func newStateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the current game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			out, err := newClient(apiBase).State(ctx)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
}

func newNewGameCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new-game",
		Short: "Abandon the current run and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			out, err := newClient(apiBase).NewGame(ctx)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
}

func newTradeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "trade <buy|sell> <item> <quantity>",
		Short: "Buy or sell a commodity on the local market",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("quantity must be an integer: %v", err)
			}
			ctx, cancel := cmdContext()
			defer cancel()
			out, err := newClient(apiBase).Trade(ctx, args[1], args[0], qty)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
}

func newTravelCmd(apiBase *string) *cobra.Command {
	var planOnly bool
	cmd := &cobra.Command{
		Use:   "travel <system>",
		Short: "Jump to another system (use --plan to only price the jump)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			client := newClient(apiBase)
			if planOnly {
				out, err := client.PlanTravel(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(out)
			}
			out, err := client.Travel(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	cmd.Flags().BoolVar(&planOnly, "plan", false, "price the jump without committing")
	return cmd
}

func newEncounterCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encounter <scan|fight|evade|bribe>",
		Short: "Act on a pending pirate encounter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			client := newClient(apiBase)
			if args[0] == "scan" {
				out, err := client.ScanEncounter(ctx)
				if err != nil {
					return err
				}
				return printJSON(out)
			}
			out, err := client.ResolveEncounter(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	return cmd
}

func newVentureCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venture",
		Short: "Operate a planetary venture",
	}

	for _, action := range []string{"click", "bots/hire", "purchase", "expand", "liquidate"} {
		action := action
		use := strings.ReplaceAll(action, "/", "-")
		cmd.AddCommand(&cobra.Command{
			Use:   use + " <venture>",
			Short: strings.ReplaceAll(use, "-", " ") + " for the named venture",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := cmdContext()
				defer cancel()
				out, err := newClient(apiBase).VentureAction(ctx, args[0], action, nil)
				if err != nil {
					return err
				}
				return printJSON(out)
			},
		})
	}

	stake := &cobra.Command{
		Use:   "stake <venture> <partner> <percentage> <offer>",
		Short: "Sell a partner stake in an establishment",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("percentage must be a float: %v", err)
			}
			offer, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("offer must be an integer: %v", err)
			}
			ctx, cancel := cmdContext()
			defer cancel()
			out, err := newClient(apiBase).VentureAction(ctx, args[0], "stake", map[string]any{
				"partner":    args[1],
				"percentage": pct,
				"offer":      offer,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	cmd.AddCommand(stake)
	return cmd
}

func newMissionCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Work the mission boards",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "generate <trade|taxi|military|diplomatic>",
		Short: "Restock a mission board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			out, err := newClient(apiBase).GenerateMissions(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "accept <mission-id>",
		Short: "Accept an available mission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			out, err := newClient(apiBase).AcceptMission(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	})
	return cmd
}

func newLoanCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Borrow against your standing",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "take <amount>",
		Short: "Take out a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("amount must be an integer: %v", err)
			}
			ctx, cancel := cmdContext()
			defer cancel()
			out, err := newClient(apiBase).TakeLoan(ctx, amount)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "repay <loan-id> <amount>",
		Short: "Repay part or all of a loan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("amount must be an integer: %v", err)
			}
			ctx, cancel := cmdContext()
			defer cancel()
			out, err := newClient(apiBase).RepayLoan(ctx, args[0], amount)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	})
	return cmd
}

func newSaveCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Move a run between servers as a share token",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print the current run as a share token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			token, err := newClient(apiBase).ExportToken(ctx)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <token>",
		Short: "Replace the current run with a share token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext()
			defer cancel()
			out, err := newClient(apiBase).ImportToken(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	})
	return cmd
}
