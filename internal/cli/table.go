package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Table and gameplay commands",
	}

	cmd.AddCommand(newTableJoinCmd())
	cmd.AddCommand(newTableLeaveCmd())
	cmd.AddCommand(newTableStateCmd())
	cmd.AddCommand(newTableHandCmd())
	cmd.AddCommand(newTableHistoryCmd())
	cmd.AddCommand(newTableBidCmd())
	cmd.AddCommand(newTableContraCmd())
	cmd.AddCommand(newTableRekontraCmd())
	cmd.AddCommand(newTablePlayCmd())

	return cmd
}

func newTableJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Take a seat at the table",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result JoinResult

			if err := client.Post("/api/v1/table/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/table/leave", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left the table")
			return nil
		},
	}
}

func newTableStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the current table state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TableState

			if err := client.Get("/api/v1/table", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableHandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hand",
		Short: "Show your current hand",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HandResult

			if err := client.Get("/api/v1/table/hand", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show settled hands for the current match",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HistoryResult

			if err := client.Get("/api/v1/table/hands/history", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableBidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bid <bid>",
		Short: "Submit an auction action",
		Long: `Submit an auction action. Valid bids, lowest to highest:
diamonds, hearts, spades, clubs, no_trumps, all_trumps. Use "pass" to pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"bid": args[0]}

			if err := client.Post("/api/v1/table/bid", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Bid accepted: %s", args[0]))
			return nil
		},
	}
}

func newTableContraCmd() *cobra.Command {
	var pass bool

	cmd := &cobra.Command{
		Use:   "contra",
		Short: "Call contra, or pass on it with --pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/table/contra"
			msg := "Contra called"
			if pass {
				path += "/pass"
				msg = "Passed on contra"
			}

			if err := client.Post(path, nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pass, "pass", false, "Pass instead of calling")

	return cmd
}

func newTableRekontraCmd() *cobra.Command {
	var pass bool

	cmd := &cobra.Command{
		Use:   "rekontra",
		Short: "Call rekontra, or pass on it with --pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/table/rekontra"
			msg := "Rekontra called"
			if pass {
				path += "/pass"
				msg = "Passed on rekontra"
			}

			if err := client.Post(path, nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pass, "pass", false, "Pass instead of calling")

	return cmd
}

func newTablePlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <rank-suit>",
		Short: "Play a card, e.g. J-hearts or 10-spades",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := parseCard(args[0])
			if err != nil {
				return err
			}

			req := map[string]any{"card": card}

			if err := client.Post("/api/v1/table/play", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Played %s", card))
			return nil
		},
	}
}

// parseCard parses "rank-suit" notation like "J-hearts" or "10-spades"
func parseCard(s string) (Card, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Card{}, fmt.Errorf("card must be rank-suit, e.g. J-hearts")
	}
	return Card{Rank: strings.ToUpper(parts[0]), Suit: strings.ToLower(parts[1])}, nil
}
