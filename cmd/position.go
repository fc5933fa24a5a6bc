package cmd

import (
	"encoding/json"

	"lending/core"
	"lending/handler/views"
	"lending/service/clock"
	"lending/service/position"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var positionCmd = &cobra.Command{
	Use:     "position",
	Aliases: []string{"positions"},
	Short:   "inspect positions",
}

var positionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "show a position with its quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		owner, _ := cmd.Flags().GetString("owner")
		p, quote, err := readOnlyPositions(cmd, database).Quote(cmd.Context(), owner)
		if err != nil {
			return err
		}

		return printJSON(cmd, views.Position{Position: p, Quote: quote})
	},
}

var positionLiquidatableCmd = &cobra.Command{
	Use:   "liquidatable",
	Short: "list liquidatable positions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		store := providePositionStore(database)
		positions := readOnlyPositions(cmd, database)

		limit, _ := cmd.Flags().GetInt("limit")
		var from uint64
		for {
			active, err := store.ListActive(ctx, from, limit)
			if err != nil {
				return err
			}

			for _, p := range active {
				from = p.ID

				ok, reason, err := positions.Liquidatable(ctx, p)
				if err != nil {
					return err
				}

				if ok {
					cmd.Println(p.Owner, p.CollateralAmount, p.LoanAmount, reason)
				}
			}

			if len(active) < limit {
				return nil
			}
		}
	},
}

// readOnlyPositions engine without a ledger, only for quotes
func readOnlyPositions(cmd *cobra.Command, database *db.DB) core.PositionService {
	var c core.Clock = provideClock()
	if at, _ := cmd.Flags().GetInt64("at"); at > 0 {
		c = clock.Fixed(at)
	}

	return position.New(
		providePositionConfig(),
		providePositionStore(database),
		nil,
		provideValuation(),
		c,
		nil,
	)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(b))
	return nil
}

func init() {
	rootCmd.AddCommand(positionCmd)
	positionCmd.PersistentFlags().Int64("at", 0, "evaluate at unix time instead of now")

	positionCmd.AddCommand(positionShowCmd)
	positionShowCmd.Flags().String("owner", "", "position owner")
	_ = positionShowCmd.MarkFlagRequired("owner")

	positionCmd.AddCommand(positionLiquidatableCmd)
	positionLiquidatableCmd.Flags().Int("limit", 100, "page size")
}
