package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradejournal/drawing"
	"tradejournal/market"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted paper-trading session",
	Long: `Demo opens a position from a position tool, streams a few ticks, and
shows the stop-loss trigger closing both the position and the tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		e, log, cleanup, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		out := cmd.OutOrStdout()
		drawings := drawing.NewStore()
		syncer := drawing.NewSyncer(e, drawings, log)

		start := time.Now().UTC()
		tool := drawing.CreateLong("DEMO", drawing.Point{Time: start, Price: 100}, start.Add(time.Hour), cfg.Engine.DefaultQuantity, 0, 0)
		drawings.Add(tool)
		fmt.Fprintf(out, "tool %s: entry=%.2f sl=%.2f tp=%.2f r:r=%.1f\n",
			tool.ID(), tool.Entry.Price, tool.StopLossPrice, tool.TakeProfitPrice, tool.RiskRewardRatio())

		positionID, err := syncer.Activate(tool.ID())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "opened position %s\n", positionID)

		for i, price := range []float64{100.5, 99.2, 97.9} {
			tick := market.Tick{Symbol: "DEMO", Price: price, Time: start.Add(time.Duration(i+1) * time.Minute)}
			if err := e.UpdatePrice(tick); err != nil {
				return err
			}
			fmt.Fprintf(out, "tick %.2f  open positions: %d\n", price, len(e.OpenPositions()))
		}

		res, err := e.GetClosedPositionResult(positionID)
		if err != nil {
			return err
		}
		acct := e.Account()
		fmt.Fprintf(out, "closed at %.2f (pnl %.2f), tool status %s\n", res.ExitPrice, res.PnL, tool.Status)
		fmt.Fprintf(out, "balance %.2f  return %.2f%%\n", acct.Balance, acct.TotalReturnPercent())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
