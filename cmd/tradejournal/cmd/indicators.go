package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tradejournal/indicators"
	"tradejournal/market"
)

var (
	indType    string
	indPeriod  int
	indPeriod2 int
)

var indicatorsCmd = &cobra.Command{
	Use:   "indicators <candles.csv>",
	Short: "Compute an indicator series over a candle CSV",
	Long: `Indicators reads candles (time,open,high,low,close[,volume] rows,
RFC3339 times) and prints the requested indicator series aligned to the
input. Entries without enough history print as "-".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		candles, err := loadCandleCSV(args[0])
		if err != nil {
			return err
		}

		res := indicators.Compute(indicators.Config{
			ID:      "cli",
			Type:    indicators.Type(indType),
			Period:  indPeriod,
			Period2: indPeriod2,
			Enabled: true,
		}, candles)

		for i, c := range candles {
			fmt.Fprintf(cmd.OutOrStdout(), "%s close=%.4f %s=%s",
				c.Time.Format(time.RFC3339), c.Close, indType, fmtVal(res.Values, i))
			for name, series := range res.Extra {
				fmt.Fprintf(cmd.OutOrStdout(), " %s=%s", name, fmtVal(series, i))
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}

func fmtVal(s indicators.Series, i int) string {
	if !s.Defined(i) {
		return "-"
	}
	return strconv.FormatFloat(s[i], 'f', 4, 64)
}

func loadCandleCSV(path string) ([]market.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candle file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	var out []market.Candle
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		c, ok := parseCandleRow(row)
		if !ok {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCandleRow(row []string) (market.Candle, bool) {
	if len(row) < 5 {
		return market.Candle{}, false
	}
	ts, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return market.Candle{}, false
	}
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return market.Candle{}, false
		}
		vals[i] = v
	}
	c := market.Candle{Time: ts, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3]}
	if len(row) > 5 {
		if v, err := strconv.ParseFloat(row[5], 64); err == nil {
			c.Volume = v
		}
	}
	return c, true
}

func init() {
	indicatorsCmd.Flags().StringVar(&indType, "type", "sma", "indicator type: sma, ema, rsi, bollinger, macd")
	indicatorsCmd.Flags().IntVar(&indPeriod, "period", 14, "indicator period (MACD fast period)")
	indicatorsCmd.Flags().IntVar(&indPeriod2, "period2", 0, "secondary period (MACD slow period)")
	rootCmd.AddCommand(indicatorsCmd)
}
