// Package replay feeds recorded price ticks through the paper engine. Input
// is a CSV of symbol,price,time[,volume] rows; malformed rows are dropped and
// counted, never partially applied.
package replay

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"tradejournal/market"
	"tradejournal/paper"
)

// Stats summarizes one replay run.
type Stats struct {
	Ticks   int
	Dropped int
}

// RunFile replays a tick CSV file through the engine.
func RunFile(path string, e *paper.Engine, log zerolog.Logger) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open tick file: %w", err)
	}
	defer f.Close()
	return Run(f, e, log)
}

// Run replays tick CSV rows from r through the engine. A header row is
// skipped if present.
func Run(r io.Reader, e *paper.Engine, log zerolog.Logger) (Stats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	log = log.With().Str("component", "replay").Logger()

	var stats Stats
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Dropped++
			continue
		}

		t, ok := parseTick(row)
		if !ok {
			// Tolerate a header row; count everything else.
			if !first {
				stats.Dropped++
			}
			first = false
			continue
		}
		first = false

		if err := e.UpdatePrice(t); err != nil {
			return stats, fmt.Errorf("replay tick %d: %w", stats.Ticks, err)
		}
		stats.Ticks++
	}

	log.Info().Int("ticks", stats.Ticks).Int("dropped", stats.Dropped).Msg("replay finished")
	return stats, nil
}

func parseTick(row []string) (market.Tick, bool) {
	if len(row) < 3 {
		return market.Tick{}, false
	}

	price, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return market.Tick{}, false
	}
	ts, err := time.Parse(time.RFC3339, row[2])
	if err != nil {
		return market.Tick{}, false
	}

	t := market.Tick{Symbol: row[0], Price: price, Time: ts}
	if len(row) > 3 {
		if v, err := strconv.ParseFloat(row[3], 64); err == nil {
			t.Volume = v
		}
	}
	if !t.Valid() {
		return market.Tick{}, false
	}
	return t, true
}
