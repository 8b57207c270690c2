package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"tradejournal/config"
	"tradejournal/journal"
	"tradejournal/logging"
	"tradejournal/paper"
	"tradejournal/store"
)

// buildEngine constructs the engine with the journal and record store the
// config selects. The returned cleanup closes both backends.
func buildEngine(cfg *config.Config) (*paper.Engine, zerolog.Logger, func(), error) {
	log := logging.New(cfg.Logging)

	var j journal.Journal = journal.Nop{}
	var err error
	switch cfg.Journal.Type {
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	}
	if err != nil {
		return nil, log, nil, fmt.Errorf("open journal: %w", err)
	}

	e := paper.NewEngine(cfg.Engine, j, log)

	var rs store.RecordStore
	if cfg.Store.Type == "sqlite" {
		rs, err = store.NewSQLite(cfg.Store.DBPath)
		if err != nil {
			j.Close()
			return nil, log, nil, fmt.Errorf("open record store: %w", err)
		}
		e.SetRecorder(rs)
	}

	cleanup := func() {
		if rs != nil {
			rs.Close()
		}
		j.Close()
	}
	return e, log, cleanup, nil
}
