package drawing

import (
	"fmt"

	"github.com/rs/zerolog"

	"tradejournal/paper"
)

// Syncer keeps position tools and the trading engine consistent. Activation
// flows tool → engine (open a position, store the returned id); closure flows
// engine → tool (the engine's tool callback triggers the closed transition).
type Syncer struct {
	engine *paper.Engine
	store  *Store
	log    zerolog.Logger
}

// NewSyncer wires the store to the engine and registers itself as the
// engine's tool listener.
func NewSyncer(engine *paper.Engine, store *Store, log zerolog.Logger) *Syncer {
	s := &Syncer{
		engine: engine,
		store:  store,
		log:    log.With().Str("component", "drawing").Logger(),
	}
	engine.SetToolListener(s)
	return s
}

// Activate promotes a draft tool into a live position. The tool must pass its
// validity gate; on success it transitions to active holding the new
// position id.
func (s *Syncer) Activate(toolID string) (string, error) {
	t, err := s.store.Tool(toolID)
	if err != nil {
		return "", err
	}
	if t.Status != StatusDraft {
		return "", fmt.Errorf("activate tool %s: %w", toolID, ErrNotDraft)
	}
	if !t.IsValid() {
		return "", fmt.Errorf("activate tool %s: %w", toolID, ErrInvalidLevels)
	}

	positionID, err := s.engine.OpenPositionFromTool(
		t.Symbol, t.Long, t.Entry.Price, t.Quantity,
		t.StopLossPrice, t.TakeProfitPrice, toolID,
	)
	if err != nil {
		return "", fmt.Errorf("activate tool %s: %w", toolID, err)
	}

	if err := t.Link(positionID); err != nil {
		return "", err
	}

	s.log.Info().Str("tool", toolID).Str("position", positionID).Msg("tool activated")
	return positionID, nil
}

// OnToolShouldBeRemoved is the engine's callback after a linked position
// closes. The tool transitions to closed, recording the exit price and
// realized P&L read back from the engine. A tool deleted before its position
// closed is simply gone; that is not an error.
func (s *Syncer) OnToolShouldBeRemoved(toolID string) {
	t, err := s.store.Tool(toolID)
	if err != nil {
		s.log.Debug().Str("tool", toolID).Msg("closed position's tool no longer exists")
		return
	}
	if t.Status != StatusActive {
		return
	}

	res, err := s.engine.GetClosedPositionResult(t.LinkedPositionID)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", toolID).Msg("no closed result for linked position")
		return
	}

	if err := t.MarkClosed(res.ExitPrice, res.PnL); err != nil {
		s.log.Warn().Err(err).Str("tool", toolID).Msg("tool close transition failed")
		return
	}
	s.log.Info().Str("tool", toolID).Float64("exit", res.ExitPrice).Float64("pnl", res.PnL).Msg("tool closed")
}
