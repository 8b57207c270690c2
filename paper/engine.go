package paper

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tradejournal/internal/id"
	"tradejournal/journal"
	"tradejournal/market"
)

// Close reasons recorded in the journal and passed to listeners.
const (
	ReasonStopLoss    = "StopLoss"
	ReasonTakeProfit  = "TakeProfit"
	ReasonManualClose = "ManualClose"
)

// PositionClosedListener is notified after any closure, manual or triggered.
// Listeners are called after the engine lock is released.
type PositionClosedListener interface {
	OnPositionClosed(positionID, reason string)
}

// ToolListener is notified when a position with a linked drawing closes, so
// the drawing layer can run its own closed transition.
type ToolListener interface {
	OnToolShouldBeRemoved(toolID string)
}

// Recorder persists account, order, and position records. Persistence is an
// external collaborator: failures are logged, never rolled into the trade
// path.
type Recorder interface {
	SaveAccount(Account) error
	SaveOrder(Order) error
	SavePosition(Position) error
}

// ClosedResult is the read-only outcome of a closed position.
type ClosedResult struct {
	ExitPrice float64
	PnL       float64
}

// Engine owns one simulated account and its positions. All mutating
// operations are serialized through a single mutex; trigger evaluation on a
// tick is one atomic pass.
type Engine struct {
	mu        sync.Mutex
	cfg       Config
	log       zerolog.Logger
	acct      Account
	prices    *market.TickStore
	positions map[string]*Position
	journal   journal.Journal
	recorder  Recorder
	lastErr   error

	closedListener PositionClosedListener
	toolListener   ToolListener
}

func NewEngine(cfg Config, j journal.Journal, log zerolog.Logger) *Engine {
	if j == nil {
		j = journal.Nop{}
	}
	return &Engine{
		cfg: cfg,
		log: log.With().Str("component", "paper").Logger(),
		acct: Account{
			ID:             id.New(),
			Balance:        cfg.InitialBalance,
			InitialBalance: cfg.InitialBalance,
			CreatedAt:      time.Now().UTC(),
		},
		prices:    market.NewTickStore(),
		positions: make(map[string]*Position),
		journal:   j,
	}
}

// SetRecorder attaches an optional record store for durable account, order,
// and position records.
func (e *Engine) SetRecorder(r Recorder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recorder = r
}

func (e *Engine) SetPositionClosedListener(l PositionClosedListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closedListener = l
}

func (e *Engine) SetToolListener(l ToolListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.toolListener = l
}

// Account returns a snapshot of the account.
func (e *Engine) Account() Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.acct
}

// CurrentPrice returns the last tick seen for a symbol.
func (e *Engine) CurrentPrice(symbol string) (market.Tick, error) {
	return e.prices.Get(symbol)
}

// Buy opens a long position at the quoted price using the configured default
// quantity, attaching percentage-offset SL/TP levels when configured.
func (e *Engine) Buy(symbol string, price float64) (string, error) {
	return e.open(symbol, SideBuy, price)
}

// Sell opens a short position at the quoted price.
func (e *Engine) Sell(symbol string, price float64) (string, error) {
	return e.open(symbol, SideSell, price)
}

func (e *Engine) open(symbol string, side OrderSide, price float64) (string, error) {
	e.mu.Lock()

	if symbol == "" || price <= 0 || e.cfg.DefaultQuantity <= 0 {
		err := fmt.Errorf("%w: symbol=%q price=%v quantity=%v", ErrInvalidInput, symbol, price, e.cfg.DefaultQuantity)
		e.lastErr = err
		e.mu.Unlock()
		return "", err
	}
	if e.cfg.SinglePositionPerSymbol && e.openForSymbolLocked(symbol) != nil {
		err := fmt.Errorf("%w: %s", ErrDuplicatePosition, symbol)
		e.lastErr = err
		e.mu.Unlock()
		return "", err
	}

	sl, tp := e.autoLevels(side, price)
	posID := e.fillLocked(symbol, side, price, e.cfg.DefaultQuantity, sl, tp, "")

	e.mu.Unlock()
	return posID, nil
}

// OpenPositionFromTool opens a position from validated position-tool
// parameters and returns the new position id. The SL/TP ordering is
// re-checked here: a tool that fails its own validity gate must not reach the
// account.
func (e *Engine) OpenPositionFromTool(symbol string, isLong bool, entryPrice, quantity, stopLoss, takeProfit float64, toolID string) (string, error) {
	e.mu.Lock()

	if symbol == "" || entryPrice <= 0 || quantity <= 0 {
		err := fmt.Errorf("%w: symbol=%q price=%v quantity=%v", ErrInvalidInput, symbol, entryPrice, quantity)
		e.lastErr = err
		e.mu.Unlock()
		return "", err
	}

	ordered := stopLoss < entryPrice && entryPrice < takeProfit
	if !isLong {
		ordered = takeProfit < entryPrice && entryPrice < stopLoss
	}
	if !ordered {
		err := fmt.Errorf("%w: entry=%v sl=%v tp=%v long=%v", ErrInvalidLevels, entryPrice, stopLoss, takeProfit, isLong)
		e.lastErr = err
		e.mu.Unlock()
		return "", err
	}
	if e.cfg.SinglePositionPerSymbol && e.openForSymbolLocked(symbol) != nil {
		err := fmt.Errorf("%w: %s", ErrDuplicatePosition, symbol)
		e.lastErr = err
		e.mu.Unlock()
		return "", err
	}

	side := SideBuy
	if !isLong {
		side = SideSell
	}
	posID := e.fillLocked(symbol, side, entryPrice, quantity, &stopLoss, &takeProfit, toolID)

	e.mu.Unlock()
	return posID, nil
}

// fillLocked creates the order and position for an immediate market fill.
// Inputs are validated by the caller; a fill always succeeds.
func (e *Engine) fillLocked(symbol string, side OrderSide, price, quantity float64, sl, tp *float64, toolID string) string {
	now := time.Now().UTC()

	// Seed the price store so a manual close works before the first tick.
	if _, err := e.prices.Get(symbol); err != nil {
		e.prices.Set(market.Tick{Symbol: symbol, Price: price, Time: now})
	}

	order := Order{
		ID:          id.New(),
		Symbol:      symbol,
		Side:        side,
		Type:        OrderMarket,
		Quantity:    quantity,
		Status:      OrderFilled,
		FilledPrice: &price,
		CreatedAt:   now,
		FilledAt:    &now,
	}

	pos := &Position{
		ID:         id.New(),
		Symbol:     symbol,
		Side:       side,
		Quantity:   quantity,
		EntryPrice: price,
		StopLoss:   sl,
		TakeProfit: tp,
		OpenedAt:   now,
		ToolID:     toolID,
	}
	e.positions[pos.ID] = pos

	e.persistLocked(order, *pos)

	e.log.Info().
		Str("position", pos.ID).
		Str("symbol", symbol).
		Str("side", string(side)).
		Float64("price", price).
		Float64("quantity", quantity).
		Msg("position opened")

	e.snapshotLocked(now)
	return pos.ID
}

// autoLevels derives SL/TP from the configured percentage offsets. Zero
// percent leaves the level unset.
func (e *Engine) autoLevels(side OrderSide, price float64) (sl, tp *float64) {
	slPct, tpPct := e.cfg.StopLossPercent, e.cfg.TakeProfitPercent
	dir := 1.0
	if side == SideSell {
		dir = -1.0
	}
	if slPct > 0 {
		v := price * (1 - dir*slPct/100)
		sl = &v
	}
	if tpPct > 0 {
		v := price * (1 + dir*tpPct/100)
		tp = &v
	}
	return sl, tp
}

// UpdatePrice records the latest tick and evaluates triggers for every open
// position on the symbol. Stop-loss is checked before take-profit; a firing
// position closes at the triggering price, not the exact level, to reflect a
// gap-through fill. Malformed ticks are dropped.
func (e *Engine) UpdatePrice(t market.Tick) error {
	if !t.Valid() {
		e.log.Warn().Str("symbol", t.Symbol).Float64("price", t.Price).Msg("dropping malformed tick")
		return nil
	}

	e.mu.Lock()
	e.prices.Set(t)

	type closure struct {
		positionID string
		toolID     string
		reason     string
	}
	var closed []closure

	for _, p := range e.positions {
		if !p.IsOpen() || p.Symbol != t.Symbol {
			continue
		}

		reason := ""
		switch {
		case p.ShouldTriggerStopLoss(t.Price):
			reason = ReasonStopLoss
		case p.ShouldTriggerTakeProfit(t.Price):
			reason = ReasonTakeProfit
		}
		if reason == "" {
			continue
		}

		e.closeLocked(p, t.Price, t.Time, reason)
		closed = append(closed, closure{p.ID, p.ToolID, reason})
	}

	e.snapshotLocked(t.Time)

	// Capture listeners before releasing the lock; notify after.
	closedListener := e.closedListener
	toolListener := e.toolListener
	e.mu.Unlock()

	for _, c := range closed {
		if closedListener != nil {
			closedListener.OnPositionClosed(c.positionID, c.reason)
		}
		if toolListener != nil && c.toolID != "" {
			toolListener.OnToolShouldBeRemoved(c.toolID)
		}
	}
	return nil
}

// ClosePosition manually closes an open position at the last known price for
// its symbol. Closing an already-closed position is a no-op, not an error, so
// a duplicate UI action and an automatic trigger cannot both apply.
func (e *Engine) ClosePosition(positionID string) error {
	e.mu.Lock()

	p, ok := e.positions[positionID]
	if !ok {
		err := fmt.Errorf("close position: %w: %s", ErrNotFound, positionID)
		e.lastErr = err
		e.mu.Unlock()
		return err
	}
	if !p.IsOpen() {
		e.mu.Unlock()
		return nil
	}

	t, err := e.prices.Get(p.Symbol)
	if err != nil {
		err = fmt.Errorf("close position: no price for %q: %w", p.Symbol, err)
		e.lastErr = err
		e.mu.Unlock()
		return err
	}

	closeTime := t.Time
	if closeTime.IsZero() {
		closeTime = time.Now().UTC()
	}

	e.closeLocked(p, t.Price, closeTime, ReasonManualClose)
	e.snapshotLocked(closeTime)

	toolID := p.ToolID
	closedListener := e.closedListener
	toolListener := e.toolListener
	e.mu.Unlock()

	if closedListener != nil {
		closedListener.OnPositionClosed(positionID, ReasonManualClose)
	}
	if toolListener != nil && toolID != "" {
		toolListener.OnToolShouldBeRemoved(toolID)
	}
	return nil
}

// CloseAll closes every open position at its symbol's last price.
func (e *Engine) CloseAll(reason string) error {
	if reason == "" {
		reason = ReasonManualClose
	}

	e.mu.Lock()

	open := make([]*Position, 0, len(e.positions))
	for _, p := range e.positions {
		if p.IsOpen() {
			open = append(open, p)
		}
	}
	if len(open) == 0 {
		e.mu.Unlock()
		return nil
	}

	// Preflight: every symbol must have a price before any close applies.
	for _, p := range open {
		if _, err := e.prices.Get(p.Symbol); err != nil {
			err = fmt.Errorf("close all: no price for %q: %w", p.Symbol, err)
			e.lastErr = err
			e.mu.Unlock()
			return err
		}
	}

	var snapshotTime time.Time
	type closure struct {
		positionID string
		toolID     string
	}
	var closed []closure

	for _, p := range open {
		t, _ := e.prices.Get(p.Symbol)
		closeTime := t.Time
		if closeTime.IsZero() {
			closeTime = time.Now().UTC()
		}
		if closeTime.After(snapshotTime) {
			snapshotTime = closeTime
		}

		e.closeLocked(p, t.Price, closeTime, reason)
		closed = append(closed, closure{p.ID, p.ToolID})
	}

	e.snapshotLocked(snapshotTime)

	closedListener := e.closedListener
	toolListener := e.toolListener
	e.mu.Unlock()

	for _, c := range closed {
		if closedListener != nil {
			closedListener.OnPositionClosed(c.positionID, reason)
		}
		if toolListener != nil && c.toolID != "" {
			toolListener.OnToolShouldBeRemoved(c.toolID)
		}
	}
	return nil
}

// closeLocked commits one closure: exit fields, balance, cumulative realized
// P&L, journal record, and persistence are applied as a single transition
// under the engine lock. Journal failures are logged like recorder failures,
// never rolled into the trade path.
func (e *Engine) closeLocked(p *Position, exitPrice float64, closeTime time.Time, reason string) {
	pnl := p.UnrealizedPnL(exitPrice)

	p.ClosedAt = &closeTime
	p.ExitPrice = &exitPrice
	p.RealizedPnL = &pnl

	e.acct.Balance += pnl
	e.acct.RealizedPnL += pnl

	e.persistLocked(Order{}, *p)

	e.log.Info().
		Str("position", p.ID).
		Str("symbol", p.Symbol).
		Str("reason", reason).
		Float64("exit", exitPrice).
		Float64("pnl", pnl).
		Msg("position closed")

	err := e.journal.RecordTrade(journal.TradeRecord{
		PositionID:  p.ID,
		Symbol:      p.Symbol,
		Side:        string(p.Side),
		Quantity:    p.Quantity,
		EntryPrice:  p.EntryPrice,
		ExitPrice:   exitPrice,
		OpenTime:    p.OpenedAt,
		CloseTime:   closeTime,
		RealizedPnL: pnl,
		Reason:      reason,
	})
	if err != nil {
		e.log.Warn().Err(err).Str("position", p.ID).Msg("journal trade")
	}
}

// persistLocked saves records to the attached store, if any. A zero-ID order
// means only the position changed.
func (e *Engine) persistLocked(order Order, pos Position) {
	if e.recorder == nil {
		return
	}
	if order.ID != "" {
		if err := e.recorder.SaveOrder(order); err != nil {
			e.log.Warn().Err(err).Str("order", order.ID).Msg("persist order")
		}
	}
	if err := e.recorder.SavePosition(pos); err != nil {
		e.log.Warn().Err(err).Str("position", pos.ID).Msg("persist position")
	}
	if err := e.recorder.SaveAccount(e.acct); err != nil {
		e.log.Warn().Err(err).Str("account", e.acct.ID).Msg("persist account")
	}
}

// snapshotLocked journals equity = balance + unrealized P&L over open
// positions marked at their symbols' last prices. A failed write is logged,
// never surfaced.
func (e *Engine) snapshotLocked(when time.Time) {
	if when.IsZero() {
		when = time.Now().UTC()
	}

	equity := e.acct.Balance
	open := 0
	for _, p := range e.positions {
		if !p.IsOpen() {
			continue
		}
		open++
		t, err := e.prices.Get(p.Symbol)
		if err != nil {
			continue
		}
		equity += p.UnrealizedPnL(t.Price)
	}

	err := e.journal.RecordEquity(journal.EquitySnapshot{
		Time:          when,
		Balance:       e.acct.Balance,
		Equity:        equity,
		RealizedPnL:   e.acct.RealizedPnL,
		OpenPositions: open,
	})
	if err != nil {
		e.log.Warn().Err(err).Msg("journal equity")
	}
}

// GetClosedPositionResult returns the exit price and realized P&L for a
// position that has already closed. Used to synchronize a linked drawing
// after either automatic or manual closure.
func (e *Engine) GetClosedPositionResult(positionID string) (ClosedResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.positions[positionID]
	if !ok {
		return ClosedResult{}, fmt.Errorf("closed result: %w: %s", ErrNotFound, positionID)
	}
	if p.IsOpen() {
		return ClosedResult{}, fmt.Errorf("closed result: %w: %s", ErrStillOpen, positionID)
	}
	return ClosedResult{ExitPrice: *p.ExitPrice, PnL: *p.RealizedPnL}, nil
}

// ResetAccount reinitializes the balance, clears realized P&L, and discards
// all positions. Irreversible.
func (e *Engine) ResetAccount() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.acct.Balance = e.cfg.InitialBalance
	e.acct.RealizedPnL = 0
	e.positions = make(map[string]*Position)
	e.lastErr = nil

	if e.recorder != nil {
		if err := e.recorder.SaveAccount(e.acct); err != nil {
			e.log.Warn().Err(err).Msg("persist account on reset")
		}
	}

	e.log.Info().Float64("balance", e.acct.Balance).Msg("account reset")
}

// PositionForSymbol returns a copy of the open position on a symbol, if any.
func (e *Engine) PositionForSymbol(symbol string) (Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.openForSymbolLocked(symbol); p != nil {
		return *p, true
	}
	return Position{}, false
}

// GetPosition returns a copy of the position with the given id.
func (e *Engine) GetPosition(positionID string) (Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.positions[positionID]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// OpenPositions returns copies of all open positions, ordered by id.
func (e *Engine) OpenPositions() []Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collectLocked(true)
}

// ClosedPositions returns copies of all closed positions, ordered by id.
func (e *Engine) ClosedPositions() []Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collectLocked(false)
}

func (e *Engine) collectLocked(open bool) []Position {
	out := make([]Position, 0, len(e.positions))
	for _, p := range e.positions {
		if p.IsOpen() == open {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (e *Engine) openForSymbolLocked(symbol string) *Position {
	for _, p := range e.positions {
		if p.IsOpen() && p.Symbol == symbol {
			return p
		}
	}
	return nil
}

// HasError reports whether a failed operation left a retained error.
func (e *Engine) HasError() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr != nil
}

// Err returns the retained error from the last failed operation, if any.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// ClearError discards the retained error.
func (e *Engine) ClearError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastErr = nil
}
