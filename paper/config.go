package paper

// Config holds the engine's tunable parameters.
type Config struct {
	InitialBalance  float64 `json:"initial_balance" yaml:"initial_balance"`
	DefaultQuantity float64 `json:"default_quantity" yaml:"default_quantity"`

	// Percentage offsets applied to the fill price when Buy/Sell attach
	// automatic SL/TP levels. Zero disables the respective level.
	StopLossPercent   float64 `json:"stop_loss_percent" yaml:"stop_loss_percent"`
	TakeProfitPercent float64 `json:"take_profit_percent" yaml:"take_profit_percent"`

	// SinglePositionPerSymbol rejects a second open position on a symbol.
	SinglePositionPerSymbol bool `json:"single_position_per_symbol" yaml:"single_position_per_symbol"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		InitialBalance:          10_000,
		DefaultQuantity:         1,
		SinglePositionPerSymbol: true,
	}
}
