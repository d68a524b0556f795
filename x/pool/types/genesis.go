package types

import "fmt"

// GenesisState defines the pool module's genesis state. Pool is nil until
// the pool has been initialized.
type GenesisState struct {
	Params Params `json:"params"`
	Pool   *Pool  `json:"pool,omitempty"`
}

// DefaultGenesis returns default params and no pool.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	if gs.Pool != nil {
		if err := gs.Pool.Validate(); err != nil {
			return fmt.Errorf("invalid pool: %w", err)
		}
	}
	return nil
}
