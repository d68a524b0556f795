package types

import "fmt"

// MaxSwapFeeBps caps the swap fee at 10%.
const MaxSwapFeeBps = 1_000

// Params are the tunable pool parameters.
type Params struct {
	// SwapFeeBps is withheld from every swap input before pricing. The gross
	// input is still credited to the reserve.
	SwapFeeBps uint32 `json:"swap_fee_bps"`
}

// DefaultParams returns a fee-free configuration.
func DefaultParams() Params {
	return Params{SwapFeeBps: 0}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.SwapFeeBps > MaxSwapFeeBps {
		return ErrInvalidParams.Wrapf("swap fee %d bps exceeds maximum %d", p.SwapFeeBps, MaxSwapFeeBps)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("swap_fee_bps: %d", p.SwapFeeBps)
}
