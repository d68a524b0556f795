package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolInfo is the immutable part of the pool, fixed by InitPool.
type PoolInfo struct {
	AssetA     string `json:"asset_a"`
	AssetB     string `json:"asset_b"`
	Controller string `json:"controller"`
}

// Pool is the full pool state: identities plus current reserves.
type Pool struct {
	PoolInfo
	ReserveA math.Int `json:"reserve_a"`
	ReserveB math.Int `json:"reserve_b"`
}

// NewPool returns an empty pool over the given assets.
func NewPool(controller sdk.AccAddress, assetA, assetB string) Pool {
	return Pool{
		PoolInfo: PoolInfo{
			AssetA:     assetA,
			AssetB:     assetB,
			Controller: controller.String(),
		},
		ReserveA: math.ZeroInt(),
		ReserveB: math.ZeroInt(),
	}
}

// Validate checks the identities of a pool.
func (p PoolInfo) Validate() error {
	controller, err := sdk.AccAddressFromBech32(p.Controller)
	if err != nil {
		return ErrInvalidAddress.Wrapf("controller: %v", err)
	}
	if controller.Equals(ModuleAddress) {
		return ErrInvalidAddress.Wrap("controller cannot be the pool account")
	}
	if err := sdk.ValidateDenom(p.AssetA); err != nil {
		return ErrInvalidToken.Wrapf("asset a: %v", err)
	}
	if err := sdk.ValidateDenom(p.AssetB); err != nil {
		return ErrInvalidToken.Wrapf("asset b: %v", err)
	}
	if p.AssetA == p.AssetB {
		return ErrInvalidToken.Wrapf("pool assets must differ, both are %s", p.AssetA)
	}
	return nil
}

// Validate checks identities and that the reserves are non-negative.
func (p Pool) Validate() error {
	if err := p.PoolInfo.Validate(); err != nil {
		return err
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() {
		return ErrInvalidAmount.Wrap("reserves cannot be nil")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvariantViolation.Wrapf("negative reserves %s/%s", p.ReserveA, p.ReserveB)
	}
	return nil
}

// HasAsset reports whether denom is one of the two pooled assets.
func (p PoolInfo) HasAsset(denom string) bool {
	return denom == p.AssetA || denom == p.AssetB
}

// OtherAsset returns the counterpart of denom.
func (p PoolInfo) OtherAsset(denom string) (string, error) {
	switch denom {
	case p.AssetA:
		return p.AssetB, nil
	case p.AssetB:
		return p.AssetA, nil
	default:
		return "", ErrInvalidToken.Wrapf("%s is not %s or %s", denom, p.AssetA, p.AssetB)
	}
}

// OrientedReserves returns (reserveIn, reserveOut) for a trade paying denomIn.
func (p Pool) OrientedReserves(denomIn string) (reserveIn, reserveOut math.Int, err error) {
	switch denomIn {
	case p.AssetA:
		return p.ReserveA, p.ReserveB, nil
	case p.AssetB:
		return p.ReserveB, p.ReserveA, nil
	default:
		return math.ZeroInt(), math.ZeroInt(), ErrInvalidToken.Wrapf("%s is not %s or %s", denomIn, p.AssetA, p.AssetB)
	}
}

// IsEmpty reports whether the pool holds no liquidity.
func (p Pool) IsEmpty() bool {
	return p.ReserveA.IsZero() && p.ReserveB.IsZero()
}
