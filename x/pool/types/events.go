package types

// Event types for the pool module
const (
	EventTypePoolInitialized  = "pool_initialized"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeSwappedAforB     = "swapped_a_for_b"
	EventTypeSwappedBforA     = "swapped_b_for_a"

	AttributeKeyController = "controller"
	AttributeKeyTrader     = "trader"
	AttributeKeyAssetA     = "asset_a"
	AttributeKeyAssetB     = "asset_b"
	AttributeKeyAmountA    = "amount_a"
	AttributeKeyAmountB    = "amount_b"
	AttributeKeyAmountIn   = "amount_in"
	AttributeKeyAmountOut  = "amount_out"
	AttributeKeyFee        = "fee"
)
