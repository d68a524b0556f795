package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// ModuleCdc encodes the pool metadata and params kept in the store.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	ModuleCdc.Seal()
}
