package types

// Event types for the token module
const (
	EventTypeTransfer = "transfer"
	EventTypeApproval = "approval"
	EventTypeCreate   = "token_created"

	AttributeKeyDenom     = "denom"
	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyOwner     = "owner"
	AttributeKeySpender   = "spender"
	AttributeKeyAmount    = "amount"
)
