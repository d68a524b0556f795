package api

import (
	"fmt"
	"regexp"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
)

// Validation constants
const (
	MaxRequestSize   = 1 << 20 // 1 MB
	MaxAmountLength  = 78      // digits of the largest 256-bit integer
	MaxAddressLength = 100
	MaxSecretLength  = 128
)

// unsigned base-10 integer
var integerRegex = regexp.MustCompile(`^[0-9]+$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	if !v.HasErrors() {
		return ""
	}
	var sb strings.Builder
	for i, err := range v.Errors {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return sb.String()
}

// ValidateAddress parses a bech32 account address
func ValidateAddress(address string) (sdk.AccAddress, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	if len(address) > MaxAddressLength {
		return nil, fmt.Errorf("address too long")
	}

	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address format: %w", err)
	}
	return addr, nil
}

// ParseAmount parses an unsigned integer amount. Zero is accepted here; the
// keeper decides whether zero is meaningful for the operation.
func ParseAmount(amount string) (math.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return math.Int{}, fmt.Errorf("amount is required")
	}
	if len(amount) > MaxAmountLength {
		return math.Int{}, fmt.Errorf("amount too long")
	}
	if !integerRegex.MatchString(amount) {
		return math.Int{}, fmt.Errorf("amount must be a non-negative integer")
	}

	v, ok := math.NewIntFromString(amount)
	if !ok {
		return math.Int{}, fmt.Errorf("amount out of range")
	}
	return v, nil
}

// ValidateDenom validates token denomination
func ValidateDenom(denom string) error {
	if denom == "" {
		return fmt.Errorf("denom is required")
	}
	return sdk.ValidateDenom(denom)
}

// ValidateSwapRequest parses every field of a swap request.
func ValidateSwapRequest(req *SwapRequest) (amountIn, minAmountOut math.Int, err error) {
	errs := &ValidationErrors{}

	if err := ValidateDenom(req.TokenIn); err != nil {
		errs.Add("token_in", err.Error())
	}
	amountIn, err = ParseAmount(req.AmountIn)
	if err != nil {
		errs.Add("amount_in", err.Error())
	}
	minAmountOut = math.ZeroInt()
	if req.MinAmountOut != "" {
		minAmountOut, err = ParseAmount(req.MinAmountOut)
		if err != nil {
			errs.Add("min_amount_out", err.Error())
		}
	}

	if errs.HasErrors() {
		return math.Int{}, math.Int{}, errs
	}
	return amountIn, minAmountOut, nil
}

// ValidateLiquidityRequest parses both amounts of a liquidity request.
func ValidateLiquidityRequest(req *LiquidityRequest) (amountA, amountB math.Int, err error) {
	errs := &ValidationErrors{}

	amountA, err = ParseAmount(req.AmountA)
	if err != nil {
		errs.Add("amount_a", err.Error())
	}
	amountB, err = ParseAmount(req.AmountB)
	if err != nil {
		errs.Add("amount_b", err.Error())
	}

	if errs.HasErrors() {
		return math.Int{}, math.Int{}, errs
	}
	return amountA, amountB, nil
}

// ValidateAndBindJSON validates and binds JSON with size limit
func ValidateAndBindJSON(c *gin.Context, obj interface{}) error {
	if c.Request.ContentLength > MaxRequestSize {
		return fmt.Errorf("request body too large (max %d bytes)", MaxRequestSize)
	}

	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// GetAddressFromContext returns the caller address set by AuthMiddleware
func GetAddressFromContext(c *gin.Context) (sdk.AccAddress, error) {
	val, exists := c.Get(contextKeyAddress)
	if !exists {
		return nil, fmt.Errorf("caller not authenticated")
	}
	addr, ok := val.(sdk.AccAddress)
	if !ok || addr.Empty() {
		return nil, fmt.Errorf("invalid caller context")
	}
	return addr, nil
}
