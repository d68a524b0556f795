package api

import (
	"net/http"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

// handleGetBalance returns the balance of an address
func (s *Server) handleGetBalance(c *gin.Context) {
	denom := c.Param("denom")
	if err := ValidateDenom(denom); err != nil {
		writeBadRequest(c, "Invalid denom", err)
		return
	}
	holder, err := ValidateAddress(c.Param("address"))
	if err != nil {
		writeBadRequest(c, "Invalid address", err)
		return
	}

	var balance math.Int
	err = s.node.Query(func(ctx sdk.Context) error {
		if !s.tokenKeeper.HasToken(ctx, denom) {
			return tokentypes.ErrTokenNotFound.Wrap(denom)
		}
		balance = s.tokenKeeper.BalanceOf(ctx, denom, holder)
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Denom:   denom,
		Address: holder.String(),
		Balance: balance.String(),
	})
}

// handleGetAllowance returns how much spender may pull from owner
func (s *Server) handleGetAllowance(c *gin.Context) {
	denom := c.Param("denom")
	if err := ValidateDenom(denom); err != nil {
		writeBadRequest(c, "Invalid denom", err)
		return
	}
	owner, err := ValidateAddress(c.Param("owner"))
	if err != nil {
		writeBadRequest(c, "Invalid owner", err)
		return
	}
	spender, err := ValidateAddress(c.Param("spender"))
	if err != nil {
		writeBadRequest(c, "Invalid spender", err)
		return
	}

	var allowance math.Int
	err = s.node.Query(func(ctx sdk.Context) error {
		if !s.tokenKeeper.HasToken(ctx, denom) {
			return tokentypes.ErrTokenNotFound.Wrap(denom)
		}
		allowance = s.tokenKeeper.Allowance(ctx, denom, owner, spender)
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AllowanceResponse{
		Denom:     denom,
		Owner:     owner.String(),
		Spender:   spender.String(),
		Allowance: allowance.String(),
	})
}

// handleApprove sets the caller's allowance for a spender, the pool account
// by default
func (s *Server) handleApprove(c *gin.Context) {
	owner, err := GetAddressFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	}
	denom := c.Param("denom")
	if err := ValidateDenom(denom); err != nil {
		writeBadRequest(c, "Invalid denom", err)
		return
	}

	var req ApproveRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		writeBadRequest(c, "Invalid request", err)
		return
	}
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		writeBadRequest(c, "Invalid amount", err)
		return
	}
	spender := s.poolKeeper.GetModuleAddress()
	if req.Spender != "" {
		if spender, err = ValidateAddress(req.Spender); err != nil {
			writeBadRequest(c, "Invalid spender", err)
			return
		}
	}

	_, err = s.node.Exec(func(ctx sdk.Context) error {
		return s.tokenKeeper.Approve(ctx, denom, owner, spender, amount)
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AllowanceResponse{
		Denom:     denom,
		Owner:     owner.String(),
		Spender:   spender.String(),
		Allowance: amount.String(),
	})
}

// handleTransfer moves tokens from the caller
func (s *Server) handleTransfer(c *gin.Context) {
	from, err := GetAddressFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	}
	denom := c.Param("denom")
	if err := ValidateDenom(denom); err != nil {
		writeBadRequest(c, "Invalid denom", err)
		return
	}

	var req TransferRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		writeBadRequest(c, "Invalid request", err)
		return
	}
	to, err := ValidateAddress(req.To)
	if err != nil {
		writeBadRequest(c, "Invalid recipient", err)
		return
	}
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		writeBadRequest(c, "Invalid amount", err)
		return
	}

	var balance math.Int
	_, err = s.node.Exec(func(ctx sdk.Context) error {
		if err := s.tokenKeeper.Transfer(ctx, denom, from, to, amount); err != nil {
			return err
		}
		balance = s.tokenKeeper.BalanceOf(ctx, denom, from)
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Denom:   denom,
		Address: from.String(),
		Balance: balance.String(),
	})
}
