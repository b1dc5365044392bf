package handler

import (
	"context"

	"payee-treasury/internal/adapter/http/dto"
	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"
	"payee-treasury/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
)

// TreasuryHandler handles funding, withdrawal and limit endpoints.
type TreasuryHandler struct {
	treasurySvc ports.TreasuryService
}

// NewTreasuryHandler creates a new TreasuryHandler.
func NewTreasuryHandler(treasurySvc ports.TreasuryService) *TreasuryHandler {
	return &TreasuryHandler{treasurySvc: treasurySvc}
}

// Deposit handles POST /api/v1/treasury/deposits.
func (h *TreasuryHandler) Deposit(c *gin.Context) {
	h.withAmount(c, func(ctx context.Context, caller common.Address, amount *uint256.Int) (interface{}, error) {
		if err := h.treasurySvc.Deposit(ctx, caller, amount); err != nil {
			return nil, err
		}
		return h.overview(ctx)
	})
}

// OwnerWithdraw handles POST /api/v1/treasury/withdrawals/owner.
func (h *TreasuryHandler) OwnerWithdraw(c *gin.Context) {
	h.withAmount(c, func(ctx context.Context, caller common.Address, amount *uint256.Int) (interface{}, error) {
		if err := h.treasurySvc.OwnerWithdraws(ctx, caller, amount); err != nil {
			return nil, err
		}
		return h.overview(ctx)
	})
}

// PayeeWithdraw handles POST /api/v1/treasury/withdrawals/payee.
func (h *TreasuryHandler) PayeeWithdraw(c *gin.Context) {
	h.withAmount(c, func(ctx context.Context, caller common.Address, amount *uint256.Int) (interface{}, error) {
		payee, err := h.treasurySvc.PayeeWithdraws(ctx, caller, amount)
		if err != nil {
			return nil, err
		}
		return dto.NewPayeeResponse(payee), nil
	})
}

// SetDailyLimit handles PUT /api/v1/treasury/daily-limit.
func (h *TreasuryHandler) SetDailyLimit(c *gin.Context) {
	h.withAmount(c, func(ctx context.Context, caller common.Address, amount *uint256.Int) (interface{}, error) {
		if err := h.treasurySvc.SetDailyLimit(ctx, caller, amount); err != nil {
			return nil, err
		}
		return dto.DailyLimitResponse{DailyLimit: amount.Dec()}, nil
	})
}

// GetDailyLimit handles GET /api/v1/treasury/daily-limit.
func (h *TreasuryHandler) GetDailyLimit(c *gin.Context) {
	limit, err := h.treasurySvc.DailyLimit(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.DailyLimitResponse{DailyLimit: limit.Dec()})
}

// Allowance handles GET /api/v1/treasury/allowances/:address.
func (h *TreasuryHandler) Allowance(c *gin.Context) {
	addr, ok := addressParam(c)
	if !ok {
		return
	}
	allowance, err := h.treasurySvc.Allowance(c.Request.Context(), addr)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewAllowanceResponse(allowance))
}

// Overview handles GET /api/v1/treasury.
func (h *TreasuryHandler) Overview(c *gin.Context) {
	resp, err := h.overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *TreasuryHandler) overview(ctx context.Context) (interface{}, error) {
	o, err := h.treasurySvc.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewTreasuryResponse(o), nil
}

// withAmount binds an AmountRequest and runs op for the authenticated caller.
func (h *TreasuryHandler) withAmount(c *gin.Context, op func(ctx context.Context, caller common.Address, amount *uint256.Int) (interface{}, error)) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidInput(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, apperror.InvalidInput(err.Error()))
		return
	}

	result, err := op(c.Request.Context(), caller, amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
