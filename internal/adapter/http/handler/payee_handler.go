package handler

import (
	"context"
	"strconv"

	"payee-treasury/internal/adapter/http/dto"
	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"
	"payee-treasury/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// PayeeHandler handles payee registry endpoints.
type PayeeHandler struct {
	registrySvc ports.RegistryService
}

// NewPayeeHandler creates a new PayeeHandler.
func NewPayeeHandler(registrySvc ports.RegistryService) *PayeeHandler {
	return &PayeeHandler{registrySvc: registrySvc}
}

// AddPayee handles POST /api/v1/payees.
func (h *PayeeHandler) AddPayee(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.AddPayeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidInput(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	addr, err := domain.ParseAddress(req.Address)
	if err != nil {
		response.Error(c, apperror.InvalidInput(err.Error()))
		return
	}

	payee, err := h.registrySvc.AddPayee(c.Request.Context(), caller, addr, req.Whitelisted)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewPayeeResponse(payee))
}

// AddPayees handles POST /api/v1/payees/batch.
func (h *PayeeHandler) AddPayees(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.AddPayeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidInput(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	addrs := make([]common.Address, 0, len(req.Addresses))
	for _, a := range req.Addresses {
		addr, err := domain.ParseAddress(a)
		if err != nil {
			response.Error(c, apperror.InvalidInput(err.Error()))
			return
		}
		addrs = append(addrs, addr)
	}

	added, err := h.registrySvc.AddPayees(c.Request.Context(), caller, addrs, req.Whitelisted)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PayeeResponse, 0, len(added))
	for i := range added {
		items = append(items, dto.NewPayeeResponse(&added[i]))
	}
	response.Created(c, items)
}

// Whitelist handles POST /api/v1/payees/:address/whitelist.
func (h *PayeeHandler) Whitelist(c *gin.Context) {
	h.toggle(c, h.registrySvc.WhitelistPayee)
}

// Blacklist handles POST /api/v1/payees/:address/blacklist.
func (h *PayeeHandler) Blacklist(c *gin.Context) {
	h.toggle(c, h.registrySvc.BlacklistPayee)
}

func (h *PayeeHandler) toggle(c *gin.Context, op func(ctx context.Context, caller, payee common.Address) (*domain.Payee, error)) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	addr, ok := addressParam(c)
	if !ok {
		return
	}

	payee, err := op(c.Request.Context(), caller, addr)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewPayeeResponse(payee))
}

// Remove handles DELETE /api/v1/payees/:address.
func (h *PayeeHandler) Remove(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	addr, ok := addressParam(c)
	if !ok {
		return
	}

	if err := h.registrySvc.RemovePayee(c.Request.Context(), caller, addr); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewPayeeResponse(&domain.Payee{Address: addr}))
}

// Get handles GET /api/v1/payees/:address. Unknown addresses return the
// default record rather than 404.
func (h *PayeeHandler) Get(c *gin.Context) {
	addr, ok := addressParam(c)
	if !ok {
		return
	}

	payee, err := h.registrySvc.GetPayee(c.Request.Context(), addr)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewPayeeResponse(payee))
}

// IsWhitelisted handles GET /api/v1/payees/:address/whitelisted.
func (h *PayeeHandler) IsWhitelisted(c *gin.Context) {
	addr, ok := addressParam(c)
	if !ok {
		return
	}

	whitelisted, err := h.registrySvc.IsWhitelisted(c.Request.Context(), addr)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.WhitelistedResponse{Address: addr.Hex(), Whitelisted: whitelisted})
}

// List handles GET /api/v1/payees.
func (h *PayeeHandler) List(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}
	params := ports.PayeeListParams{Page: page, PageSize: pageSize}

	if w := c.Query("whitelisted"); w != "" {
		v, err := strconv.ParseBool(w)
		if err != nil {
			response.Error(c, apperror.InvalidInput("whitelisted must be true or false"))
			return
		}
		params.Whitelisted = &v
	}

	payees, total, err := h.registrySvc.ListPayees(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PayeeResponse, 0, len(payees))
	for i := range payees {
		items = append(items, dto.NewPayeeResponse(&payees[i]))
	}
	response.OK(c, dto.PayeeListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: dto.TotalPages(total, pageSize),
	})
}
