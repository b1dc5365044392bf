package handler

import (
	"fmt"
	"strconv"

	"payee-treasury/internal/adapter/http/middleware"
	"payee-treasury/internal/core/domain"
	"payee-treasury/pkg/apperror"
	"payee-treasury/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// requireCaller returns the authenticated caller or renders SEC_001.
func requireCaller(c *gin.Context) (common.Address, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrMissingCredentials())
	}
	return caller, ok
}

// addressParam parses the :address path segment.
func addressParam(c *gin.Context) (common.Address, bool) {
	addr, err := domain.ParseAddress(c.Param("address"))
	if err != nil {
		response.Error(c, apperror.InvalidInput(err.Error()))
		return common.Address{}, false
	}
	return addr, true
}

// pagination reads page and page_size. Out-of-range sizes fall back to the
// default; a page past domain.MaxPage renders VAL_001.
func pagination(c *gin.Context) (page, pageSize int, ok bool) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > domain.MaxPageSize {
		pageSize = domain.DefaultPageSize
	}
	if page > domain.MaxPage {
		response.Error(c, apperror.InvalidInput(fmt.Sprintf("page must not exceed %d", domain.MaxPage)))
		return 0, 0, false
	}
	return page, pageSize, true
}
