package service

import (
	"context"
	"errors"
	"fmt"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// ConstructionParams are the textual construction inputs read from
// configuration. Amounts are base-10 strings in base units.
type ConstructionParams struct {
	Deployer       string
	Payees         []string
	Whitelisted    []bool
	DailyLimit     string
	InitialFunding string
}

// ParseConstruction validates params and converts them into an
// InitializeRequest. An empty InitialFunding means no funding.
func ParseConstruction(params ConstructionParams) (ports.InitializeRequest, error) {
	deployer, err := domain.ParseAddress(params.Deployer)
	if err != nil {
		return ports.InitializeRequest{}, fmt.Errorf("deployer: %w", err)
	}
	if len(params.Payees) != len(params.Whitelisted) {
		return ports.InitializeRequest{}, fmt.Errorf("got %d payees but %d whitelisted flags", len(params.Payees), len(params.Whitelisted))
	}

	payees := make([]common.Address, 0, len(params.Payees))
	for i, s := range params.Payees {
		addr, err := domain.ParseAddress(s)
		if err != nil {
			return ports.InitializeRequest{}, fmt.Errorf("payee %d: %w", i, err)
		}
		payees = append(payees, addr)
	}

	limit, err := domain.ParseAmount(params.DailyLimit)
	if err != nil {
		return ports.InitializeRequest{}, fmt.Errorf("daily limit: %w", err)
	}

	req := ports.InitializeRequest{
		Deployer:    deployer,
		Payees:      payees,
		Whitelisted: append([]bool(nil), params.Whitelisted...),
		DailyLimit:  limit,
	}
	if params.InitialFunding != "" {
		funding, err := domain.ParseAmount(params.InitialFunding)
		if err != nil {
			return ports.InitializeRequest{}, fmt.Errorf("initial funding: %w", err)
		}
		req.InitialFunding = funding
	}
	return req, nil
}

// Bootstrap constructs the treasury on first boot. A treasury that already
// exists is left untouched and reported with constructed=false.
func Bootstrap(ctx context.Context, svc ports.TreasuryService, req ports.InitializeRequest, log zerolog.Logger) (constructed bool, err error) {
	_, err = svc.Initialize(ctx, req)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.ErrAlreadyInitialized().Code {
			log.Info().Msg("treasury already initialized, skipping construction")
			return false, nil
		}
		return false, err
	}
	return true, nil
}
