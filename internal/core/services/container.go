package services

import (
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/platform/config"
)

// Dependencies are the collaborators the core needs from the outside world.
type Dependencies struct {
	Store  portsrepo.UnitOfWork
	Oracle portssvc.PriceOracle
	Sink   portssvc.AuditSink // optional
}

// PoliciesFromConfig derives the fee and passcode policies from configuration.
func PoliciesFromConfig(cfg *config.Config) (FeePolicy, OTPPolicy) {
	fees := FeePolicy{MinMinor: cfg.FeeMinMinor, RateBps: cfg.FeeRateBps}
	otp := OTPPolicy{
		Length:      cfg.OTPLength,
		TTL:         cfg.OTPTTL,
		MaxAttempts: cfg.OTPMaxAttempts,
		HashCost:    cfg.OTPHashCost,
	}
	return fees, otp
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, deps Dependencies, opts ...Option) *portssvc.ServiceContainer {
	fees, otp := PoliciesFromConfig(cfg)
	return NewServiceContainerWithPolicies(deps, fees, otp, opts...)
}

// NewServiceContainerWithPolicies wires every service around one balance mutator.
func NewServiceContainerWithPolicies(deps Dependencies, fees FeePolicy, otp OTPPolicy, opts ...Option) *portssvc.ServiceContainer {
	ledger := NewLedgerService(deps.Store, deps.Sink, opts...)
	return &portssvc.ServiceContainer{
		Account:  NewAccountService(deps.Store, opts...),
		Ledger:   ledger,
		Transfer: NewTransferService(deps.Store, ledger, opts...),
		Payment:  NewPaymentService(deps.Store, ledger, otp, opts...),
		Trade:    NewTradeService(deps.Store, ledger, deps.Oracle, fees, opts...),
		Admin:    NewAdminService(deps.Store, ledger, opts...),
	}
}
