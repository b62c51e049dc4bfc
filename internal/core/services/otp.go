package services

import (
	"fmt"
	"time"

	"github.com/SscSPs/simbank_ledger/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// OTPPolicy controls one-time passcode issuing and checking.
type OTPPolicy struct {
	Length      int
	TTL         time.Duration
	MaxAttempts int
	HashCost    int
}

// DefaultOTPPolicy issues six digit codes valid for ten minutes.
var DefaultOTPPolicy = OTPPolicy{Length: 6, TTL: 10 * time.Minute, MaxAttempts: 5, HashCost: bcrypt.DefaultCost}

// issuedOTP is a freshly generated passcode. Only Hash is ever persisted.
type issuedOTP struct {
	Code      string
	Hash      string
	ExpiresAt time.Time
}

func (p OTPPolicy) issue(now time.Time) (*issuedOTP, error) {
	code, err := utils.GenerateNumericCode(p.Length)
	if err != nil {
		return nil, fmt.Errorf("failed to generate passcode: %w", err)
	}
	hash, err := utils.HashOTP(code, p.HashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash passcode: %w", err)
	}
	return &issuedOTP{Code: code, Hash: hash, ExpiresAt: now.Add(p.TTL)}, nil
}
