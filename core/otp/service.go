package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/trezcool/elimu/core"
)

const (
	codeMin = 1000
	codeMax = 9999
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("otp not found")
)

type (
	Repository interface {
		// UpsertOtp replaces any existing record for v.MobileNumber.
		UpsertOtp(v Verification) (Verification, error)
		GetOtp(mobileNumber string) (Verification, error)
		// MarkOtpVerified consumes the record under the otp table's write lock.
		MarkOtpVerified(mobileNumber string) (Verification, error)
	}

	ServiceInterface interface {
		Issue(mobileNumber string) (Verification, error)
		Verify(mobileNumber, code string) (bool, error)
	}

	Service struct {
		repo   Repository
		smsSvc core.SMSService
		conf   *core.Config
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, smsSvc core.SMSService, conf *core.Config) *Service {
	return &Service{
		repo:   repo,
		smsSvc: smsSvc,
		conf:   conf,
	}
}

// Issue generates a fresh 4-digit code for the given mobile number and hands
// it to the SMS service for out-of-band delivery. Any previously issued code
// for that number becomes invalid, expired or not. The returned record holds
// the plaintext code; no hashing is performed.
func (svc *Service) Issue(mobileNumber string) (Verification, error) {
	code, err := generateCode()
	if err != nil {
		return Verification{}, err
	}

	now := nowFunc().UTC()
	v := Verification{
		MobileNumber: mobileNumber,
		Code:         code,
		Verified:     false,
		ExpiresAt:    now.Add(svc.conf.OTP.ExpirationDelta),
		CreatedAt:    now,
	}
	if v, err = svc.repo.UpsertOtp(v); err != nil {
		return Verification{}, err
	}

	svc.smsSvc.SendMessages(&core.SMSMessage{
		To:   v.MobileNumber,
		Body: fmt.Sprintf("Your %s verification code is %s. It expires in %v.", svc.conf.AppName, v.Code, svc.conf.OTP.ExpirationDelta),
	})
	return v, nil
}

// Verify fails closed: no record, an already consumed record or a record at
// or past its expiry all report false. A matching code is consumed exactly
// once.
func (svc *Service) Verify(mobileNumber, code string) (bool, error) {
	v, err := svc.repo.GetOtp(mobileNumber)
	if err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	if v.Verified || !nowFunc().Before(v.ExpiresAt) {
		return false, nil
	}
	if v.Code != code {
		return false, nil
	}
	if _, err = svc.repo.MarkOtpVerified(mobileNumber); err != nil {
		return false, err
	}
	return true, nil
}

// generateCode draws uniformly over [codeMin, codeMax].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", codeMin+n.Int64()), nil
}
