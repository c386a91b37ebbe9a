package otp

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
)

// Verification is the live OTP record for one mobile number.
// A number has at most one record; issuing a new code replaces it.
type Verification struct {
	ID           string    `json:"id" db:"id"`
	MobileNumber string    `json:"mobileNumber" db:"mobile_number"`
	Code         string    `json:"otp" db:"otp"`
	Verified     bool      `json:"verified" db:"verified"`
	ExpiresAt    time.Time `json:"expiresAt" db:"expires_at"` // UTC
	CreatedAt    time.Time `json:"createdAt" db:"created_at"` // UTC
}

// NewOtp is a request for a fresh code.
type NewOtp struct {
	MobileNumber string `json:"mobileNumber" validate:"required,mobilenum"`
}

func (no *NewOtp) Validate(validate *validator.Validate) error {
	no.MobileNumber = core.CleanString(no.MobileNumber)
	return validate.Struct(no)
}

// VerifyOtp is a code consumption request.
type VerifyOtp struct {
	MobileNumber string `json:"mobileNumber" validate:"required,mobilenum"`
	Code         string `json:"otp" validate:"required,len=4,numeric"`
}

func (vo *VerifyOtp) Validate(validate *validator.Validate) error {
	vo.MobileNumber = core.CleanString(vo.MobileNumber)
	vo.Code = core.CleanString(vo.Code)
	return validate.Struct(vo)
}
