package inmemdb

import (
	"github.com/google/uuid"

	"github.com/trezcool/elimu/core/otp"
)

type otpRepository struct {
	db *otpTable
}

var _ otp.Repository = (*otpRepository)(nil) // interface compliance check

func NewOtpRepository(db *DB) otp.Repository {
	return &otpRepository{db: db.otp}
}

func (repo *otpRepository) UpsertOtp(v otp.Verification) (otp.Verification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	repo.db.table[v.MobileNumber] = &v
	return v, nil
}

func (repo *otpRepository) GetOtp(mobileNumber string) (otp.Verification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if v, ok := repo.db.table[mobileNumber]; ok {
		return *v, nil
	}
	return otp.Verification{}, otp.ErrNotFound
}

func (repo *otpRepository) MarkOtpVerified(mobileNumber string) (otp.Verification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	v, ok := repo.db.table[mobileNumber]
	if !ok {
		return otp.Verification{}, otp.ErrNotFound
	}
	v.Verified = true
	return *v, nil
}
