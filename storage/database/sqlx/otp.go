package sqlxrepos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/otp"
)

type otpRepository struct {
	db *sqlx.DB
}

var _ otp.Repository = (*otpRepository)(nil) // interface compliance check

func NewOtpRepository(db *sqlx.DB) otp.Repository {
	return &otpRepository{db: db}
}

func (repo *otpRepository) UpsertOtp(v otp.Verification) (otp.Verification, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	_, err := repo.db.NamedExec(`
		INSERT INTO otp_verification (id, mobile_number, otp, verified, expires_at, created_at)
		VALUES (:id, :mobile_number, :otp, :verified, :expires_at, :created_at)
		ON CONFLICT (mobile_number) DO UPDATE
		SET id = :id, otp = :otp, verified = :verified, expires_at = :expires_at, created_at = :created_at`,
		v,
	)
	if err != nil {
		return otp.Verification{}, errors.Wrap(err, "upserting otp")
	}
	return v, nil
}

func (repo *otpRepository) GetOtp(mobileNumber string) (otp.Verification, error) {
	var v otp.Verification
	err := repo.db.Get(&v, `SELECT * FROM otp_verification WHERE mobile_number = $1`, mobileNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return otp.Verification{}, otp.ErrNotFound
		}
		return otp.Verification{}, errors.Wrap(err, "getting otp")
	}
	return v, nil
}

func (repo *otpRepository) MarkOtpVerified(mobileNumber string) (otp.Verification, error) {
	res, err := repo.db.Exec(`UPDATE otp_verification SET verified = TRUE WHERE mobile_number = $1`, mobileNumber)
	if err != nil {
		return otp.Verification{}, errors.Wrap(err, "marking otp verified")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return otp.Verification{}, otp.ErrNotFound
	}
	return repo.GetOtp(mobileNumber)
}
