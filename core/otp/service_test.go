package otp

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/elimu/core"
	smssvc "github.com/trezcool/elimu/services/sms"
)

// fakeRepository keeps one record per mobile number, like the real stores.
type fakeRepository struct {
	records map[string]Verification
}

var _ Repository = (*fakeRepository)(nil)

func (repo *fakeRepository) UpsertOtp(v Verification) (Verification, error) {
	v.ID = uuid.NewString()
	repo.records[v.MobileNumber] = v
	return v, nil
}

func (repo *fakeRepository) GetOtp(mobileNumber string) (Verification, error) {
	v, ok := repo.records[mobileNumber]
	if !ok {
		return Verification{}, ErrNotFound
	}
	return v, nil
}

func (repo *fakeRepository) MarkOtpVerified(mobileNumber string) (Verification, error) {
	v, ok := repo.records[mobileNumber]
	if !ok {
		return Verification{}, ErrNotFound
	}
	v.Verified = true
	repo.records[mobileNumber] = v
	return v, nil
}

func setup(t *testing.T) (*Service, Repository) {
	t.Helper()
	conf := &core.Config{
		AppName:  "Elimu",
		TestMode: true,
		OTP:      core.OTPConfig{ExpirationDelta: 5 * time.Minute},
	}
	repo := &fakeRepository{records: make(map[string]Verification)}
	svc := NewService(repo, smssvc.NewConsoleServiceMock(conf), conf)

	smssvc.ClearSentMessages()
	return svc, repo
}

func Test_Service_Issue(t *testing.T) {
	svc, _ := setup(t)

	v, err := svc.Issue("+254712345678")
	if err != nil {
		t.Fatalf("Issue() failed, %v", err)
	}

	if len(v.Code) != 4 {
		t.Errorf("Issue() code = %q; want 4 digits", v.Code)
	}
	n, err := strconv.Atoi(v.Code)
	if err != nil {
		t.Fatalf("Issue() code = %q; not numeric", v.Code)
	}
	if n < codeMin || n > codeMax {
		t.Errorf("Issue() code = %d; want within [%d, %d]", n, codeMin, codeMax)
	}
	if v.Verified {
		t.Error("Issue() record must start unverified")
	}
	if got := v.ExpiresAt.Sub(v.CreatedAt); got != 5*time.Minute {
		t.Errorf("Issue() expiry window = %v; want %v", got, 5*time.Minute)
	}

	// the code goes out by SMS
	if len(smssvc.SentMessages) != 1 {
		t.Fatalf("Issue() sent %d messages; want 1", len(smssvc.SentMessages))
	}
	msg := smssvc.SentMessages[0]
	if msg.To != "+254712345678" {
		t.Errorf("Issue() message to = %s; want +254712345678", msg.To)
	}
	if !strings.Contains(msg.Body, v.Code) {
		t.Errorf("Issue() message body %q does not carry the code %q", msg.Body, v.Code)
	}
}

func Test_Service_Issue_replacesPreviousCode(t *testing.T) {
	svc, repo := setup(t)
	mobile := "+254712345678"

	// "0000" can never be generated, so a hit on it would prove the old
	// record survived
	_, err := repo.UpsertOtp(Verification{
		MobileNumber: mobile,
		Code:         "0000",
		ExpiresAt:    time.Now().UTC().Add(5 * time.Minute),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("UpsertOtp() failed, %v", err)
	}

	v, err := svc.Issue(mobile)
	if err != nil {
		t.Fatalf("Issue() failed, %v", err)
	}

	if ok, _ := svc.Verify(mobile, "0000"); ok {
		t.Error("Verify() accepted a replaced code")
	}
	if ok, _ := svc.Verify(mobile, v.Code); !ok {
		t.Error("Verify() rejected the fresh code")
	}
}

func Test_Service_Verify(t *testing.T) {
	defer func() { nowFunc = time.Now }()

	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		code    string // defaults to the issued code
		mobile  string // defaults to the issued mobile number
		now     time.Time
		consume bool // consume the code before verifying
		want    bool
	}{
		{name: "ok", now: issued.Add(time.Minute), want: true},
		{name: "ok at the wire", now: issued.Add(5*time.Minute - time.Second), want: true},
		{name: "expired at exactly 5min", now: issued.Add(5 * time.Minute)},
		{name: "expired", now: issued.Add(6 * time.Minute)},
		{name: "wrong code", code: "0000", now: issued.Add(time.Minute)},
		{name: "unknown number", mobile: "+254700000000", now: issued.Add(time.Minute)},
		{name: "already consumed", now: issued.Add(time.Minute), consume: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setup(t)

			nowFunc = func() time.Time { return issued }
			v, err := svc.Issue("+254712345678")
			if err != nil {
				t.Fatalf("Issue() failed, %v", err)
			}

			nowFunc = func() time.Time { return tt.now }
			if tt.consume {
				if ok, _ := svc.Verify(v.MobileNumber, v.Code); !ok {
					t.Fatal("Verify() failed to consume the code")
				}
			}

			code := v.Code
			if tt.code != "" {
				code = tt.code
			}
			mobile := v.MobileNumber
			if tt.mobile != "" {
				mobile = tt.mobile
			}

			got, err := svc.Verify(mobile, code)
			if err != nil {
				t.Fatalf("Verify() failed, %v", err)
			}
			if got != tt.want {
				t.Errorf("Verify() = %v; want %v", got, tt.want)
			}
		})
	}
}
