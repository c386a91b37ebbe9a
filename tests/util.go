package testutil

import (
	"testing"
	"time"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, mobileNumber, class string,
	points int,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		MobileNumber: mobileNumber,
		Name:         name,
		Class:        class,
		Language:     user.DefaultLanguage,
		Points:       points,
		Level:        user.Level(points),
		Achievements: []string{},
		CreatedAt:    tstamp,
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() core.Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
