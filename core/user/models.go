package user

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

const (
	DefaultLanguage = "english"

	// LevelStep is the number of points needed to climb one level.
	LevelStep = 100
)

// Tags is a set of achievement tags, stored as JSONB.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *Tags) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return errors.Errorf("unsupported tags type %T", src)
	}
	return json.Unmarshal(b, t)
}

type User struct {
	ID           string    `json:"id" db:"id"`
	MobileNumber string    `json:"mobileNumber" db:"mobile_number"`
	Name         string    `json:"name" db:"name"`
	Class        string    `json:"class" db:"class"`
	Language     string    `json:"language" db:"language"`
	Points       int       `json:"points" db:"points"`
	Level        int       `json:"level" db:"level"`
	Achievements Tags      `json:"achievements" db:"achievements"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"` // UTC
}

// Level derives a user's level from their cumulative points.
// Every LevelStep points climb one level, starting at level 1.
func Level(points int) int {
	return points/LevelStep + 1
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	MobileNumber string `json:"mobileNumber" validate:"required,mobilenum"`
	Name         string `json:"name" validate:"required"`
	Class        string `json:"class" validate:"required,grade"`
	Language     string `json:"language" validate:"omitempty,alpha"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nu.MobileNumber = core.CleanString(nu.MobileNumber)
	nu.Name = core.CleanString(nu.Name)
	nu.Class = core.CleanString(nu.Class)
	nu.Language = core.CleanString(nu.Language, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.MobileNumber)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Unset fields keep their current value; Points and Level are never
// client-settable, they only move through the quiz-attempt path.
type UpdateUser struct {
	Name     string `json:"name"`
	Class    string `json:"class" validate:"omitempty,grade"`
	Language string `json:"language" validate:"omitempty,alpha"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate, origUsr User) error {
	name := core.CleanString(uu.Name)
	if name == "" {
		name = origUsr.Name
	}
	uu.Name = name

	class := core.CleanString(uu.Class)
	if class == "" {
		class = origUsr.Class
	}
	uu.Class = class

	lang := core.CleanString(uu.Language, true /* lower */)
	if lang == "" {
		lang = origUsr.Language
	}
	uu.Language = lang

	return validate.Struct(uu)
}
