package user

import (
	"errors"
	"time"

	"github.com/trezcool/elimu/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrMobileNumberExists = errors.New("a user with this mobile number already exists")
)

type (
	Repository interface {
		CheckMobileNumberUniqueness(mobileNumber string) error
		CreateUser(usr User) (User, error)
		GetUserByID(id string) (User, error)
		GetUserByMobileNumber(mobileNumber string) (User, error)
		UpdateUser(usr User) (User, error)
		// MutateUser applies `mutate` to the stored User under the user
		// table's write lock and returns the resulting User. The
		// read-modify-write is not observable in an intermediate state.
		MutateUser(id string, mutate func(usr *User)) (User, error)
	}

	ServiceInterface interface {
		CheckUniqueness(mobileNumber string) error
		Create(nu NewUser) (User, error)
		GetByID(id string) (User, error)
		GetByMobileNumber(mobileNumber string) (User, error)
		Update(id string, uu UpdateUser) (User, error)
		AddQuizPoints(id string, score int) (User, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckUniqueness(mobileNumber string) error {
	if err := svc.repo.CheckMobileNumberUniqueness(mobileNumber); err != nil {
		if err == ErrMobileNumberExists {
			return core.NewValidationError(err, core.FieldError{Field: "mobileNumber", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nu NewUser) (User, error) {
	lang := nu.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	usr := User{
		MobileNumber: nu.MobileNumber,
		Name:         nu.Name,
		Class:        nu.Class,
		Language:     lang,
		Points:       0,
		Level:        Level(0),
		Achievements: []string{},
		CreatedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateUser(usr)
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByMobileNumber(mobileNumber string) (User, error) {
	return svc.repo.GetUserByMobileNumber(core.CleanString(mobileNumber))
}

func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	usr.Name = uu.Name
	usr.Class = uu.Class
	usr.Language = uu.Language
	return svc.repo.UpdateUser(usr)
}

// AddQuizPoints credits a quiz attempt's score to the user's cumulative
// points and re-derives their level. Both fields are written in a single
// repository call so `level == points/100 + 1` holds after every mutation.
func (svc *Service) AddQuizPoints(id string, score int) (User, error) {
	return svc.repo.MutateUser(id, func(usr *User) {
		usr.Points += score
		usr.Level = Level(usr.Points)
	})
}
