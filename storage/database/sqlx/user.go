package sqlxrepos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckMobileNumberUniqueness(mobileNumber string) error {
	var exists bool
	err := repo.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM "user" WHERE mobile_number = $1)`, mobileNumber)
	if err != nil {
		return errors.Wrap(err, "checking mobile number uniqueness")
	}
	if exists {
		return user.ErrMobileNumberExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	if usr.ID == "" {
		usr.ID = uuid.NewString()
	}
	_, err := repo.db.NamedExec(`
		INSERT INTO "user" (id, mobile_number, name, class, language, points, level, achievements, created_at)
		VALUES (:id, :mobile_number, :name, :class, :language, :points, :level, :achievements, :created_at)`,
		usr,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	var usr user.User
	err := repo.db.Get(&usr, `SELECT * FROM "user" WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by id")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByMobileNumber(mobileNumber string) (user.User, error) {
	var usr user.User
	err := repo.db.Get(&usr, `SELECT * FROM "user" WHERE mobile_number = $1`, mobileNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by mobile number")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	res, err := repo.db.Exec(
		`UPDATE "user" SET name = $1, class = $2, language = $3 WHERE id = $4`,
		usr.Name, usr.Class, usr.Language, usr.ID,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUserByID(usr.ID)
}

// MutateUser applies `mutate` inside a transaction holding the user's row
// lock, so concurrent read-modify-writes cannot lose an update.
func (repo *userRepository) MutateUser(id string, mutate func(usr *user.User)) (user.User, error) {
	tx, err := repo.db.Beginx()
	if err != nil {
		return user.User{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	var usr user.User
	if err = tx.Get(&usr, `SELECT * FROM "user" WHERE id = $1 FOR UPDATE`, id); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user for update")
	}

	mutate(&usr)

	_, err = tx.NamedExec(`
		UPDATE "user"
		SET name = :name, class = :class, language = :language,
		    points = :points, level = :level, achievements = :achievements
		WHERE id = :id`,
		usr,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "saving mutated user")
	}
	if err = tx.Commit(); err != nil {
		return user.User{}, errors.Wrap(err, "committing tx")
	}
	return usr, nil
}
