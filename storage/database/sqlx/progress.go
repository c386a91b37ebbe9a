package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/progress"
)

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *sqlx.DB) progress.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) CreateProgress(prog progress.UserProgress) (progress.UserProgress, error) {
	if prog.ID == "" {
		prog.ID = uuid.NewString()
	}
	_, err := repo.db.NamedExec(`
		INSERT INTO user_progress (id, user_id, subject_id, lesson_id, completed, score, completed_at)
		VALUES (:id, :user_id, :subject_id, :lesson_id, :completed, :score, :completed_at)`,
		prog,
	)
	if err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "creating progress")
	}
	return prog, nil
}

func (repo *progressRepository) GetProgressByID(id string) (progress.UserProgress, error) {
	var prog progress.UserProgress
	err := repo.db.Get(&prog, `SELECT * FROM user_progress WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return progress.UserProgress{}, progress.ErrNotFound
		}
		return progress.UserProgress{}, errors.Wrap(err, "getting progress")
	}
	return prog, nil
}

func (repo *progressRepository) UpdateProgress(id string, up progress.UpdateProgress) (progress.UserProgress, error) {
	tx, err := repo.db.Beginx()
	if err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	var prog progress.UserProgress
	if err = tx.Get(&prog, `SELECT * FROM user_progress WHERE id = $1 FOR UPDATE`, id); err != nil {
		if err == sql.ErrNoRows {
			return progress.UserProgress{}, progress.ErrNotFound
		}
		return progress.UserProgress{}, errors.Wrap(err, "getting progress for update")
	}

	if up.Completed != nil {
		if *up.Completed && !prog.Completed {
			now := time.Now().UTC()
			prog.CompletedAt = &now
		}
		prog.Completed = *up.Completed
	}
	if up.Score != nil {
		prog.Score = up.Score
	}

	_, err = tx.NamedExec(`
		UPDATE user_progress
		SET completed = :completed, score = :score, completed_at = :completed_at
		WHERE id = :id`,
		prog,
	)
	if err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "saving progress")
	}
	if err = tx.Commit(); err != nil {
		return progress.UserProgress{}, errors.Wrap(err, "committing tx")
	}
	return prog, nil
}

func (repo *progressRepository) GetProgressByUser(userID string) ([]progress.UserProgress, error) {
	var records []progress.UserProgress
	err := repo.db.Select(&records, `SELECT * FROM user_progress WHERE user_id = $1`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying progress")
	}
	return records, nil
}

func (repo *progressRepository) GetProgressByUserAndSubject(userID, subjectID string) ([]progress.UserProgress, error) {
	var records []progress.UserProgress
	err := repo.db.Select(&records, `SELECT * FROM user_progress WHERE user_id = $1 AND subject_id = $2`, userID, subjectID)
	if err != nil {
		return nil, errors.Wrap(err, "querying progress by subject")
	}
	return records, nil
}

func (repo *progressRepository) CreateQuizAttempt(att progress.QuizAttempt) (progress.QuizAttempt, error) {
	if att.ID == "" {
		att.ID = uuid.NewString()
	}
	_, err := repo.db.NamedExec(`
		INSERT INTO quiz_attempt (id, user_id, quiz_id, score, total_questions, time_spent, answers, completed_at)
		VALUES (:id, :user_id, :quiz_id, :score, :total_questions, :time_spent, :answers, :completed_at)`,
		att,
	)
	if err != nil {
		return progress.QuizAttempt{}, errors.Wrap(err, "creating quiz attempt")
	}
	return att, nil
}

func (repo *progressRepository) GetQuizAttemptsByUser(userID string) ([]progress.QuizAttempt, error) {
	var attempts []progress.QuizAttempt
	err := repo.db.Select(&attempts, `SELECT * FROM quiz_attempt WHERE user_id = $1`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying quiz attempts")
	}
	return attempts, nil
}
