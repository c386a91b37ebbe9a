package inmemdb

import (
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/elimu/core/progress"
)

type progressRepository struct {
	progress *progressTable
	attempts *attemptTable
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{
		progress: db.progress,
		attempts: db.attempt,
	}
}

func (repo *progressRepository) CreateProgress(prog progress.UserProgress) (progress.UserProgress, error) {
	repo.progress.Lock()
	defer repo.progress.Unlock()

	if prog.ID == "" {
		prog.ID = uuid.NewString()
	}
	repo.progress.table[prog.ID] = &prog
	return prog, nil
}

func (repo *progressRepository) GetProgressByID(id string) (progress.UserProgress, error) {
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	if prog, ok := repo.progress.table[id]; ok {
		return *prog, nil
	}
	return progress.UserProgress{}, progress.ErrNotFound
}

func (repo *progressRepository) UpdateProgress(id string, up progress.UpdateProgress) (progress.UserProgress, error) {
	repo.progress.Lock()
	defer repo.progress.Unlock()

	prog, ok := repo.progress.table[id]
	if !ok {
		return progress.UserProgress{}, progress.ErrNotFound
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
	return *prog, nil
}

func (repo *progressRepository) GetProgressByUser(userID string) ([]progress.UserProgress, error) {
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	var records []progress.UserProgress
	for _, prog := range repo.progress.table {
		if prog.UserID == userID {
			records = append(records, *prog)
		}
	}
	return records, nil
}

func (repo *progressRepository) GetProgressByUserAndSubject(userID, subjectID string) ([]progress.UserProgress, error) {
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	var records []progress.UserProgress
	for _, prog := range repo.progress.table {
		if prog.UserID == userID && prog.SubjectID == subjectID {
			records = append(records, *prog)
		}
	}
	return records, nil
}

func (repo *progressRepository) CreateQuizAttempt(att progress.QuizAttempt) (progress.QuizAttempt, error) {
	repo.attempts.Lock()
	defer repo.attempts.Unlock()

	if att.ID == "" {
		att.ID = uuid.NewString()
	}
	repo.attempts.table[att.ID] = &att
	return att, nil
}

func (repo *progressRepository) GetQuizAttemptsByUser(userID string) ([]progress.QuizAttempt, error) {
	repo.attempts.RLock()
	defer repo.attempts.RUnlock()

	var attempts []progress.QuizAttempt
	for _, att := range repo.attempts.table {
		if att.UserID == userID {
			attempts = append(attempts, *att)
		}
	}
	return attempts, nil
}
