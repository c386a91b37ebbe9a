package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("progress not found")
)

type (
	Repository interface {
		CreateProgress(prog UserProgress) (UserProgress, error)
		GetProgressByID(id string) (UserProgress, error)
		// UpdateProgress merges the set fields under the progress table's
		// write lock; CompletedAt is stamped on the false -> true transition.
		UpdateProgress(id string, up UpdateProgress) (UserProgress, error)
		GetProgressByUser(userID string) ([]UserProgress, error)
		GetProgressByUserAndSubject(userID, subjectID string) ([]UserProgress, error)
		CreateQuizAttempt(att QuizAttempt) (QuizAttempt, error)
		GetQuizAttemptsByUser(userID string) ([]QuizAttempt, error)
	}

	ServiceInterface interface {
		Record(userID string, np NewProgress) (UserProgress, error)
		Get(id string) (UserProgress, error)
		Update(id string, up UpdateProgress) (UserProgress, error)
		Query(userID, subjectID string) ([]UserProgress, error)
		RecordAttempt(userID string, na NewQuizAttempt) (QuizAttempt, error)
		QueryAttempts(userID string) ([]QuizAttempt, error)
	}

	Service struct {
		repo   Repository
		usrSvc user.ServiceInterface
		logger core.Logger
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, usrSvc user.ServiceInterface, logger core.Logger) *Service {
	return &Service{
		repo:   repo,
		usrSvc: usrSvc,
		logger: logger,
	}
}

func (svc *Service) Record(userID string, np NewProgress) (UserProgress, error) {
	prog := UserProgress{
		UserID:    userID,
		SubjectID: np.SubjectID,
		LessonID:  np.LessonID,
		Completed: np.Completed,
		Score:     np.Score,
	}
	if np.Completed {
		now := time.Now().UTC()
		prog.CompletedAt = &now
	}
	return svc.repo.CreateProgress(prog)
}

func (svc *Service) Get(id string) (UserProgress, error) {
	return svc.repo.GetProgressByID(id)
}

func (svc *Service) Update(id string, up UpdateProgress) (UserProgress, error) {
	return svc.repo.UpdateProgress(id, up)
}

// Query returns a user's progress records, narrowed to one subject when
// subjectID is set.
func (svc *Service) Query(userID, subjectID string) ([]UserProgress, error) {
	if subjectID != "" {
		return svc.repo.GetProgressByUserAndSubject(userID, subjectID)
	}
	return svc.repo.GetProgressByUser(userID)
}

// RecordAttempt stores the scored submission, then credits its score to the
// user. The attempt succeeds even when the user record cannot be found at
// the points step; in that case the points update is skipped.
func (svc *Service) RecordAttempt(userID string, na NewQuizAttempt) (QuizAttempt, error) {
	att := QuizAttempt{
		UserID:         userID,
		QuizID:         na.QuizID,
		Score:          na.Score,
		TotalQuestions: na.TotalQuestions,
		TimeSpent:      na.TimeSpent,
		Answers:        na.Answers,
		CompletedAt:    time.Now().UTC(),
	}
	att, err := svc.repo.CreateQuizAttempt(att)
	if err != nil {
		return QuizAttempt{}, err
	}

	if _, err = svc.usrSvc.AddQuizPoints(userID, att.Score); err != nil {
		if err != user.ErrNotFound {
			return QuizAttempt{}, err
		}
		svc.logger.Debug(fmt.Sprintf("points update skipped: user %s not found", userID))
	}
	return att, nil
}

func (svc *Service) QueryAttempts(userID string) ([]QuizAttempt, error) {
	return svc.repo.GetQuizAttemptsByUser(userID)
}
