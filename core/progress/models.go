package progress

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/user"
)

type (
	// UserProgress marks a user's completion state for one lesson within one
	// subject. Records are created on user action and never deleted;
	// CompletedAt is set exactly when Completed transitions false -> true.
	UserProgress struct {
		ID          string     `json:"id" db:"id"`
		UserID      string     `json:"userId" db:"user_id"`
		SubjectID   string     `json:"subjectId" db:"subject_id"`
		LessonID    *string    `json:"lessonId" db:"lesson_id"`
		Completed   bool       `json:"completed" db:"completed"`
		Score       *int       `json:"score" db:"score"`
		CompletedAt *time.Time `json:"completedAt" db:"completed_at"` // UTC
	}

	// Answer records a user's pick for one quiz question.
	Answer struct {
		QuestionID int  `json:"questionId"`
		Selected   int  `json:"selected"`
		Correct    bool `json:"correct"`
	}

	Answers []Answer

	// QuizAttempt is one completed, scored submission of a quiz.
	// It is immutable after creation.
	QuizAttempt struct {
		ID             string    `json:"id" db:"id"`
		UserID         string    `json:"userId" db:"user_id"`
		QuizID         string    `json:"quizId" db:"quiz_id"`
		Score          int       `json:"score" db:"score"`
		TotalQuestions int       `json:"totalQuestions" db:"total_questions"`
		TimeSpent      int       `json:"timeSpent" db:"time_spent"` // seconds
		Answers        Answers   `json:"answers" db:"answers"`
		CompletedAt    time.Time `json:"completedAt" db:"completed_at"` // UTC
	}

	// SubjectProgress is a catalog Subject annotated with the user's
	// completion counts. TotalLessons is the actual counted lesson number,
	// not the subject's denormalized field.
	SubjectProgress struct {
		catalog.Subject
		ProgressPercentage int `json:"progressPercentage"`
		CompletedLessons   int `json:"completedLessons"`
		TotalLessons       int `json:"totalLessons"`
	}

	Achievement struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}

	// Dashboard is the aggregated per-user view, recomputed fresh on each
	// call. Nothing in it is persisted.
	Dashboard struct {
		User                  user.User         `json:"user"`
		Subjects              []SubjectProgress `json:"subjects"`
		Achievements          []Achievement     `json:"achievements"`
		TotalLessonsCompleted int               `json:"totalLessonsCompleted"`
		TotalQuizzesTaken     int               `json:"totalQuizzesTaken"`
	}
)

// NewProgress contains information needed to record lesson progress.
type NewProgress struct {
	SubjectID string  `json:"subjectId" validate:"required"`
	LessonID  *string `json:"lessonId"`
	Completed bool    `json:"completed"`
	Score     *int    `json:"score" validate:"omitempty,min=0"`
}

func (np *NewProgress) Validate(validate *validator.Validate) error {
	np.SubjectID = core.CleanString(np.SubjectID)
	return validate.Struct(np)
}

// UpdateProgress defines the mutable part of a progress record.
// Unset fields keep their current value.
type UpdateProgress struct {
	Completed *bool `json:"completed"`
	Score     *int  `json:"score" validate:"omitempty,min=0"`
}

func (up *UpdateProgress) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}

// NewQuizAttempt contains information needed to record a scored quiz
// submission.
type NewQuizAttempt struct {
	QuizID         string  `json:"quizId" validate:"required"`
	Score          int     `json:"score" validate:"min=0"`
	TotalQuestions int     `json:"totalQuestions" validate:"required,min=1"`
	TimeSpent      int     `json:"timeSpent" validate:"min=0"`
	Answers        Answers `json:"answers"`
}

func (na *NewQuizAttempt) Validate(validate *validator.Validate) error {
	na.QuizID = core.CleanString(na.QuizID)
	return validate.Struct(na)
}

// JSONB support for the SQL repositories.

func (a Answers) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Answers) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return errors.Errorf("unsupported answers type %T", src)
	}
	return json.Unmarshal(b, a)
}
