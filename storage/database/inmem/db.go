package inmemdb

import (
	"sync"

	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/otp"
	"github.com/trezcool/elimu/core/progress"
	"github.com/trezcool/elimu/core/user"
)

// DB is the in-memory store: one lock-guarded table per entity type.
// Mutations serialize per table, which covers the read-modify-write paths
// (user points, otp consumption, progress completion).
type (
	DB struct {
		user     *userTable
		otp      *otpTable
		subject  *subjectTable
		lesson   *lessonTable
		quiz     *quizTable
		progress *progressTable
		attempt  *attemptTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	// keyed by mobile number: at most one live record per number
	otpTable struct {
		sync.RWMutex
		table map[string]*otp.Verification
	}

	subjectTable struct {
		sync.RWMutex
		table map[string]*catalog.Subject
	}

	lessonTable struct {
		sync.RWMutex
		table map[string]*catalog.Lesson
	}

	quizTable struct {
		sync.RWMutex
		table map[string]*catalog.Quiz
	}

	progressTable struct {
		sync.RWMutex
		table map[string]*progress.UserProgress
	}

	attemptTable struct {
		sync.RWMutex
		table map[string]*progress.QuizAttempt
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		otp:      &otpTable{table: make(map[string]*otp.Verification)},
		subject:  &subjectTable{table: make(map[string]*catalog.Subject)},
		lesson:   &lessonTable{table: make(map[string]*catalog.Lesson)},
		quiz:     &quizTable{table: make(map[string]*catalog.Quiz)},
		progress: &progressTable{table: make(map[string]*progress.UserProgress)},
		attempt:  &attemptTable{table: make(map[string]*progress.QuizAttempt)},
	}
	return db, nil
}
