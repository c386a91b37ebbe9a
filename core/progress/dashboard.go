package progress

import (
	"math"

	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/user"
)

// Achievements are a pure function of current state, recomputed on each
// dashboard call and never persisted.
const (
	AchievementFirstQuiz    = "first-quiz"
	AchievementQuickLearner = "quick-learner"

	quickLearnerThreshold = 5
)

type (
	AggregatorInterface interface {
		Dashboard(userID string) (Dashboard, error)
	}

	// Aggregator computes the per-user dashboard view from the subject
	// catalog and the user's raw progress and quiz-attempt records.
	Aggregator struct {
		repo   Repository
		usrSvc user.ServiceInterface
		catSvc catalog.ServiceInterface
	}
)

var _ AggregatorInterface = (*Aggregator)(nil)

func NewAggregator(repo Repository, usrSvc user.ServiceInterface, catSvc catalog.ServiceInterface) *Aggregator {
	return &Aggregator{
		repo:   repo,
		usrSvc: usrSvc,
		catSvc: catSvc,
	}
}

// Dashboard aggregates the user's standing across the whole catalog.
// An unresolvable user aborts before any subject or progress data is read.
func (agg *Aggregator) Dashboard(userID string) (Dashboard, error) {
	usr, err := agg.usrSvc.GetByID(userID)
	if err != nil {
		return Dashboard{}, err
	}

	subjects, err := agg.catSvc.QuerySubjects("")
	if err != nil {
		return Dashboard{}, err
	}
	records, err := agg.repo.GetProgressByUser(userID)
	if err != nil {
		return Dashboard{}, err
	}
	attempts, err := agg.repo.GetQuizAttemptsByUser(userID)
	if err != nil {
		return Dashboard{}, err
	}

	subjectsProgress := make([]SubjectProgress, 0, len(subjects))
	for _, sub := range subjects {
		lessons, err := agg.catSvc.QueryLessons(sub.ID)
		if err != nil {
			return Dashboard{}, err
		}
		var completed int
		for _, rec := range records {
			if rec.SubjectID == sub.ID && rec.Completed {
				completed++
			}
		}
		subjectsProgress = append(subjectsProgress, SubjectProgress{
			Subject:            sub,
			ProgressPercentage: percentage(completed, len(lessons)),
			CompletedLessons:   completed,
			TotalLessons:       len(lessons),
		})
	}

	var totalCompleted int
	for _, rec := range records {
		if rec.Completed {
			totalCompleted++
		}
	}

	return Dashboard{
		User:                  usr,
		Subjects:              subjectsProgress,
		Achievements:          deriveAchievements(len(attempts), totalCompleted),
		TotalLessonsCompleted: totalCompleted,
		TotalQuizzesTaken:     len(attempts),
	}, nil
}

// percentage rounds to the nearest whole percent; a subject without lessons
// is always at 0.
func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func deriveAchievements(attemptCount, completedCount int) []Achievement {
	achievements := make([]Achievement, 0, 2)
	if attemptCount > 0 {
		achievements = append(achievements, Achievement{
			ID:    AchievementFirstQuiz,
			Name:  "First Quiz",
			Icon:  "fas fa-star",
			Color: "secondary",
		})
	}
	if completedCount >= quickLearnerThreshold {
		achievements = append(achievements, Achievement{
			ID:    AchievementQuickLearner,
			Name:  "Quick Learner",
			Icon:  "fas fa-medal",
			Color: "primary",
		})
	}
	return achievements
}
