package progress

import (
	"reflect"
	"testing"

	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/user"
)

type fakeCatalogService struct {
	subjects []catalog.Subject
	lessons  map[string][]catalog.Lesson // by subject id
}

var _ catalog.ServiceInterface = (*fakeCatalogService)(nil)

func (svc *fakeCatalogService) QuerySubjects(class string) ([]catalog.Subject, error) {
	return svc.subjects, nil
}

func (svc *fakeCatalogService) GetSubject(id string) (catalog.Subject, error) {
	for _, sub := range svc.subjects {
		if sub.ID == id {
			return sub, nil
		}
	}
	return catalog.Subject{}, catalog.ErrSubjectNotFound
}

func (svc *fakeCatalogService) QueryLessons(subjectID string) ([]catalog.Lesson, error) {
	return svc.lessons[subjectID], nil
}

func (svc *fakeCatalogService) GetLesson(id string) (catalog.Lesson, error) {
	return catalog.Lesson{}, catalog.ErrLessonNotFound
}

func (svc *fakeCatalogService) QueryQuizzes(subjectID string) ([]catalog.Quiz, error) {
	return nil, nil
}

func (svc *fakeCatalogService) GetQuiz(id string) (catalog.Quiz, error) {
	return catalog.Quiz{}, catalog.ErrQuizNotFound
}

func newFakeCatalog() *fakeCatalogService {
	lesson := func(id, subjectID string, order int) catalog.Lesson {
		return catalog.Lesson{ID: id, SubjectID: subjectID, Order: order}
	}
	return &fakeCatalogService{
		subjects: []catalog.Subject{
			{ID: "math-1", Name: "Mathematics", ClassLevel: "1-5"},
			{ID: "science-1", Name: "Science", ClassLevel: "1-8"}, // no lessons yet
		},
		lessons: map[string][]catalog.Lesson{
			"math-1": {
				lesson("lesson-math-1", "math-1", 1),
				lesson("lesson-math-2", "math-1", 2),
				lesson("lesson-math-3", "math-1", 3),
			},
		},
	}
}

func Test_Aggregator_Dashboard(t *testing.T) {
	repo := newFakeRepository()
	usr := newUser("usr1", 115)
	agg := NewAggregator(repo, newFakeUserService(usr), newFakeCatalog())

	record := func(subjectID, lessonID string, completed bool) {
		prog := UserProgress{UserID: "usr1", SubjectID: subjectID, Completed: completed}
		if lessonID != "" {
			prog.LessonID = &lessonID
		}
		if _, err := repo.CreateProgress(prog); err != nil {
			t.Fatalf("CreateProgress() failed, %v", err)
		}
	}
	record("math-1", "lesson-math-1", true)
	record("math-1", "lesson-math-2", false)

	if _, err := repo.CreateQuizAttempt(QuizAttempt{UserID: "usr1", QuizID: "quiz-math-1", Score: 30, TotalQuestions: 2}); err != nil {
		t.Fatalf("CreateQuizAttempt() failed, %v", err)
	}

	dash, err := agg.Dashboard("usr1")
	if err != nil {
		t.Fatalf("Dashboard() failed, %v", err)
	}

	if !reflect.DeepEqual(dash.User, usr) {
		t.Errorf("Dashboard() user = %+v; want %+v", dash.User, usr)
	}
	if dash.TotalLessonsCompleted != 1 {
		t.Errorf("Dashboard() totalLessonsCompleted = %d; want 1", dash.TotalLessonsCompleted)
	}
	if dash.TotalQuizzesTaken != 1 {
		t.Errorf("Dashboard() totalQuizzesTaken = %d; want 1", dash.TotalQuizzesTaken)
	}

	if len(dash.Subjects) != 2 {
		t.Fatalf("Dashboard() returned %d subjects; want 2", len(dash.Subjects))
	}
	byID := make(map[string]SubjectProgress, len(dash.Subjects))
	for _, sub := range dash.Subjects {
		byID[sub.ID] = sub
	}

	math := byID["math-1"]
	if math.CompletedLessons != 1 || math.TotalLessons != 3 {
		t.Errorf("math-1 completed/total = %d/%d; want 1/3", math.CompletedLessons, math.TotalLessons)
	}
	if math.ProgressPercentage != 33 {
		t.Errorf("math-1 progressPercentage = %d; want 33", math.ProgressPercentage)
	}

	// a subject without lessons sits at 0, not a division error
	science := byID["science-1"]
	if science.ProgressPercentage != 0 || science.TotalLessons != 0 {
		t.Errorf("science-1 = %+v; want 0 progress on 0 lessons", science)
	}

	// one attempt unlocks first-quiz only
	if len(dash.Achievements) != 1 || dash.Achievements[0].ID != AchievementFirstQuiz {
		t.Errorf("achievements = %v; want [%s]", dash.Achievements, AchievementFirstQuiz)
	}
}

func Test_Aggregator_Dashboard_userNotFound(t *testing.T) {
	repo := newFakeRepository()
	agg := NewAggregator(repo, newFakeUserService(), newFakeCatalog())

	if _, err := agg.Dashboard("ghost"); err != user.ErrNotFound {
		t.Errorf("Dashboard() error = %v; want user.ErrNotFound", err)
	}
}

func Test_deriveAchievements(t *testing.T) {
	ids := func(achievements []Achievement) []string {
		out := make([]string, 0, len(achievements))
		for _, a := range achievements {
			out = append(out, a.ID)
		}
		return out
	}

	tests := []struct {
		name      string
		attempts  int
		completed int
		want      []string
	}{
		{name: "nothing yet", want: []string{}},
		{name: "first quiz", attempts: 1, want: []string{AchievementFirstQuiz}},
		{name: "almost quick learner", completed: 4, want: []string{}},
		{name: "quick learner", completed: 5, want: []string{AchievementQuickLearner}},
		{name: "both", attempts: 3, completed: 7, want: []string{AchievementFirstQuiz, AchievementQuickLearner}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(deriveAchievements(tt.attempts, tt.completed))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("deriveAchievements(%d, %d) = %v; want %v", tt.attempts, tt.completed, got, tt.want)
			}
		})
	}
}

func Test_percentage(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 8, 13},
	}
	for _, tt := range tests {
		if got := percentage(tt.completed, tt.total); got != tt.want {
			t.Errorf("percentage(%d, %d) = %d; want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}
