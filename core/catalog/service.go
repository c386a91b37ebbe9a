package catalog

import "errors"

var (
	// errors
	ErrSubjectNotFound = errors.New("subject not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrQuizNotFound    = errors.New("quiz not found")
)

type (
	Repository interface {
		CreateSubject(sub Subject) (Subject, error)
		QueryAllSubjects() ([]Subject, error)
		GetSubjectByID(id string) (Subject, error)
		CreateLesson(les Lesson) (Lesson, error)
		// GetLessonsBySubject returns the subject's lessons sorted
		// ascending by Lesson.Order, regardless of insertion order.
		GetLessonsBySubject(subjectID string) ([]Lesson, error)
		GetLessonByID(id string) (Lesson, error)
		CreateQuiz(qz Quiz) (Quiz, error)
		GetQuizzesBySubject(subjectID string) ([]Quiz, error)
		GetQuizByID(id string) (Quiz, error)
	}

	ServiceInterface interface {
		QuerySubjects(class string) ([]Subject, error)
		GetSubject(id string) (Subject, error)
		QueryLessons(subjectID string) ([]Lesson, error)
		GetLesson(id string) (Lesson, error)
		QueryQuizzes(subjectID string) ([]Quiz, error)
		GetQuiz(id string) (Quiz, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// QuerySubjects lists the catalog, optionally narrowed to the subjects
// applicable to a class grade.
func (svc *Service) QuerySubjects(class string) ([]Subject, error) {
	subjects, err := svc.repo.QueryAllSubjects()
	if err != nil {
		return nil, err
	}
	if class == "" {
		return subjects, nil
	}
	filtered := make([]Subject, 0, len(subjects))
	for _, sub := range subjects {
		if sub.AppliesToClass(class) {
			filtered = append(filtered, sub)
		}
	}
	return filtered, nil
}

func (svc *Service) GetSubject(id string) (Subject, error) {
	return svc.repo.GetSubjectByID(id)
}

func (svc *Service) QueryLessons(subjectID string) ([]Lesson, error) {
	return svc.repo.GetLessonsBySubject(subjectID)
}

func (svc *Service) GetLesson(id string) (Lesson, error) {
	return svc.repo.GetLessonByID(id)
}

func (svc *Service) QueryQuizzes(subjectID string) ([]Quiz, error) {
	return svc.repo.GetQuizzesBySubject(subjectID)
}

func (svc *Service) GetQuiz(id string) (Quiz, error) {
	return svc.repo.GetQuizByID(id)
}
