package inmemdb

import (
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/elimu/core/catalog"
)

type catalogRepository struct {
	subjects *subjectTable
	lessons  *lessonTable
	quizzes  *quizTable
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{
		subjects: db.subject,
		lessons:  db.lesson,
		quizzes:  db.quiz,
	}
}

func (repo *catalogRepository) CreateSubject(sub catalog.Subject) (catalog.Subject, error) {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	repo.subjects.table[sub.ID] = &sub
	return sub, nil
}

func (repo *catalogRepository) QueryAllSubjects() ([]catalog.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	subjects := make([]catalog.Subject, 0, len(repo.subjects.table))
	for _, sub := range repo.subjects.table {
		subjects = append(subjects, *sub)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	return subjects, nil
}

func (repo *catalogRepository) GetSubjectByID(id string) (catalog.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	if sub, ok := repo.subjects.table[id]; ok {
		return *sub, nil
	}
	return catalog.Subject{}, catalog.ErrSubjectNotFound
}

func (repo *catalogRepository) CreateLesson(les catalog.Lesson) (catalog.Lesson, error) {
	repo.lessons.Lock()
	defer repo.lessons.Unlock()

	if les.ID == "" {
		les.ID = uuid.NewString()
	}
	repo.lessons.table[les.ID] = &les
	return les, nil
}

func (repo *catalogRepository) GetLessonsBySubject(subjectID string) ([]catalog.Lesson, error) {
	repo.lessons.RLock()
	defer repo.lessons.RUnlock()

	var lessons []catalog.Lesson
	for _, les := range repo.lessons.table {
		if les.SubjectID == subjectID {
			lessons = append(lessons, *les)
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })
	return lessons, nil
}

func (repo *catalogRepository) GetLessonByID(id string) (catalog.Lesson, error) {
	repo.lessons.RLock()
	defer repo.lessons.RUnlock()

	if les, ok := repo.lessons.table[id]; ok {
		return *les, nil
	}
	return catalog.Lesson{}, catalog.ErrLessonNotFound
}

func (repo *catalogRepository) CreateQuiz(qz catalog.Quiz) (catalog.Quiz, error) {
	repo.quizzes.Lock()
	defer repo.quizzes.Unlock()

	if qz.ID == "" {
		qz.ID = uuid.NewString()
	}
	repo.quizzes.table[qz.ID] = &qz
	return qz, nil
}

func (repo *catalogRepository) GetQuizzesBySubject(subjectID string) ([]catalog.Quiz, error) {
	repo.quizzes.RLock()
	defer repo.quizzes.RUnlock()

	var quizzes []catalog.Quiz
	for _, qz := range repo.quizzes.table {
		if qz.SubjectID == subjectID {
			quizzes = append(quizzes, *qz)
		}
	}
	return quizzes, nil
}

func (repo *catalogRepository) GetQuizByID(id string) (catalog.Quiz, error) {
	repo.quizzes.RLock()
	defer repo.quizzes.RUnlock()

	if qz, ok := repo.quizzes.table[id]; ok {
		return *qz, nil
	}
	return catalog.Quiz{}, catalog.ErrQuizNotFound
}
