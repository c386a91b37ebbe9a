package sqlxrepos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/catalog"
)

type catalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *sqlx.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) CreateSubject(sub catalog.Subject) (catalog.Subject, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	_, err := repo.db.NamedExec(`
		INSERT INTO subject (id, name, icon, color, description, class_level, total_lessons)
		VALUES (:id, :name, :icon, :color, :description, :class_level, :total_lessons)`,
		sub,
	)
	if err != nil {
		return catalog.Subject{}, errors.Wrap(err, "creating subject")
	}
	return sub, nil
}

func (repo *catalogRepository) QueryAllSubjects() ([]catalog.Subject, error) {
	var subjects []catalog.Subject
	if err := repo.db.Select(&subjects, `SELECT * FROM subject ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return subjects, nil
}

func (repo *catalogRepository) GetSubjectByID(id string) (catalog.Subject, error) {
	var sub catalog.Subject
	err := repo.db.Get(&sub, `SELECT * FROM subject WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return catalog.Subject{}, catalog.ErrSubjectNotFound
		}
		return catalog.Subject{}, errors.Wrap(err, "getting subject")
	}
	return sub, nil
}

func (repo *catalogRepository) CreateLesson(les catalog.Lesson) (catalog.Lesson, error) {
	if les.ID == "" {
		les.ID = uuid.NewString()
	}
	_, err := repo.db.NamedExec(`
		INSERT INTO lesson (id, subject_id, title, description, content, lesson_order, points)
		VALUES (:id, :subject_id, :title, :description, :content, :lesson_order, :points)`,
		les,
	)
	if err != nil {
		return catalog.Lesson{}, errors.Wrap(err, "creating lesson")
	}
	return les, nil
}

func (repo *catalogRepository) GetLessonsBySubject(subjectID string) ([]catalog.Lesson, error) {
	var lessons []catalog.Lesson
	err := repo.db.Select(&lessons, `SELECT * FROM lesson WHERE subject_id = $1 ORDER BY lesson_order`, subjectID)
	if err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}
	return lessons, nil
}

func (repo *catalogRepository) GetLessonByID(id string) (catalog.Lesson, error) {
	var les catalog.Lesson
	err := repo.db.Get(&les, `SELECT * FROM lesson WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return catalog.Lesson{}, catalog.ErrLessonNotFound
		}
		return catalog.Lesson{}, errors.Wrap(err, "getting lesson")
	}
	return les, nil
}

func (repo *catalogRepository) CreateQuiz(qz catalog.Quiz) (catalog.Quiz, error) {
	if qz.ID == "" {
		qz.ID = uuid.NewString()
	}
	_, err := repo.db.NamedExec(`
		INSERT INTO quiz (id, subject_id, lesson_id, title, questions, time_limit, points)
		VALUES (:id, :subject_id, :lesson_id, :title, :questions, :time_limit, :points)`,
		qz,
	)
	if err != nil {
		return catalog.Quiz{}, errors.Wrap(err, "creating quiz")
	}
	return qz, nil
}

func (repo *catalogRepository) GetQuizzesBySubject(subjectID string) ([]catalog.Quiz, error) {
	var quizzes []catalog.Quiz
	err := repo.db.Select(&quizzes, `SELECT * FROM quiz WHERE subject_id = $1`, subjectID)
	if err != nil {
		return nil, errors.Wrap(err, "querying quizzes")
	}
	return quizzes, nil
}

func (repo *catalogRepository) GetQuizByID(id string) (catalog.Quiz, error) {
	var qz catalog.Quiz
	err := repo.db.Get(&qz, `SELECT * FROM quiz WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return catalog.Quiz{}, catalog.ErrQuizNotFound
		}
		return catalog.Quiz{}, errors.Wrap(err, "getting quiz")
	}
	return qz, nil
}
