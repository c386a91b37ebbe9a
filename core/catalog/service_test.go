package catalog

import (
	"testing"
)

type fakeRepository struct {
	subjects []Subject
}

var _ Repository = (*fakeRepository)(nil)

func (repo *fakeRepository) CreateSubject(sub Subject) (Subject, error) {
	repo.subjects = append(repo.subjects, sub)
	return sub, nil
}

func (repo *fakeRepository) QueryAllSubjects() ([]Subject, error) {
	return repo.subjects, nil
}

func (repo *fakeRepository) GetSubjectByID(id string) (Subject, error) {
	for _, sub := range repo.subjects {
		if sub.ID == id {
			return sub, nil
		}
	}
	return Subject{}, ErrSubjectNotFound
}

func (repo *fakeRepository) CreateLesson(les Lesson) (Lesson, error) { return les, nil }

func (repo *fakeRepository) GetLessonsBySubject(subjectID string) ([]Lesson, error) {
	return nil, nil
}

func (repo *fakeRepository) GetLessonByID(id string) (Lesson, error) {
	return Lesson{}, ErrLessonNotFound
}

func (repo *fakeRepository) CreateQuiz(qz Quiz) (Quiz, error) { return qz, nil }

func (repo *fakeRepository) GetQuizzesBySubject(subjectID string) ([]Quiz, error) {
	return nil, nil
}

func (repo *fakeRepository) GetQuizByID(id string) (Quiz, error) {
	return Quiz{}, ErrQuizNotFound
}

func Test_Subject_AppliesToClass(t *testing.T) {
	tests := []struct {
		level string
		class string
		want  bool
	}{
		{level: "1-5", class: "1", want: true},
		{level: "1-5", class: "5", want: true},
		{level: "1-5", class: "6", want: false},
		{level: "1-12", class: "12", want: true},
		{level: "3-10", class: "2", want: false},
		{level: "7", class: "7", want: true},
		{level: "7", class: "8", want: false},
		{level: "1-5", class: "lol", want: false},
		{level: "1-5", class: "", want: false},
		{level: "lol", class: "3", want: false},
	}
	for _, tt := range tests {
		sub := Subject{ClassLevel: tt.level}
		if got := sub.AppliesToClass(tt.class); got != tt.want {
			t.Errorf("Subject{ClassLevel: %q}.AppliesToClass(%q) = %v; want %v", tt.level, tt.class, got, tt.want)
		}
	}
}

func Test_Service_QuerySubjects(t *testing.T) {
	svc := NewService(&fakeRepository{subjects: []Subject{
		{ID: "math-1", ClassLevel: "1-5"},
		{ID: "science-1", ClassLevel: "1-8"},
		{ID: "language-1", ClassLevel: "1-12"},
		{ID: "social-1", ClassLevel: "3-10"},
	}})

	tests := []struct {
		name  string
		class string
		want  []string
	}{
		{name: "no filter", class: "", want: []string{"math-1", "science-1", "language-1", "social-1"}},
		{name: "class 2", class: "2", want: []string{"math-1", "science-1", "language-1"}},
		{name: "class 5", class: "5", want: []string{"math-1", "science-1", "language-1", "social-1"}},
		{name: "class 9", class: "9", want: []string{"language-1", "social-1"}},
		{name: "class 11", class: "11", want: []string{"language-1"}},
		{name: "junk class", class: "lol", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subjects, err := svc.QuerySubjects(tt.class)
			if err != nil {
				t.Fatalf("QuerySubjects() failed, %v", err)
			}
			got := make([]string, 0, len(subjects))
			for _, sub := range subjects {
				got = append(got, sub.ID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("QuerySubjects(%q) = %v; want %v", tt.class, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("QuerySubjects(%q) = %v; want %v", tt.class, got, tt.want)
					break
				}
			}
		})
	}
}
