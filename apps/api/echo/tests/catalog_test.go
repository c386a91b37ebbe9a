package tests

import (
	"net/http"
	"testing"

	"github.com/trezcool/elimu/core/catalog"
)

func Test_catalogApi_subjects(t *testing.T) {
	app := setup(t)
	seedCatalog(t)

	get := func(t *testing.T, id string) catalog.Subject {
		sub, err := catRepo.GetSubjectByID(id)
		if err != nil {
			t.Fatalf("GetSubjectByID(%s) failed, %v", id, err)
		}
		return sub
	}
	math := get(t, "math-1")
	science := get(t, "science-1")
	language := get(t, "language-1")
	social := get(t, "social-1")

	tests := []httpTest{
		{name: "all subjects", path: "/v1/subjects", wantCode: http.StatusOK, wantData: marchallList(t, math, science, language, social)},
		{name: "class 2", path: "/v1/subjects?class=2", wantCode: http.StatusOK, wantData: marchallList(t, math, science, language)},
		{name: "class 7", path: "/v1/subjects?class=7", wantCode: http.StatusOK, wantData: marchallList(t, science, language, social)},
		{name: "class 11", path: "/v1/subjects?class=11", wantCode: http.StatusOK, wantData: marchallList(t, language)},
		{name: "junk class", path: "/v1/subjects?class=lol", wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "retrieve", path: "/v1/subjects/math-1", wantCode: http.StatusOK, wantData: marchallObj(t, math)},
		{
			name: "unknown subject", path: "/v1/subjects/history-1", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "subject not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_lessons(t *testing.T) {
	app := setup(t)
	seedCatalog(t)

	lessons, err := catRepo.GetLessonsBySubject("math-1")
	if err != nil {
		t.Fatalf("GetLessonsBySubject() failed, %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("seed produced %d math lessons; want 2", len(lessons))
	}

	tests := []httpTest{
		{name: "subject lessons in order", path: "/v1/subjects/math-1/lessons", wantCode: http.StatusOK, wantData: marchallObj(t, lessons)},
		{name: "subject without lessons", path: "/v1/subjects/science-1/lessons", wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{
			name: "lessons of unknown subject", path: "/v1/subjects/history-1/lessons", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "subject not found"}),
		},
		{name: "retrieve", path: "/v1/lessons/lesson-math-1", wantCode: http.StatusOK, wantData: marchallObj(t, lessons[0])},
		{
			name: "unknown lesson", path: "/v1/lessons/lesson-math-99", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "lesson not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi_quizzes(t *testing.T) {
	app := setup(t)
	seedCatalog(t)

	quiz, err := catRepo.GetQuizByID("quiz-math-1")
	if err != nil {
		t.Fatalf("GetQuizByID() failed, %v", err)
	}

	tests := []httpTest{
		{name: "subject quizzes", path: "/v1/subjects/math-1/quizzes", wantCode: http.StatusOK, wantData: marchallList(t, quiz)},
		{name: "subject without quizzes", path: "/v1/subjects/science-1/quizzes", wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "retrieve", path: "/v1/quizzes/quiz-math-1", wantCode: http.StatusOK, wantData: marchallObj(t, quiz)},
		{
			name: "unknown quiz", path: "/v1/quizzes/quiz-math-99", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "quiz not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
