package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Lesson content section types
const (
	SectionExplanation = "explanation"
	SectionInteractive = "interactive"
)

type (
	Subject struct {
		ID          string `json:"id" db:"id"`
		Name        string `json:"name" db:"name"`
		Icon        string `json:"icon" db:"icon"`
		Color       string `json:"color" db:"color"`
		Description string `json:"description" db:"description"`
		ClassLevel  string `json:"classLevel" db:"class_level"` // e.g. "1-5"
		// TotalLessons is denormalized display metadata; it may drift from
		// the actual lesson count and is not self-healing.
		TotalLessons int `json:"totalLessons" db:"total_lessons"`
	}

	// Section is one ordered unit of lesson content: either an explanation
	// or an interactive problem/answer prompt.
	Section struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Content string `json:"content,omitempty"`
		Image   string `json:"image,omitempty"`
		Problem string `json:"problem,omitempty"`
		Answer  string `json:"answer,omitempty"`
	}

	LessonContent struct {
		Type     string    `json:"type"`
		Sections []Section `json:"sections"`
	}

	Lesson struct {
		ID          string        `json:"id" db:"id"`
		SubjectID   string        `json:"subjectId" db:"subject_id"`
		Title       string        `json:"title" db:"title"`
		Description string        `json:"description" db:"description"`
		Content     LessonContent `json:"content" db:"content"`
		Order       int           `json:"order" db:"lesson_order"` // unique within a subject
		Points      int           `json:"points" db:"points"`
	}

	Question struct {
		ID            int      `json:"id"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correctAnswer"` // index into Options
		Points        int      `json:"points"`
	}

	Questions []Question

	Quiz struct {
		ID        string    `json:"id" db:"id"`
		SubjectID string    `json:"subjectId" db:"subject_id"`
		LessonID  *string   `json:"lessonId" db:"lesson_id"`
		Title     string    `json:"title" db:"title"`
		Questions Questions `json:"questions" db:"questions"`
		TimeLimit int       `json:"timeLimit" db:"time_limit"` // seconds
		Points    int       `json:"points" db:"points"`
	}
)

// AppliesToClass reports whether the subject is taught in the given class
// grade. ClassLevel is either a single grade ("7") or a range ("1-5").
func (s Subject) AppliesToClass(class string) bool {
	grade, err := strconv.Atoi(class)
	if err != nil {
		return false
	}
	parts := strings.SplitN(s.ClassLevel, "-", 2)
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return false
	}
	hi := lo
	if len(parts) == 2 {
		if hi, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return false
		}
	}
	return grade >= lo && grade <= hi
}

// JSONB support for the SQL repositories.

func (c LessonContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *LessonContent) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return errors.Errorf("unsupported lesson content type %T", src)
	}
	return json.Unmarshal(b, c)
}

func (q Questions) Value() (driver.Value, error) {
	return json.Marshal(q)
}

func (q *Questions) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return errors.Errorf("unsupported questions type %T", src)
	}
	return json.Unmarshal(b, q)
}
