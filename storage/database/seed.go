package database

import (
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/catalog"
)

func lessonID(id string) *string { return &id }

// Seed loads the initial subject/lesson/quiz catalog. The catalog is
// read-only after startup; seed identifiers are preset so clients can link
// to them, runtime-created records always get generated ids.
func Seed(repo catalog.Repository) error {
	subjects := []catalog.Subject{
		{
			ID:           "math-1",
			Name:         "Mathematics",
			Icon:         "fas fa-calculator",
			Color:        "blue-600",
			Description:  "Learn numbers, calculations, and problem-solving",
			ClassLevel:   "1-5",
			TotalLessons: 12,
		},
		{
			ID:           "science-1",
			Name:         "Science",
			Icon:         "fas fa-flask",
			Color:        "green-600",
			Description:  "Explore the natural world and scientific concepts",
			ClassLevel:   "1-8",
			TotalLessons: 8,
		},
		{
			ID:           "language-1",
			Name:         "Language Arts",
			Icon:         "fas fa-book",
			Color:        "purple-600",
			Description:  "Develop reading, writing, and communication skills",
			ClassLevel:   "1-12",
			TotalLessons: 15,
		},
		{
			ID:           "social-1",
			Name:         "Social Studies",
			Icon:         "fas fa-globe-asia",
			Color:        "orange-600",
			Description:  "Learn about history, geography, and society",
			ClassLevel:   "3-10",
			TotalLessons: 10,
		},
	}
	for _, sub := range subjects {
		if _, err := repo.CreateSubject(sub); err != nil {
			return errors.Wrapf(err, "seeding subject %s", sub.ID)
		}
	}

	lessons := []catalog.Lesson{
		{
			ID:          "lesson-math-1",
			SubjectID:   "math-1",
			Title:       "Introduction to Addition",
			Description: "Learn the basics of adding numbers together",
			Content: catalog.LessonContent{
				Type: "interactive",
				Sections: []catalog.Section{
					{
						Type:    catalog.SectionExplanation,
						Title:   "What is Addition?",
						Content: "Addition is one of the basic operations in mathematics that helps us combine quantities.",
						Image:   "https://images.unsplash.com/photo-1503676260728-1c00da094a0b?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
					},
					{
						Type:    catalog.SectionInteractive,
						Title:   "Try it yourself:",
						Problem: "2 + 3 = ?",
						Answer:  "5",
					},
				},
			},
			Order:  1,
			Points: 10,
		},
		{
			ID:          "lesson-math-2",
			SubjectID:   "math-1",
			Title:       "Basic Subtraction",
			Description: "Learn how to subtract numbers",
			Content: catalog.LessonContent{
				Type: "interactive",
				Sections: []catalog.Section{
					{
						Type:    catalog.SectionExplanation,
						Title:   "Understanding Subtraction",
						Content: "Subtraction is the opposite of addition. It helps us find the difference between numbers.",
					},
				},
			},
			Order:  2,
			Points: 10,
		},
	}
	for _, les := range lessons {
		if _, err := repo.CreateLesson(les); err != nil {
			return errors.Wrapf(err, "seeding lesson %s", les.ID)
		}
	}

	quizzes := []catalog.Quiz{
		{
			ID:        "quiz-math-1",
			SubjectID: "math-1",
			LessonID:  lessonID("lesson-math-1"),
			Title:     "Math Quiz - Addition",
			Questions: catalog.Questions{
				{
					ID:            1,
					Question:      "What is 15 + 7?",
					Options:       []string{"20", "22", "25", "28"},
					CorrectAnswer: 1,
					Points:        10,
				},
				{
					ID:            2,
					Question:      "What is 9 + 6?",
					Options:       []string{"14", "15", "16", "17"},
					CorrectAnswer: 1,
					Points:        10,
				},
			},
			TimeLimit: 300,
			Points:    50,
		},
	}
	for _, qz := range quizzes {
		if _, err := repo.CreateQuiz(qz); err != nil {
			return errors.Wrapf(err, "seeding quiz %s", qz.ID)
		}
	}
	return nil
}
