package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/catalog"
)

type catalogApi struct {
	deps ServerDeps
}

func registerCatalogAPI(g *echo.Group, deps ServerDeps) {
	api := catalogApi{deps: deps}

	// the catalog is public
	sg := g.Group("/subjects")
	sg.GET("", api.subjectList)
	sg.GET("/:id", api.subjectRetrieve)
	sg.GET("/:id/lessons", api.lessonList)
	sg.GET("/:id/quizzes", api.quizList)

	g.GET("/lessons/:id", api.lessonRetrieve)
	g.GET("/quizzes/:id", api.quizRetrieve)
}

// Handlers

func (api *catalogApi) subjectList(ctx echo.Context) error {
	class := core.CleanString(ctx.QueryParam("class"))
	subjects, err := api.deps.CatalogSvc.QuerySubjects(class)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *catalogApi) subjectRetrieve(ctx echo.Context) error {
	sub, err := api.deps.CatalogSvc.GetSubject(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

// lessonList returns the subject's lessons in learning order.
// The subject is looked up first so an unknown id 404s instead of
// returning an empty list.
func (api *catalogApi) lessonList(ctx echo.Context) error {
	sub, err := api.deps.CatalogSvc.GetSubject(ctx.Param("id"))
	if err != nil {
		return err
	}
	lessons, err := api.deps.CatalogSvc.QueryLessons(sub.ID)
	if err != nil {
		return err
	}
	if lessons == nil {
		lessons = []catalog.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *catalogApi) lessonRetrieve(ctx echo.Context) error {
	les, err := api.deps.CatalogSvc.GetLesson(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *catalogApi) quizList(ctx echo.Context) error {
	sub, err := api.deps.CatalogSvc.GetSubject(ctx.Param("id"))
	if err != nil {
		return err
	}
	quizzes, err := api.deps.CatalogSvc.QueryQuizzes(sub.ID)
	if err != nil {
		return err
	}
	if quizzes == nil {
		quizzes = []catalog.Quiz{}
	}
	return ctx.JSON(http.StatusOK, quizzes)
}

func (api *catalogApi) quizRetrieve(ctx echo.Context) error {
	qz, err := api.deps.CatalogSvc.GetQuiz(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, qz)
}
