package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/progress"
)

type progressApi struct {
	deps ServerDeps
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := progressApi{deps: deps}

	ug := g.Group("/users/:id", jwt, ctxUserMiddleware())
	ug.GET("/progress", api.progressList)
	ug.POST("/progress", api.progressRecord)
	ug.PUT("/progress/:progressId", api.progressUpdate)
	ug.GET("/quiz-attempts", api.attemptList)
	ug.POST("/quiz-attempts", api.attemptRecord)
	ug.GET("/dashboard", api.dashboard)
}

// Handlers

func (api *progressApi) progressList(ctx echo.Context) error {
	usr, err := api.deps.UserSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	subjectID := core.CleanString(ctx.QueryParam("subjectId"))
	records, err := api.deps.ProgressSvc.Query(usr.ID, subjectID)
	if err != nil {
		return err
	}
	if records == nil {
		records = []progress.UserProgress{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *progressApi) progressRecord(ctx echo.Context) error {
	usr, err := api.deps.UserSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data progress.NewProgress
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProgress")
	}
	if err = data.Validate(api.deps.Validate); err != nil {
		return err
	}

	prog, err := api.deps.ProgressSvc.Record(usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "recording progress")
	}
	return ctx.JSON(http.StatusCreated, prog)
}

func (api *progressApi) progressUpdate(ctx echo.Context) error {
	usr, err := api.deps.UserSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	prog, err := api.deps.ProgressSvc.Get(ctx.Param("progressId"))
	if err != nil {
		return err
	}
	// a record belonging to another user is indistinguishable from a
	// missing one
	if prog.UserID != usr.ID {
		return progress.ErrNotFound
	}

	var data progress.UpdateProgress
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProgress")
	}
	if err = data.Validate(api.deps.Validate); err != nil {
		return err
	}

	prog, err = api.deps.ProgressSvc.Update(prog.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating progress")
	}
	return ctx.JSON(http.StatusOK, prog)
}

func (api *progressApi) attemptList(ctx echo.Context) error {
	usr, err := api.deps.UserSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	attempts, err := api.deps.ProgressSvc.QueryAttempts(usr.ID)
	if err != nil {
		return err
	}
	if attempts == nil {
		attempts = []progress.QuizAttempt{}
	}
	return ctx.JSON(http.StatusOK, attempts)
}

func (api *progressApi) attemptRecord(ctx echo.Context) error {
	usr, err := api.deps.UserSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data progress.NewQuizAttempt
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuizAttempt")
	}
	if err = data.Validate(api.deps.Validate); err != nil {
		return err
	}

	att, err := api.deps.ProgressSvc.RecordAttempt(usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "recording quiz attempt")
	}
	return ctx.JSON(http.StatusCreated, att)
}

func (api *progressApi) dashboard(ctx echo.Context) error {
	dash, err := api.deps.Aggregator.Dashboard(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dash)
}
