package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/otp"
	"github.com/trezcool/elimu/core/user"
)

type (
	authApi struct {
		deps ServerDeps
	}

	SendOtpResponse struct {
		Success bool   `json:"success"`
		Otp     string `json:"otp"` // returned in-band; no real delivery channel
	}

	VerifyOtpResponse struct {
		Success    bool       `json:"success"`
		UserExists bool       `json:"userExists"`
		User       *user.User `json:"user,omitempty"`
		Token      string     `json:"token,omitempty"`
	}
)

func registerAuthAPI(g *echo.Group, deps ServerDeps) {
	api := authApi{deps: deps}

	og := g.Group("/otp")
	// TODO: rate limit `/send` once a carrier gateway is wired in
	og.POST("/send", api.sendOtp)
	og.POST("/verify", api.verifyOtp)
}

// Handlers

func (api *authApi) sendOtp(ctx echo.Context) error {
	var data otp.NewOtp
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewOtp")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	v, err := api.deps.OtpSvc.Issue(data.MobileNumber)
	if err != nil {
		return errors.Wrap(err, "issuing otp")
	}

	return ctx.JSON(http.StatusOK, SendOtpResponse{Success: true, Otp: v.Code})
}

func (api *authApi) verifyOtp(ctx echo.Context) error {
	var data otp.VerifyOtp
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to VerifyOtp")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	ok, err := api.deps.OtpSvc.Verify(data.MobileNumber, data.Code)
	if err != nil {
		return errors.Wrap(err, "verifying otp")
	}
	if !ok {
		return core.NewValidationError(errors.New("invalid or expired OTP"))
	}

	resp := VerifyOtpResponse{Success: true}
	usr, err := api.deps.UserSvc.GetByMobileNumber(data.MobileNumber)
	switch errors.Cause(err) {
	case nil:
		resp.UserExists = true
		resp.User = &usr
		token, err := GenerateToken(api.deps.Conf, GetUserClaims(api.deps.Conf, usr))
		if err != nil {
			return errors.Wrap(err, "generating token")
		}
		resp.Token = token
	case user.ErrNotFound:
		// the client moves on to profile setup
	default:
		return errors.Wrap(err, "finding user by mobile number")
	}

	return ctx.JSON(http.StatusOK, resp)
}

type userApi struct {
	deps ServerDeps
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := userApi{deps: deps}

	// profile setup happens right after OTP verification, before any token exists
	g.POST("/users", api.create)

	// detail endpoints
	dg := g.Group("/users/:id", jwt, ctxUserMiddleware())
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
}

// Handlers

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.deps.Validate, api.deps.UserSvc); err != nil {
		return err
	}

	usr, err := api.deps.UserSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}

	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, err := api.deps.UserSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) update(ctx echo.Context) error {
	usr, err := api.deps.UserSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(api.deps.Validate, usr); err != nil {
		return err
	}

	usr, err = api.deps.UserSvc.Update(usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}
