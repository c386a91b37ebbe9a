package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/otp"
	"github.com/trezcool/elimu/core/progress"
	"github.com/trezcool/elimu/core/user"
)

type (
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		UserSvc     user.ServiceInterface
		OtpSvc      otp.ServiceInterface
		CatalogSvc  catalog.ServiceInterface
		ProgressSvc progress.ServiceInterface
		Aggregator  progress.AggregatorInterface
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps  ServerDeps
		app   *echo.Echo
		errCh chan error
		sigCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:  deps,
		app:   echo.New(),
		errCh: make(chan error, 1),
		sigCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.sigCh, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.Logger.SetLevel(log.OFF)

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := userJWTMiddleware(conf)

	registerAuthAPI(v1, s.deps)
	registerUserAPI(v1, jwt, s.deps)
	registerCatalogAPI(v1, s.deps)
	registerProgressAPI(v1, jwt, s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errCh <- err
	}
}

func (s *server) Errors() <-chan error {
	return s.errCh
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.sigCh
}

// signalShutdown triggers a graceful shutdown from within a request.
func (s *server) signalShutdown() {
	s.sigCh <- syscall.SIGTERM
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Elimu API!")
}
