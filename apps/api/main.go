package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/elimu/apps/api/echo"
	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/otp"
	"github.com/trezcool/elimu/core/progress"
	"github.com/trezcool/elimu/core/user"
	logsvc "github.com/trezcool/elimu/services/logger"
	smssvc "github.com/trezcool/elimu/services/sms"
	"github.com/trezcool/elimu/storage/database"
	inmemdb "github.com/trezcool/elimu/storage/database/inmem"
	sqlxrepos "github.com/trezcool/elimu/storage/database/sqlx"
)

type repositories struct {
	user     user.Repository
	otp      otp.Repository
	catalog  catalog.Repository
	progress progress.Repository
	close    func() error
}

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up storage
	repos, err := setUpRepositories(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer func() {
		if err = repos.close(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	if err = seedIfEmpty(repos.catalog); err != nil {
		logger.Fatal(fmt.Sprintf("seeding catalog: %v", err), err)
	}

	// set up services
	smsSvc := smssvc.NewConsoleService(conf)
	usrSvc := user.NewService(repos.user)
	otpSvc := otp.NewService(repos.otp, smsSvc, conf)
	catSvc := catalog.NewService(repos.catalog)
	progSvc := progress.NewService(repos.progress, usrSvc, logger)
	aggregator := progress.NewAggregator(repos.progress, usrSvc, catSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			UserSvc:     usrSvc,
			OtpSvc:      otpSvc,
			CatalogSvc:  catSvc,
			ProgressSvc: progSvc,
			Aggregator:  aggregator,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpRepositories(conf *core.Config) (repositories, error) {
	if conf.Database.Engine == "inmem" {
		db, err := inmemdb.Open()
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			user:     inmemdb.NewUserRepository(db),
			otp:      inmemdb.NewOtpRepository(db),
			catalog:  inmemdb.NewCatalogRepository(db),
			progress: inmemdb.NewProgressRepository(db),
			close:    func() error { return nil },
		}, nil
	}

	if err := database.CreateIfNotExist(conf); err != nil {
		return repositories{}, err
	}
	db, err := database.Open(conf)
	if err != nil {
		return repositories{}, err
	}
	if err = database.Migrate(db.DB); err != nil {
		return repositories{}, err
	}
	return repositories{
		user:     sqlxrepos.NewUserRepository(db),
		otp:      sqlxrepos.NewOtpRepository(db),
		catalog:  sqlxrepos.NewCatalogRepository(db),
		progress: sqlxrepos.NewProgressRepository(db),
		close:    db.Close,
	}, nil
}

// seedIfEmpty loads the initial catalog on first start only.
func seedIfEmpty(repo catalog.Repository) error {
	subjects, err := repo.QueryAllSubjects()
	if err != nil {
		return err
	}
	if len(subjects) > 0 {
		return nil
	}
	return database.Seed(repo)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
