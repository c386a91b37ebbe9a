package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/elimu/apps/api/echo"
	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/otp"
	"github.com/trezcool/elimu/core/progress"
	"github.com/trezcool/elimu/core/user"
	smssvc "github.com/trezcool/elimu/services/sms"
	"github.com/trezcool/elimu/storage/database"
	inmemdb "github.com/trezcool/elimu/storage/database/inmem"
	testutil "github.com/trezcool/elimu/tests"
)

var (
	conf *core.Config

	usrRepo  user.Repository
	otpRepo  otp.Repository
	catRepo  catalog.Repository
	progRepo progress.Repository

	otpSvc otp.ServiceInterface
)

func setup(t *testing.T) Server {
	t.Helper()

	conf = &core.Config{
		AppName:   "Elimu",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "secret",
		OTP:       core.OTPConfig{ExpirationDelta: 5 * time.Minute},
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
	}

	// set up store & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed, %v", err)
	}
	usrRepo = inmemdb.NewUserRepository(db)
	otpRepo = inmemdb.NewOtpRepository(db)
	catRepo = inmemdb.NewCatalogRepository(db)
	progRepo = inmemdb.NewProgressRepository(db)

	// set up services
	logger := testutil.NewNopLogger()
	smsSvc := smssvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewService(usrRepo)
	otpSvc = otp.NewService(otpRepo, smsSvc, conf)
	catSvc := catalog.NewService(catRepo)
	progSvc := progress.NewService(progRepo, usrSvc, logger)
	aggregator := progress.NewAggregator(progRepo, usrSvc, catSvc)

	validate := validator.New()
	translator := newTranslator(t)
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	smssvc.ClearSentMessages()

	// set up server
	return NewServer(
		ServerDeps{
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
}

func newTranslator(t *testing.T) ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, ok := uni.GetTranslator("en")
	if !ok {
		t.Fatal("newTranslator() failed")
	}
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(conf, usr)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

// nolint
func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func testUser(t *testing.T, name, mobileNumber, class string, points int) user.User {
	return testutil.CreateUser(t, usrRepo, name, mobileNumber, class, points)
}

func seedCatalog(t *testing.T) {
	t.Helper()
	// the standard seed fixture: 4 subjects, 2 math lessons, 1 math quiz
	if err := database.Seed(catRepo); err != nil {
		t.Fatalf("seedCatalog() failed: %v", err)
	}
}
