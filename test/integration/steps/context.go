// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/passmeter/backend/config"
	"github.com/passmeter/backend/internal/infra/dependency"
	"github.com/passmeter/backend/internal/integration/email"
	"github.com/passmeter/backend/internal/integration/persistence/model"
	"github.com/passmeter/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// Limits are kept small so scenarios can exhaust them.
const (
	testLoginMaxAttempts    = 3
	testStrengthMaxAttempts = 5
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	client       *http.Client
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken  string
	refreshToken string

	// Storage
	db    *mock.Db
	redis *redis.Client

	// Background jobs
	emailWorker *email.Worker
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

var (
	suiteServer      *httptest.Server
	suiteDB          *mock.Db
	suiteRedis       *redis.Client
	suiteEmailWorker *email.Worker
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Environment: "development"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite},
		Redis:    config.RedisConfig{Enabled: true},
		JWT: config.JWTConfig{
			Secret:             testJWTSecret,
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		RateLimit: config.RateLimitConfig{
			LoginMaxAttempts:    testLoginMaxAttempts,
			StrengthMaxAttempts: testStrengthMaxAttempts,
			Window:              time.Minute,
		},
		Password: config.PasswordConfig{MinStrength: "Moderate", ResetTokenExpiry: time.Hour},
		Email: config.EmailConfig{
			FromName:   "Passmeter",
			FromEmail:  "noreply@passmeter.test",
			AppBaseURL: "http://localhost:8080",
			BatchSize:  10,
		},
	}
}

// InitializeTestSuite wires the application once against in-memory storage.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		suiteDB = mock.NewDb(model.All())
		suiteRedis = mock.NewRedis()

		injector, err := dependency.NewInjector(testConfig(), suiteDB.DbConn, suiteRedis)
		if err != nil {
			panic(fmt.Sprintf("failed to build injector: %v", err))
		}
		suiteServer = httptest.NewServer(injector.Router.Setup("development"))
		suiteEmailWorker = injector.EmailWorker
	})

	ctx.AfterSuite(func() {
		if suiteServer != nil {
			suiteServer.Close()
		}
		if suiteRedis != nil {
			_ = suiteRedis.Close()
		}
	})
}

// InitializeScenario resets storage before each scenario and registers all steps.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if suiteServer == nil {
			return ctx, fmt.Errorf("test suite was not initialized")
		}
		if err := suiteDB.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(ctx, suiteRedis); err != nil {
			return ctx, err
		}

		tc := &TestContext{
			server:         suiteServer,
			client:         &http.Client{Timeout: 10 * time.Second},
			requestHeaders: make(map[string]string),
			db:             suiteDB,
			redis:          suiteRedis,
			emailWorker:    suiteEmailWorker,
		}
		return SetTestContext(ctx, tc), nil
	})

	registerAPISteps(ctx)
	registerAuthSteps(ctx)
	registerResponseSteps(ctx)
	registerDatabaseSteps(ctx)
	registerEmailSteps(ctx)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" (\d+) times with body:$`, iSendARequestNTimesWithBody)
	ctx.Step(`^I submit the form at "([^"]*)" with:$`, iSubmitTheFormWith)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
}

// registerAuthSteps registers steps that create users and hold their tokens.
func registerAuthSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, aUserExistsWithEmailAndPassword)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, iAmLoggedInAsWithPassword)
	ctx.Step(`^I send my refresh token to "([^"]*)"$`, iSendMyRefreshTokenTo)
	ctx.Step(`^I clear my access token$`, iClearMyAccessToken)
}

// registerEmailSteps registers steps that drive the email queue and follow emailed links.
func registerEmailSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the email worker processes the queue$`, theEmailWorkerProcessesTheQueue)
	ctx.Step(`^I open the password reset link emailed to "([^"]*)"$`, iOpenThePasswordResetLinkEmailedTo)
	ctx.Step(`^I reset my password to "([^"]*)" using the link emailed to "([^"]*)"$`, iResetMyPasswordUsingTheLinkEmailedTo)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, theResponseShouldNotContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should not exist$`, theResponseFieldShouldNotExist)
	ctx.Step(`^the response header "([^"]*)" should exist$`, theResponseHeaderShouldExist)
}

// registerDatabaseSteps registers database assertion steps.
func registerDatabaseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in "([^"]*)" with "([^"]*)" equal to "([^"]*)"$`, theDbShouldContainObjectsWhere)
}
