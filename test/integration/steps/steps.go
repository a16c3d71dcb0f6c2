package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
)

const backendSigningKey = "backend-signing-key-for-tests"

// registerCompanionSteps registers steps that configure and run the companion.
func registerCompanionSteps(ctx *godog.ScenarioContext) {
	ctx.Given(`^the companion uses the "([^"]*)" session store$`, theCompanionUsesTheSessionStore)
	ctx.Given(`^login attempts are limited to (\d+) per minute$`, loginAttemptsAreLimitedTo)
	ctx.Given(`^the companion is running$`, theCompanionIsRunning)
	ctx.When(`^the companion restarts$`, theCompanionRestarts)
	ctx.Given(`^I am logged in as user (\d+)$`, iAmLoggedInAsUser)
	ctx.Then(`^the session store should contain (\d+) entries$`, theSessionStoreShouldContainEntries)
}

// registerLedgerSteps registers steps that script and inspect the fake backend.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Given(`^the backend accepts the login of "([^"]*)" as user (\d+)$`, theBackendAcceptsTheLoginOfAsUser)
	ctx.Given(`^the backend rejects logins with status (\d+) and message "([^"]*)"$`, theBackendRejectsLoginsWithStatusAndMessage)
	ctx.Given(`^the backend answers "([^"]*)" "([^"]*)" with status (\d+)$`, theBackendAnswersWithStatus)
	ctx.Given(`^the backend answers "([^"]*)" "([^"]*)" with status (\d+) and body:$`, theBackendAnswersWithStatusAndBody)
	ctx.Then(`^the backend should have received (\d+) "([^"]*)" requests? to "([^"]*)"$`, theBackendShouldHaveReceivedRequestsTo)
	ctx.Then(`^the backend should have received no requests$`, theBackendShouldHaveReceivedNoRequests)
	ctx.Then(`^the last "([^"]*)" request to "([^"]*)" should have header "([^"]*)" with "([^"]*)"$`, theLastRequestShouldHaveHeader)
	ctx.Then(`^the last "([^"]*)" request to "([^"]*)" should have body field "([^"]*)" with "([^"]*)"$`, theLastRequestShouldHaveBodyField)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, theHeaderContainsTheKeyWith)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Then(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, theResponseFieldShouldHaveItems)
}

func testContext(ctx context.Context) (*TestContext, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, fmt.Errorf("test context not found")
	}
	return tc, nil
}

// Companion steps

func theCompanionUsesTheSessionStore(ctx context.Context, driver string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if tc.server != nil {
		return fmt.Errorf("session store must be chosen before the companion starts")
	}
	tc.cfg.Session.Driver = driver
	return nil
}

func loginAttemptsAreLimitedTo(ctx context.Context, limit int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	tc.cfg.Ledger.LoginLimit = limit
	tc.cfg.Ledger.LoginWindow = time.Minute
	return nil
}

func theCompanionIsRunning(ctx context.Context) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if err := tc.boot(); err != nil {
		return err
	}
	if err := tc.send(http.MethodGet, "/health", nil); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("health check answered %d", tc.response.StatusCode)
	}
	return nil
}

func theCompanionRestarts(ctx context.Context) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	return tc.restart()
}

func iAmLoggedInAsUser(ctx context.Context, userID int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	email := fmt.Sprintf("user%d@example.com", userID)
	if err := theBackendAcceptsTheLoginOfAsUser(ctx, email, userID); err != nil {
		return err
	}

	body := fmt.Sprintf(`{"email": %q, "password": "secret"}`, email)
	if err := tc.send(http.MethodPost, "/api/v1/session/login", strings.NewReader(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %s", tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func theSessionStoreShouldContainEntries(ctx context.Context, expected int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	count, err := tc.storedEntries()
	if err != nil {
		return err
	}
	if count != expected {
		return fmt.Errorf("expected %d stored entries, got %d", expected, count)
	}
	return nil
}

// Backend steps

func signedToken(userID int) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(backendSigningKey))
}

func theBackendAcceptsTheLoginOfAsUser(ctx context.Context, email string, userID int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	token, err := signedToken(userID)
	if err != nil {
		return err
	}

	tc.ledger.SetResponse(http.MethodPost, "/api/auth/login", http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"ID":       userID,
			"FullName": "Ayşe Yılmaz",
			"Email":    email,
			"Phone":    "+905551112233",
			"Gender":   1,
		},
	})
	return nil
}

func theBackendRejectsLoginsWithStatusAndMessage(ctx context.Context, status int, message string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	tc.ledger.SetResponse(http.MethodPost, "/api/auth/login", status, map[string]any{"message": message})
	return nil
}

func theBackendAnswersWithStatus(ctx context.Context, method, path string, status int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	tc.ledger.SetResponse(method, path, status, map[string]any{})
	return nil
}

func theBackendAnswersWithStatusAndBody(ctx context.Context, method, path string, status int, body *godog.DocString) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal([]byte(body.Content), &parsed); err != nil {
		return fmt.Errorf("failed to parse backend body: %w", err)
	}
	tc.ledger.SetResponse(method, path, status, parsed)
	return nil
}

func theBackendShouldHaveReceivedRequestsTo(ctx context.Context, expected int, method, path string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if got := len(tc.ledger.Requests(method, path)); got != expected {
		return fmt.Errorf("expected %d %s %s requests, got %d", expected, method, path, got)
	}
	return nil
}

func theBackendShouldHaveReceivedNoRequests(ctx context.Context) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if got := tc.ledger.RequestCount(); got != 0 {
		return fmt.Errorf("expected no backend requests, got %d", got)
	}
	return nil
}

func theLastRequestShouldHaveHeader(ctx context.Context, method, path, header, expected string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	reqs := tc.ledger.Requests(method, path)
	if len(reqs) == 0 {
		return fmt.Errorf("no %s %s request received", method, path)
	}
	actual := reqs[len(reqs)-1].Headers[http.CanonicalHeaderKey(header)]
	if expected == "<any>" {
		if actual == "" {
			return fmt.Errorf("header %s missing", header)
		}
		return nil
	}
	if actual != expected {
		return fmt.Errorf("header %s expected %q, got %q", header, expected, actual)
	}
	return nil
}

func theLastRequestShouldHaveBodyField(ctx context.Context, method, path, field, expected string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	reqs := tc.ledger.Requests(method, path)
	if len(reqs) == 0 {
		return fmt.Errorf("no %s %s request received", method, path)
	}
	value, ok := lookup(reqs[len(reqs)-1].Body, field)
	if !ok {
		return fmt.Errorf("field '%s' not found in backend request", field)
	}
	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("backend field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

// API steps

func theHeaderContainsTheKeyWith(ctx context.Context, key, value string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	tc.requestHeaders[key] = value
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	return tc.send(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	return tc.send(method, endpoint, bytes.NewBufferString(body.Content))
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func responseField(tc *TestContext, field string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}
	value, ok := lookup(data, field)
	if !ok {
		return nil, fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
	}
	return value, nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	value, err := responseField(tc, field)
	if err != nil {
		return err
	}
	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	_, err = responseField(tc, field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	value, err := responseField(tc, field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if len(items) != expected {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, expected, len(items))
	}
	return nil
}

// lookup resolves a dotted path such as "budget.overspend" or "recent.0.id".
func lookup(data any, path string) (any, bool) {
	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}
