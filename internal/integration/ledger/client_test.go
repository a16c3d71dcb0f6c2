package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

type staticToken string

func (s staticToken) Token() (string, bool) {
	return string(s), s != ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.Client(), server.URL, staticToken(token))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	if _, err := NewClient(nil, "not a url", nil); err == nil {
		t.Error("expected error for invalid base url")
	}
}

func TestClient_GetTransactionsByTypeAndUser(t *testing.T) {
	var gotPath, gotAuth, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(RequestIDHeader)
		_, _ = io.WriteString(w, `[
			{"ID": 1, "UserId": 42, "CategoryId": 3, "InExType": 1, "Amount": 3251, "Date": "2025-01-04T00:00:00", "Description": "rent"},
			{"ID": 2, "UserId": 42, "CategoryId": 4, "InExType": 1, "Amount": 20.5, "Date": "2025-01-13", "Description": ""}
		]`)
	}, "tok-1")

	txs, err := client.GetTransactionsByTypeAndUser(context.Background(), entity.TransactionTypeExpense, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/incomeExpenses/type/1/42" {
		t.Errorf("expected path /incomeExpenses/type/1/42, got %s", gotPath)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected request id header")
	}

	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	first := txs[0]
	if first.ID != "1" || first.UserID != "42" || first.CategoryID != "3" {
		t.Errorf("unexpected ids: %+v", first)
	}
	if first.Type != entity.TransactionTypeExpense {
		t.Errorf("expected expense, got %s", first.Type)
	}
	if !first.Amount.Equal(decimal.NewFromInt(3251)) {
		t.Errorf("expected amount 3251, got %s", first.Amount)
	}
	expectedDate := time.Date(2025, time.January, 4, 0, 0, 0, 0, time.Local)
	if !first.Date.Equal(expectedDate) {
		t.Errorf("expected local calendar date %s, got %s", expectedDate, first.Date)
	}
	if !txs[1].Amount.Equal(decimal.RequireFromString("20.5")) {
		t.Errorf("expected amount 20.5, got %s", txs[1].Amount)
	}
}

func TestClient_ForwardsRequestIDFromContext(t *testing.T) {
	var gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(RequestIDHeader)
		_, _ = io.WriteString(w, `[]`)
	}, "tok-1")

	ctx := WithRequestID(context.Background(), "req-123")
	if _, err := client.GetMonthlyTotals(ctx, "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRequestID != "req-123" {
		t.Errorf("expected forwarded request id req-123, got %q", gotRequestID)
	}
}

func TestClient_MalformedDateIsNetworkError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"ID": 1, "InExType": 0, "Amount": 1, "Date": "yesterday"}]`)
	}, "")

	_, err := client.GetTransactionsByTypeAndUser(context.Background(), entity.TransactionTypeIncome, "1")

	var netErr *domainerror.NetworkError
	if !errors.As(err, &netErr) || netErr.Code != domainerror.ErrCodeMalformedResponse {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}

func TestClient_ReadEndpoints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/categories/type/0/7":
			_, _ = io.WriteString(w, `[{"ID": 1, "Name": "Salary", "TotalAmount": 4500}, {"ID": 2, "Name": "Other", "TotalAmount": 0}]`)
		case "/incomeExpenses/MonthlyTotals/7":
			_, _ = io.WriteString(w, `[{"Year": 2025, "Month": 1, "TotalIncome": 10620.5, "TotalExpense": 7751}]`)
		case "/goals/dateRange/7/2025-01-15":
			_, _ = io.WriteString(w, `{"TotalAmount": 10000}`)
		default:
			http.NotFound(w, r)
		}
	}, "")
	ctx := context.Background()

	categories, err := client.GetCategoriesByTypeAndUser(ctx, entity.TransactionTypeIncome, "7")
	if err != nil {
		t.Fatalf("unexpected categories error: %v", err)
	}
	if len(categories) != 2 || categories[0].Name != "Salary" || !categories[0].TotalAmount.Equal(decimal.NewFromInt(4500)) {
		t.Errorf("unexpected categories: %+v", categories)
	}

	monthly, err := client.GetMonthlyTotals(ctx, "7")
	if err != nil {
		t.Fatalf("unexpected monthly error: %v", err)
	}
	if len(monthly) != 1 || monthly[0].Month != 1 || !monthly[0].TotalIncome.Equal(decimal.RequireFromString("10620.5")) {
		t.Errorf("unexpected monthly totals: %+v", monthly)
	}

	goal, err := client.GetGoalTotalForRange(ctx, "7", time.Date(2025, time.January, 15, 18, 30, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("unexpected goal error: %v", err)
	}
	if !goal.TotalAmount.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("expected goal total 10000, got %s", goal.TotalAmount)
	}
}

func TestClient_CreateOrUpdateTransactionSendsWireFormat(t *testing.T) {
	var body map[string]any
	var method, path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
	}, "tok")

	err := client.CreateOrUpdateTransaction(context.Background(), entity.Transaction{
		UserID:      "42",
		CategoryID:  "abc",
		Type:        entity.TransactionTypeIncome,
		Amount:      decimal.RequireFromString("12.50"),
		Date:        time.Date(2025, time.March, 9, 0, 0, 0, 0, time.Local),
		Description: "gift",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if method != http.MethodPost || path != "/incomeExpenses" {
		t.Errorf("expected POST /incomeExpenses, got %s %s", method, path)
	}
	if body["InExType"] != float64(0) {
		t.Errorf("expected InExType 0, got %v", body["InExType"])
	}
	if body["Amount"] != 12.5 {
		t.Errorf("expected numeric Amount 12.5, got %v", body["Amount"])
	}
	if body["Date"] != "2025-03-09" {
		t.Errorf("expected Date 2025-03-09, got %v", body["Date"])
	}
	if body["UserId"] != float64(42) {
		t.Errorf("expected numeric UserId 42, got %v", body["UserId"])
	}
	if body["CategoryId"] != "abc" {
		t.Errorf("expected string CategoryId abc, got %v", body["CategoryId"])
	}
	if _, ok := body["ID"]; ok {
		t.Error("expected ID to be omitted for a new transaction")
	}
}

func TestClient_CreateOrUpdateGoal(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/goals" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
	}, "")

	err := client.CreateOrUpdateGoal(context.Background(), entity.Goal{
		UserID:     "1",
		CategoryID: "2",
		Amount:     decimal.NewFromInt(500),
		StartDate:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		EndDate:    time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["StartDate"] != "2025-01-01" || body["EndDate"] != "2025-01-31" {
		t.Errorf("unexpected goal dates: %v / %v", body["StartDate"], body["EndDate"])
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectAuth   bool
		expectedCode domainerror.NetworkErrorCode
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, expectAuth: true},
		{name: "forbidden", status: http.StatusForbidden, expectAuth: true},
		{name: "server error", status: http.StatusInternalServerError, expectedCode: domainerror.ErrCodeLedgerUnavailable},
		{name: "bad gateway", status: http.StatusBadGateway, expectedCode: domainerror.ErrCodeLedgerUnavailable},
		{name: "not found", status: http.StatusNotFound, body: `{"message":"no such user"}`, expectedCode: domainerror.ErrCodeUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, "tok")

			_, err := client.GetMonthlyTotals(context.Background(), "1")

			if tt.expectAuth {
				var authErr *domainerror.AuthError
				if !errors.As(err, &authErr) {
					t.Fatalf("expected AuthError, got %v", err)
				}
				return
			}

			var netErr *domainerror.NetworkError
			if !errors.As(err, &netErr) {
				t.Fatalf("expected NetworkError, got %v", err)
			}
			if netErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, netErr.Code)
			}
			if netErr.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, netErr.StatusCode)
			}
		})
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(nil, url, nil)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.GetMonthlyTotals(context.Background(), "1")
	if !errors.Is(err, domainerror.ErrLedgerUnavailable) {
		t.Errorf("expected ErrLedgerUnavailable, got %v", err)
	}
}

func TestClient_Login(t *testing.T) {
	t.Run("success maps the profile", func(t *testing.T) {
		var sent loginRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/auth/login" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "" {
				t.Error("expected no bearer token without a session")
			}
			_ = json.NewDecoder(r.Body).Decode(&sent)
			_, _ = io.WriteString(w, `{"token":"jwt","user":{"ID":9,"FullName":"Jane","Email":"j@x.io","Phone":"1","Gender":1}}`)
		}, "")

		result, err := client.Login(context.Background(), "j@x.io", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sent.Email != "j@x.io" || sent.Password != "secret" {
			t.Errorf("unexpected credentials sent: %+v", sent)
		}
		expected := entity.UserProfile{ID: "9", FullName: "Jane", Email: "j@x.io", Phone: "1", Gender: entity.GenderFemale}
		if result.Token != "jwt" || result.User != expected {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("rejection surfaces the backend message verbatim", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `"Email veya şifre hatalı"`)
		}, "")

		_, err := client.Login(context.Background(), "j@x.io", "wrong")

		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
		if authErr.Code != domainerror.ErrCodeInvalidCredentials {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCredentials, authErr.Code)
		}
		if authErr.Message != "Email veya şifre hatalı" {
			t.Errorf("expected verbatim message, got %q", authErr.Message)
		}
	})

	t.Run("server failure stays a network error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}, "")

		_, err := client.Login(context.Background(), "j@x.io", "secret")

		var netErr *domainerror.NetworkError
		if !errors.As(err, &netErr) {
			t.Fatalf("expected NetworkError, got %v", err)
		}
	})
}

func TestClient_UserEndpoints(t *testing.T) {
	var updateBody, registerBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/users":
			_ = json.NewDecoder(r.Body).Decode(&registerBody)
		case r.Method == http.MethodPut && r.URL.Path == "/users/5":
			_ = json.NewDecoder(r.Body).Decode(&updateBody)
		case r.Method == http.MethodGet && r.URL.Path == "/users/id/5":
			_, _ = io.WriteString(w, `{"ID":5,"FullName":"New Name","Email":"n@x.io","Phone":"2"}`)
		default:
			http.NotFound(w, r)
		}
	}, "tok")
	ctx := context.Background()

	err := client.Register(ctx, adapter.Registration{FullName: "A", Email: "a@x.io", Password: "pw", Gender: entity.GenderOther})
	if err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	if registerBody["Gender"] != float64(2) || registerBody["Password"] != "pw" {
		t.Errorf("unexpected register body: %v", registerBody)
	}

	err = client.UpdateUser(ctx, "5", adapter.ProfilePatch{FullName: "New Name", Gender: entity.GenderUnknown})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if _, ok := updateBody["Gender"]; ok {
		t.Error("expected unknown gender to be omitted")
	}

	user, err := client.GetUser(ctx, "5")
	if err != nil {
		t.Fatalf("unexpected get user error: %v", err)
	}
	if user.FullName != "New Name" || user.Gender != entity.GenderUnknown {
		t.Errorf("unexpected user: %+v", user)
	}
}
