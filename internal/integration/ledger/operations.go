package ledger

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// GetTransactionsByTypeAndUser fetches every transaction of one type.
func (c *Client) GetTransactionsByTypeAndUser(ctx context.Context, txType entity.TransactionType, userID string) ([]entity.Transaction, error) {
	const operation = "get transactions"

	var rows []transactionDTO
	path := []string{"incomeExpenses", "type", strconv.Itoa(typeCode(txType)), userID}
	if err := c.do(ctx, operation, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}

	transactions := make([]entity.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := row.toEntity()
		if err != nil {
			return nil, domainerror.NewNetworkError(domainerror.ErrCodeMalformedResponse, operation, http.StatusOK, errors.Join(domainerror.ErrMalformedResponse, err))
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// GetCategoriesByTypeAndUser fetches the user's categories of one type with their totals.
func (c *Client) GetCategoriesByTypeAndUser(ctx context.Context, txType entity.TransactionType, userID string) ([]entity.CategoryTotal, error) {
	var rows []categoryTotalDTO
	path := []string{"categories", "type", strconv.Itoa(typeCode(txType)), userID}
	if err := c.do(ctx, "get categories", http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}

	totals := make([]entity.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = entity.CategoryTotal{
			ID:          string(row.ID),
			Name:        row.Name,
			TotalAmount: row.TotalAmount,
		}
	}
	return totals, nil
}

// GetMonthlyTotals fetches the backend's per-month totals.
func (c *Client) GetMonthlyTotals(ctx context.Context, userID string) ([]entity.MonthlyTotals, error) {
	var rows []monthlyTotalsDTO
	path := []string{"incomeExpenses", "MonthlyTotals", userID}
	if err := c.do(ctx, "get monthly totals", http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}

	totals := make([]entity.MonthlyTotals, len(rows))
	for i, row := range rows {
		totals[i] = entity.MonthlyTotals{
			Year:         row.Year,
			Month:        row.Month,
			TotalIncome:  row.TotalIncome,
			TotalExpense: row.TotalExpense,
		}
	}
	return totals, nil
}

// GetGoalTotalForRange fetches the summed goal amount active at referenceDate.
func (c *Client) GetGoalTotalForRange(ctx context.Context, userID string, referenceDate time.Time) (entity.GoalTotal, error) {
	var row goalTotalDTO
	path := []string{"goals", "dateRange", userID, entity.FormatDate(referenceDate)}
	if err := c.do(ctx, "get goal total", http.MethodGet, path, nil, &row); err != nil {
		return entity.GoalTotal{}, err
	}
	return entity.GoalTotal{TotalAmount: row.TotalAmount}, nil
}

// CreateOrUpdateTransaction saves a transaction.
func (c *Client) CreateOrUpdateTransaction(ctx context.Context, tx entity.Transaction) error {
	return c.do(ctx, "save transaction", http.MethodPost, []string{"incomeExpenses"}, transactionRequestFromEntity(tx), nil)
}

// CreateOrUpdateGoal saves a goal.
func (c *Client) CreateOrUpdateGoal(ctx context.Context, goal entity.Goal) error {
	return c.do(ctx, "save goal", http.MethodPost, []string{"goals"}, goalRequestFromEntity(goal), nil)
}

// Login exchanges credentials for a token and the user's profile.
// Any 4xx answer is a rejected login and carries the backend's message.
func (c *Client) Login(ctx context.Context, email, password string) (*adapter.LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, "login", http.MethodPost, []string{"api", "auth", "login"}, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, asRejection(err, domainerror.ErrCodeInvalidCredentials, domainerror.ErrInvalidCredentials)
	}
	if resp.Token == "" {
		return nil, domainerror.NewNetworkError(domainerror.ErrCodeMalformedResponse, "login", http.StatusOK, domainerror.ErrMalformedResponse)
	}

	return &adapter.LoginResult{
		Token: resp.Token,
		User:  resp.User.toEntity(),
	}, nil
}

// Register creates a backend account.
func (c *Client) Register(ctx context.Context, reg adapter.Registration) error {
	err := c.do(ctx, "register", http.MethodPost, []string{"users"}, registerRequestFrom(reg), nil)
	if err != nil {
		return asRejection(err, domainerror.ErrCodeRegistrationRejected, domainerror.ErrRegistrationRejected)
	}
	return nil
}

// UpdateUser applies a profile patch.
func (c *Client) UpdateUser(ctx context.Context, userID string, patch adapter.ProfilePatch) error {
	return c.do(ctx, "update user", http.MethodPut, []string{"users", userID}, updateUserRequestFrom(userID, patch), nil)
}

// GetUser fetches a user profile by id.
func (c *Client) GetUser(ctx context.Context, userID string) (*entity.UserProfile, error) {
	var row userDTO
	if err := c.do(ctx, "get user", http.MethodGet, []string{"users", "id", userID}, nil, &row); err != nil {
		return nil, err
	}
	user := row.toEntity()
	if user.ID == "" {
		user.ID = userID
	}
	return &user, nil
}

// asRejection turns a 4xx answer to a credentials request into an AuthError.
// Transport failures and 5xx answers stay NetworkErrors.
func asRejection(err error, code domainerror.AuthErrorCode, sentinel error) error {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return domainerror.NewAuthError(code, authErr.Message, sentinel)
	}

	var netErr *domainerror.NetworkError
	if errors.As(err, &netErr) && netErr.StatusCode >= 400 && netErr.StatusCode < 500 {
		message := sentinel.Error()
		var msg *backendMessage
		if errors.As(netErr, &msg) {
			message = msg.text
		}
		return domainerror.NewAuthError(code, message, sentinel)
	}
	return err
}
