package ledger

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// Wire type codes of transactions and categories.
const (
	typeCodeIncome  = 0
	typeCodeExpense = 1
)

// Wire gender codes.
const (
	genderCodeMale   = 0
	genderCodeFemale = 1
	genderCodeOther  = 2
)

func typeCode(t entity.TransactionType) int {
	if t == entity.TransactionTypeIncome {
		return typeCodeIncome
	}
	return typeCodeExpense
}

func typeFromCode(code int) entity.TransactionType {
	switch code {
	case typeCodeIncome:
		return entity.TransactionTypeIncome
	case typeCodeExpense:
		return entity.TransactionTypeExpense
	}
	return entity.TransactionType("code-" + strconv.Itoa(code))
}

func genderCode(g entity.Gender) *int {
	var code int
	switch g {
	case entity.GenderMale:
		code = genderCodeMale
	case entity.GenderFemale:
		code = genderCodeFemale
	case entity.GenderOther:
		code = genderCodeOther
	default:
		return nil
	}
	return &code
}

func genderFromCode(code *int) entity.Gender {
	if code == nil {
		return entity.GenderUnknown
	}
	switch *code {
	case genderCodeMale:
		return entity.GenderMale
	case genderCodeFemale:
		return entity.GenderFemale
	case genderCodeOther:
		return entity.GenderOther
	}
	return entity.GenderUnknown
}

// wireID accepts identifiers sent either as JSON numbers or strings.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = wireID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers so the backend sees its own encoding.
func (id wireID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func amountNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type transactionDTO struct {
	ID          wireID          `json:"ID,omitempty"`
	UserID      wireID          `json:"UserId"`
	CategoryID  wireID          `json:"CategoryId"`
	InExType    int             `json:"InExType"`
	Amount      decimal.Decimal `json:"Amount"`
	Date        string          `json:"Date"`
	Description string          `json:"Description"`
}

func (d transactionDTO) toEntity() (entity.Transaction, error) {
	date, err := entity.ParseDate(d.Date)
	if err != nil {
		return entity.Transaction{}, err
	}
	return entity.Transaction{
		ID:          string(d.ID),
		UserID:      string(d.UserID),
		CategoryID:  string(d.CategoryID),
		Type:        typeFromCode(d.InExType),
		Amount:      d.Amount,
		Date:        date,
		Description: d.Description,
	}, nil
}

type transactionRequest struct {
	ID          wireID      `json:"ID,omitempty"`
	UserID      wireID      `json:"UserId"`
	CategoryID  wireID      `json:"CategoryId"`
	InExType    int         `json:"InExType"`
	Amount      json.Number `json:"Amount"`
	Date        string      `json:"Date"`
	Description string      `json:"Description"`
}

func transactionRequestFromEntity(tx entity.Transaction) transactionRequest {
	return transactionRequest{
		ID:          wireID(tx.ID),
		UserID:      wireID(tx.UserID),
		CategoryID:  wireID(tx.CategoryID),
		InExType:    typeCode(tx.Type),
		Amount:      amountNumber(tx.Amount),
		Date:        entity.FormatDate(tx.Date),
		Description: tx.Description,
	}
}

type goalRequest struct {
	ID          wireID      `json:"ID,omitempty"`
	UserID      wireID      `json:"UserId"`
	CategoryID  wireID      `json:"CategoryId"`
	Amount      json.Number `json:"Amount"`
	StartDate   string      `json:"StartDate"`
	EndDate     string      `json:"EndDate"`
	Description string      `json:"Description"`
}

func goalRequestFromEntity(goal entity.Goal) goalRequest {
	return goalRequest{
		ID:          wireID(goal.ID),
		UserID:      wireID(goal.UserID),
		CategoryID:  wireID(goal.CategoryID),
		Amount:      amountNumber(goal.Amount),
		StartDate:   entity.FormatDate(goal.StartDate),
		EndDate:     entity.FormatDate(goal.EndDate),
		Description: goal.Description,
	}
}

type categoryTotalDTO struct {
	ID          wireID          `json:"ID"`
	Name        string          `json:"Name"`
	TotalAmount decimal.Decimal `json:"TotalAmount"`
}

type monthlyTotalsDTO struct {
	Year         int             `json:"Year"`
	Month        int             `json:"Month"`
	TotalIncome  decimal.Decimal `json:"TotalIncome"`
	TotalExpense decimal.Decimal `json:"TotalExpense"`
}

type goalTotalDTO struct {
	TotalAmount decimal.Decimal `json:"TotalAmount"`
}

type userDTO struct {
	ID       wireID `json:"ID"`
	FullName string `json:"FullName"`
	Email    string `json:"Email"`
	Phone    string `json:"Phone"`
	Gender   *int   `json:"Gender"`
}

func (d userDTO) toEntity() entity.UserProfile {
	return entity.UserProfile{
		ID:       string(d.ID),
		FullName: strings.TrimSpace(d.FullName),
		Email:    d.Email,
		Phone:    d.Phone,
		Gender:   genderFromCode(d.Gender),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type registerRequest struct {
	FullName string `json:"FullName"`
	Email    string `json:"Email"`
	Phone    string `json:"Phone"`
	Gender   *int   `json:"Gender,omitempty"`
	Password string `json:"Password"`
}

func registerRequestFrom(reg adapter.Registration) registerRequest {
	return registerRequest{
		FullName: reg.FullName,
		Email:    reg.Email,
		Phone:    reg.Phone,
		Gender:   genderCode(reg.Gender),
		Password: reg.Password,
	}
}

type updateUserRequest struct {
	ID       wireID `json:"ID"`
	FullName string `json:"FullName"`
	Email    string `json:"Email"`
	Phone    string `json:"Phone"`
	Gender   *int   `json:"Gender,omitempty"`
}

func updateUserRequestFrom(userID string, patch adapter.ProfilePatch) updateUserRequest {
	return updateUserRequest{
		ID:       wireID(userID),
		FullName: patch.FullName,
		Email:    patch.Email,
		Phone:    patch.Phone,
		Gender:   genderCode(patch.Gender),
	}
}
