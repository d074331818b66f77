// Package api defines the settlr wire types and Connect service wiring.
//
// Messages are plain structs exchanged as JSON (see jsonCodec); amounts
// travel as decimal strings and are converted to integer cents inside
// the services. Handler and client constructors mirror the shape of
// Connect's generated code so main and tests wire them the same way.
package api

import "github.com/shopspring/decimal"

// ParticipantInput is one person's contribution toward the shared cost.
type ParticipantInput struct {
	Name        string          `json:"name"`
	Contributed decimal.Decimal `json:"contributed"`
	Upi         string          `json:"upi,omitempty"`
}

// BalanceEntry is a participant's net position, in input order.
type BalanceEntry struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// TransferEntry is one settling payment.
type TransferEntry struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// ComputeSettlementRequest asks for a settlement without persisting it.
type ComputeSettlementRequest struct {
	TotalCost    decimal.Decimal    `json:"totalCost"`
	Participants []ParticipantInput `json:"participants"`
}

// ComputeSettlementResponse carries the engine result.
type ComputeSettlementResponse struct {
	FairShare decimal.Decimal `json:"fairShare"`
	Balances  []BalanceEntry  `json:"balances"`
	Transfers []TransferEntry `json:"transfers"`
}

// CreateRunRequest computes a settlement and stores it under the caller.
type CreateRunRequest struct {
	Title        string             `json:"title,omitempty"`
	TotalCost    decimal.Decimal    `json:"totalCost"`
	Participants []ParticipantInput `json:"participants"`
}

// CreateRunResponse returns the stored run's ID with the full result.
type CreateRunResponse struct {
	Run *Run `json:"run"`
}

// Run is a stored settlement run as returned by the API.
type Run struct {
	Id           string             `json:"id"`
	Title        string             `json:"title"`
	TotalCost    decimal.Decimal    `json:"totalCost"`
	FairShare    decimal.Decimal    `json:"fairShare"`
	Participants []ParticipantInput `json:"participants"`
	Balances     []BalanceEntry     `json:"balances"`
	Transfers    []TransferEntry    `json:"transfers"`
	CreatedAt    int64              `json:"createdAt"`
}

// GetRunRequest fetches a run by ID.
type GetRunRequest struct {
	RunId string `json:"runId"`
}

// GetRunResponse carries the requested run.
type GetRunResponse struct {
	Run *Run `json:"run"`
}

// ListRunsRequest lists the caller's runs, newest first.
type ListRunsRequest struct{}

// ListRunsResponse carries the caller's runs.
type ListRunsResponse struct {
	Runs []*Run `json:"runs"`
}

// DeleteRunRequest removes a run by ID.
type DeleteRunRequest struct {
	RunId string `json:"runId"`
}

// DeleteRunResponse is empty; absence of an error means the run is gone.
type DeleteRunResponse struct{}

// User is a registered account as exposed by the API.
type User struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// RegisterResponse returns the new account and a session token.
type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the account and a session token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
