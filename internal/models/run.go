package models

// Run is a persisted settlement run: the contributions that went in and
// the balances and transfers the engine produced for them. A run is
// immutable once stored; editing contributions means creating a new run.
//
// All monetary fields are integer minor units (cents).
type Run struct {
	// ID is the unique identifier for the run (UUID format).
	ID string

	// Title is a human-readable name for the run.
	// Auto-generated from participant names when left blank.
	Title string

	// TotalCost is the shared cost being split, in cents.
	TotalCost int64

	// FairShare is the per-person share applied to every participant, in cents.
	FairShare int64

	// Participants are the people who split the cost, in input order.
	// Order is part of the result: balances and transfer tie-breaking
	// follow it.
	Participants []RunParticipant

	// Transfers are the payments that settle the run, in the order the
	// matcher emitted them.
	Transfers []RunTransfer

	// CreatedBy is the user ID that created the run.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the run was stored.
	CreatedAt int64
}

// RunParticipant is one person's line in a run.
type RunParticipant struct {
	// Name identifies the participant within the run.
	Name string

	// Contributed is what they actually paid toward the cost, in cents.
	Contributed int64

	// Balance is contributed minus fair share, in cents.
	// Positive means they get money back, negative means they owe.
	Balance int64

	// UPI is an optional payment handle (e.g. "asha@okbank") used to
	// build the suggested payment note on transfers.
	UPI string
}

// RunTransfer is one settling payment within a run.
type RunTransfer struct {
	// From is the paying participant's name.
	From string

	// To is the receiving participant's name.
	To string

	// Amount is the payment amount in cents, always positive.
	Amount int64

	// Note is a ready-to-share payment instruction, e.g.
	// "Pay ₹300.00 to Asha (asha@okbank) for group split".
	Note string
}
