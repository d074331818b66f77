package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoParticipants is returned when a run has no participants.
	ErrNoParticipants = errors.New("must have at least one participant")
	// ErrNegativeAmount is returned for a negative total cost or contribution.
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrEmptyName is returned when a participant has no name.
	ErrEmptyName = errors.New("participant name cannot be empty")
	// ErrDuplicateName is returned when two participants share a name.
	ErrDuplicateName = errors.New("participant names must be unique")
)

// Participant is one person's input to a settlement run.
type Participant struct {
	Name        string
	Contributed Cents
	UPI         string // optional payment handle, passed through untouched
}

// Balance is a participant's net position after splitting the cost.
// Positive means they are owed money, negative means they owe.
type Balance struct {
	Name   string
	Amount Cents
}

// ComputeBalances splits totalCost equally across participants and returns
// each participant's net balance (contributed minus fair share), in input
// order. The fair share is rounded to a whole cent once and applied
// identically to everyone, so the balances may carry up to half a cent of
// rounding residue per participant.
func ComputeBalances(totalCost Cents, participants []Participant) (Cents, []Balance, error) {
	if err := validateInputs(totalCost, participants); err != nil {
		return 0, nil, err
	}

	fairShare := divideEvenly(totalCost, len(participants))

	balances := make([]Balance, len(participants))
	for i, p := range participants {
		balances[i] = Balance{
			Name:   p.Name,
			Amount: p.Contributed - fairShare,
		}
	}
	return fairShare, balances, nil
}

func validateInputs(totalCost Cents, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalCost < 0 {
		return fmt.Errorf("total cost: %w", ErrNegativeAmount)
	}

	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p.Name == "" {
			return ErrEmptyName
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		seen[p.Name] = true
		if p.Contributed < 0 {
			return fmt.Errorf("contribution for %q: %w", p.Name, ErrNegativeAmount)
		}
	}
	return nil
}
