package engine

import (
	"errors"
	"testing"
)

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name          string
		totalCost     Cents
		participants  []Participant
		wantErr       error
		wantFairShare Cents
		wantBalances  []Cents
	}{
		{
			name:      "single payer covers everything",
			totalCost: 120000,
			participants: []Participant{
				{Name: "Asha", Contributed: 120000},
				{Name: "Bo", Contributed: 0},
				{Name: "Chen", Contributed: 0},
				{Name: "Dev", Contributed: 0},
			},
			wantFairShare: 30000,
			wantBalances:  []Cents{90000, -30000, -30000, -30000},
		},
		{
			name:      "equal contributions settle to zero",
			totalCost: 120000,
			participants: []Participant{
				{Name: "Asha", Contributed: 30000},
				{Name: "Bo", Contributed: 30000},
				{Name: "Chen", Contributed: 30000},
				{Name: "Dev", Contributed: 30000},
			},
			wantFairShare: 30000,
			wantBalances:  []Cents{0, 0, 0, 0},
		},
		{
			name:      "uneven three-way split rounds the share",
			totalCost: 10000,
			participants: []Participant{
				{Name: "Asha", Contributed: 3400},
				{Name: "Bo", Contributed: 3300},
				{Name: "Chen", Contributed: 3300},
			},
			wantFairShare: 3333,
			wantBalances:  []Cents{67, -33, -33},
		},
		{
			name:          "single participant",
			totalCost:     5000,
			participants:  []Participant{{Name: "Asha", Contributed: 5000}},
			wantFairShare: 5000,
			wantBalances:  []Cents{0},
		},
		{
			name:          "zero cost",
			totalCost:     0,
			participants:  []Participant{{Name: "Asha"}, {Name: "Bo"}},
			wantFairShare: 0,
			wantBalances:  []Cents{0, 0},
		},
		{
			name:         "no participants",
			totalCost:    100,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "negative total cost",
			totalCost:    -1,
			participants: []Participant{{Name: "Asha"}},
			wantErr:      ErrNegativeAmount,
		},
		{
			name:      "negative contribution",
			totalCost: 100,
			participants: []Participant{
				{Name: "Asha", Contributed: -100},
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name:         "empty name",
			totalCost:    100,
			participants: []Participant{{Name: "", Contributed: 100}},
			wantErr:      ErrEmptyName,
		},
		{
			name:      "duplicate name",
			totalCost: 100,
			participants: []Participant{
				{Name: "Asha", Contributed: 100},
				{Name: "Asha", Contributed: 0},
			},
			wantErr: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fairShare, balances, err := ComputeBalances(tt.totalCost, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeBalances() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeBalances() failed: %v", err)
			}

			if fairShare != tt.wantFairShare {
				t.Errorf("fair share = %v, want %v", fairShare, tt.wantFairShare)
			}
			if len(balances) != len(tt.participants) {
				t.Fatalf("got %d balances, want %d", len(balances), len(tt.participants))
			}
			for i, b := range balances {
				if b.Name != tt.participants[i].Name {
					t.Errorf("balance %d name = %q, want %q (order must match input)", i, b.Name, tt.participants[i].Name)
				}
				if b.Amount != tt.wantBalances[i] {
					t.Errorf("balance for %s = %v, want %v", b.Name, b.Amount, tt.wantBalances[i])
				}
			}
		})
	}
}

func TestComputeBalances_Conservation(t *testing.T) {
	// sum(balances) stays within the rounding tolerance for awkward divisions
	cases := []struct {
		totalCost Cents
		n         int
	}{
		{10000, 3},
		{10000, 7},
		{99999, 13},
		{1, 3},
		{100000000, 9},
	}

	for _, c := range cases {
		participants := make([]Participant, c.n)
		for i := range participants {
			participants[i] = Participant{Name: string(rune('A' + i))}
		}
		// give the whole cost to the first participant
		participants[0].Contributed = c.totalCost

		_, balances, err := ComputeBalances(c.totalCost, participants)
		if err != nil {
			t.Fatalf("ComputeBalances(%d, %d people) failed: %v", c.totalCost, c.n, err)
		}

		var sum Cents
		for _, b := range balances {
			sum += b.Amount
		}
		if tol := roundingTolerance(c.n); sum.abs() > tol {
			t.Errorf("ComputeBalances(%d, %d people): residual %v exceeds tolerance %v", c.totalCost, c.n, sum, tol)
		}
	}
}
