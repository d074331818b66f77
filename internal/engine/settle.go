package engine

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnbalanced is returned when the balances handed to Settle do not
// cancel out within the fair-share rounding tolerance. Matching such
// input would silently leave credit or debt unpaid, so it is rejected
// up front.
var ErrUnbalanced = errors.New("balances do not sum to zero")

// Transfer is a single point-to-point payment that settles debt.
type Transfer struct {
	From   string
	To     string
	Amount Cents // always positive
}

// Result is the full outcome of a settlement run.
type Result struct {
	FairShare Cents
	Balances  []Balance
	Transfers []Transfer
}

type party struct {
	name   string
	amount Cents // absolute value of the balance
}

// Settle produces the transfers that zero out the given balances using
// greedy largest-first matching.
//
// Creditors and debtors are each sorted descending by amount; ties keep
// input order, which makes the output deterministic. Two cursors walk the
// lists: each step pays min(debt, credit) from the current debtor to the
// current creditor and advances whichever side reaches zero. Every step
// fully exhausts at least one party, so at most
// len(creditors)+len(debtors)-1 transfers are emitted.
//
// Because amounts are integer cents there is no float tolerance in the
// loop itself; the only slack is the fair-share rounding residue, which is
// at most half a cent per participant. Whatever residue remains on one
// side when the other runs out is treated as settled. An empty balance
// list, or one where nobody is in credit or debt, yields no transfers.
func Settle(balances []Balance) ([]Transfer, error) {
	var sum Cents
	for _, b := range balances {
		sum += b.Amount
	}
	if tol := roundingTolerance(len(balances)); sum.abs() > tol {
		return nil, fmt.Errorf("%w: residual %s exceeds tolerance %s", ErrUnbalanced, sum, tol)
	}

	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Amount > 0:
			creditors = append(creditors, party{b.Name, b.Amount})
		case b.Amount < 0:
			debtors = append(debtors, party{b.Name, -b.Amount})
		}
	}
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		pay := debtors[i].amount
		if creditors[j].amount < pay {
			pay = creditors[j].amount
		}

		transfers = append(transfers, Transfer{
			From:   debtors[i].name,
			To:     creditors[j].name,
			Amount: pay,
		})

		debtors[i].amount -= pay
		creditors[j].amount -= pay
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}

	return transfers, nil
}

// SettleContributions validates the inputs, computes balances, and matches
// them into transfers in one pass. This is the entry point callers should
// use; both halves are pure and safe for concurrent use.
func SettleContributions(totalCost Cents, participants []Participant) (*Result, error) {
	fairShare, balances, err := ComputeBalances(totalCost, participants)
	if err != nil {
		return nil, err
	}

	transfers, err := Settle(balances)
	if err != nil {
		return nil, err
	}

	return &Result{
		FairShare: fairShare,
		Balances:  balances,
		Transfers: transfers,
	}, nil
}

// roundingTolerance is the largest |sum(balances)| an equal split can
// legitimately produce: rounding the fair share moves each participant's
// balance by at most half a cent.
func roundingTolerance(n int) Cents {
	return Cents((n + 1) / 2)
}
