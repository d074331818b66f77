package service

import (
	"fmt"

	"github.com/ksagarwal/settlr/internal/engine"
	"github.com/ksagarwal/settlr/internal/models"
	"github.com/ksagarwal/settlr/pkg/api"
)

// paymentNote builds the shareable instruction attached to a transfer,
// e.g. "Pay ₹300.00 to Asha (asha@okbank) for group split".
func paymentNote(amount engine.Cents, to, upi string) string {
	if upi != "" {
		return fmt.Sprintf("Pay ₹%s to %s (%s) for group split", amount, to, upi)
	}
	return fmt.Sprintf("Pay ₹%s to %s for group split", amount, to)
}

// upiIndex maps participant names to their UPI handles.
func upiIndex(participants []api.ParticipantInput) map[string]string {
	idx := make(map[string]string, len(participants))
	for _, p := range participants {
		if p.Upi != "" {
			idx[p.Name] = p.Upi
		}
	}
	return idx
}

func toSettlementResponse(result *engine.Result, participants []api.ParticipantInput) *api.ComputeSettlementResponse {
	upis := upiIndex(participants)

	resp := &api.ComputeSettlementResponse{
		FairShare: result.FairShare.Decimal(),
		Balances:  make([]api.BalanceEntry, len(result.Balances)),
		Transfers: make([]api.TransferEntry, len(result.Transfers)),
	}
	for i, b := range result.Balances {
		resp.Balances[i] = api.BalanceEntry{Name: b.Name, Balance: b.Amount.Decimal()}
	}
	for i, t := range result.Transfers {
		resp.Transfers[i] = api.TransferEntry{
			From:   t.From,
			To:     t.To,
			Amount: t.Amount.Decimal(),
			Note:   paymentNote(t.Amount, t.To, upis[t.To]),
		}
	}
	return resp
}

func toRunModel(title string, totalCost engine.Cents, result *engine.Result, participants []api.ParticipantInput) *models.Run {
	upis := upiIndex(participants)

	run := &models.Run{
		Title:        title,
		TotalCost:    int64(totalCost),
		FairShare:    int64(result.FairShare),
		Participants: make([]models.RunParticipant, len(result.Balances)),
		Transfers:    make([]models.RunTransfer, len(result.Transfers)),
	}
	for i, b := range result.Balances {
		contributed := engine.FromDecimal(participants[i].Contributed)
		run.Participants[i] = models.RunParticipant{
			Name:        b.Name,
			Contributed: int64(contributed),
			Balance:     int64(b.Amount),
			UPI:         participants[i].Upi,
		}
	}
	for i, t := range result.Transfers {
		run.Transfers[i] = models.RunTransfer{
			From:   t.From,
			To:     t.To,
			Amount: int64(t.Amount),
			Note:   paymentNote(t.Amount, t.To, upis[t.To]),
		}
	}
	return run
}

func toAPIRun(run *models.Run) *api.Run {
	out := &api.Run{
		Id:           run.ID,
		Title:        run.Title,
		TotalCost:    engine.Cents(run.TotalCost).Decimal(),
		FairShare:    engine.Cents(run.FairShare).Decimal(),
		Participants: make([]api.ParticipantInput, len(run.Participants)),
		Balances:     make([]api.BalanceEntry, len(run.Participants)),
		Transfers:    make([]api.TransferEntry, len(run.Transfers)),
		CreatedAt:    run.CreatedAt,
	}
	for i, p := range run.Participants {
		out.Participants[i] = api.ParticipantInput{
			Name:        p.Name,
			Contributed: engine.Cents(p.Contributed).Decimal(),
			Upi:         p.UPI,
		}
		out.Balances[i] = api.BalanceEntry{
			Name:    p.Name,
			Balance: engine.Cents(p.Balance).Decimal(),
		}
	}
	for i, t := range run.Transfers {
		out.Transfers[i] = api.TransferEntry{
			From:   t.From,
			To:     t.To,
			Amount: engine.Cents(t.Amount).Decimal(),
			Note:   t.Note,
		}
	}
	return out
}
