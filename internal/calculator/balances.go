package calculator

import (
	"fmt"
	"sort"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/shopspring/decimal"
)

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Member     models.MemberID `json:"member"`
	NetBalance decimal.Decimal `json:"net_balance"` // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal `json:"total_paid"`  // Total amount paid across all expenses
	TotalOwed  decimal.Decimal `json:"total_owed"`  // Total share consumed, including absorbed rounding
}

// ComputeBalances returns each member's net balance over the given expenses.
//
// Algorithm:
// - For each expense: the payer is credited the full amount, each participant
// is debited their equal share (see SplitShares)
// - The rounding residual not absorbed by a participating payer is debited
// from the payer, keeping the sum of all balances exactly zero
//
// Members that appear in no expense are absent from the result.
func ComputeBalances(expenses []models.SharedExpense) (map[models.MemberID]decimal.Decimal, error) {
	balances := make(map[models.MemberID]decimal.Decimal)

	for _, e := range expenses {
		shares, absorbed, err := SplitShares(e.Amount, e.Payer, e.Participants)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}

		balances[e.Payer] = balances[e.Payer].Add(e.Amount).Sub(absorbed)
		for member, share := range shares {
			balances[member] = balances[member].Sub(share)
		}
	}

	return balances, nil
}

// MemberBalances is ComputeBalances with paid/owed totals, sorted by member.
func MemberBalances(expenses []models.SharedExpense) ([]MemberBalance, error) {
	byMember := make(map[models.MemberID]*MemberBalance)
	get := func(id models.MemberID) *MemberBalance {
		if _, exists := byMember[id]; !exists {
			byMember[id] = &MemberBalance{Member: id}
		}
		return byMember[id]
	}

	for _, e := range expenses {
		shares, absorbed, err := SplitShares(e.Amount, e.Payer, e.Participants)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}

		payer := get(e.Payer)
		payer.TotalPaid = payer.TotalPaid.Add(e.Amount)
		payer.TotalOwed = payer.TotalOwed.Add(absorbed)

		for member, share := range shares {
			bal := get(member)
			bal.TotalOwed = bal.TotalOwed.Add(share)
		}
	}

	result := make([]MemberBalance, 0, len(byMember))
	for _, bal := range byMember {
		bal.NetBalance = bal.TotalPaid.Sub(bal.TotalOwed)
		result = append(result, *bal)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Member.Less(result[j].Member)
	})

	return result, nil
}
