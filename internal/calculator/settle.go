package calculator

import (
	"github.com/mmynk/splitledger/internal/models"
	"github.com/shopspring/decimal"
)

// epsilon is half a cent. Remainders smaller than this count as settled.
var epsilon = decimal.New(5, -3)

type position struct {
	member models.MemberID
	amount decimal.Decimal // always positive
}

// Reduce turns net balances into a short list of transfers that zero them.
//
// Greedy matching: take the member owing the most and the member owed the
// most, move min(debt, credit) between them, drop whoever reaches zero, and
// repeat. Each step settles at least one member, so n non-zero balances need
// at most n-1 transfers. Ties on amount go to the lower MemberID, which makes
// the result deterministic. Transfers are returned in the order generated.
func Reduce(balances map[models.MemberID]decimal.Decimal) []models.Transfer {
	var debtors, creditors []position
	for member, bal := range balances {
		switch {
		case bal.Abs().LessThan(epsilon):
			continue
		case bal.IsNegative():
			debtors = append(debtors, position{member: member, amount: bal.Neg()})
		default:
			creditors = append(creditors, position{member: member, amount: bal})
		}
	}

	var transfers []models.Transfer
	for len(debtors) > 0 && len(creditors) > 0 {
		d := largest(debtors)
		c := largest(creditors)

		// Track what is actually paid so leftovers match the emitted transfers.
		amount := decimal.Min(debtors[d].amount, creditors[c].amount).Round(cents)
		transfers = append(transfers, models.Transfer{
			From:   debtors[d].member,
			To:     creditors[c].member,
			Amount: amount,
		})

		debtors[d].amount = debtors[d].amount.Sub(amount)
		creditors[c].amount = creditors[c].amount.Sub(amount)

		if debtors[d].amount.LessThan(epsilon) {
			debtors = remove(debtors, d)
		}
		if creditors[c].amount.LessThan(epsilon) {
			creditors = remove(creditors, c)
		}
	}

	return transfers
}

func largest(ps []position) int {
	best := 0
	for i := 1; i < len(ps); i++ {
		cmp := ps[i].amount.Cmp(ps[best].amount)
		if cmp > 0 || (cmp == 0 && ps[i].member.Less(ps[best].member)) {
			best = i
		}
	}
	return best
}

func remove(ps []position, i int) []position {
	return append(ps[:i], ps[i+1:]...)
}
