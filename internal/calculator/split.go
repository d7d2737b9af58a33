package calculator

import (
	"errors"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNoParticipants is returned for an expense nobody shares.
var ErrNoParticipants = errors.New("must have at least one participant")

// cents is the precision every share is rounded to.
const cents = 2

// SplitShares splits amount equally among participants.
//
// Each share is amount/n rounded half-up to the cent. Rounding leaves a
// residual (amount minus the sum of rounded shares, possibly negative) that
// belongs to the payer: if the payer participates their share absorbs it, so
// the shares sum exactly to amount (10.00 / 3 -> 3.33, 3.33 and 3.34 for the
// payer). Otherwise the residual is returned as absorbed and the caller
// charges it to the payer.
func SplitShares(amount decimal.Decimal, payer models.MemberID, participants []models.MemberID) (map[models.MemberID]decimal.Decimal, decimal.Decimal, error) {
	if len(participants) == 0 {
		return nil, decimal.Zero, ErrNoParticipants
	}

	n := decimal.NewFromInt(int64(len(participants)))
	share := amount.DivRound(n, cents)

	shares := make(map[models.MemberID]decimal.Decimal, len(participants))
	for _, p := range participants {
		shares[p] = shares[p].Add(share)
	}

	residual := amount.Sub(share.Mul(n))
	if residual.IsZero() {
		return shares, decimal.Zero, nil
	}
	if s, ok := shares[payer]; ok {
		shares[payer] = s.Add(residual)
		return shares, decimal.Zero, nil
	}
	return shares, residual, nil
}
