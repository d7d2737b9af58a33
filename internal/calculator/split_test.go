package calculator

import (
	"testing"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/shopspring/decimal"
)

var (
	alice = models.InternalMember("alice")
	bob   = models.InternalMember("bob")
	carol = models.InternalMember("carol")
	guest = models.ExternalMember("guest-1")
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSplitShares(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		payer        models.MemberID
		participants []models.MemberID
		wantShares   map[models.MemberID]string
		wantAbsorbed string
		wantErr      bool
	}{
		{
			name:         "even split",
			amount:       "30.00",
			payer:        alice,
			participants: []models.MemberID{alice, bob, carol},
			wantShares:   map[models.MemberID]string{alice: "10", bob: "10", carol: "10"},
			wantAbsorbed: "0",
		},
		{
			name:         "ten among three puts the extra cent on the payer",
			amount:       "10.00",
			payer:        alice,
			participants: []models.MemberID{alice, bob, carol},
			wantShares:   map[models.MemberID]string{alice: "3.34", bob: "3.33", carol: "3.33"},
			wantAbsorbed: "0",
		},
		{
			name:         "rounding up takes cents back from the payer",
			amount:       "10.00",
			payer:        alice,
			participants: []models.MemberID{alice, bob, carol, guest, models.ExternalMember("g2"), models.ExternalMember("g3")},
			wantShares: map[models.MemberID]string{
				alice: "1.65", bob: "1.67", carol: "1.67", guest: "1.67",
				models.ExternalMember("g2"): "1.67", models.ExternalMember("g3"): "1.67",
			},
			wantAbsorbed: "0",
		},
		{
			name:         "payer outside the split absorbs the residual",
			amount:       "10.00",
			payer:        alice,
			participants: []models.MemberID{bob, carol, guest},
			wantShares:   map[models.MemberID]string{bob: "3.33", carol: "3.33", guest: "3.33"},
			wantAbsorbed: "0.01",
		},
		{
			name:         "single participant takes everything",
			amount:       "12.34",
			payer:        bob,
			participants: []models.MemberID{alice},
			wantShares:   map[models.MemberID]string{alice: "12.34"},
			wantAbsorbed: "0",
		},
		{
			name:         "no participants should error",
			amount:       "10.00",
			payer:        alice,
			participants: nil,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, absorbed, err := SplitShares(d(tt.amount), tt.payer, tt.participants)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitShares() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if len(shares) != len(tt.wantShares) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.wantShares))
			}
			sum := absorbed
			for member, want := range tt.wantShares {
				if !shares[member].Equal(d(want)) {
					t.Errorf("%s share = %s, want %s", member, shares[member], want)
				}
				sum = sum.Add(shares[member])
			}
			if !absorbed.Equal(d(tt.wantAbsorbed)) {
				t.Errorf("absorbed = %s, want %s", absorbed, tt.wantAbsorbed)
			}
			if !sum.Equal(d(tt.amount)) {
				t.Errorf("shares + absorbed = %s, want %s", sum, tt.amount)
			}
		})
	}
}
