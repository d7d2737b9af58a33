package calculator

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/shopspring/decimal"
)

func TestReduce_Scenario(t *testing.T) {
	balances, err := ComputeBalances([]models.SharedExpense{expense("30.00", alice, alice, bob, carol)})
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}

	got := Reduce(balances)
	want := []models.Transfer{
		{From: bob, To: alice, Amount: d("10")},
		{From: carol, To: alice, Amount: d("10")},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d transfers, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].From != want[i].From || got[i].To != want[i].To || !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("transfer %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name     string
		balances map[models.MemberID]string
		want     []models.Transfer
	}{
		{
			name:     "empty",
			balances: map[models.MemberID]string{},
			want:     nil,
		},
		{
			name:     "already settled",
			balances: map[models.MemberID]string{alice: "0", bob: "0.00"},
			want:     nil,
		},
		{
			name:     "largest debtor pays largest creditor first",
			balances: map[models.MemberID]string{alice: "50", bob: "-20", carol: "-30", guest: "0"},
			want: []models.Transfer{
				{From: carol, To: alice, Amount: d("30")},
				{From: bob, To: alice, Amount: d("20")},
			},
		},
		{
			name:     "ties break by member order, internal before external",
			balances: map[models.MemberID]string{guest: "-10", bob: "-10", alice: "10", carol: "10"},
			want: []models.Transfer{
				{From: bob, To: alice, Amount: d("10")},
				{From: guest, To: carol, Amount: d("10")},
			},
		},
		{
			name:     "one debtor split over two creditors",
			balances: map[models.MemberID]string{alice: "-15.50", bob: "10.25", carol: "5.25"},
			want: []models.Transfer{
				{From: alice, To: bob, Amount: d("10.25")},
				{From: alice, To: carol, Amount: d("5.25")},
			},
		},
		{
			name:     "sub-cent noise is ignored",
			balances: map[models.MemberID]string{alice: "0.004", bob: "-0.004"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := make(map[models.MemberID]decimal.Decimal)
			for m, v := range tt.balances {
				balances[m] = d(v)
			}
			got := Reduce(balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i].From != tt.want[i].From || got[i].To != tt.want[i].To || !got[i].Amount.Equal(tt.want[i].Amount) {
					t.Errorf("transfer %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReduce_SubCentBalances(t *testing.T) {
	balances := map[models.MemberID]decimal.Decimal{
		alice: d("2.012"),
		bob:   d("-1.006"),
		carol: d("-1.006"),
	}

	transfers := Reduce(balances)
	want := []models.Transfer{
		{From: bob, To: alice, Amount: d("1.01")},
		{From: carol, To: alice, Amount: d("1.00")},
	}
	if !reflect.DeepEqual(transfersKey(transfers), transfersKey(want)) {
		t.Fatalf("got %v, want %v", transfers, want)
	}

	// Applying the transfers leaves every balance within half a cent.
	applied := make(map[models.MemberID]decimal.Decimal, len(balances))
	for m, v := range balances {
		applied[m] = v
	}
	for _, tr := range transfers {
		if !tr.Amount.Equal(tr.Amount.Round(2)) {
			t.Errorf("transfer %v is not in cents", tr)
		}
		applied[tr.From] = applied[tr.From].Add(tr.Amount)
		applied[tr.To] = applied[tr.To].Sub(tr.Amount)
	}
	if left := applied[alice]; left.Abs().GreaterThanOrEqual(epsilon) {
		t.Errorf("alice left with %s after settling", left)
	}
}

func TestReduce_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		n := 2 + rng.Intn(10)
		members := make([]models.MemberID, n)
		for i := range members {
			members[i] = models.InternalMember(fmt.Sprintf("m%02d", i))
		}

		// Build a conserving balance set directly: random cents, last member
		// takes the negated sum.
		balances := make(map[models.MemberID]decimal.Decimal, n)
		sum := decimal.Zero
		for _, m := range members[:n-1] {
			v := decimal.New(rng.Int63n(20001)-10000, -2)
			balances[m] = v
			sum = sum.Add(v)
		}
		balances[members[n-1]] = sum.Neg()

		nonZero := 0
		for _, v := range balances {
			if !v.IsZero() {
				nonZero++
			}
		}

		transfers := Reduce(balances)

		if nonZero > 0 && len(transfers) > nonZero-1 {
			t.Fatalf("round %d: %d transfers for %d non-zero balances", round, len(transfers), nonZero)
		}

		applied := make(map[models.MemberID]decimal.Decimal, n)
		for m, v := range balances {
			applied[m] = v
		}
		for _, tr := range transfers {
			if !tr.Amount.IsPositive() {
				t.Fatalf("round %d: non-positive transfer %v", round, tr)
			}
			applied[tr.From] = applied[tr.From].Add(tr.Amount)
			applied[tr.To] = applied[tr.To].Sub(tr.Amount)
		}
		for m, v := range applied {
			if !v.IsZero() {
				t.Fatalf("round %d: %s left with %s after settling", round, m, v)
			}
		}

		if again := Reduce(balances); !reflect.DeepEqual(transfersKey(again), transfersKey(transfers)) {
			t.Fatalf("round %d: Reduce is not deterministic", round)
		}
	}
}

func transfersKey(ts []models.Transfer) []string {
	out := make([]string, len(ts))
	for i, tr := range ts {
		out[i] = tr.From.String() + ">" + tr.To.String() + "=" + tr.Amount.String()
	}
	return out
}
