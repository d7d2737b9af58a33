package calculator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/shopspring/decimal"
)

func expense(amount string, payer models.MemberID, participants ...models.MemberID) models.SharedExpense {
	return models.SharedExpense{
		Kind:         models.KindExpense,
		Amount:       d(amount),
		Payer:        payer,
		Participants: participants,
	}
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.SharedExpense
		want     map[models.MemberID]string
		wantErr  bool
	}{
		{
			name:     "payer shares equally with two others",
			expenses: []models.SharedExpense{expense("30.00", alice, alice, bob, carol)},
			want:     map[models.MemberID]string{alice: "20", bob: "-10", carol: "-10"},
		},
		{
			name: "confirmed settlement payment cancels the debt",
			expenses: []models.SharedExpense{
				expense("30.00", alice, alice, bob, carol),
				{Kind: models.KindSettlement, Amount: d("10.00"), Payer: bob, Participants: []models.MemberID{alice}},
			},
			want: map[models.MemberID]string{alice: "10", bob: "0", carol: "-10"},
		},
		{
			name:     "external member as participant",
			expenses: []models.SharedExpense{expense("50.00", bob, bob, guest)},
			want:     map[models.MemberID]string{bob: "25", guest: "-25"},
		},
		{
			name:     "payer not participating absorbs rounding",
			expenses: []models.SharedExpense{expense("10.00", alice, bob, carol, guest)},
			want:     map[models.MemberID]string{alice: "9.99", bob: "-3.33", carol: "-3.33", guest: "-3.33"},
		},
		{
			name:     "no expenses",
			expenses: nil,
			want:     map[models.MemberID]string{},
		},
		{
			name:     "zero participants is rejected",
			expenses: []models.SharedExpense{expense("10.00", alice)},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBalances(tt.expenses)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ComputeBalances() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d balances, want %d: %v", len(got), len(tt.want), got)
			}
			for member, want := range tt.want {
				if !got[member].Equal(d(want)) {
					t.Errorf("%s balance = %s, want %s", member, got[member], want)
				}
			}
		})
	}
}

func TestComputeBalances_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	members := make([]models.MemberID, 7)
	for i := range members {
		if i%3 == 2 {
			members[i] = models.ExternalMember(fmt.Sprintf("guest-%d", i))
		} else {
			members[i] = models.InternalMember(fmt.Sprintf("user-%d", i))
		}
	}

	for round := 0; round < 50; round++ {
		var expenses []models.SharedExpense
		for i := 0; i < 40; i++ {
			n := 1 + rng.Intn(len(members))
			perm := rng.Perm(len(members))[:n]
			participants := make([]models.MemberID, n)
			for j, idx := range perm {
				participants[j] = members[idx]
			}
			cents := 1 + rng.Int63n(100000)
			expenses = append(expenses, models.SharedExpense{
				Amount:       decimal.New(cents, -2),
				Payer:        members[rng.Intn(len(members))],
				Participants: participants,
			})
		}

		balances, err := ComputeBalances(expenses)
		if err != nil {
			t.Fatalf("ComputeBalances failed: %v", err)
		}
		sum := decimal.Zero
		for _, bal := range balances {
			sum = sum.Add(bal)
		}
		if !sum.IsZero() {
			t.Fatalf("round %d: balances sum to %s, want 0", round, sum)
		}
	}
}

func TestMemberBalances(t *testing.T) {
	expenses := []models.SharedExpense{
		expense("30.00", alice, alice, bob, carol),
		expense("12.00", bob, bob, guest),
	}

	got, err := MemberBalances(expenses)
	if err != nil {
		t.Fatalf("MemberBalances failed: %v", err)
	}

	want := []struct {
		member         models.MemberID
		net, paid, owe string
	}{
		{alice, "20", "30", "10"},
		{bob, "-4", "12", "16"},
		{carol, "-10", "0", "10"},
		{guest, "-6", "0", "6"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d balances, want %d", len(got), len(want))
	}
	for i, w := range want {
		b := got[i]
		if b.Member != w.member {
			t.Errorf("position %d: member = %s, want %s", i, b.Member, w.member)
			continue
		}
		if !b.NetBalance.Equal(d(w.net)) || !b.TotalPaid.Equal(d(w.paid)) || !b.TotalOwed.Equal(d(w.owe)) {
			t.Errorf("%s: net/paid/owed = %s/%s/%s, want %s/%s/%s",
				w.member, b.NetBalance, b.TotalPaid, b.TotalOwed, w.net, w.paid, w.owe)
		}
	}
}
