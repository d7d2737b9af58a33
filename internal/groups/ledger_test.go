package groups

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
)

func TestAddMovement(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	category := &models.Category{OwnerID: f.bob, Name: "Salary"}
	if err := f.store.CreateCategory(ctx, category); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	tests := []struct {
		name    string
		in      NewMovement
		wantErr error
	}{
		{"income", NewMovement{Amount: d("100"), Kind: models.MovementIncome, CategoryID: category.ID}, nil},
		{"expense", NewMovement{Amount: d("25.50"), Kind: models.MovementExpense, Notes: "Books"}, nil},
		{"zero amount", NewMovement{Amount: d("0"), Kind: models.MovementIncome}, ErrValidation},
		{"sub-cent amount", NewMovement{Amount: d("1.005"), Kind: models.MovementIncome}, ErrValidation},
		{"transfer kind", NewMovement{Amount: d("5"), Kind: models.MovementTransfer}, ErrValidation},
		{"unknown category", NewMovement{Amount: d("5"), Kind: models.MovementExpense, CategoryID: "missing"}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv, err := f.m.AddMovement(ctx, f.bob, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddMovement failed: %v", err)
			}
			if mv.ID == "" || mv.OwnerID != f.bob || mv.GroupID != "" || mv.Date.IsZero() {
				t.Errorf("unexpected movement %+v", mv)
			}
		})
	}

	balance, err := f.m.PersonalBalance(ctx, f.bob)
	if err != nil {
		t.Fatalf("PersonalBalance failed: %v", err)
	}
	if !balance.Equal(d("74.50")) {
		t.Errorf("PersonalBalance = %s, want 74.50", balance)
	}
}

func TestDeleteMovement(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	personal, err := f.m.AddMovement(ctx, f.bob, NewMovement{Amount: d("8"), Kind: models.MovementExpense})
	if err != nil {
		t.Fatalf("AddMovement failed: %v", err)
	}
	f.addExpense(t, f.bob, f.bobID, "30.00", f.aliceID, f.bobID, f.carolID)
	f.addExpense(t, f.alice, f.aliceID, "90.00", f.aliceID, f.bobID, f.carolID)
	req, err := f.m.RequestSettlement(ctx, f.bob, f.group.ID, f.bobID, f.aliceID)
	if err != nil {
		t.Fatalf("RequestSettlement failed: %v", err)
	}

	movements, err := f.m.Movements(ctx, f.bob)
	if err != nil {
		t.Fatalf("Movements failed: %v", err)
	}
	var groupMovement string
	for _, mv := range movements {
		if mv.GroupID != "" && !mv.Locked {
			groupMovement = mv.ID
		}
	}

	tests := []struct {
		name    string
		actor   string
		id      string
		wantErr error
	}{
		{"other user's movement", f.alice, personal.ID, ErrNotFound},
		{"unknown movement", f.bob, "missing", ErrNotFound},
		{"locked settlement payment", f.bob, req.MovementID, ErrStateConflict},
		{"backs a shared expense", f.bob, groupMovement, ErrValidation},
		{"personal movement", f.bob, personal.ID, nil},
		{"already deleted", f.bob, personal.ID, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.m.DeleteMovement(ctx, tt.actor, tt.id)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("DeleteMovement failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
