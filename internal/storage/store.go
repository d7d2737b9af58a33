// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a compare-and-set write finds the record
	// in an unexpected state (e.g. a settlement request already pending).
	ErrConflict = errors.New("conflict")
	// ErrLocked is returned when a write targets a locked movement.
	ErrLocked = errors.New("movement is locked")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail and GetUserByID return nil, nil when the user is missing.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// LedgerStore persists personal movements and categories.
type LedgerStore interface {
	// InsertMovement persists a movement; ID and CreatedAt are filled in.
	InsertMovement(ctx context.Context, mv *models.Movement) error

	// DeleteMovement removes a movement and any shared expense it backs.
	// Returns ErrLocked for locked movements.
	DeleteMovement(ctx context.Context, id string) error

	ListMovementsForUser(ctx context.Context, userID string) ([]*models.Movement, error)

	// LockedMovements returns the IDs of the user's locked movements.
	LockedMovements(ctx context.Context, userID string) ([]string, error)

	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id string) (*models.Category, error)
}

// GroupStore persists groups, members, shared expenses and settlement state.
// Every method is a single all-or-nothing transaction.
type GroupStore interface {
	// CreateGroup persists the group and adds its admin as an internal member.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup returns the group with its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// DeleteGroup removes the group, its members, shared-expense records and
	// settlement requests. Backing movements are kept and unlinked.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember returns ErrConflict if the member already exists.
	AddMember(ctx context.Context, member *models.Member) error

	// RemoveMember returns ErrConflict if any expense references the member.
	RemoveMember(ctx context.Context, groupID string, id models.MemberID) error

	// CreateSharedExpense writes the expense and its backing movement.
	CreateSharedExpense(ctx context.Context, exp *models.SharedExpense, mv *models.Movement) error

	GetSharedExpense(ctx context.Context, groupID, expenseID string) (*models.SharedExpense, error)
	ListSharedExpenses(ctx context.Context, groupID string) ([]*models.SharedExpense, error)

	// DeleteSharedExpense removes the expense and its movement.
	// Returns ErrLocked if the movement is locked.
	DeleteSharedExpense(ctx context.Context, groupID, expenseID string) error

	// CreateSettlementRequest moves the pair from NONE to REQUESTED and
	// writes the payment record, its amount taken from amount inside the
	// transaction. Returns ErrConflict if already REQUESTED.
	CreateSettlementRequest(ctx context.Context, req *models.SettlementRequest, exp *models.SharedExpense, mv *models.Movement, amount SettlementAmount) error

	// ClearSettlementRequest moves the pair from REQUESTED to NONE.
	// Returns ErrNotFound if nothing is pending.
	ClearSettlementRequest(ctx context.Context, groupID string, debtor, creditor models.MemberID) (*models.SettlementRequest, error)

	ListSettlementRequests(ctx context.Context, groupID string) ([]*models.SettlementRequest, error)

	// RecordSettlement writes an already-confirmed payment, its amount taken
	// from amount inside the transaction.
	// Returns ErrConflict if a request is pending for the pair.
	RecordSettlement(ctx context.Context, exp *models.SharedExpense, mv *models.Movement, amount SettlementAmount) error
}

// SettlementAmount computes a settlement payment's amount from the group's
// shared-expense records and pending requests as read inside the write
// transaction. Its error aborts the write and is returned unchanged.
type SettlementAmount func(expenses []*models.SharedExpense, requests []*models.SettlementRequest) (decimal.Decimal, error)

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	LedgerStore
	GroupStore

	// Close releases any resources held by the store.
	Close() error
}
