package groups

import (
	"context"
	"sort"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/shopspring/decimal"
)

// Overview is a group with everything derived from it, read in one call.
type Overview struct {
	Group     *models.Group               `json:"group"`
	Balances  []calculator.MemberBalance  `json:"balances"`
	Transfers []models.Transfer           `json:"transfers"`
	Requests  []*models.SettlementRequest `json:"requests"`
}

// GroupMembers lists the members of a group.
func (m *Manager) GroupMembers(ctx context.Context, actor, groupID string) ([]models.Member, error) {
	group, err := m.loadGroup(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	return group.Members, nil
}

// GroupExpenses lists every shared-expense record of a group, settlement
// payments included, oldest first.
func (m *Manager) GroupExpenses(ctx context.Context, actor, groupID string) ([]*models.SharedExpense, error) {
	if _, err := m.loadGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	expenses, err := m.store.ListSharedExpenses(ctx, groupID)
	if err != nil {
		return nil, storageError(err)
	}
	return expenses, nil
}

// PendingBalances returns each member's outstanding net balance. Positive
// means the member is owed money. Members without expenses are absent.
func (m *Manager) PendingBalances(ctx context.Context, actor, groupID string) (map[models.MemberID]decimal.Decimal, error) {
	if _, err := m.loadGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	expenses, _, err := m.confirmedExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	balances, err := calculator.ComputeBalances(expenses)
	if err != nil {
		return nil, corruptRecord(err)
	}
	return balances, nil
}

// CalculateSettlements returns the transfers that zero balances.
func (m *Manager) CalculateSettlements(balances map[models.MemberID]decimal.Decimal) []models.Transfer {
	return calculator.Reduce(balances)
}

// SettlementRequests lists the pairs currently in the REQUESTED state.
func (m *Manager) SettlementRequests(ctx context.Context, actor, groupID string) ([]*models.SettlementRequest, error) {
	if _, err := m.loadGroup(ctx, actor, groupID); err != nil {
		return nil, err
	}
	requests, err := m.store.ListSettlementRequests(ctx, groupID)
	if err != nil {
		return nil, storageError(err)
	}
	return requests, nil
}

// Overview reads a group, its balances, the settlement plan and the pending
// requests. Every member has a balance entry, zero included.
func (m *Manager) Overview(ctx context.Context, actor, groupID string) (*Overview, error) {
	group, err := m.loadGroup(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}

	expenses, requests, err := m.confirmedExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}

	details, err := calculator.MemberBalances(expenses)
	if err != nil {
		return nil, corruptRecord(err)
	}
	balances := make(map[models.MemberID]decimal.Decimal, len(details))
	for _, d := range details {
		balances[d.Member] = d.NetBalance
	}
	for _, member := range group.Members {
		if _, ok := balances[member.ID]; !ok {
			details = append(details, calculator.MemberBalance{Member: member.ID})
		}
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].Member.Less(details[j].Member)
	})

	return &Overview{
		Group:     group,
		Balances:  details,
		Transfers: calculator.Reduce(balances),
		Requests:  requests,
	}, nil
}

// confirmedExpenses returns the group's expense records that count towards
// balances, and the pending requests.
func (m *Manager) confirmedExpenses(ctx context.Context, groupID string) ([]models.SharedExpense, []*models.SettlementRequest, error) {
	all, err := m.store.ListSharedExpenses(ctx, groupID)
	if err != nil {
		return nil, nil, storageError(err)
	}
	requests, err := m.store.ListSettlementRequests(ctx, groupID)
	if err != nil {
		return nil, nil, storageError(err)
	}
	return counted(all, requests), requests, nil
}

// counted drops the payments of pending requests: a pending payment counts
// only once it is confirmed.
func counted(all []*models.SharedExpense, requests []*models.SettlementRequest) []models.SharedExpense {
	pending := make(map[string]bool, len(requests))
	for _, r := range requests {
		pending[r.ExpenseID] = true
	}

	expenses := make([]models.SharedExpense, 0, len(all))
	for _, e := range all {
		if !pending[e.ID] {
			expenses = append(expenses, *e)
		}
	}
	return expenses
}

// plannedTransfer finds the debtor to creditor transfer in the plan for expenses.
func plannedTransfer(expenses []models.SharedExpense, debtor, creditor models.MemberID) (decimal.Decimal, bool, error) {
	balances, err := calculator.ComputeBalances(expenses)
	if err != nil {
		return decimal.Zero, false, corruptRecord(err)
	}
	for _, t := range calculator.Reduce(balances) {
		if t.From == debtor && t.To == creditor {
			return t.Amount, true, nil
		}
	}
	return decimal.Zero, false, nil
}

// plannedAmount is the amount debtor must pay creditor in the current plan.
func (m *Manager) plannedAmount(ctx context.Context, groupID string, debtor, creditor models.MemberID) (decimal.Decimal, error) {
	expenses, _, err := m.confirmedExpenses(ctx, groupID)
	if err != nil {
		return decimal.Zero, err
	}
	amount, ok, err := plannedTransfer(expenses, debtor, creditor)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, validationError("%s owes nothing to %s in the current settlement plan", debtor, creditor)
	}
	return amount, nil
}

// settleAmount recomputes the pair's planned amount from the records the store
// reads inside its write transaction. A pair that no longer has a transfer is
// a conflict: it was settled since the caller looked.
func settleAmount(debtor, creditor models.MemberID) storage.SettlementAmount {
	return func(all []*models.SharedExpense, requests []*models.SettlementRequest) (decimal.Decimal, error) {
		amount, ok, err := plannedTransfer(counted(all, requests), debtor, creditor)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			return decimal.Zero, conflict("%s no longer owes %s", debtor, creditor)
		}
		return amount, nil
	}
}
