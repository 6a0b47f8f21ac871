package service

import (
	"sync"

	"github.com/mkral/budget-planner/internal/storage"
)

// mutation identifies a write operation for cache invalidation purposes.
type mutation string

const (
	mutMembers   mutation = "members"
	mutIncomes   mutation = "incomes"
	mutBanks     mutation = "banks"
	mutAccounts  mutation = "accounts"
	mutTransfers mutation = "transfers"
	mutExpenses  mutation = "expenses"
	mutBudgets   mutation = "budgets"
	mutGoals     mutation = "goals"
	mutPlans     mutation = "plans"
)

// invalidations enumerates, per mutation, every collection whose derived
// aggregates the mutation can influence. The couplings beyond the mutated
// collection itself are listed explicitly: transfers and incomes feed the
// per-account simulation, so they also invalidate accounts; deleting a
// member cascades to incomes; goal changes orphan plans.
var invalidations = map[mutation][]mutation{
	mutMembers:   {mutMembers, mutIncomes},
	mutIncomes:   {mutIncomes, mutAccounts},
	mutBanks:     {mutBanks},
	mutAccounts:  {mutAccounts, mutTransfers},
	mutTransfers: {mutTransfers, mutAccounts},
	mutExpenses:  {mutExpenses, mutAccounts},
	mutBudgets:   {mutBudgets},
	mutGoals:     {mutGoals, mutPlans},
	mutPlans:     {mutPlans},
}

// snapshotCache keeps the last consistent snapshot per household. The
// cached value is dropped whenever a mutation invalidates any collection
// it contains; with one snapshot per household that means every household
// mutation drops it, but the policy table above keeps the couplings
// explicit instead of implied.
type snapshotCache struct {
	mu    sync.Mutex
	snaps map[int64]*storage.Snapshot
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{snaps: make(map[int64]*storage.Snapshot)}
}

func (c *snapshotCache) get(userID int64) (*storage.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.snaps[userID]
	return snap, ok
}

func (c *snapshotCache) put(userID int64, snap *storage.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps[userID] = snap
}

func (c *snapshotCache) invalidate(userID int64, mut mutation) {
	if len(invalidations[mut]) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snaps, userID)
}
