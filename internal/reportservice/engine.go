package reportservice

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Engine searches, filters, sorts, groups and totals ledger read models.
// It holds no state besides the locale and is safe for concurrent use.
type Engine struct {
	tag language.Tag
}

// NewEngine returns an engine comparing names with the rules of the given locale.
func NewEngine(tag language.Tag) *Engine {
	return &Engine{tag: tag}
}

// FilterAndSort applies the query search text, then its filter, then its sort.
// The input slice is not modified.
func (e *Engine) FilterAndSort(clients []domain.ClientWithBalance, q domain.ClientQuery) ([]domain.ClientWithBalance, error) {
	q, err := q.Validate()
	if err != nil {
		return nil, err
	}

	// Casers and collators keep internal buffers, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.SearchText))

	result := make([]domain.ClientWithBalance, 0, len(clients))

	for _, c := range clients {
		if needle != "" && !strings.Contains(fold.String(c.Name), needle) {
			continue
		}

		if !keep(c, q.Filter) {
			continue
		}

		result = append(result, c)
	}

	sort.SliceStable(result, e.less(result, q.Sort))

	return result, nil
}

func keep(c domain.ClientWithBalance, f domain.ClientFilter) bool {
	switch f {
	case domain.FilterPending:
		return c.HasActiveAccount && c.CurrentBalance.IsPositive()
	case domain.FilterInactive:
		return !c.HasActiveAccount
	}

	return true
}

func (e *Engine) less(items []domain.ClientWithBalance, s domain.ClientSort) func(i, j int) bool {
	switch s {
	case domain.SortNameDesc:
		col := collate.New(e.tag)
		return func(i, j int) bool {
			return col.CompareString(items[i].Name, items[j].Name) > 0
		}
	case domain.SortRecent:
		return func(i, j int) bool {
			return activity(items[i]).After(activity(items[j]))
		}
	case domain.SortOldest:
		return func(i, j int) bool {
			return activity(items[i]).Before(activity(items[j]))
		}
	case domain.SortBalanceDesc:
		return func(i, j int) bool {
			return items[i].CurrentBalance.GreaterThan(items[j].CurrentBalance)
		}
	case domain.SortBalanceAsc:
		return func(i, j int) bool {
			return items[i].CurrentBalance.LessThan(items[j].CurrentBalance)
		}
	}

	col := collate.New(e.tag)

	return func(i, j int) bool {
		return col.CompareString(items[i].Name, items[j].Name) < 0
	}
}

// activity returns the last account activity, or the zero time if there was none.
func activity(c domain.ClientWithBalance) time.Time {
	if c.LastActivityAt == nil {
		return time.Time{}
	}

	return *c.LastActivityAt
}

// GroupClosedAccountsByClient groups closed accounts by their client.
//
// Accounts within a group are ordered by closing time, most recent first,
// and groups are ordered by their most recent closing time. Accounts that
// are not closed or whose client is unknown are skipped.
func (e *Engine) GroupClosedAccountsByClient(accounts []domain.Account, clients []domain.Client) []domain.ClosedAccountGroup {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	index := make(map[string]int)
	groups := []domain.ClosedAccountGroup{}

	for _, a := range accounts {
		if a.Status != domain.AccountClosed || a.ClosedAt == nil {
			continue
		}

		name, ok := names[a.ClientID]
		if !ok {
			continue
		}

		i, ok := index[a.ClientID]
		if !ok {
			i = len(groups)
			index[a.ClientID] = i
			groups = append(groups, domain.ClosedAccountGroup{ClientID: a.ClientID, ClientName: name})
		}

		groups[i].Accounts = append(groups[i].Accounts, a)
	}

	for g := range groups {
		items := groups[g].Accounts
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ClosedAt.After(*items[j].ClosedAt)
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Accounts[0].ClosedAt.After(*groups[j].Accounts[0].ClosedAt)
	})

	return groups
}

// ComputeSummaryTotals counts clients by debt status and sums their balances.
func (e *Engine) ComputeSummaryTotals(clients []domain.ClientWithBalance) domain.SummaryTotals {
	var totals domain.SummaryTotals

	for _, c := range clients {
		totals.TotalClients++
		totals.TotalOutstanding = totals.TotalOutstanding.Add(c.CurrentBalance)

		switch {
		case !c.HasActiveAccount:
			totals.ClientsWithoutAccount++
		case c.CurrentBalance.IsPositive():
			totals.ClientsWithDebt++
		default:
			totals.ClientsSettled++
		}
	}

	return totals
}
