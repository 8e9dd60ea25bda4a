package accounting

import (
	"sort"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
)

// BuildHierarchy assembles a forest from a flat account list. Accounts without a parent,
// or whose parent is not in the list, become roots. Children are ordered by code then name.
// A parent chain that loops back on itself yields a CorruptHierarchyError.
func BuildHierarchy(accounts []domain.Account) ([]domain.AccountNode, error) {
	byID := make(map[int64]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}

	if err := detectCycles(byID); err != nil {
		return nil, err
	}

	children := make(map[int64][]domain.Account)
	roots := make([]domain.Account, 0)
	for _, acc := range accounts {
		if acc.ParentID != nil {
			if _, ok := byID[*acc.ParentID]; ok {
				children[*acc.ParentID] = append(children[*acc.ParentID], acc)
				continue
			}
		}
		roots = append(roots, acc)
	}

	sortAccounts(roots)
	for id := range children {
		sortAccounts(children[id])
	}

	maxDepth := len(accounts)
	var build func(acc domain.Account, depth int) (domain.AccountNode, error)
	build = func(acc domain.Account, depth int) (domain.AccountNode, error) {
		if depth > maxDepth {
			return domain.AccountNode{}, &apperrors.CorruptHierarchyError{AccountID: acc.AccountID}
		}
		node := domain.AccountNode{Account: acc, Children: make([]domain.AccountNode, 0, len(children[acc.AccountID]))}
		for _, child := range children[acc.AccountID] {
			childNode, err := build(child, depth+1)
			if err != nil {
				return domain.AccountNode{}, err
			}
			node.Children = append(node.Children, childNode)
		}
		return node, nil
	}

	forest := make([]domain.AccountNode, 0, len(roots))
	for _, root := range roots {
		node, err := build(root, 0)
		if err != nil {
			return nil, err
		}
		forest = append(forest, node)
	}
	return forest, nil
}

// detectCycles walks each account's parent chain with a visited set, bounded by the
// number of accounts. Chains already proven acyclic are not walked again.
func detectCycles(byID map[int64]domain.Account) error {
	acyclic := make(map[int64]bool, len(byID))
	for id := range byID {
		visited := make(map[int64]bool)
		path := make([]int64, 0)
		current := id
		for steps := 0; ; steps++ {
			if acyclic[current] {
				break
			}
			if visited[current] || steps > len(byID) {
				return &apperrors.CorruptHierarchyError{AccountID: current}
			}
			visited[current] = true
			path = append(path, current)

			acc := byID[current]
			if acc.ParentID == nil {
				break
			}
			if _, ok := byID[*acc.ParentID]; !ok {
				break
			}
			current = *acc.ParentID
		}
		for _, p := range path {
			acyclic[p] = true
		}
	}
	return nil
}

// WouldCreateCycle reports whether making newParentID the parent of accountID would put
// accountID on its own ancestor chain.
func WouldCreateCycle(accounts []domain.Account, accountID, newParentID int64) bool {
	byID := make(map[int64]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}

	current := newParentID
	for steps := 0; steps <= len(byID); steps++ {
		if current == accountID {
			return true
		}
		acc, ok := byID[current]
		if !ok || acc.ParentID == nil {
			return false
		}
		current = *acc.ParentID
	}
	// stored chain already loops
	return true
}

func sortAccounts(accounts []domain.Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].Code != accounts[j].Code {
			return accounts[i].Code < accounts[j].Code
		}
		return accounts[i].Name < accounts[j].Name
	})
}
