package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TreeNode is one account in the rendered hierarchy. Total rolls up the
// leaf-level balances under the node; a leaf contributes its own balance
// (zero when it is a placeholder).
type TreeNode struct {
	Account  Account         `json:"account"`
	Balance  decimal.Decimal `json:"balance"`
	Total    decimal.Decimal `json:"total"`
	Children []*TreeNode     `json:"children"`
}

// BuildHierarchy assembles a flat account list into a forest. Siblings are
// sorted alphabetically by name at every level. An account whose declared
// parent is absent from the input is promoted to a root rather than dropped.
//
// The parent graph must be a forest; a cycle would make every node on it
// unreachable from any root, so the build detects that and fails with
// CyclicHierarchyError instead of looping.
func BuildHierarchy(accounts []Account, balances map[uuid.UUID]decimal.Decimal) ([]*TreeNode, error) {
	nodes := make(map[uuid.UUID]*TreeNode, len(accounts))
	for _, acc := range accounts {
		balance := decimal.Zero
		if acc.IsPlaceholder {
			// placeholders never carry postings
		} else if b, ok := balances[acc.ID]; ok {
			balance = b
		}
		nodes[acc.ID] = &TreeNode{Account: acc, Balance: balance}
	}

	var roots []*TreeNode
	for _, acc := range accounts {
		node := nodes[acc.ID]
		if acc.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*acc.ParentID]
		if !ok || *acc.ParentID == acc.ID {
			// dangling parent reference: promote to root
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	visited := make(map[uuid.UUID]bool, len(nodes))
	for _, root := range roots {
		sortAndTotal(root, visited)
	}
	if len(visited) != len(nodes) {
		for _, acc := range accounts {
			if !visited[acc.ID] {
				return nil, &CyclicHierarchyError{AccountID: acc.ID}
			}
		}
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Account.Name < roots[j].Account.Name
	})
	return roots, nil
}

func sortAndTotal(node *TreeNode, visited map[uuid.UUID]bool) decimal.Decimal {
	visited[node.Account.ID] = true

	if len(node.Children) == 0 {
		node.Total = node.Balance
		return node.Total
	}

	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].Account.Name < node.Children[j].Account.Name
	})

	total := decimal.Zero
	for _, child := range node.Children {
		total = total.Add(sortAndTotal(child, visited))
	}
	node.Total = total
	return total
}
