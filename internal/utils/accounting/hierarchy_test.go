package accounting

import (
	"testing"

	"github.com/SscSPs/textile_erp/internal/apperrors"
	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id int64) *int64 { return &id }

func TestBuildHierarchy(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: 5, Code: "1020", Name: "Bank", ParentID: ptr(1)},
		{AccountID: 1, Code: "1000", Name: "Assets"},
		{AccountID: 4, Code: "1010", Name: "Cash", ParentID: ptr(1)},
		{AccountID: 2, Code: "2000", Name: "Liabilities"},
		{AccountID: 6, Code: "1021", Name: "Current Account", ParentID: ptr(5)},
		{AccountID: 7, Code: "9000", Name: "Orphan", ParentID: ptr(42)},
	}

	forest, err := BuildHierarchy(accounts)
	require.NoError(t, err)
	require.Len(t, forest, 3)

	assert.Equal(t, "1000", forest[0].Account.Code)
	assert.Equal(t, "2000", forest[1].Account.Code)
	assert.Equal(t, "9000", forest[2].Account.Code)

	assets := forest[0]
	require.Len(t, assets.Children, 2)
	assert.Equal(t, "Cash", assets.Children[0].Account.Name)
	assert.Equal(t, "Bank", assets.Children[1].Account.Name)
	require.Len(t, assets.Children[1].Children, 1)
	assert.Equal(t, int64(6), assets.Children[1].Children[0].Account.AccountID)
	assert.Empty(t, forest[1].Children)
}

func TestBuildHierarchy_SameCodeOrdersByName(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: 1, Code: "1000", Name: "Zeta", Segment: "WEAVING"},
		{AccountID: 2, Code: "1000", Name: "Alpha", Segment: "DYEING"},
	}
	forest, err := BuildHierarchy(accounts)
	require.NoError(t, err)
	require.Len(t, forest, 2)
	assert.Equal(t, "Alpha", forest[0].Account.Name)
}

func TestBuildHierarchy_Empty(t *testing.T) {
	forest, err := BuildHierarchy(nil)
	require.NoError(t, err)
	assert.Empty(t, forest)
}

func TestBuildHierarchy_Cycle(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: 1, Code: "1000", Name: "A", ParentID: ptr(3)},
		{AccountID: 2, Code: "1100", Name: "B", ParentID: ptr(1)},
		{AccountID: 3, Code: "1200", Name: "C", ParentID: ptr(2)},
		{AccountID: 4, Code: "2000", Name: "D"},
	}

	forest, err := BuildHierarchy(accounts)
	require.Error(t, err)
	assert.Nil(t, forest)

	var target *apperrors.CorruptHierarchyError
	require.ErrorAs(t, err, &target)
	assert.ErrorIs(t, err, apperrors.ErrBusinessRule)
}

func TestBuildHierarchy_SelfParent(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: 1, Code: "1000", Name: "A", ParentID: ptr(1)},
	}
	_, err := BuildHierarchy(accounts)
	var target *apperrors.CorruptHierarchyError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, int64(1), target.AccountID)
}

func TestWouldCreateCycle(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: 1, Code: "1000"},
		{AccountID: 2, Code: "1100", ParentID: ptr(1)},
		{AccountID: 3, Code: "1110", ParentID: ptr(2)},
		{AccountID: 4, Code: "2000"},
	}

	assert.True(t, WouldCreateCycle(accounts, 1, 3), "descendant as parent")
	assert.True(t, WouldCreateCycle(accounts, 2, 2), "self as parent")
	assert.False(t, WouldCreateCycle(accounts, 3, 4))
	assert.False(t, WouldCreateCycle(accounts, 4, 3))
	assert.False(t, WouldCreateCycle(accounts, 1, 99))
}
