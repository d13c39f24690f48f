package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id CategoryID) *CategoryID { return &id }

func TestBuildTree_NestedForest(t *testing.T) {
	flat := []Category{
		{ID: 1, Name: "Furniture"},
		{ID: 2, Name: "Desks", ParentID: ptr(1)},
		{ID: 3, Name: "Chairs", ParentID: ptr(1)},
		{ID: 4, Name: "Standing desks", ParentID: ptr(2)},
		{ID: 5, Name: "Lighting"},
	}

	roots := BuildTree(flat)
	require.Len(t, roots, 2)

	furniture := roots[0]
	assert.Equal(t, "Furniture", furniture.Name)
	require.Len(t, furniture.Children, 2)
	assert.Equal(t, "Desks", furniture.Children[0].Name, "sibling order must follow input order")
	assert.Equal(t, "Chairs", furniture.Children[1].Name)
	require.Len(t, furniture.Children[0].Children, 1)
	assert.Equal(t, "Standing desks", furniture.Children[0].Children[0].Name)

	assert.Equal(t, "Lighting", roots[1].Name)
	assert.Empty(t, roots[1].Children)
}

func TestBuildTree_RoundTrip(t *testing.T) {
	flat := []Category{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "Child", ParentID: ptr(1)},
		{ID: 3, Name: "Grandchild", ParentID: ptr(2)},
		{ID: 4, Name: "Second root"},
	}

	assert.Equal(t, flat, Flatten(BuildTree(flat)))
}

func TestBuildTree_DropsOrphans(t *testing.T) {
	flat := []Category{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "Orphan", ParentID: ptr(99)},
		{ID: 3, Name: "Orphan child", ParentID: ptr(2)},
	}

	roots := BuildTree(flat)
	require.Len(t, roots, 1)
	assert.Equal(t, "Root", roots[0].Name)
	// The orphan must not be re-parented to the root level. Its own
	// children still attach to it, but the whole subtree is unreachable.
	assert.Empty(t, roots[0].Children)
}

func TestBuildTree_FiltersInvalidIDs(t *testing.T) {
	flat := []Category{
		{ID: 0, Name: "No id"},
		{ID: 1, Name: "Valid"},
		{ID: 1, Name: "Self ref", ParentID: ptr(1)},
	}

	roots := BuildTree(flat)
	require.Len(t, roots, 1)
	assert.Equal(t, "Valid", roots[0].Name)
}

func TestCategoryID_DecodeTolerance(t *testing.T) {
	cases := []struct {
		in   string
		want CategoryID
	}{
		{`{"id":12}`, 12},
		{`{"id":"12"}`, 12},
		{`{"id":null}`, 0},
		{`{"id":"abc"}`, 0},
		{`{"id":""}`, 0},
	}
	for _, tc := range cases {
		var cat Category
		require.NoError(t, json.Unmarshal([]byte(tc.in), &cat), tc.in)
		assert.Equal(t, tc.want, cat.ID, tc.in)
	}
}
