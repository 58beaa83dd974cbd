package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOwnerScope(t *testing.T) {
	tests := []struct {
		raw   string
		scope OwnerScope
		ok    bool
	}{
		{"", ScopeMineOrSystem, true},
		{"mine", ScopeMine, true},
		{"system-owned", ScopeSystem, true},
		{"mine-or-system", ScopeMineOrSystem, true},
		{"all", ScopeAll, true},
		{" all ", ScopeAll, true},
		{"everyone", ScopeMineOrSystem, false},
		{"ALL", ScopeMineOrSystem, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			scope, ok := ParseOwnerScope(tt.raw)
			assert.Equal(t, tt.scope, scope)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestListingQuery_Predicates(t *testing.T) {
	t.Run("Scope_ShouldBindTheRightOwners", func(t *testing.T) {
		base := ListingQuery{CurrentUserID: 7, SystemUserID: 1}

		mine := base
		mine.Scope = ScopeMine
		system := base
		system.Scope = ScopeSystem
		both := base
		both.Scope = ScopeMineOrSystem
		all := base
		all.Scope = ScopeAll

		require.Len(t, mine.Predicates(), 1)
		assert.Equal(t, []any{int64(7)}, mine.Predicates()[0].Args)

		require.Len(t, system.Predicates(), 1)
		assert.Equal(t, []any{int64(1)}, system.Predicates()[0].Args)

		require.Len(t, both.Predicates(), 1)
		assert.Equal(t, []any{int64(7), int64(1)}, both.Predicates()[0].Args)

		assert.Empty(t, all.Predicates())
	})

	t.Run("EmptyScope_ShouldBehaveAsDefault", func(t *testing.T) {
		q := ListingQuery{CurrentUserID: 3, SystemUserID: 1}
		preds := q.Predicates()
		require.Len(t, preds, 1)
		assert.Contains(t, preds[0].Clause, "OR")
	})

	t.Run("Search_ShouldMatchTitleDescriptionAndIngredients", func(t *testing.T) {
		q := ListingQuery{Scope: ScopeAll, SearchText: "  Egg "}
		preds := q.Predicates()
		require.Len(t, preds, 1)
		assert.Contains(t, preds[0].Clause, "LOWER(r.title)")
		assert.Contains(t, preds[0].Clause, "LOWER(r.description)")
		assert.Contains(t, preds[0].Clause, "FROM ingredients i")
		assert.Equal(t, []any{"%egg%", "%egg%", "%egg%"}, preds[0].Args)
	})

	t.Run("BlankSearch_ShouldBeIgnored", func(t *testing.T) {
		q := ListingQuery{Scope: ScopeAll, SearchText: "   "}
		assert.Empty(t, q.Predicates())
	})

	t.Run("Category_ShouldAddExistsClause", func(t *testing.T) {
		id := int64(4)
		q := ListingQuery{Scope: ScopeAll, CategoryID: &id}
		preds := q.Predicates()
		require.Len(t, preds, 1)
		assert.Contains(t, preds[0].Clause, "recipe_categories")
		assert.Equal(t, []any{int64(4)}, preds[0].Args)
	})
}

func TestCombinePredicates(t *testing.T) {
	t.Run("Empty_ShouldReturnNoClause", func(t *testing.T) {
		where, args := CombinePredicates(nil)
		assert.Empty(t, where)
		assert.Nil(t, args)
	})

	t.Run("Many_ShouldJoinWithAndKeepingArgOrder", func(t *testing.T) {
		where, args := CombinePredicates([]Predicate{
			{Clause: "a = ?", Args: []any{1}},
			{Clause: "b = ? OR c = ?", Args: []any{2, 3}},
		})
		assert.Equal(t, "a = ? AND b = ? OR c = ?", where)
		assert.Equal(t, []any{1, 2, 3}, args)
	})
}

func TestBuildListingSQL(t *testing.T) {
	id := int64(2)
	sql, args := BuildListingSQL(ListingQuery{
		SearchText:    "pasta",
		CategoryID:    &id,
		Scope:         ScopeMine,
		CurrentUserID: 9,
		SystemUserID:  1,
	})

	assert.True(t, strings.HasPrefix(sql, "SELECT r.id"))
	assert.True(t, strings.HasSuffix(sql, "ORDER BY r.title ASC, r.id ASC"))
	assert.Contains(t, sql, "WHERE r.user_id = ? AND (LOWER(r.title)")
	assert.Equal(t, strings.Count(sql, "?"), len(args))
	assert.Equal(t, []any{int64(9), "%pasta%", "%pasta%", "%pasta%", int64(2)}, args)

	noFilter, noArgs := BuildListingSQL(ListingQuery{Scope: ScopeAll})
	assert.NotContains(t, noFilter, "WHERE")
	assert.Empty(t, noArgs)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%tomato%", LikePattern("ToMaTo"))
	assert.Equal(t, `%100\%%`, LikePattern("100%"))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
}
