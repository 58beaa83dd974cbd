package recipe

import (
	"strings"
)

type OwnerScope string

const (
	ScopeMine         OwnerScope = "mine"
	ScopeSystem       OwnerScope = "system-owned"
	ScopeMineOrSystem OwnerScope = "mine-or-system"
	ScopeAll          OwnerScope = "all"

	DefaultScope = ScopeMineOrSystem
)

var ownerScopes = []OwnerScope{ScopeMine, ScopeSystem, ScopeMineOrSystem, ScopeAll}

// OwnerScopes lists the accepted scopes in display order.
func OwnerScopes() []OwnerScope {
	return append([]OwnerScope(nil), ownerScopes...)
}

// ParseOwnerScope maps raw input to a scope. An empty value selects the
// default silently; an unknown value selects the default and reports false.
func ParseOwnerScope(raw string) (OwnerScope, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultScope, true
	}
	for _, s := range ownerScopes {
		if string(s) == raw {
			return s, true
		}
	}
	return DefaultScope, false
}

// Predicate is one WHERE condition with its bind parameters.
type Predicate struct {
	Clause string
	Args   []any
}

// ListingQuery holds already validated filters. CategoryID is nil when no
// category filter applies.
type ListingQuery struct {
	SearchText    string
	CategoryID    *int64
	Scope         OwnerScope
	CurrentUserID int64
	SystemUserID  int64
}

const listingSelect = `SELECT r.id, r.user_id, r.title, r.description, r.instructions, r.prep_time, r.cook_time,
r.image_filename, r.created_at, r.updated_at, u.username AS owner_username
FROM recipes r
JOIN users u ON u.id = r.user_id`

const listingOrder = "ORDER BY r.title ASC, r.id ASC"

// Predicates returns the active filters in a stable order: scope, search, category.
func (q ListingQuery) Predicates() []Predicate {
	var preds []Predicate

	switch q.Scope {
	case ScopeMine:
		preds = append(preds, Predicate{Clause: "r.user_id = ?", Args: []any{q.CurrentUserID}})
	case ScopeSystem:
		preds = append(preds, Predicate{Clause: "r.user_id = ?", Args: []any{q.SystemUserID}})
	case ScopeAll:
	default:
		preds = append(preds, Predicate{
			Clause: "(r.user_id = ? OR r.user_id = ?)",
			Args:   []any{q.CurrentUserID, q.SystemUserID},
		})
	}

	if search := strings.TrimSpace(q.SearchText); search != "" {
		pattern := LikePattern(search)
		preds = append(preds, Predicate{
			Clause: `(LOWER(r.title) LIKE ? ESCAPE '\' OR LOWER(r.description) LIKE ? ESCAPE '\' ` +
				`OR EXISTS (SELECT 1 FROM ingredients i WHERE i.recipe_id = r.id AND LOWER(i.name) LIKE ? ESCAPE '\'))`,
			Args: []any{pattern, pattern, pattern},
		})
	}

	if q.CategoryID != nil {
		preds = append(preds, Predicate{
			Clause: "EXISTS (SELECT 1 FROM recipe_categories rc WHERE rc.recipe_id = r.id AND rc.category_id = ?)",
			Args:   []any{*q.CategoryID},
		})
	}

	return preds
}

// CombinePredicates joins predicates with AND. It returns an empty clause
// when there is nothing to filter on.
func CombinePredicates(preds []Predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(preds))
	var args []any
	for _, p := range preds {
		clauses = append(clauses, p.Clause)
		args = append(args, p.Args...)
	}
	return strings.Join(clauses, " AND "), args
}

// BuildListingSQL renders the full listing statement with ? placeholders.
func BuildListingSQL(q ListingQuery) (string, []any) {
	where, args := CombinePredicates(q.Predicates())

	var sb strings.Builder
	sb.WriteString(listingSelect)
	if where != "" {
		sb.WriteString("\nWHERE ")
		sb.WriteString(where)
	}
	sb.WriteString("\n")
	sb.WriteString(listingOrder)
	return sb.String(), args
}

// LikePattern lowercases s, escapes LIKE wildcards and wraps it for a
// substring match.
func LikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
