package store

import "strings"

// OrderField is a sortable book column.
type OrderField string

// Sortable book fields.
const (
	OrderTitle           OrderField = "title"
	OrderAuthor          OrderField = "author"
	OrderPublicationDate OrderField = "publication_date"
)

// OrderTerm is one key of a multi-key sort.
type OrderTerm struct {
	Field OrderField
	Desc  bool
}

// DefaultOrdering sorts by title ascending.
var DefaultOrdering = []OrderTerm{{Field: OrderTitle}}

// BookQuery filters and orders a book listing.
type BookQuery struct {
	// Terms are case-folded search terms. A book matches when every term occurs
	// in its title, author, or description.
	Terms []string
	// Ordering is applied left to right; id breaks remaining ties.
	Ordering []OrderTerm
}

// ParseOrdering parses a comma-separated list such as "-publication_date,title".
// Unknown and repeated fields are skipped; an empty result falls back to DefaultOrdering.
func ParseOrdering(raw string) []OrderTerm {
	var terms []OrderTerm
	seen := make(map[OrderField]bool)

	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		desc := false
		if rest, ok := strings.CutPrefix(part, "-"); ok {
			desc = true
			part = rest
		}

		field := OrderField(part)
		switch field {
		case OrderTitle, OrderAuthor, OrderPublicationDate:
		default:
			continue
		}
		if seen[field] {
			continue
		}
		seen[field] = true
		terms = append(terms, OrderTerm{Field: field, Desc: desc})
	}

	if len(terms) == 0 {
		return DefaultOrdering
	}
	return terms
}

// String renders the ordering back in query-parameter form.
func (t OrderTerm) String() string {
	if t.Desc {
		return "-" + string(t.Field)
	}
	return string(t.Field)
}
