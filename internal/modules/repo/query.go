package repo

import (
	"fmt"
	"math"
	"strings"

	"github.com/pilotdata/project/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Descriptor lists the columns of an entity that queries may reference by
// name, and the relations a dotted field ("project.name") may go through.
type Descriptor struct {
	Columns   []string
	Relations map[string]Relation
}

// Relation is a joined entity, addressed in SQL by Alias.
type Relation struct {
	Alias      string
	Descriptor *Descriptor
}

func (d *Descriptor) has(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column resolves field against the descriptor.
func (d *Descriptor) Column(field string) (clause.Column, bool) {
	if rel, col, ok := strings.Cut(field, "."); ok {
		r, found := d.Relations[rel]
		if !found || !r.Descriptor.has(col) {
			return clause.Column{}, false
		}
		return clause.Column{Table: r.Alias, Name: col}, true
	}
	if !d.has(field) {
		return clause.Column{}, false
	}
	return clause.Column{Table: clause.CurrentTable, Name: field}, true
}

// Shaper narrows or orders a query. Filtering and sorting variants of every
// entity implement it.
type Shaper interface {
	// IsPresent reports whether the shaper has anything to apply.
	IsPresent() bool
	Apply(q *gorm.DB, d *Descriptor) *gorm.DB
}

func present(s Shaper) bool {
	return s != nil && s.IsPresent()
}

const (
	DefaultPage     = 0
	DefaultPageSize = 20
)

type Pagination struct {
	Page     int
	PageSize int
}

func DefaultPagination() Pagination {
	return Pagination{Page: DefaultPage, PageSize: DefaultPageSize}
}

func (p Pagination) Limit() int  { return p.PageSize }
func (p Pagination) Offset() int { return p.PageSize * p.Page }

// Page is one page of a paginated listing.
type Page[T any] struct {
	Pagination Pagination
	Total      int64
	Entries    []T
}

func (p *Page[T]) Number() int { return p.Pagination.Page }

func (p *Page[T]) TotalPages() int {
	if p.Pagination.PageSize < 1 {
		return 0
	}
	return int(math.Ceil(float64(p.Total) / float64(p.Pagination.PageSize)))
}

type SortingOrder string

const (
	SortAsc  SortingOrder = "asc"
	SortDesc SortingOrder = "desc"
)

func ParseSortingOrder(s string) (SortingOrder, error) {
	switch SortingOrder(strings.ToLower(s)) {
	case "", SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", apperr.Validation("value is not a valid enumeration member; permitted: 'asc', 'desc'", "query", "sort_order")
}

// Sorting orders by a single field.
type Sorting struct {
	Field *string
	Order SortingOrder
}

func (s Sorting) IsPresent() bool { return s.Field != nil }

func (s Sorting) Apply(q *gorm.DB, d *Descriptor) *gorm.DB {
	col, ok := d.Column(*s.Field)
	if !ok {
		_ = q.AddError(apperr.Validation(fmt.Sprintf("unknown sort field %q", *s.Field), "query", "sort_by"))
		return q
	}
	return q.Order(clause.OrderByColumn{Column: col, Desc: s.Order == SortDesc})
}

// likePattern turns a plain value into a substring pattern. A value holding
// a % is taken as a pattern written by the caller. In plain values _ and \
// match literally.
func likePattern(v string) string {
	if strings.Contains(v, "%") {
		return v
	}
	return "%" + likeEscaper.Replace(v) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "_", `\_`)

func ilike(q *gorm.DB, d *Descriptor, field, value string) *gorm.DB {
	col, _ := d.Column(field)
	return q.Where("? ILIKE ?", col, likePattern(value))
}
