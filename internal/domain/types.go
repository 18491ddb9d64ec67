package domain

// Roles conhecidos, em ordem de privilégio.
const (
	RoleMember = "member"
	RoleLeader = "leader"
	RoleAdmin  = "admin"
)

var roleLevel = map[string]int{
	RoleMember: 1,
	RoleLeader: 2,
	RoleAdmin:  3,
}

// RoleAtLeast reports whether role meets the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	return roleLevel[role] >= roleLevel[minimum] && roleLevel[role] > 0
}

// RequestContext carries the authenticated identity attached by the auth gate.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageSpec is the pagination/sort window every list endpoint accepts.
type PageSpec struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`
	Order string `json:"order"` // asc / desc
}

// Offset is (page-1)*limit.
func (p PageSpec) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PredicateKind names how a filter value is compared against its column.
type PredicateKind string

const (
	PredicateEquals PredicateKind = "eq"
	PredicateGTE    PredicateKind = "gte"
	PredicateLTE    PredicateKind = "lte"
)

// Filter is one conjunctive predicate bound to a storage column.
type Filter struct {
	Column string
	Kind   PredicateKind
	Value  any
}

// PagedResult wraps a page of rows plus the pre-pagination total.
type PagedResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPagedResult computes total_pages = ceil(total/limit).
func NewPagedResult[T any](data []T, total int, spec PageSpec) PagedResult[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if spec.Limit > 0 {
		pages = (total + spec.Limit - 1) / spec.Limit
	}
	return PagedResult[T]{
		Data:       data,
		Total:      total,
		Page:       spec.Page,
		Limit:      spec.Limit,
		TotalPages: pages,
	}
}
