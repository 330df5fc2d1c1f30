package dto

// Op is a filter comparison understood by every record store backend.
type Op string

const (
	OpEq  Op = "=="
	OpGte Op = ">="
	OpLte Op = "<="
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

// RecordQuery is the generic query shape passed to the record store.
type RecordQuery struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Where returns a copy of the query with one more filter.
func (q RecordQuery) Where(field string, op Op, value any) RecordQuery {
	q.Filters = append(append([]Filter{}, q.Filters...), Filter{Field: field, Op: op, Value: value})
	return q
}
