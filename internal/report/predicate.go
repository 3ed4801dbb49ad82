package report

import "strings"

// Column identifies one of the filterable dimensions. The declaration
// order below is the order clauses are rendered in, regardless of how
// the caller populated the filter set, so the generated SQL shape is
// reproducible for any combination of filters.
type Column int

const (
	ColBranch Column = iota
	ColClient
	ColCity
	ColRegion
	ColProduct
)

// ColumnSpec binds a filter column to the expression it is compared
// against in a particular query. Expressions come from these static
// declarations only; user input is always bound as parameters.
type ColumnSpec struct {
	Key Column
	LHS string
}

// Filter column sets per query family. The unioned sources lose the
// region column's type information, hence the CAST on those.
var (
	bigNumbersColumns = []ColumnSpec{
		{ColBranch, "codfilial"},
		{ColClient, "codcliente"},
		{ColCity, "codcid"},
		{ColRegion, "regiao"},
		{ColProduct, "codpro"},
	}

	timeSeriesColumns = []ColumnSpec{
		{ColBranch, "codfilial"},
		{ColCity, "codcid"},
		{ColRegion, "CAST(regiao AS VARCHAR(50))"},
	}

	dimensionColumns = []ColumnSpec{
		{ColBranch, "codfilial"},
		{ColClient, "codcliente"},
		{ColCity, "codcid"},
		{ColRegion, "CAST(regiao AS VARCHAR(50))"},
		{ColProduct, "codpro"},
	}

	revenueColumns = []ColumnSpec{
		{ColBranch, "codfilial"},
		{ColClient, "codcliente"},
		{ColRegion, "CAST(regiao AS VARCHAR(50))"},
		{ColProduct, "codpro"},
	}
)

// BuildPredicate renders one " AND <lhs> IN (?, ...)" clause per present
// filter, in declared column order, and returns the SQL fragment plus
// the positional arguments in matching order. Absent filters produce no
// clause; a singleton filter still renders an IN list so the query
// shape stays predictable.
func BuildPredicate(f FiltersBI, cols []ColumnSpec) (string, []any) {
	var sb strings.Builder
	var args []any

	for _, spec := range cols {
		vals := f.valuesFor(spec.Key)
		if len(vals) == 0 {
			continue
		}
		sb.WriteString(" AND ")
		sb.WriteString(spec.LHS)
		sb.WriteString(" IN (")
		sb.WriteString(placeholders(len(vals)))
		sb.WriteString(")")
		args = append(args, vals...)
	}
	return sb.String(), args
}

func (f FiltersBI) valuesFor(col Column) []any {
	switch col {
	case ColBranch:
		return intArgs(f.BranchIDs)
	case ColClient:
		return stringArgs(f.ClientIDs)
	case ColCity:
		return intArgs(f.CityIDs)
	case ColRegion:
		return stringArgs(f.Regions)
	case ColProduct:
		return intArgs(f.ProductIDs)
	}
	return nil
}

func placeholders(n int) string {
	if n == 1 {
		return "?"
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func intArgs(vals []int64) []any {
	if len(vals) == 0 {
		return nil
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func stringArgs(vals []string) []any {
	if len(vals) == 0 {
		return nil
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
