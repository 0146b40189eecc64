package crm

// Odoo search domains use Polish-prefix boolean operators: an operator
// token precedes its two operands, so ["&", A, B] is A AND B and
// ["&", "|", A, B, C] is (A OR B) AND C.
const (
	opAnd = "&"
	opOr  = "|"
)

// Operators accepted by partner searches.
const (
	OpEquals      = "="      // exact match
	OpEqualsILike = "=ilike" // case-insensitive exact match
)

// Condition is one (field, operator, value) predicate fragment.
type Condition struct {
	Field    string
	Operator string
	Value    any
}

// tuple renders the condition in Odoo's wire form.
func (c Condition) tuple() []any {
	return []any{c.Field, c.Operator, c.Value}
}

// TypeFlag returns the is_company condition that restricts a partner
// search to companies or individuals.
func TypeFlag(isCompany bool) Condition {
	return Condition{Field: "is_company", Operator: OpEquals, Value: isCompany}
}

// BuildDomain combines predicate fragments with the partner type flag.
//
// Zero fragments yield a nil domain: the caller performs no search and
// treats the entity as not found. A single fragment is ANDed with the type
// flag. Multiple fragments are first OR-chained ((n-1) OR operators
// followed by the n fragments), then the whole chain is ANDed with the
// type flag. The type flag is always the last operand.
func BuildDomain(conds []Condition, isCompany bool) []any {
	if len(conds) == 0 {
		return nil
	}

	flag := TypeFlag(isCompany).tuple()

	if len(conds) == 1 {
		return []any{opAnd, conds[0].tuple(), flag}
	}

	domain := make([]any, 0, 2*len(conds)+1)
	domain = append(domain, opAnd)
	for i := 0; i < len(conds)-1; i++ {
		domain = append(domain, opOr)
	}
	for _, c := range conds {
		domain = append(domain, c.tuple())
	}
	domain = append(domain, flag)
	return domain
}
