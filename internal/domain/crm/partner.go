package crm

import (
	"context"
	"fmt"
)

// ReplaceTags renders the Odoo many2many replace command (6, 0, ids) for
// the category_id field: the record's tag set becomes exactly ids.
func ReplaceTags(ids []int64) []any {
	return []any{[]any{6, 0, ids}}
}

// SearchFirst runs a bounded search (limit 1) for the given model and
// domain and returns the first matching record id. A nil domain performs
// no search and reports not found. CRM faults are propagated unchanged.
func SearchFirst(ctx context.Context, exec Executor, model string, domain []any) (int64, bool, error) {
	if domain == nil {
		return 0, false, nil
	}

	result, err := exec.ExecuteKw(ctx, model, MethodSearch, []any{domain}, map[string]any{"limit": 1})
	if err != nil {
		return 0, false, err
	}

	ids, ok := result.([]any)
	if !ok || len(ids) == 0 {
		return 0, false, nil
	}

	id, err := RecordID(ids[0])
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// RecordID normalizes an XML-RPC numeric result into a record id.
func RecordID(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected record id type %T", v)
	}
}
