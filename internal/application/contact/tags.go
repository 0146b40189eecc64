package contact

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/leadbridge/backend/internal/domain/crm"
)

// TagResolver maps comma-separated tag names onto res.partner.category
// record ids, creating categories that do not exist yet. Resolution is
// best effort: a transient failure on one tag skips it, while a CRM fault
// aborts the whole batch.
type TagResolver struct {
	logger *zap.Logger
}

// NewTagResolver creates a new tag resolver
func NewTagResolver(logger *zap.Logger) *TagResolver {
	return &TagResolver{logger: logger.Named("tags")}
}

// SplitTags parses a comma-separated tag string into trimmed, de-duplicated
// names. Empty entries are dropped; first-occurrence order is kept.
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Resolve returns the category ids for every tag in raw, creating missing
// categories. Resolving the same input twice creates nothing new.
func (r *TagResolver) Resolve(ctx context.Context, exec crm.Executor, raw string) ([]int64, error) {
	names := SplitTags(raw)
	if len(names) == 0 {
		return nil, nil
	}

	var ids []int64
	for _, name := range names {
		id, err := r.resolveOne(ctx, exec, name)
		if err != nil {
			r.logger.Error("Error finding/creating tag",
				zap.String("tag", name), zap.Error(err))
			var fault *crm.FaultError
			if errors.As(err, &fault) {
				return nil, err
			}
			// transient failure, skip this tag
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *TagResolver) resolveOne(ctx context.Context, exec crm.Executor, name string) (int64, error) {
	domain := []any{[]any{"name", crm.OpEquals, name}}
	id, found, err := crm.SearchFirst(ctx, exec, crm.ModelPartnerCategory, domain)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}

	result, err := exec.ExecuteKw(ctx, crm.ModelPartnerCategory, crm.MethodCreate,
		[]any{map[string]any{"name": name}}, nil)
	if err != nil {
		return 0, err
	}
	return crm.RecordID(result)
}
