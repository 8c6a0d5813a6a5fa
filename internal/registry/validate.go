package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"github.com/specialistvlad/rulesmith/internal/valuetype"
)

// ValidateRegistry checks that identifiers can be written in rule files as
// registered, and that every value type with factories can at least be
// assigned. A value type with no factories at all only logs a warning.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, tag := range valuetype.Tags() {
		factories := r.factories[tag]
		if len(factories) == 0 {
			logger.Warn("No modifier factories registered for value type; variables of this type cannot be modified.", "format", string(tag))
			continue
		}
		if _, ok := factories["SET"]; !ok {
			errs = append(errs, fmt.Sprintf("value type '%s': no SET factory registered", tag))
		}
		for _, identifier := range r.Identifiers(tag) {
			if identifier != strings.ToUpper(identifier) || strings.ContainsAny(identifier, " \t\n") {
				errs = append(errs, fmt.Sprintf("value type '%s', identifier '%s': identifiers must be upper case without whitespace", tag, identifier))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}
