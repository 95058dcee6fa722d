package inline

import "github.com/colonyops/pencil/internal/core/styles"

// ClassNames composes the class list of a field in view mode. The wrapper
// class and the caller's extra classes always apply; the not-allowed class
// takes precedence over hover.
func ClassNames(prefix string, allowEdit, hovered bool, hoverClass, extra string) string {
	existing := prefix + styles.ClassWrapper
	if extra != "" {
		existing += " " + extra
	}

	switch {
	case !allowEdit:
		return prefix + styles.ClassNotAllowed + " " + existing
	case hovered:
		if hoverClass == "" || hoverClass == styles.DefaultHoverClass {
			return prefix + styles.ClassHoverOn + " " + existing + " " + styles.ClassPencilIcon
		}
		return hoverClass + " " + existing
	default:
		return existing
	}
}
