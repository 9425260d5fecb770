package browsercookie

import "regexp"

// Filter pairs a pattern with the cookie attribute it is evaluated against.
// A cookie passes a filter set if any single filter matches (logical OR).
// Matching is a regexp search anywhere inside the field; callers wanting
// exact matches anchor their own pattern.
type Filter struct {
	Pattern   *regexp.Regexp
	Attribute Attribute
}

func (f Filter) matches(c Cookie) bool {
	if f.Pattern == nil {
		return false
	}
	return f.Pattern.MatchString(attributeValue(c, f.Attribute))
}

// attributeValue resolves an Attribute to the cookie field it names.
// Absent optional fields read as the empty string, so a missing domain is
// still matchable by patterns that accept empty input.
func attributeValue(c Cookie, a Attribute) string {
	switch a {
	case AttributeName:
		return c.Name
	case AttributeValue:
		return c.Value
	case AttributeDomain:
		return c.Domain
	case AttributePath:
		return c.Path
	default:
		return ""
	}
}
