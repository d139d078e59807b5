package seating

// Labels translates raw group and side values into display names used when
// naming tables. Translation is a presentation concern: the allocator's
// decisions never depend on it, only table names do.
type Labels struct {
	Group func(string) string
	Side  func(string) string
}

// IdentityLabels returns labels that pass raw values through unchanged
func IdentityLabels() Labels {
	identity := func(s string) string { return s }
	return Labels{Group: identity, Side: identity}
}

// HebrewLabels translates the standard group and side values to Hebrew.
// Unknown values pass through unchanged.
func HebrewLabels() Labels {
	groups := map[string]string{
		"family":  "משפחה",
		"friends": "חברים",
		"work":    "עבודה",
		"army":    "צבא",
		"studies": "לימודים",
		"other":   "אחר",
	}
	sides := map[string]string{
		"bride": "כלה",
		"groom": "חתן",
		"both":  "משותף",
	}

	lookup := func(m map[string]string) func(string) string {
		return func(s string) string {
			if translated, ok := m[s]; ok {
				return translated
			}
			return s
		}
	}

	return Labels{Group: lookup(groups), Side: lookup(sides)}
}
