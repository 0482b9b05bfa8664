package ideaanalysis

import "strings"

var industries = []string{
	"Technology", "Healthcare", "Finance", "Education",
	"E-commerce", "Food & Beverage", "Travel", "Real Estate",
	"Entertainment", "Fashion", "Logistics", "Software",
	"AI/Machine Learning", "Gaming", "Hardware", "Other",
}

// Industries returns the industries offered by the submission form, in display order.
func Industries() []string {
	out := make([]string, len(industries))
	copy(out, industries)
	return out
}

// IsKnownIndustry reports whether name is one of Industries, ignoring case and surrounding space.
func IsKnownIndustry(name string) bool {
	name = strings.TrimSpace(name)
	for _, v := range industries {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}
