package clinvar

import "strings"

// Stars maps a ClinVar review-status phrase to its "0".."4" star rating.
// Matching is case-insensitive substring matching and the first rule that
// applies wins: "expert panel" must outrank the multiple-submitter rules,
// and the no-conflict rule must come before the plain multiple-submitter
// rule, or statuses carrying both phrases would be downgraded.
func Stars(reviewStatus string) string {
	if reviewStatus == "" {
		return "0"
	}

	status := strings.ToLower(reviewStatus)
	switch {
	case strings.Contains(status, "expert panel"):
		return "4"
	case strings.Contains(status, "multiple submitters") && strings.Contains(status, "no conflict"):
		return "3"
	case strings.Contains(status, "multiple submitters"):
		return "2"
	case strings.Contains(status, "single submitter"):
		return "1"
	case strings.Contains(status, "no assertion"), strings.Contains(status, "no criteria"):
		return "0"
	default:
		return NotApplicable
	}
}
