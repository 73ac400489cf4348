package calculator

import (
	"regexp"
	"strings"
)

var (
	leadingKitRe = regexp.MustCompile(`(?i)^kit\b`)
	sizeTokenRe  = regexp.MustCompile(`(?i)\b(?:xxg|xg|ggg|gg|pp|g|m|p)\b`)
	genderRe     = regexp.MustCompile(`(?i)\b(?:masculino|feminino|unissex|adulto|infantil)\b`)
)

// NormalizeKit canonicalizes a free-form uniform selection into a stable label
// such as "Kit M Masculino". Empty input yields an empty label, which callers
// must skip when counting.
func NormalizeKit(raw string) string {
	label := strings.Join(strings.Fields(raw), " ")
	if label == "" {
		return ""
	}

	if !leadingKitRe.MatchString(label) {
		label = "Kit " + label
	}

	label = sizeTokenRe.ReplaceAllStringFunc(label, strings.ToUpper)
	label = genderRe.ReplaceAllStringFunc(label, titleCase)

	return leadingKitRe.ReplaceAllString(label, "Kit")
}

func titleCase(word string) string {
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
