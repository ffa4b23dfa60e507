package ebay

import (
	"fmt"
	"strings"
)

// Condition is one of the marketplace's fixed inventory condition values.
type Condition string

const (
	ConditionNew                  Condition = "NEW"
	ConditionLikeNew              Condition = "LIKE_NEW"
	ConditionNewOther             Condition = "NEW_OTHER"
	ConditionNewWithDefects       Condition = "NEW_WITH_DEFECTS"
	ConditionCertifiedRefurbished Condition = "CERTIFIED_REFURBISHED"
	ConditionExcellentRefurbished Condition = "EXCELLENT_REFURBISHED"
	ConditionVeryGoodRefurbished  Condition = "VERY_GOOD_REFURBISHED"
	ConditionGoodRefurbished      Condition = "GOOD_REFURBISHED"
	ConditionSellerRefurbished    Condition = "SELLER_REFURBISHED"
	ConditionUsedExcellent        Condition = "USED_EXCELLENT"
	ConditionUsedVeryGood         Condition = "USED_VERY_GOOD"
	ConditionUsedGood             Condition = "USED_GOOD"
	ConditionUsedAcceptable       Condition = "USED_ACCEPTABLE"
	ConditionPreOwnedExcellent    Condition = "PRE_OWNED_EXCELLENT"
	ConditionPreOwnedFair         Condition = "PRE_OWNED_FAIR"
	ConditionGraded               Condition = "GRADED"
	ConditionUngraded             Condition = "UNGRADED"
	ConditionForParts             Condition = "FOR_PARTS_OR_NOT_WORKING"
)

// conditionAliases maps normalized seller labels straight to a condition.
// Canonical enum spellings normalize into this table too, so mapping an
// already-mapped value is a no-op.
var conditionAliases = map[string]Condition{
	"new":                      ConditionNew,
	"brand new":                ConditionNew,
	"new in box":               ConditionNew,
	"nib":                      ConditionNew,
	"sealed":                   ConditionNew,
	"new sealed":               ConditionNew,
	"like new":                 ConditionLikeNew,
	"mint":                     ConditionLikeNew,
	"new other":                ConditionNewOther,
	"open box":                 ConditionNewOther,
	"openbox":                  ConditionNewOther,
	"new with defects":         ConditionNewWithDefects,
	"certified refurbished":    ConditionCertifiedRefurbished,
	"manufacturer refurbished": ConditionCertifiedRefurbished,
	"factory refurbished":      ConditionCertifiedRefurbished,
	"excellent refurbished":    ConditionExcellentRefurbished,
	"very good refurbished":    ConditionVeryGoodRefurbished,
	"good refurbished":         ConditionGoodRefurbished,
	"seller refurbished":       ConditionSellerRefurbished,
	"used excellent":           ConditionUsedExcellent,
	"excellent":                ConditionUsedExcellent,
	"used very good":           ConditionUsedVeryGood,
	"very good":                ConditionUsedVeryGood,
	"used good":                ConditionUsedGood,
	"good":                     ConditionUsedGood,
	"used acceptable":          ConditionUsedAcceptable,
	"acceptable":               ConditionUsedAcceptable,
	"pre owned excellent":      ConditionPreOwnedExcellent,
	"pre owned fair":           ConditionPreOwnedFair,
	"graded":                   ConditionGraded,
	"ungraded":                 ConditionUngraded,
	"raw":                      ConditionUngraded,
	"for parts or not working": ConditionForParts,
	"for parts":                ConditionForParts,
	"parts only":               ConditionForParts,
	"not working":              ConditionForParts,
	"broken":                   ConditionForParts,
}

// familyRules resolve labels that only name a condition family; they are
// checked in order after the alias table misses. The grade token refines
// used and refurbished families, see gradeLetter.
var familyRules = []struct {
	substr  string
	resolve func(grade string) Condition
}{
	{"refurb", refurbishedForGrade},
	{"ungraded", func(string) Condition { return ConditionUngraded }},
	{"graded", func(string) Condition { return ConditionGraded }},
	{"parts", func(string) Condition { return ConditionForParts }},
	{"not working", func(string) Condition { return ConditionForParts }},
	{"pre owned", usedForGrade},
	{"preowned", usedForGrade},
	{"used", usedForGrade},
	{"new", func(string) Condition { return ConditionNew }},
}

// MapCondition maps a free-text seller condition label, with an optional
// grade token ("A+", "B", PSA "9", ...), to the marketplace's closed
// condition set. Unrecognized labels fall back to USED_GOOD, the safest
// mid-range used condition. The mapping is deterministic and never fails.
func MapCondition(label, grade string) Condition {
	l := normalizeLabel(label)
	if c, ok := conditionAliases[l]; ok {
		return c
	}
	for _, rule := range familyRules {
		if strings.Contains(l, rule.substr) {
			return rule.resolve(grade)
		}
	}
	return ConditionUsedGood
}

// ConditionDescription renders a buyer-facing description for the same
// (label, grade) pair MapCondition takes, consistent with the mapped value.
func ConditionDescription(label, grade string) string {
	desc := conditionDescriptions[MapCondition(label, grade)]
	if g := strings.ToUpper(strings.TrimSpace(grade)); g != "" {
		desc = fmt.Sprintf("%s (grade %s)", desc, g)
	}
	return desc
}

var conditionDescriptions = map[Condition]string{
	ConditionNew:                  "Brand new, unused item in its original packaging",
	ConditionLikeNew:              "Opened but barely used, in like-new condition",
	ConditionNewOther:             "New, unused item with opened or missing original packaging",
	ConditionNewWithDefects:       "New, unused item with cosmetic defects",
	ConditionCertifiedRefurbished: "Restored and certified by the manufacturer or an approved vendor",
	ConditionExcellentRefurbished: "Professionally refurbished, in excellent condition",
	ConditionVeryGoodRefurbished:  "Professionally refurbished, in very good condition",
	ConditionGoodRefurbished:      "Professionally refurbished, in good condition",
	ConditionSellerRefurbished:    "Restored to working order by the seller",
	ConditionUsedExcellent:        "Used, in excellent condition with minimal signs of wear",
	ConditionUsedVeryGood:         "Used, in very good condition with light wear",
	ConditionUsedGood:             "Used, in good working condition with normal wear",
	ConditionUsedAcceptable:       "Used, fully functional with noticeable wear",
	ConditionPreOwnedExcellent:    "Pre-owned, in excellent condition",
	ConditionPreOwnedFair:         "Pre-owned, in fair condition",
	ConditionGraded:               "Professionally graded item",
	ConditionUngraded:             "Ungraded item, condition as pictured",
	ConditionForParts:             "Not fully working, sold for parts or repair",
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// usedForGrade picks the used tier for a letter grade; anything that is
// not a recognizable letter grade keeps the USED_GOOD midpoint.
func usedForGrade(grade string) Condition {
	switch gradeLetter(grade) {
	case 'A':
		return ConditionUsedExcellent
	case 'B':
		return ConditionUsedVeryGood
	case 'C':
		return ConditionUsedGood
	case 'D', 'E', 'F':
		return ConditionUsedAcceptable
	}
	return ConditionUsedGood
}

func refurbishedForGrade(grade string) Condition {
	switch gradeLetter(grade) {
	case 'A':
		return ConditionExcellentRefurbished
	case 'B':
		return ConditionVeryGoodRefurbished
	case 'C':
		return ConditionGoodRefurbished
	}
	return ConditionSellerRefurbished
}

// gradeLetter extracts the leading letter of grades like "A", "B+" or
// "a-". Numeric grading scales (PSA 1-10) return 0 and leave the family
// at its default tier.
func gradeLetter(grade string) byte {
	g := strings.ToUpper(strings.TrimSpace(grade))
	if g == "" {
		return 0
	}
	c := g[0]
	if c < 'A' || c > 'Z' {
		return 0
	}
	return c
}
