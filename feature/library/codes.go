package library

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"catalog-manager/feature/library/models"
)

// codePattern matches a normalized book code: a genre letter followed by
// one or more digits.
var codePattern = regexp.MustCompile(`^[A-C][0-9]+$`)

// NormalizeCode trims surrounding whitespace and upper-cases a code.
// Comparison and storage always use the normalized form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode reports whether code is a valid book code (letter in A-C
// followed by digits). Input is case-insensitive.
func ValidateCode(code string) bool {
	return codePattern.MatchString(NormalizeCode(code))
}

// GenreOf derives the genre from the leading letter of a code. Unrecognized
// letters map to GenreUnknown.
func GenreOf(code string) models.Genre {
	code = NormalizeCode(code)
	if code == "" {
		return models.GenreUnknown
	}
	switch code[0] {
	case 'A':
		return models.GenrePictureBook
	case 'B':
		return models.GenreBridgeBook
	case 'C':
		return models.GenreTextBook
	default:
		return models.GenreUnknown
	}
}

// NextAvailableCode generates the next free code for a genre prefix given the
// set of codes already in use. It takes the maximum numeric suffix among
// existing codes with that prefix, adds one, and zero-pads to four digits.
// The candidate is re-checked against the set and bumped until free, so the
// result never collides. Pure given the existing set.
func NextAvailableCode(prefix string, existing map[string]struct{}) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	max := 0
	for code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(code[len(prefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	for next := max + 1; ; next++ {
		candidate := fmt.Sprintf("%s%04d", prefix, next)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}
