package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Ratio returns the indel similarity of a and b on a 0-100 scale:
// 2*LCS / (len(a)+len(b)), rounded half to even. Either string being empty scores 0.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	return ratioRunes(ra, rb)
}

func ratioRunes(a, b []rune) int {
	total := len(a) + len(b)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	lcs := lcsLength(a, b)
	return int(math.RoundToEven(100 * float64(2*lcs) / float64(total)))
}

// lcsLength computes the longest common subsequence with a single DP row.
func lcsLength(a, b []rune) int {
	row := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prevDiag := 0
		for j := 1; j <= len(b); j++ {
			tmp := row[j]
			if a[i-1] == b[j-1] {
				row[j] = prevDiag + 1
			} else if row[j-1] > row[j] {
				row[j] = row[j-1]
			}
			prevDiag = tmp
		}
	}
	return row[len(b)]
}

// MinEdgeWindow is the shortest prefix or suffix of the longer string that
// PartialRatio compares. A one or two letter edge would let a field like
// "wc" score 67 against any question starting with "w".
const MinEdgeWindow = 3

// PartialRatio scores the best alignment of the shorter string inside the
// longer one. Every window of the longer string with the shorter string's
// length is compared, and so are its shorter prefixes and suffixes down to
// MinEdgeWindow runes, so a name cut off at either end of a question still
// aligns. The best Ratio wins.
func PartialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	if strings.Contains(string(long), string(short)) {
		return 100
	}

	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		if score := ratioRunes(short, long[i:i+len(short)]); score > best {
			best = score
		}
	}
	for n := MinEdgeWindow; n < len(short); n++ {
		if score := ratioRunes(short, long[:n]); score > best {
			best = score
		}
		if score := ratioRunes(short, long[len(long)-n:]); score > best {
			best = score
		}
	}
	return best
}

// TokenSetRatio compares the word sets of a and b regardless of order or
// repetition. The shared words are compared against each side's full set and
// the highest of the three pairwise ratios wins.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for tok := range ta {
		if tb[tok] {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if !ta[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(inter, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	if sect != "" && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	return max(Ratio(sect, combinedA), Ratio(sect, combinedB), Ratio(combinedA, combinedB))
}

func tokenSet(s string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
