// Package naming implements the built-in identifier-case transforms used
// by variable!name lookups when the name isn't a tag (spec.md §4.5, §8
// "Case transforms"). It is deliberately split out from internal/gen,
// mirroring spec.md §1's framing of "identifier case-conversion helpers"
// as an external collaborator rather than core pipeline substance; no
// comparable helper exists anywhere in the retrieval pack, so this one is
// hand-built against the word-splitting rule spec.md spells out, rather
// than grounded on pack source.
package naming

import "strings"

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// split breaks name into its preserved leading/trailing underscore runs
// and its interior words, per spec.md §4.5:
//
//   - leading/trailing underscores are preserved verbatim
//   - interior underscores separate words
//   - within a run between underscores, consecutive digits, consecutive
//     lowercase letters and consecutive uppercase letters each form a word
//   - an uppercase run immediately followed by a lowercase run donates its
//     last character to the lowercase word (HTTPServer -> HTTP, Server)
func split(name string) (lead, trail string, words []string) {
	n := len(name)
	l := 0
	for l < n && name[l] == '_' {
		l++
	}
	t := 0
	for t < n-l && name[n-1-t] == '_' {
		t++
	}
	lead = name[:l]
	trail = name[n-t:]
	core := name[l : n-t]

	for _, segment := range strings.Split(core, "_") {
		words = append(words, splitRuns(segment)...)
	}
	return lead, trail, words
}

func splitRuns(s string) []string {
	var words []string
	i, n := 0, len(s)
	for i < n {
		switch {
		case isDigit(s[i]):
			j := i
			for j < n && isDigit(s[j]) {
				j++
			}
			words = append(words, s[i:j])
			i = j

		case isLower(s[i]):
			j := i
			for j < n && isLower(s[j]) {
				j++
			}
			words = append(words, s[i:j])
			i = j

		case isUpper(s[i]):
			j := i
			for j < n && isUpper(s[j]) {
				j++
			}
			upperRun := s[i:j]
			if j < n && isLower(s[j]) {
				k := j
				for k < n && isLower(s[k]) {
					k++
				}
				lowerRun := s[j:k]
				if len(upperRun) == 1 {
					words = append(words, upperRun+lowerRun)
				} else {
					words = append(words, upperRun[:len(upperRun)-1])
					words = append(words, upperRun[len(upperRun)-1:]+lowerRun)
				}
				i = k
			} else {
				words = append(words, upperRun)
				i = j
			}

		default:
			// Non-alnum byte inside an identifier core shouldn't occur in
			// practice; treat it as its own single-byte word rather than
			// dropping it silently.
			words = append(words, s[i:i+1])
			i++
		}
	}
	return words
}

// Lower implements the `lower` transform: words joined by `_`, lowercased.
func Lower(name string) string {
	lead, trail, words := split(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return lead + strings.Join(words, "_") + trail
}

// Upper implements the `upper` transform: words joined by `_`, uppercased.
func Upper(name string) string {
	lead, trail, words := split(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return lead + strings.Join(words, "_") + trail
}

// Camel implements the `camel` transform: each word capitalized,
// concatenated with no separator.
func Camel(name string) string {
	lead, trail, words := split(name)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return lead + b.String() + trail
}

// Mixed implements the `mixed` transform: first word lowercased,
// subsequent words capitalized, concatenated with no separator.
func Mixed(name string) string {
	lead, trail, words := split(name)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(decapitalize(w))
		} else {
			b.WriteString(capitalize(w))
		}
	}
	return lead + b.String() + trail
}

// Quote implements the `quote` transform: the full original name wrapped
// in double quotes, with no word splitting.
func Quote(name string) string {
	return `"` + name + `"`
}

// capitalize renders a word Capitalized: first byte upper, the rest lower
// (original_source/source/case.c's write_cap).
func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// decapitalize renders a word fully lowercased (case.c's write_lower,
// used by generate_mixed for the first word).
func decapitalize(w string) string {
	return strings.ToLower(w)
}
