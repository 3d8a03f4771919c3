package scene

import "strings"

// picks the scene template for the given texts (situation, description, ...).
// matching is case-insensitive substring search over the ordered keyword groups
func Classify(texts ...string) Kind {
	haystack := strings.ToLower(strings.Join(texts, " "))

	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(haystack, kw) {
				return group.kind
			}
		}
	}

	return KindOffice
}
