package classifier

// Match pairs a token with the dictionary entry it hit.
type Match struct {
	Token string
	Entry Entry
}

// MatchSnapshot returns one match per token found in the snapshot, in token
// order. Only exact word membership counts.
func MatchSnapshot(tokens []string, snap *Snapshot) []Match {
	if snap == nil || snap.Len() == 0 {
		return nil
	}
	var matches []Match
	for _, tok := range tokens {
		if entry, ok := snap.Lookup(tok); ok {
			matches = append(matches, Match{Token: tok, Entry: entry})
		}
	}
	return matches
}

// Categories returns the category of every matching token against the
// dictionary's current version. Repeated categories are kept.
func Categories(tokens []string, d *Dictionary) []string {
	matches := MatchSnapshot(tokens, d.Snapshot())
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Entry.Category)
	}
	return out
}

// Distinct drops repeated values keeping first occurrence order.
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
