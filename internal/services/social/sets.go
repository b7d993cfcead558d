package social

// Pure set operations over identifier lists. Lists keep insertion order
// and never contain duplicates; each mutation returns the new list and
// whether anything changed, so callers can skip writes that would be
// no-ops.

func containsID(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

func addIfAbsent(set []string, id string) ([]string, bool) {
	if containsID(set, id) {
		return set, false
	}
	out := make([]string, 0, len(set)+1)
	out = append(out, set...)
	out = append(out, id)
	return out, true
}

func removeIfPresent(set []string, id string) ([]string, bool) {
	if !containsID(set, id) {
		return set, false
	}
	out := make([]string, 0, len(set)-1)
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out, true
}
