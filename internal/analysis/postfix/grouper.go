package postfix

// Response gathers every tail extracted from one response id.
type Response struct {
	ResponseID string     `json:"ResponseID"`
	Sentences  [][]string `json:"Sentences"`
}

// ResponseIDs returns the distinct response ids of sets in first-occurrence
// order.
func ResponseIDs(sets []Set) []string {
	seen := make(map[string]struct{}, len(sets))
	ids := make([]string, 0)
	for _, s := range sets {
		if _, ok := seen[s.ResponseID]; ok {
			continue
		}
		seen[s.ResponseID] = struct{}{}
		ids = append(ids, s.ResponseID)
	}
	return ids
}

// Group merges sets by response id. Groups appear in first-occurrence order
// and keep the order of their tails.
func Group(sets []Set) []Response {
	index := make(map[string]int, len(sets))
	groups := make([]Response, 0)
	for _, s := range sets {
		i, ok := index[s.ResponseID]
		if !ok {
			i = len(groups)
			index[s.ResponseID] = i
			groups = append(groups, Response{ResponseID: s.ResponseID})
		}
		groups[i].Sentences = append(groups[i].Sentences, s.Sequence)
	}
	return groups
}
