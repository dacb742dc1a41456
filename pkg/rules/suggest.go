package rules

import (
	"slices"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// maxSuggestions caps the number of "did you mean" candidates.
const maxSuggestions = 3

// Suggest returns registered IDs, aliases or tags that resemble key.
// Candidates containing key as a subsequence rank first; otherwise
// candidates that are themselves a subsequence of key are offered, which
// catches doubled or stray characters such as "MD0133".
func (r *Registry) Suggest(key string) []string {
	if key == "" {
		return nil
	}
	candidates := r.suggestionCandidates()

	var found []string
	for _, match := range fuzzy.Find(key, candidates) {
		found = append(found, match.Str)
	}

	if len(found) == 0 {
		for _, candidate := range candidates {
			if len(candidate) < len(key)-2 {
				continue
			}
			if len(fuzzy.Find(candidate, []string{key})) > 0 {
				found = append(found, candidate)
			}
		}
	}

	found = lo.Uniq(found)
	if len(found) > maxSuggestions {
		found = found[:maxSuggestions]
	}
	return found
}

func (r *Registry) suggestionCandidates() []string {
	candidates := r.IDs()

	r.mu.RLock()
	aliases := lo.Keys(r.aliases)
	r.mu.RUnlock()
	slices.Sort(aliases)

	candidates = append(candidates, aliases...)
	candidates = append(candidates, r.Tags()...)
	return lo.Uniq(candidates)
}
