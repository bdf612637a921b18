// Package suggest ranks address-bar suggestions against the session visit
// log. Scoring is cheap and local: exact prefix beats substring beats
// edit-distance closeness, ties broken by recency.
package suggest

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/skiff-term/skiff/internal/session/repository"
)

// Suggestion is one ranked candidate.
type Suggestion struct {
	URL   string
	Title string
	Score float64
}

// VisitSource is what the service needs from the visit log.
type VisitSource interface {
	Recent(ctx context.Context, limit int) ([]repository.Visit, error)
}

// Service ranks suggestions for address-bar input.
type Service struct {
	Visits VisitSource
	Limit  int // max suggestions returned; 0 means 5
	Pool   int // visits considered per query; 0 means 200
}

// score weights: a prefix hit always outranks a substring hit, which always
// outranks a fuzzy hit.
const (
	prefixScore    = 3.0
	substringScore = 2.0
	fuzzyCutoff    = 0.5
)

// Rank returns suggestions for query, best first. An empty query returns the
// most recent visits unscored.
func (s *Service) Rank(ctx context.Context, query string) ([]Suggestion, error) {
	limit := s.Limit
	if limit <= 0 {
		limit = 5
	}
	pool := s.Pool
	if pool <= 0 {
		pool = 200
	}
	visits, err := s.Visits.Recent(ctx, pool)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Suggestion, 0, limit)
		for _, v := range visits {
			if len(out) == limit {
				break
			}
			out = append(out, Suggestion{URL: v.URL, Title: v.Title})
		}
		return out, nil
	}

	type cand struct {
		s      Suggestion
		recent int // lower is more recent
	}
	seen := map[string]bool{}
	var cands []cand
	for i, v := range visits {
		if seen[v.URL] {
			continue
		}
		score := scoreVisit(q, v)
		if score <= 0 {
			continue
		}
		seen[v.URL] = true
		cands = append(cands, cand{s: Suggestion{URL: v.URL, Title: v.Title, Score: score}, recent: i})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].s.Score != cands[j].s.Score {
			return cands[i].s.Score > cands[j].s.Score
		}
		return cands[i].recent < cands[j].recent
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]Suggestion, len(cands))
	for i, c := range cands {
		out[i] = c.s
	}
	return out, nil
}

func scoreVisit(q string, v repository.Visit) float64 {
	host := hostOf(v.URL)
	title := strings.ToLower(v.Title)

	if strings.HasPrefix(host, q) || strings.HasPrefix(title, q) {
		return prefixScore
	}
	if strings.Contains(host, q) || strings.Contains(title, q) ||
		strings.Contains(strings.ToLower(v.URL), q) {
		return substringScore
	}
	best := closeness(q, host)
	if c := closeness(q, title); c > best {
		best = c
	}
	if best < fuzzyCutoff {
		return 0
	}
	return best
}

// closeness maps levenshtein distance to [0,1], 1 meaning identical.
func closeness(q, target string) float64 {
	if target == "" {
		return 0
	}
	d := levenshtein.ComputeDistance(q, target)
	longest := len(q)
	if len(target) > longest {
		longest = len(target)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(d)/float64(longest)
}

func hostOf(raw string) string {
	s := strings.ToLower(raw)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "www.")
}
