package career

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yungbote/careerpath-backend/internal/observability"
	pkgerrors "github.com/yungbote/careerpath-backend/internal/pkg/errors"
	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

var (
	ErrModelUnavailable = fmt.Errorf("career similarity model %w", pkgerrors.ErrUnavailable)
	ErrEmptyQuery       = fmt.Errorf("%w: query is empty", pkgerrors.ErrInvalidArgument)
	ErrInvalidTopN      = fmt.Errorf("%w: top_n must be at least 1", pkgerrors.ErrInvalidArgument)
)

// Match is a ranked catalog row. It serializes as the row's attributes plus "score".
type Match struct {
	Career Career
	Score  float64
}

func (m Match) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Career.Attributes)+1)
	for k, v := range m.Career.Attributes {
		out[k] = v
	}
	out["score"] = m.Score
	return json.Marshal(out)
}

type Ranker interface {
	// Rank returns the topN careers most similar to query, best first. topN is clamped
	// to the catalog size.
	Rank(query string, topN int) ([]Match, error)
	Loaded() bool
	Size() int
	NameColumn() string
}

type ranker struct {
	log     *logger.Logger
	catalog *Catalog
	index   *index
	cache   *lru.Cache[string, []Match]
}

// NewRanker fits the similarity model over catalog. A nil catalog yields a ranker that
// reports ErrModelUnavailable. cacheSize <= 0 disables result caching.
func NewRanker(log *logger.Logger, catalog *Catalog, cacheSize int) (Ranker, error) {
	r := &ranker{log: log.With("service", "CareerRanker"), catalog: catalog}
	if catalog.Len() > 0 {
		docs := make([]string, len(catalog.Careers))
		for i, c := range catalog.Careers {
			docs[i] = c.Text()
		}
		r.index = buildIndex(docs)
		r.log.Info("Career model fitted", "careers", len(docs), "vocabulary", len(r.index.vocab))
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, []Match](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("rank cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

func (r *ranker) Loaded() bool { return r.index != nil }

func (r *ranker) Size() int { return r.catalog.Len() }

func (r *ranker) NameColumn() string {
	if r.catalog == nil {
		return DefaultNameColumn
	}
	return r.catalog.NameColumn
}

func (r *ranker) Rank(query string, topN int) ([]Match, error) {
	if r.index == nil {
		observability.Current().ObserveRank("unavailable")
		return nil, ErrModelUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topN < 1 {
		return nil, ErrInvalidTopN
	}
	if topN > len(r.catalog.Careers) {
		topN = len(r.catalog.Careers)
	}

	key := strconv.Itoa(topN) + "\x00" + strings.ToLower(query)
	if r.cache != nil {
		if hit, ok := r.cache.Get(key); ok {
			observability.Current().ObserveRank("cache_hit")
			return cloneMatches(hit), nil
		}
	}

	scores := r.index.similarities(query)
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	out := make([]Match, 0, topN)
	for _, i := range order[:topN] {
		out = append(out, Match{Career: r.catalog.Careers[i], Score: scores[i]})
	}
	if r.cache != nil {
		r.cache.Add(key, cloneMatches(out))
	}
	observability.Current().ObserveRank("ok")
	return out, nil
}

func cloneMatches(in []Match) []Match {
	out := make([]Match, len(in))
	copy(out, in)
	return out
}

// IsUnavailable reports whether err means no model is loaded.
func IsUnavailable(err error) bool { return errors.Is(err, ErrModelUnavailable) }
