// ABOUTME: Offline merge layer combining local overrides with bundled seed content
// ABOUTME: Superseded by the durable store; used only when no store is reachable

package legacy

import "legacy-updates-api/core/domain"

// Origin tags where a merged record came from
type Origin string

// Merged record origins; lookups always prefer Override over Seed
const (
	OriginSeed     Origin = "seed"
	OriginOverride Origin = "override"
)

// Record is one entry of the merged feed
type Record struct {
	Article domain.Article
	Origin  Origin
}

// Overlay reconciles three client-side sources into one logical feed: local
// override records (newest-first), a blocklist of deleted seed ids, and the
// immutable bundled seed list. It is a pure function over its inputs and must
// never be mixed with server-backed pagination; the two modes are mutually
// exclusive.
type Overlay struct {
	overrides []domain.Article
	blocked   map[string]struct{}
}

// NewOverlay builds an overlay from the local override set and the deleted-id
// blocklist. Overrides keep their order; the first record with a given id wins.
func NewOverlay(overrides []domain.Article, blockedIDs []string) *Overlay {
	blocked := make(map[string]struct{}, len(blockedIDs))
	for _, id := range blockedIDs {
		blocked[id] = struct{}{}
	}

	return &Overlay{
		overrides: overrides,
		blocked:   blocked,
	}
}

// Merge applies the overlay over the seed list. Local overrides come first;
// seed records are dropped when blocklisted (delete-by-blocklist) or when an
// override carries the same id (edit-by-shadowing, which also moves the
// record to the front).
func (o *Overlay) Merge(seed []domain.Article) []Record {
	shadowed := make(map[string]struct{}, len(o.overrides))
	result := make([]Record, 0, len(o.overrides)+len(seed))

	for _, override := range o.overrides {
		if _, dup := shadowed[override.ID]; dup {
			continue
		}
		shadowed[override.ID] = struct{}{}
		result = append(result, Record{Article: override, Origin: OriginOverride})
	}

	for _, s := range seed {
		if _, blocked := o.blocked[s.ID]; blocked {
			continue
		}
		if _, hidden := shadowed[s.ID]; hidden {
			continue
		}
		result = append(result, Record{Article: s, Origin: OriginSeed})
	}

	return result
}

// Lookup finds a single record by id in the merged view, preferring an
// override when both an override and a seed record share the id. A
// blocklisted seed id is reported as absent.
func (o *Overlay) Lookup(seed []domain.Article, id string) (Record, bool) {
	for _, override := range o.overrides {
		if override.ID == id {
			return Record{Article: override, Origin: OriginOverride}, true
		}
	}

	if _, blocked := o.blocked[id]; blocked {
		return Record{}, false
	}

	for _, s := range seed {
		if s.ID == id {
			return Record{Article: s, Origin: OriginSeed}, true
		}
	}

	return Record{}, false
}
