package convertly

import (
	"reflect"

	"github.com/jellydator/ttlcache/v3"
	"github.com/viant/convertly/descriptor"
)

// pairKey identifies a (source, target) descriptor pair in the
// resolution cache. Descriptors are fully determined by their nominal
// reflect.Type, so the type pair is a sufficient key.
type pairKey struct {
	source reflect.Type
	target reflect.Type
}

// cacheEntry memoizes a resolution outcome: a converter handle, or a
// nil handle recording that no converter exists (negative entry). The
// generation pins the entry to the registry snapshot it was computed
// against, so a stale write racing a mutation is never trusted.
type cacheEntry struct {
	fn         conversion
	generation uint64
}

// resolve returns the single converter to apply for the pair, or nil
// when no explicit, structural or fallback rule applies. Outcomes are
// memoized per descriptor pair until the registry is mutated.
func (s *Service) resolve(source, target *descriptor.Type) conversion {
	snap := s.registry.load()
	key := pairKey{source: source.ReflectType(), target: target.ReflectType()}
	if item := s.cache.Get(key); item != nil {
		if entry := item.Value(); entry.generation == snap.generation {
			return entry.fn
		}
	}
	fn := s.find(source, target, snap)
	s.cache.Set(key, cacheEntry{fn: fn, generation: snap.generation}, ttlcache.NoTTL)
	return fn
}

// find performs the live three-tier search: explicit registrations
// ranked by specificity, then structural converters, then fallbacks.
// User registrations always take priority over built-in behavior.
func (s *Service) find(source, target *descriptor.Type, snap *snapshot) conversion {
	var best *registration
	bestSrc, bestTgt := 0, 0
	for _, reg := range snap.registrations {
		srcDist, tgtDist, ok := reg.match(source, target)
		if !ok {
			continue
		}
		if reg.condition != nil && !reg.condition.Matches(source, target) {
			continue
		}
		// Exact beats hierarchy, shallower beats deeper, source-major;
		// on a full tie the later registration supersedes the earlier.
		if best == nil || srcDist < bestSrc || (srcDist == bestSrc && tgtDist <= bestTgt) {
			best, bestSrc, bestTgt = reg, srcDist, tgtDist
		}
	}
	if best != nil {
		return best.conversion()
	}
	for _, builtin := range s.structural {
		if builtin.Matches(source, target) {
			return builtin.ConvertValue
		}
	}
	for _, builtin := range s.fallback {
		if builtin.Matches(source, target) {
			return builtin.ConvertValue
		}
	}
	return nil
}
