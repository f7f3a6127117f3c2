package digitransit

import (
	"context"
	"strconv"

	"github.com/polarsquad/ecoestate/common"
	"github.com/polarsquad/ecoestate/common/model"
)

// Service exposes the cached walking-distance lookup. The public result is
// two-valued (a zone, or nil for "outside all zones"), but probes carry an
// internal three-way outcome so that an errored lookup is never cached as a
// genuine "outside all zones" determination.
type Service interface {
	WalkingDistance(ctx context.Context, x, y float64) *model.WalkingZone
	ClearCache()
}

// probeOutcome is the three-way result of one zone probe.
type probeOutcome int

const (
	probeFound probeOutcome = iota
	probeNotFound
	probeError
)

// zoneOrder lists the zones probed, ascending; the first hit wins.
var zoneOrder = []model.WalkingZone{model.Zone5Min, model.Zone10Min, model.Zone15Min}

type walkingService struct {
	client Client
	cache  *common.Cache[*model.WalkingZone]
	logger common.Logger
}

// NewService constructs the walking-distance service. The cache stores one
// entry per coordinate pair; a stored nil is the real "outside all zones"
// value, distinct from a miss.
func NewService(client Client, cache *common.Cache[*model.WalkingZone], logger common.Logger) Service {
	return &walkingService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

func coordinateKey(x, y float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + "," + strconv.FormatFloat(y, 'f', -1, 64)
}

// WalkingDistance probes the 5, 10 and 15 minute zones in order and returns
// the first zone containing the point, or nil if none does. A probe failure
// is logged and treated as "no match for this zone" for the immediate
// return value, but a lookup degraded by any probe error is not cached, so
// the next call re-checks instead of serving a poisoned entry.
func (s *walkingService) WalkingDistance(ctx context.Context, x, y float64) *model.WalkingZone {
	key := coordinateKey(x, y)
	if zone, found := s.cache.Get(key); found {
		return zone
	}

	degraded := false
	for _, zone := range zoneOrder {
		switch s.probe(ctx, zone, x, y) {
		case probeFound:
			z := zone
			s.cache.Set(key, &z)
			return &z
		case probeError:
			degraded = true
		}
	}

	// Only a clean sweep of all three zones is a cacheable "outside all
	// zones" result.
	if !degraded {
		s.cache.Set(key, nil)
	}
	return nil
}

func (s *walkingService) probe(ctx context.Context, zone model.WalkingZone, x, y float64) probeOutcome {
	contains, err := s.client.ZoneContains(ctx, zone, x, y)
	if err != nil {
		s.logger.Warnf("digitransit: %s zone probe failed for (%g, %g): %v", zone, x, y, err)
		return probeError
	}
	if contains {
		return probeFound
	}
	return probeNotFound
}

// ClearCache drops all cached coordinate lookups. Called by scheduled
// maintenance.
func (s *walkingService) ClearCache() {
	s.cache.Clear()
}
