// Package address normalizes free-text street addresses through a
// degrading-confidence chain: an external geocoding service, then a regex
// street-address grammar, then a guaranteed-non-failing fallback that parks
// the unclassified text for manual review.
package address

import (
	"context"

	"go.uber.org/zap"

	"github.com/meridian/fund-console/internal/metrics"
	"github.com/meridian/fund-console/internal/types"
)

// Source is one normalization tier. TryNormalize returns an error when the
// tier cannot produce a result at all; the chain then moves to the next tier.
type Source interface {
	Name() string
	TryNormalize(ctx context.Context, raw string) (*types.AddressNormalizationResult, error)
}

// Normalizer runs the tier chain in fixed order. The final tier never fails,
// so Normalize always returns a result.
type Normalizer struct {
	sources []Source
	log     *zap.Logger
}

// NewNormalizer builds the standard three-tier chain. geo may be nil when no
// geocoding service is configured; the chain then starts at the regex tier.
func NewNormalizer(geo *GeocodeClient, log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	sources := make([]Source, 0, 3)
	if geo != nil {
		sources = append(sources, geo)
	}
	sources = append(sources, &regexSource{}, &fallbackSource{})
	return &Normalizer{sources: sources, log: log}
}

// NewNormalizerWithSources builds a chain from explicit tiers, for tests and
// non-standard deployments. The caller must ensure the last tier cannot fail.
func NewNormalizerWithSources(log *zap.Logger, sources ...Source) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{sources: sources, log: log}
}

// Normalize runs the chain. Tier failure is a confidence downgrade, not an
// error: the next tier gets its chance, and the fallback tier guarantees a
// result even for unparseable text.
func (n *Normalizer) Normalize(ctx context.Context, raw string) types.AddressNormalizationResult {
	for _, src := range n.sources {
		res, err := src.TryNormalize(ctx, raw)
		if err != nil {
			n.log.Debug("address tier failed, degrading",
				zap.String("tier", src.Name()), zap.Error(err))
			continue
		}
		metrics.AddressNormalizations.WithLabelValues(string(res.Method)).Inc()
		return *res
	}

	// Unreachable with a fallback tier in the chain, but callers must never
	// see an empty method.
	metrics.AddressNormalizations.WithLabelValues(string(types.AddressMethodFallback)).Inc()
	return types.AddressNormalizationResult{
		Method:      types.AddressMethodFallback,
		NeedsReview: true,
		Fields:      types.AddressFields{Line1: raw},
	}
}

// fallbackSource is the terminal tier: it classifies nothing, parks the raw
// text in line1, and always flags for review. Coordinates are never set here.
type fallbackSource struct{}

func (f *fallbackSource) Name() string { return "fallback" }

func (f *fallbackSource) TryNormalize(_ context.Context, raw string) (*types.AddressNormalizationResult, error) {
	return &types.AddressNormalizationResult{
		Method:      types.AddressMethodFallback,
		NeedsReview: true,
		Fields:      types.AddressFields{Line1: raw},
	}, nil
}
