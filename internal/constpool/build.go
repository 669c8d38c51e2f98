package constpool

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tern/internal/bigint"
)

// BuildFromLiterals parses every literal and assembles a pool. Parsing
// runs in parallel with at most jobs workers (GOMAXPROCS when jobs <=
// 0); insertion happens afterwards in input order so IDs are
// deterministic. The returned slice maps each input literal to its ID.
func BuildFromLiterals(ctx context.Context, literals []string, jobs int) (*Pool, []ID, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Slot per input index, so workers never contend.
	parsed := make([]bigint.ParsedBigInt, len(literals))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(1, len(literals))))

	for i, lit := range literals {
		i, lit := i, lit
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			v, err := bigint.ParseStringIntegerLiteral(lit)
			if err != nil {
				return fmt.Errorf("literal %q: %w", lit, err)
			}
			parsed[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	pool := New()
	ids := make([]ID, len(parsed))
	for i, v := range parsed {
		ids[i] = pool.Add(v)
	}
	log.Debug().
		Int("literals", len(literals)).
		Int("unique", pool.Len()).
		Msg("pool built")
	return pool, ids, nil
}
