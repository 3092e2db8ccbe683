package problemgen

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GenerateBatch generates one question per input in parallel. Each item
// draws from its own generator derived from seed and its index, so the
// result is deterministic and in input order. Any Rand set on an input is
// ignored. The first failure cancels the remaining items.
func GenerateBatch(ctx context.Context, gen Generator, inputs []GenerateInput, seed uint64) ([]*Question, error) {
	out := make([]*Question, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		in.Rand = itemRand(seed, i)
		g.Go(func() error {
			q, err := gen.Generate(ctx, in)
			if err != nil {
				return fmt.Errorf("item %d: %w", i+1, err)
			}
			out[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
