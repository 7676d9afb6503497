// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package sweep runs one independent job per seed on a bounded pool of
// workers.
package sweep

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/0xsoniclabs/prng-audit/logger"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// Func runs the job of a single seed. Each call must use its own random
// source.
type Func[T any] func(ctx context.Context, seed uint64) (T, error)

// Run calls fn for every seed with at most workers calls in flight and
// returns the results in seed order. The first error cancels the context
// passed to running jobs and stops scheduling further seeds.
func Run[T any](ctx context.Context, log logger.Logger, seeds []uint64, workers int, fn Func[T]) ([]T, error) {
	if workers < 1 {
		return nil, errors.Newf("number of workers must be positive, got %d", workers)
	}
	start := time.Now()
	results := make([]T, len(seeds))
	var done atomic.Uint64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, seed)
			if err != nil {
				return errors.Wrapf(err, "seed %d", seed)
			}
			results[i] = res
			log.Debugf("seed %d finished (%d/%d)", seed, done.Add(1), len(seeds))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, m, s := logger.ParseTime(time.Since(start))
	log.Noticef("%d seeds processed with %d workers in %vh %vm %vs", len(seeds), workers, h, m, s)
	return results, nil
}
