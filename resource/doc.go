// Package resource bounds the work a process spends on clustering.
//
// A Controller hands out two kinds of resources:
//
//   - Worker slots: concurrent fits in an experiment sweep (weighted semaphore)
//   - IO bandwidth: bytes per second read while loading a corpus (token bucket)
//
// # Worker Slots
//
//	rc := resource.NewController(resource.Config{MaxWorkers: 4})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 50 * 1024 * 1024, // 50MB/s
//	})
//
//	reader := resource.NewRateLimitedReader(ctx, file, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
