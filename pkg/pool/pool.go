package pool

import (
	"context"
	"sync"
)

// WorkerFunc defines the function signature for a worker that processes an item and produces a result.
type WorkerFunc[T, R any] func(ctx context.Context, item T) (R, error)

// Map processes a slice of items concurrently with numWorkers workers.
// Results keep the order of the input slice; the zero value fills the slot
// for any item whose worker returned an error. The returned error slice
// contains every error that occurred, in no particular order.
func Map[T, R any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T, R]) ([]R, []error) {
	results := make([]R, len(items))

	var wg sync.WaitGroup
	taskChan := make(chan int, numWorkers)
	errChan := make(chan error, len(items))

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range taskChan {
				select {
				case <-ctx.Done():
					return
				default:
					res, err := workerFunc(ctx, items[idx])
					if err != nil {
						errChan <- err
						continue
					}
					results[idx] = res
				}
			}
		}()
	}

OUT:
	for idx := range items {
		select {
		case taskChan <- idx:
		case <-ctx.Done():
			// Stop feeding tasks if the context is cancelled
			break OUT
		}
	}
	close(taskChan)

	wg.Wait()
	close(errChan)

	var allErrors []error
	for err := range errChan {
		allErrors = append(allErrors, err)
	}
	return results, allErrors
}
