package pipeline

import (
	"context"
	"sync"

	"github.com/supercpe/cpe-tracker/internal/entity"
)

// Job is one document's extraction input for batch processing.
type Job struct {
	Document entity.Document
	Segments []string
}

// Result pairs a job with its extraction outcome. Exactly one of Record and
// Issues is populated, same as Extract.
type Result struct {
	Document entity.Document
	Record   *entity.VerifiedRecord
	Issues   []entity.ValidationIssue
}

// RunBatch extracts a set of independent documents across a bounded worker
// pool. Result order is not guaranteed; each document carries its own ID.
func (p *Pipeline) RunBatch(ctx context.Context, jobs []Job, workers int) []Result {
	if workers <= 0 {
		workers = 4
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	in := make(chan Job)
	out := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range in {
				rec, issues := p.Extract(job.Document, job.Segments)
				out <- Result{Document: job.Document, Record: rec, Issues: issues}
			}
		}()
	}

	go func() {
		defer close(in)
		for _, job := range jobs {
			select {
			case in <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(out)

	results := make([]Result, 0, len(jobs))
	for r := range out {
		results = append(results, r)
	}
	return results
}
