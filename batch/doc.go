// Package batch analyzes many task descriptions concurrently.
//
// Tasks are read one per line; blank lines and lines starting with '#' are
// skipped. A Runner fans the tasks out over a bounded worker pool and
// returns the analyses in input order together with a per-tier summary:
//
//	tasks, err := batch.ReadTaskFile("tasks.txt")
//	runner := batch.NewRunner(analyzer, batch.WithWorkers(8))
//	result, err := runner.Run(ctx, tasks)
//	result.Summary.ByModel[model.ModelOpus]
package batch
