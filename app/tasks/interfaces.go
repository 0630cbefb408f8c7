package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Example usage:
//
//	scheduler := NewScheduler(ctx, workerCount)
//	scheduler.Start()
//	scheduler.EnqueueTask(NewParseFileTask(path, options, filterer, filters))
//	scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
