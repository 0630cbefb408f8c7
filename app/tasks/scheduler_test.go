package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lysyi3m/feedparser/app/config"
	"github.com/lysyi3m/feedparser/app/feed"
)

type countingTask struct {
	Task
	count *atomic.Int32
}

func (t *countingTask) Execute(ctx context.Context) error {
	t.count.Add(1)
	return nil
}

func TestSchedulerRunsAllTasks(t *testing.T) {
	var count atomic.Int32

	scheduler := NewScheduler(context.Background(), 3)
	scheduler.Start()

	for i := 0; i < 50; i++ {
		if err := scheduler.EnqueueTask(&countingTask{Task: NewTask(TaskTypeParseFile, "test"), count: &count}); err != nil {
			t.Fatalf("Failed to enqueue task: %v", err)
		}
	}
	scheduler.Stop()

	if count.Load() != 50 {
		t.Errorf("Expected 50 executed tasks, got %d", count.Load())
	}
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	scheduler := NewScheduler(context.Background(), 1)
	scheduler.Start()
	scheduler.Stop()
	scheduler.Stop()
}

func TestParseFileTaskCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := NewParseFileTask("missing.xml", nil, nil, nil)
	if err := task.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if task.Feed != nil {
		t.Error("Expected no feed after cancellation")
	}
}

func TestParseFileTasks(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.xml")
	err := os.WriteFile(good, []byte(`<rss><channel><title>Good</title>
<item><title>Go 1.24 released</title></item>
<item><title>Weather</title></item>
</channel></rss>`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(dir, "bad.xml")
	if err := os.WriteFile(bad, []byte(`<rss><channel>`), 0644); err != nil {
		t.Fatal(err)
	}

	filters := []config.Filter{{Field: "title", Includes: []string{"go"}}}
	filterer := feed.NewFilterer()

	var tasks []*ParseFileTask
	for _, path := range []string{good, bad, good} {
		tasks = append(tasks, NewParseFileTask(path, nil, filterer, filters))
	}

	scheduler := NewScheduler(context.Background(), 2)
	scheduler.Start()
	for _, task := range tasks {
		if err := scheduler.EnqueueTask(task); err != nil {
			t.Fatalf("Failed to enqueue task: %v", err)
		}
	}
	scheduler.Stop()

	for _, i := range []int{0, 2} {
		if tasks[i].Err != nil {
			t.Fatalf("Expected task %d to succeed, got %v", i, tasks[i].Err)
		}
		if tasks[i].Feed.Title != "Good" {
			t.Errorf("Expected title 'Good', got '%s'", tasks[i].Feed.Title)
		}
		if len(tasks[i].Feed.Entries) != 1 || tasks[i].Feed.Entries[0].Title != "Go 1.24 released" {
			t.Errorf("Expected only the Go entry to survive filtering, got %d entries", len(tasks[i].Feed.Entries))
		}
	}

	if !errors.Is(tasks[1].Err, feed.ErrSyntax) {
		t.Errorf("Expected ErrSyntax for bad file, got %v", tasks[1].Err)
	}
	if tasks[1].Feed != nil {
		t.Errorf("Expected no feed for bad file")
	}
}

func TestParseFileTasksDoNotShareParsers(t *testing.T) {
	a := NewParseFileTask("a.xml", nil, nil, nil)
	b := NewParseFileTask("b.xml", nil, nil, nil)
	if a.parser == b.parser {
		t.Error("Expected each task to own its parser")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); a.Execute(context.Background()) }()
	go func() { defer wg.Done(); b.Execute(context.Background()) }()
	wg.Wait()

	if a.Err == nil || b.Err == nil {
		t.Error("Expected both missing files to fail")
	}
}
