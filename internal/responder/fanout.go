package responder

import (
	"context"
	"time"

	"askpanel/internal/logging"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Task is one prompt to send, tagged with a caller-chosen label.
type Task struct {
	Label      string
	Prompt     string
	Credential string
}

// Result is the outcome of one Task. Text is always set; Err carries the
// structured failure behind an error text, if any.
type Result struct {
	Label     string
	RequestID string
	Text      string
	Err       error
	Duration  time.Duration
}

// Stream runs every task concurrently, one goroutine per task, and
// delivers results in completion order. The channel is closed after the
// last result.
func (c *Client) Stream(ctx context.Context, tasks []Task) <-chan Result {
	results := make(chan Result, len(tasks))
	if len(tasks) == 0 {
		close(results)
		return results
	}

	var g errgroup.Group
	g.SetLimit(len(tasks))

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			results <- c.run(ctx, task)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	return results
}

// Collect runs tasks concurrently and returns results in arrival order.
func (c *Client) Collect(ctx context.Context, tasks []Task) []Result {
	out := make([]Result, 0, len(tasks))
	for r := range c.Stream(ctx, tasks) {
		out = append(out, r)
	}
	return out
}

// RespondMany maps each task label to its answer text. When labels repeat,
// the result that arrives last wins.
func (c *Client) RespondMany(ctx context.Context, tasks []Task) map[string]string {
	answers := make(map[string]string, len(tasks))
	for _, r := range c.Collect(ctx, tasks) {
		answers[r.Label] = r.Text
	}
	return answers
}

func (c *Client) run(ctx context.Context, task Task) Result {
	id := uuid.NewString()
	log := logging.WithRequestID(logging.CategoryFanout, id).WithField("label", task.Label)
	log.Debug("task started: prompt_len=%d", len(task.Prompt))

	start := time.Now()
	text, err := c.Answer(ctx, task.Prompt, task.Credential)
	if err != nil {
		text = Render(err)
		log.Warn("task finished with %s", KindOf(err))
	}
	elapsed := time.Since(start)
	log.Info("task done in %v", elapsed)

	return Result{
		Label:     task.Label,
		RequestID: id,
		Text:      text,
		Err:       err,
		Duration:  elapsed,
	}
}
