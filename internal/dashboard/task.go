package dashboard

import "context"

// Task is a unit of backend work. It runs off the UI loop and must not touch
// controller state; it only reports what happened as an Outcome.
type Task func(ctx context.Context) Outcome

// Outcome is the result of a Task. Apply runs on the UI loop, mutates the
// controller and may schedule follow-up tasks.
type Outcome interface {
	Apply(c *Controller) []Task
}

// Run executes tasks and all their follow-ups on the calling goroutine.
// Outcomes are applied in completion order, which is issue order here.
func Run(ctx context.Context, c *Controller, tasks ...Task) {
	queue := append([]Task(nil), tasks...)
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if t == nil {
			continue
		}
		out := t(ctx)
		if out == nil {
			continue
		}
		queue = append(queue, out.Apply(c)...)
	}
}
