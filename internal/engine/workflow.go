package engine

import (
	"context"
	"fmt"
	"time"

	"docuflow/internal/events"
	"docuflow/pkg/model"
)

// Circuits

func (e *Engine) ListCircuits(ctx context.Context, req ListRequest) (ListResult[model.Circuit], error) {
	rows, err := e.store.Workflow().ListCircuits(ctx)
	if err != nil {
		return ListResult[model.Circuit]{}, err
	}
	return runList(e, e.circuits, rows, req), nil
}

func (e *Engine) GetCircuit(ctx context.Context, key string) (*model.Circuit, error) {
	return e.store.Workflow().GetCircuit(ctx, key)
}

func (e *Engine) CreateCircuit(ctx context.Context, circuit *model.Circuit, actor string) error {
	if circuit.CircuitKey == "" {
		circuit.CircuitKey = model.NewKey()
	}
	if err := circuit.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}
	now := time.Now().UnixMilli()
	circuit.CreatedAt = now
	circuit.UpdatedAt = now

	if err := e.store.Workflow().CreateCircuit(ctx, circuit); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityCircuit, circuit.CircuitKey, events.OpCreate).WithActor(actor))
	return nil
}

func (e *Engine) UpdateCircuit(ctx context.Context, circuit *model.Circuit, actor string) error {
	if err := circuit.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}
	circuit.UpdatedAt = time.Now().UnixMilli()

	if err := e.store.Workflow().UpdateCircuit(ctx, circuit); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityCircuit, circuit.CircuitKey, events.OpUpdate).WithActor(actor))
	return nil
}

// DeleteCircuit removes a circuit together with its steps and statuses.
func (e *Engine) DeleteCircuit(ctx context.Context, key, actor string) error {
	wf := e.store.Workflow()
	if err := wf.DeleteCircuit(ctx, key); err != nil {
		return err
	}

	steps, err := wf.ListSteps(ctx, key)
	if err == nil {
		for _, step := range steps {
			if err := wf.DeleteStep(ctx, step.StepKey); err != nil {
				e.logger.Warn("Failed to delete step of deleted circuit", "step_key", step.StepKey, "error", err)
			}
		}
	}
	statuses, err := wf.ListStatuses(ctx, key)
	if err == nil {
		for _, status := range statuses {
			if err := wf.DeleteStatus(ctx, status.StatusKey); err != nil {
				e.logger.Warn("Failed to delete status of deleted circuit", "status_key", status.StatusKey, "error", err)
			}
		}
	}

	e.publish(ctx, events.NewChange(events.EntityCircuit, key, events.OpDelete).WithActor(actor))
	return nil
}

// Steps

// ListSteps lists a circuit's steps, in flow order unless the request sorts
// otherwise. The circuit must exist.
func (e *Engine) ListSteps(ctx context.Context, circuitKey string, req ListRequest) (ListResult[model.Step], error) {
	if _, err := e.store.Workflow().GetCircuit(ctx, circuitKey); err != nil {
		return ListResult[model.Step]{}, err
	}
	rows, err := e.store.Workflow().ListSteps(ctx, circuitKey)
	if err != nil {
		return ListResult[model.Step]{}, err
	}
	if req.SortField == "" {
		req.SortField = "orderIndex"
	}
	return runList(e, e.steps, rows, req), nil
}

func (e *Engine) GetStep(ctx context.Context, key string) (*model.Step, error) {
	return e.store.Workflow().GetStep(ctx, key)
}

func (e *Engine) CreateStep(ctx context.Context, step *model.Step, actor string) error {
	if step.StepKey == "" {
		step.StepKey = model.NewKey()
	}
	if err := step.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}
	if _, err := e.store.Workflow().GetCircuit(ctx, step.CircuitKey); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	step.CreatedAt = now
	step.UpdatedAt = now

	if err := e.store.Workflow().CreateStep(ctx, step); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityStep, step.StepKey, events.OpCreate).
		WithParent(step.CircuitKey).WithActor(actor))
	return nil
}

func (e *Engine) UpdateStep(ctx context.Context, step *model.Step, actor string) error {
	if err := step.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}
	step.UpdatedAt = time.Now().UnixMilli()

	if err := e.store.Workflow().UpdateStep(ctx, step); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityStep, step.StepKey, events.OpUpdate).
		WithParent(step.CircuitKey).WithActor(actor))
	return nil
}

func (e *Engine) DeleteStep(ctx context.Context, key, actor string) error {
	step, err := e.store.Workflow().GetStep(ctx, key)
	if err != nil {
		return err
	}
	if err := e.store.Workflow().DeleteStep(ctx, key); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityStep, key, events.OpDelete).
		WithParent(step.CircuitKey).WithActor(actor))
	return nil
}

// Statuses

// ListStatuses lists a circuit's statuses. The circuit must exist.
func (e *Engine) ListStatuses(ctx context.Context, circuitKey string, req ListRequest) (ListResult[model.Status], error) {
	if _, err := e.store.Workflow().GetCircuit(ctx, circuitKey); err != nil {
		return ListResult[model.Status]{}, err
	}
	rows, err := e.store.Workflow().ListStatuses(ctx, circuitKey)
	if err != nil {
		return ListResult[model.Status]{}, err
	}
	return runList(e, e.statuses, rows, req), nil
}

func (e *Engine) GetStatus(ctx context.Context, key string) (*model.Status, error) {
	return e.store.Workflow().GetStatus(ctx, key)
}

func (e *Engine) CreateStatus(ctx context.Context, status *model.Status, actor string) error {
	if status.StatusKey == "" {
		status.StatusKey = model.NewKey()
	}
	if err := status.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}
	if _, err := e.store.Workflow().GetCircuit(ctx, status.CircuitKey); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	status.CreatedAt = now
	status.UpdatedAt = now

	if err := e.store.Workflow().CreateStatus(ctx, status); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityStatus, status.StatusKey, events.OpCreate).
		WithParent(status.CircuitKey).WithActor(actor))
	return nil
}

func (e *Engine) UpdateStatus(ctx context.Context, status *model.Status, actor string) error {
	if err := status.Validate(); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidQuery, err)
	}
	status.UpdatedAt = time.Now().UnixMilli()

	if err := e.store.Workflow().UpdateStatus(ctx, status); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityStatus, status.StatusKey, events.OpUpdate).
		WithParent(status.CircuitKey).WithActor(actor))
	return nil
}

func (e *Engine) DeleteStatus(ctx context.Context, key, actor string) error {
	status, err := e.store.Workflow().GetStatus(ctx, key)
	if err != nil {
		return err
	}
	if err := e.store.Workflow().DeleteStatus(ctx, key); err != nil {
		return err
	}
	e.publish(ctx, events.NewChange(events.EntityStatus, key, events.OpDelete).
		WithParent(status.CircuitKey).WithActor(actor))
	return nil
}
