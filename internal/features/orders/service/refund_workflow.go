package service

import (
	"context"
	"errors"
	"fmt"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/features/orders/domain"
	"stockdesk/internal/features/orders/ports"
)

// WorkflowState is the refund workflow's current phase.
type WorkflowState string

const (
	StateIdle       WorkflowState = "idle"
	StateLoading    WorkflowState = "loading"
	StateSelecting  WorkflowState = "selecting"
	StateConfirming WorkflowState = "confirming"
	StateSubmitting WorkflowState = "submitting"
	StateDone       WorkflowState = "done"
	StateFailed     WorkflowState = "failed"
)

var (
	// ErrNoItemsSelected is returned when confirming with nothing selected.
	ErrNoItemsSelected = errors.New("no items selected for refund")
	// ErrNotConfirmed is returned when submitting before confirmation.
	ErrNotConfirmed = errors.New("refund has not been confirmed")
	// ErrReasonRequired is returned when confirming without a reason.
	ErrReasonRequired = errors.New("refund reason is required")
	// ErrWorkflowClosed is returned for actions on a finished workflow.
	ErrWorkflowClosed = errors.New("refund workflow already completed")
)

// RefundWorkflow drives the refund dialog: load the order, select item
// quantities, confirm with the computed amount echoed back, then submit.
// A failed submit returns to the confirmation step instead of closing, so
// the operator can retry. The refund amount shown here is an echo for the
// confirmation prompt only; the authoritative amount is computed upstream.
type RefundWorkflow struct {
	svc      *OrderService
	state    WorkflowState
	order    *domain.Order
	selected map[int]int
	reason   string
	lastErr  error
}

// NewRefundWorkflow creates an idle workflow bound to the order service.
func NewRefundWorkflow(svc *OrderService) *RefundWorkflow {
	return &RefundWorkflow{
		svc:      svc,
		state:    StateIdle,
		selected: make(map[int]int),
	}
}

// State returns the current workflow phase.
func (w *RefundWorkflow) State() WorkflowState {
	return w.state
}

// Order returns the loaded order, or nil before Load.
func (w *RefundWorkflow) Order() *domain.Order {
	return w.order
}

// Err returns the last submit error, if any.
func (w *RefundWorkflow) Err() error {
	return w.lastErr
}

// Load fetches the order detail and moves to item selection.
func (w *RefundWorkflow) Load(ctx context.Context, orderID int) error {
	if w.state == StateDone {
		return ErrWorkflowClosed
	}

	w.state = StateLoading
	order, err := w.svc.Get(ctx, orderID)
	if err != nil {
		w.state = StateIdle
		return err
	}

	w.order = order
	w.state = StateSelecting
	return nil
}

// Select sets the refund quantity for an order item. Quantity zero
// deselects the item.
func (w *RefundWorkflow) Select(orderItemID, quantity int) error {
	if w.state != StateSelecting && w.state != StateConfirming {
		return fmt.Errorf("cannot select items in state %s", w.state)
	}

	item := w.findItem(orderItemID)
	if item == nil {
		return fmt.Errorf("order item %d not found on order %d", orderItemID, w.order.ID)
	}
	if quantity < 0 || quantity > item.Quantity {
		return fmt.Errorf("refund quantity %d out of range for item %d (ordered %d)", quantity, orderItemID, item.Quantity)
	}

	if quantity == 0 {
		delete(w.selected, orderItemID)
	} else {
		w.selected[orderItemID] = quantity
	}
	// Changing the selection always requires a fresh confirmation.
	w.state = StateSelecting
	return nil
}

// Amount returns the refund total echoed at the confirmation step.
func (w *RefundWorkflow) Amount() apiclient.Money {
	var total apiclient.Money
	for itemID, qty := range w.selected {
		if item := w.findItem(itemID); item != nil {
			total += item.UnitPrice * apiclient.Money(qty)
		}
	}
	return total
}

// Confirm records the reason and arms the workflow for submission. It
// returns the echoed amount the operator approved.
func (w *RefundWorkflow) Confirm(reason string) (apiclient.Money, error) {
	if w.state != StateSelecting && w.state != StateConfirming {
		return 0, fmt.Errorf("cannot confirm in state %s", w.state)
	}
	if len(w.selected) == 0 {
		return 0, ErrNoItemsSelected
	}
	if reason == "" {
		return 0, ErrReasonRequired
	}

	w.reason = reason
	w.state = StateConfirming
	return w.Amount(), nil
}

// Submit sends the refund. On failure the workflow stays open at the
// confirmation step with the error retained for display.
func (w *RefundWorkflow) Submit(ctx context.Context) error {
	if w.state != StateConfirming {
		if w.state == StateDone {
			return ErrWorkflowClosed
		}
		return ErrNotConfirmed
	}

	w.state = StateSubmitting

	items := make([]ports.RefundItem, 0, len(w.selected))
	for itemID, qty := range w.selected {
		items = append(items, ports.RefundItem{OrderItemID: itemID, Quantity: qty})
	}

	order, err := w.svc.Refund(ctx, w.order.ID, ports.RefundInput{
		Items:  items,
		Reason: w.reason,
	})
	if err != nil {
		w.lastErr = err
		w.state = StateConfirming
		return err
	}

	w.order = order
	w.lastErr = nil
	w.state = StateDone
	return nil
}

func (w *RefundWorkflow) findItem(orderItemID int) *domain.OrderItem {
	if w.order == nil {
		return nil
	}
	for i := range w.order.Items {
		if w.order.Items[i].ID == orderItemID {
			return &w.order.Items[i]
		}
	}
	return nil
}
