// Package approval projects a document's raw approval records into the
// read-only view served next to the document: who (if anyone) the document
// is waiting on, and how far a group approval has progressed. It holds no
// workflow logic; decisions happen elsewhere and this package only renders
// their current state.
package approval

import (
	"context"
	"log/slog"

	"docuflow/internal/storage"
	"docuflow/pkg/model"
)

// DisplayState tells the client which approval panel to render.
type DisplayState string

const (
	// StateLoading is reported while the snapshot could not be read yet.
	StateLoading DisplayState = "loading"
	// StateNoApprovalRequired means nothing is waiting on anyone.
	StateNoApprovalRequired DisplayState = "no-approval-required"
	// StateAwaitingIndividual means a single named approver must decide.
	StateAwaitingIndividual DisplayState = "awaiting-individual"
	// StateAwaitingGroup means a group must decide per its rule.
	StateAwaitingGroup DisplayState = "awaiting-group"
)

// View is the rendered approval panel for one document.
type View struct {
	State      DisplayState           `json:"state"`
	Approval   *model.ApprovalRequest `json:"approval,omitempty"`
	Group      *model.ApprovalGroup   `json:"group,omitempty"`
	Progress   *GroupProgress         `json:"progress,omitempty"`
	AssignedTo string                 `json:"assignedTo,omitempty"`
}

// GroupProgress summarizes member responses on a group approval.
type GroupProgress struct {
	Total    int     `json:"total"`
	Approved int     `json:"approved"`
	Rejected int     `json:"rejected"`
	Pending  int     `json:"pending"`
	Ratio    float64 `json:"ratio"` // approved / total, 0 when the group is empty
}

// Projector renders approval views from stored approval records.
type Projector struct {
	approvals storage.ApprovalStore
	logger    *slog.Logger
}

// NewProjector creates a projector over the approval store.
func NewProjector(approvals storage.ApprovalStore, logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Projector{approvals: approvals, logger: logger}
}

// Project renders the approval view for a document. Failures reading the
// approval list surface as an error; failures enriching group details never
// do, the view just degrades.
func (p *Projector) Project(ctx context.Context, documentKey string) (*View, error) {
	approvals, err := p.approvals.ListByDocument(ctx, documentKey)
	if err != nil {
		return nil, err
	}

	effective := EffectiveApproval(approvals)
	if effective == nil || effective.IsPlaceholder() {
		return &View{State: StateNoApprovalRequired}, nil
	}

	if effective.GroupKey == "" {
		return &View{
			State:      StateAwaitingIndividual,
			Approval:   effective,
			AssignedTo: effective.AssignedTo,
		}, nil
	}

	view := &View{State: StateAwaitingGroup, Approval: effective}
	p.enrichGroup(ctx, view, effective)
	return view, nil
}

// EffectiveApproval picks the approval the document is currently waiting on:
// the first pending request, scanning newest first. Historical decided
// requests never win over a pending one.
func EffectiveApproval(approvals []model.ApprovalRequest) *model.ApprovalRequest {
	for i := range approvals {
		if approvals[i].State.IsPending() {
			return &approvals[i]
		}
	}
	return nil
}

// enrichGroup attaches group membership and response progress. Any load
// failure is logged and leaves the view without group details.
func (p *Projector) enrichGroup(ctx context.Context, view *View, effective *model.ApprovalRequest) {
	group, err := p.approvals.GetGroup(ctx, effective.GroupKey)
	if err != nil {
		p.logger.Warn("Failed to load approval group, rendering without details",
			"group_key", effective.GroupKey,
			"approval_key", effective.ApprovalKey,
			"error", err,
		)
		return
	}
	view.Group = group

	responses, err := p.approvals.ListResponses(ctx, effective.ApprovalKey)
	if err != nil {
		p.logger.Warn("Failed to load approval responses, rendering without progress",
			"approval_key", effective.ApprovalKey,
			"error", err,
		)
		return
	}
	view.Progress = Progress(group, responses)
}

// Progress counts member decisions. Members without a recorded response (or
// with a nil IsApproved) count as pending.
func Progress(group *model.ApprovalGroup, responses []model.ApprovalResponse) *GroupProgress {
	byUser := make(map[string]*bool, len(responses))
	for _, resp := range responses {
		byUser[resp.UserKey] = resp.IsApproved
	}

	progress := &GroupProgress{Total: len(group.Members)}
	for _, member := range group.Members {
		decision, ok := byUser[member.UserKey]
		switch {
		case !ok || decision == nil:
			progress.Pending++
		case *decision:
			progress.Approved++
		default:
			progress.Rejected++
		}
	}
	if progress.Total > 0 {
		progress.Ratio = float64(progress.Approved) / float64(progress.Total)
	}
	return progress
}
