package model

import "strings"

// ApprovalState is the lifecycle state of an approval request or response.
// Incoming status strings are normalized once at the data boundary via
// ParseApprovalState; everything downstream compares exact enum values.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalAccepted ApprovalState = "accepted"
	ApprovalRejected ApprovalState = "rejected"
)

// ParseApprovalState maps the loose status strings found in historical data
// (Pending, InProgress, Waiting, Open, ...) onto the closed enum. Unknown
// strings map to the empty state.
func ParseApprovalState(s string) ApprovalState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "inprogress", "in_progress", "waiting", "open":
		return ApprovalPending
	case "accepted", "approved":
		return ApprovalAccepted
	case "rejected", "refused":
		return ApprovalRejected
	}
	return ApprovalState("")
}

// IsPending reports whether the state still awaits a decision.
func (s ApprovalState) IsPending() bool { return s == ApprovalPending }

// ApprovalRequest is a pending or historical approval attached to a document
// step. Exactly one of AssignedTo / GroupKey is set for individual vs. group
// approvals; a request with neither is the synthetic "approval required"
// placeholder emitted before assignment.
type ApprovalRequest struct {
	ApprovalKey string        `json:"approvalKey" bson:"_id"`
	DocumentKey string        `json:"documentKey" bson:"document_key"`
	StepKey     string        `json:"stepKey" bson:"step_key"`
	AssignedTo  string        `json:"assignedTo,omitempty" bson:"assigned_to,omitempty"`
	GroupKey    string        `json:"assignedToGroup,omitempty" bson:"group_key,omitempty"`
	Rule        ApprovalRule  `json:"ruleType" bson:"rule_type"`
	State       ApprovalState `json:"status" bson:"status"`
	Comment     string        `json:"comment,omitempty" bson:"comment,omitempty"`
	RequestedBy string        `json:"requestedBy" bson:"requested_by"`
	CreatedAt   int64         `json:"createdAt" bson:"created_at"`
	UpdatedAt   int64         `json:"updatedAt" bson:"updated_at"`
}

func (a ApprovalRequest) Key() string { return a.ApprovalKey }

// IsPlaceholder reports whether this is the synthetic unassigned request.
func (a ApprovalRequest) IsPlaceholder() bool {
	return a.AssignedTo == "" && a.GroupKey == ""
}

// ApprovalGroup is a named set of approvers.
type ApprovalGroup struct {
	GroupKey  string        `json:"groupKey" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Rule      ApprovalRule  `json:"ruleType" bson:"rule_type"`
	Members   []GroupMember `json:"members" bson:"members"`
	CreatedAt int64         `json:"createdAt" bson:"created_at"`
}

func (g ApprovalGroup) Key() string { return g.GroupKey }

// GroupMember is one approver within a group. OrderIndex only matters for
// sequential rules.
type GroupMember struct {
	UserKey    string `json:"userKey" bson:"user_key"`
	Username   string `json:"username" bson:"username"`
	OrderIndex int    `json:"orderIndex" bson:"order_index"`
}

// ApprovalResponse records one member's decision on a request. IsApproved is
// nil while the member has not responded.
type ApprovalResponse struct {
	ResponseKey string `json:"responseKey" bson:"_id"`
	ApprovalKey string `json:"approvalKey" bson:"approval_key"`
	UserKey     string `json:"userKey" bson:"user_key"`
	Username    string `json:"username" bson:"username"`
	IsApproved  *bool  `json:"isApproved" bson:"is_approved"`
	Comment     string `json:"comment,omitempty" bson:"comment,omitempty"`
	RespondedAt int64  `json:"respondedAt,omitempty" bson:"responded_at,omitempty"`
}

func (r ApprovalResponse) Key() string { return r.ResponseKey }
