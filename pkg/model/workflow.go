package model

import "errors"

// Circuit is a server-defined workflow a document moves through. The service
// stores and serves circuits; it does not evaluate transition rules.
type Circuit struct {
	CircuitKey      string `json:"circuitKey" bson:"_id"`
	Title           string `json:"title" bson:"title"`
	Descriptif      string `json:"descriptif,omitempty" bson:"descriptif,omitempty"`
	DocumentTypeKey string `json:"documentTypeKey,omitempty" bson:"document_type_key,omitempty"`
	IsActive        bool   `json:"isActive" bson:"is_active"`
	HasOrderedFlow  bool   `json:"hasOrderedFlow" bson:"has_ordered_flow"`
	CreatedAt       int64  `json:"createdAt" bson:"created_at"`
	UpdatedAt       int64  `json:"updatedAt" bson:"updated_at"`
}

func (c Circuit) Key() string { return c.CircuitKey }

func (c Circuit) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// ApprovalRule selects who must approve before a step transition is recorded.
type ApprovalRule string

const (
	RuleNone       ApprovalRule = "none"
	RuleIndividual ApprovalRule = "individual"
	RuleGroupAny   ApprovalRule = "any"
	RuleGroupAll   ApprovalRule = "all"
	RuleSequential ApprovalRule = "sequential"
)

// IsValid checks if the rule is a known value.
func (r ApprovalRule) IsValid() bool {
	switch r {
	case RuleNone, RuleIndividual, RuleGroupAny, RuleGroupAll, RuleSequential:
		return true
	}
	return false
}

// Step links two statuses inside a circuit.
type Step struct {
	StepKey          string       `json:"stepKey" bson:"_id"`
	CircuitKey       string       `json:"circuitKey" bson:"circuit_key"`
	Title            string       `json:"title" bson:"title"`
	Descriptif       string       `json:"descriptif,omitempty" bson:"descriptif,omitempty"`
	CurrentStatusKey string       `json:"currentStatusKey" bson:"current_status_key"`
	NextStatusKey    string       `json:"nextStatusKey" bson:"next_status_key"`
	Rule             ApprovalRule `json:"approvalRule" bson:"approval_rule"`
	GroupKey         string       `json:"groupKey,omitempty" bson:"group_key,omitempty"`
	AssignedTo       string       `json:"assignedTo,omitempty" bson:"assigned_to,omitempty"`
	OrderIndex       int          `json:"orderIndex" bson:"order_index"`
	CreatedAt        int64        `json:"createdAt" bson:"created_at"`
	UpdatedAt        int64        `json:"updatedAt" bson:"updated_at"`
}

func (s Step) Key() string { return s.StepKey }

func (s Step) Validate() error {
	if s.CircuitKey == "" {
		return errors.New("circuitKey is required")
	}
	if s.CurrentStatusKey == "" || s.NextStatusKey == "" {
		return errors.New("currentStatusKey and nextStatusKey are required")
	}
	if s.Rule == "" {
		return errors.New("approvalRule is required")
	}
	if !s.Rule.IsValid() {
		return errors.New("unknown approval rule")
	}
	return nil
}

// Status is a workflow stage within a circuit.
type Status struct {
	StatusKey  string `json:"statusKey" bson:"_id"`
	CircuitKey string `json:"circuitKey" bson:"circuit_key"`
	Title      string `json:"title" bson:"title"`
	IsInitial  bool   `json:"isInitial" bson:"is_initial"`
	IsFinal    bool   `json:"isFinal" bson:"is_final"`
	IsFlexible bool   `json:"isFlexible" bson:"is_flexible"`
	IsComplete bool   `json:"isComplete" bson:"is_complete"`
	CreatedAt  int64  `json:"createdAt" bson:"created_at"`
	UpdatedAt  int64  `json:"updatedAt" bson:"updated_at"`
}

func (s Status) Key() string { return s.StatusKey }

func (s Status) Validate() error {
	if s.CircuitKey == "" {
		return errors.New("circuitKey is required")
	}
	if s.Title == "" {
		return errors.New("title is required")
	}
	return nil
}
