package proposals

import (
	"github.com/quorumspace/quorum/pkg/access"
)

// Status is the proposal lifecycle state. Only draft changes visibility
// semantics; every non-draft status is treated as published.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// EvaluationResult is the recorded outcome of a resolved evaluation step.
type EvaluationResult string

const (
	ResultPass EvaluationResult = "pass"
	ResultFail EvaluationResult = "fail"
)

// EvaluationPermission is a custom per-step grant. Only view participates in
// accessibility; the remaining operations are carried for the workflow layer.
type EvaluationPermission struct {
	Assignee  access.Assignee         `json:"assignee"`
	Operation access.ProposalOperation `json:"operation"`
}

// Evaluation is one workflow step of a proposal. A nil Result marks the
// current step; reviewer grants and custom permissions apply there only.
type Evaluation struct {
	ID          string                 `json:"id"`
	ProposalID  string                 `json:"proposal_id"`
	Index       int                    `json:"index"`
	Result      *EvaluationResult      `json:"result,omitempty"`
	Reviewers   []access.Assignee      `json:"reviewers,omitempty"`
	Permissions []EvaluationPermission `json:"permissions,omitempty"`
}

// Resolved reports whether this step has a recorded outcome.
func (e *Evaluation) Resolved() bool {
	return e.Result != nil
}

// Proposal is the evaluation-relevant projection of a proposal. The workflow
// subsystem owns the full record; this package only reads it.
type Proposal struct {
	ID          string       `json:"id"`
	SpaceID     string       `json:"space_id"`
	CreatedBy   string       `json:"created_by"`
	Status      Status       `json:"status"`
	Evaluations []Evaluation `json:"evaluations,omitempty"`
}

// CurrentEvaluation returns the lowest-index step with no recorded result,
// or nil when every step is resolved. Evaluations are kept sorted by index.
func (p *Proposal) CurrentEvaluation() *Evaluation {
	for i := range p.Evaluations {
		if !p.Evaluations[i].Resolved() {
			return &p.Evaluations[i]
		}
	}
	return nil
}
