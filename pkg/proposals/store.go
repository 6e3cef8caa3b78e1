package proposals

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/quorumspace/quorum/pkg/access"
)

// Store loads proposals with their evaluation steps from the database. The
// four dimensions (proposals, steps, reviewers, step permissions) are
// independent reads, so they run concurrently and are assembled in memory.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListBySpace returns every proposal in the space with evaluations ordered
// by step index.
func (s *Store) ListBySpace(ctx context.Context, spaceID string) ([]Proposal, error) {
	var (
		proposals   []Proposal
		evaluations []Evaluation
		reviewers   map[string][]access.Assignee
		permissions map[string][]EvaluationPermission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		proposals, err = s.listProposals(gctx, spaceID)
		return err
	})
	g.Go(func() error {
		var err error
		evaluations, err = s.listEvaluations(gctx, spaceID)
		return err
	})
	g.Go(func() error {
		var err error
		reviewers, err = s.listReviewers(gctx, spaceID)
		return err
	})
	g.Go(func() error {
		var err error
		permissions, err = s.listStepPermissions(gctx, spaceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byProposal := make(map[string][]Evaluation, len(proposals))
	for _, eval := range evaluations {
		eval.Reviewers = reviewers[eval.ID]
		eval.Permissions = permissions[eval.ID]
		byProposal[eval.ProposalID] = append(byProposal[eval.ProposalID], eval)
	}
	for id := range byProposal {
		steps := byProposal[id]
		sort.Slice(steps, func(i, j int) bool { return steps[i].Index < steps[j].Index })
	}
	for i := range proposals {
		proposals[i].Evaluations = byProposal[proposals[i].ID]
	}
	return proposals, nil
}

func (s *Store) listProposals(ctx context.Context, spaceID string) ([]Proposal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, space_id, created_by, status FROM proposals WHERE space_id = $1 ORDER BY created_at, id",
		spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	var proposals []Proposal
	for rows.Next() {
		var p Proposal
		if err := rows.Scan(&p.ID, &p.SpaceID, &p.CreatedBy, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (s *Store) listEvaluations(ctx context.Context, spaceID string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.proposal_id, e.idx, e.result
		FROM proposal_evaluations e
		JOIN proposals p ON p.id = e.proposal_id
		WHERE p.space_id = $1`,
		spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposal evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []Evaluation
	for rows.Next() {
		var (
			eval   Evaluation
			result sql.NullString
		)
		if err := rows.Scan(&eval.ID, &eval.ProposalID, &eval.Index, &result); err != nil {
			return nil, fmt.Errorf("failed to scan proposal evaluation: %w", err)
		}
		if result.Valid {
			r := EvaluationResult(result.String)
			eval.Result = &r
		}
		evaluations = append(evaluations, eval)
	}
	return evaluations, rows.Err()
}

func (s *Store) listReviewers(ctx context.Context, spaceID string) (map[string][]access.Assignee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.evaluation_id, r.user_id, r.role_id, r.system_role
		FROM proposal_reviewers r
		JOIN proposal_evaluations e ON e.id = r.evaluation_id
		JOIN proposals p ON p.id = e.proposal_id
		WHERE p.space_id = $1`,
		spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposal reviewers: %w", err)
	}
	defer rows.Close()

	reviewers := map[string][]access.Assignee{}
	for rows.Next() {
		var (
			evaluationID                string
			userID, roleID, systemRole sql.NullString
		)
		if err := rows.Scan(&evaluationID, &userID, &roleID, &systemRole); err != nil {
			return nil, fmt.Errorf("failed to scan proposal reviewer: %w", err)
		}
		assignee, err := assigneeFromColumns(userID, roleID, systemRole)
		if err != nil {
			return nil, fmt.Errorf("reviewer row for evaluation %s: %w", evaluationID, err)
		}
		reviewers[evaluationID] = append(reviewers[evaluationID], assignee)
	}
	return reviewers, rows.Err()
}

func (s *Store) listStepPermissions(ctx context.Context, spaceID string) (map[string][]EvaluationPermission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ep.evaluation_id, ep.operation, ep.user_id, ep.role_id, ep.system_role
		FROM proposal_evaluation_permissions ep
		JOIN proposal_evaluations e ON e.id = ep.evaluation_id
		JOIN proposals p ON p.id = e.proposal_id
		WHERE p.space_id = $1`,
		spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation permissions: %w", err)
	}
	defer rows.Close()

	permissions := map[string][]EvaluationPermission{}
	for rows.Next() {
		var (
			evaluationID, operation    string
			userID, roleID, systemRole sql.NullString
		)
		if err := rows.Scan(&evaluationID, &operation, &userID, &roleID, &systemRole); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation permission: %w", err)
		}
		assignee, err := assigneeFromColumns(userID, roleID, systemRole)
		if err != nil {
			return nil, fmt.Errorf("permission row for evaluation %s: %w", evaluationID, err)
		}
		permissions[evaluationID] = append(permissions[evaluationID], EvaluationPermission{
			Assignee:  assignee,
			Operation: access.ProposalOperation(operation),
		})
	}
	return permissions, rows.Err()
}

// assigneeFromColumns reconstructs an assignee from the nullable identity
// columns shared by reviewer and permission rows. system_role holds the
// id-less groups (space_member, all_reviewers, public).
func assigneeFromColumns(userID, roleID, systemRole sql.NullString) (access.Assignee, error) {
	switch {
	case userID.Valid:
		return access.NewUserAssignee(userID.String), nil
	case roleID.Valid:
		return access.NewRoleAssignee(roleID.String), nil
	case systemRole.Valid:
		group := access.AssigneeGroup(systemRole.String)
		switch group {
		case access.GroupSpaceMember, access.GroupAllReviewers, access.GroupPublic:
			return access.Assignee{Group: group}, nil
		}
		return access.Assignee{}, fmt.Errorf("unrecognized system role %q", systemRole.String)
	}
	return access.Assignee{}, fmt.Errorf("row carries no assignee identity")
}
