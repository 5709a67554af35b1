package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/finreport-discovery/internal/types"
)

// SaveOrganizationResult stores the selection outcome for one organization,
// together with every classified candidate document considered for it.
// Re-running an organization within the same run overwrites its row.
func (db *DB) SaveOrganizationResult(ctx context.Context, runID uuid.UUID, result *types.OrganizationResult, candidates []*types.ClassifiedDocument) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	candidatesJSON, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to marshal candidates: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO organization_results (run_id, organization_id, organization_name, result, candidates)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (run_id, organization_id)
		 DO UPDATE SET organization_name = $3, result = $4, candidates = $5, created_at = NOW()`,
		runID, result.Organization.ID, result.Organization.Name, resultJSON, candidatesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save result for %s: %w", result.Organization.ID, err)
	}
	return nil
}

// GetOrganizationResult retrieves one organization's selection outcome.
// Returns nil when the run has no row for the organization.
func (db *DB) GetOrganizationResult(ctx context.Context, runID uuid.UUID, organizationID string) (*types.OrganizationResult, error) {
	var resultJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT result FROM organization_results WHERE run_id = $1 AND organization_id = $2`,
		runID, organizationID,
	).Scan(&resultJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get result for %s: %w", organizationID, err)
	}

	var result types.OrganizationResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result for %s: %w", organizationID, err)
	}
	return &result, nil
}

// ListOrganizationResults retrieves every stored result for a run, in the
// order the organizations were processed.
func (db *DB) ListOrganizationResults(ctx context.Context, runID uuid.UUID) ([]types.OrganizationResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT result FROM organization_results WHERE run_id = $1 ORDER BY created_at ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []types.OrganizationResult
	for rows.Next() {
		var resultJSON []byte
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		var result types.OrganizationResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		results = append(results, result)
	}
	return results, nil
}
