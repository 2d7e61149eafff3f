// Package db provides SurrealDB query functions for the run archive.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/surrealdb/surrealdb.go"

	"github.com/coherencelab/glotta/internal/models"
)

// LanguageCount represents a language with its archived run count.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// RunFilter narrows archive listings. Zero values mean no filter.
type RunFilter struct {
	Language string
	Model    string
	Status   string
	Limit    int
}

// ArchiveRun stores one analysis result. The full result is serialized into
// the report column; headline metrics land in typed columns.
func (c *Client) ArchiveRun(ctx context.Context, result *models.Result) (*models.RunRecord, error) {
	report, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	sql := `
		CREATE run SET
			run_id = $run_id,
			language = $language,
			model = $model,
			preset = $preset,
			sample_size = $sample_size,
			status = $status,
			passed = $passed,
			lambda = $lambda,
			coherence_radius = $coherence_radius,
			fit_quality = $fit_quality,
			kappa = $kappa,
			forward_mean = $forward_mean,
			morphology = $morphology,
			report = $report
		RETURN AFTER
	`
	results, err := surrealdb.Query[[]models.RunRecord](ctx, c.db, sql, map[string]any{
		"run_id":           result.ID.String(),
		"language":         result.Language,
		"model":            result.Model,
		"preset":           result.Preset,
		"sample_size":      result.SampleSize,
		"status":           string(result.Status),
		"passed":           result.Passed,
		"lambda":           finitePtr(result.Decay.Lambda),
		"coherence_radius": finitePtr(result.Decay.CoherenceRadius),
		"fit_quality":      finitePtr(result.Decay.FitQuality),
		"kappa":            finitePtr(result.Asymmetry.KappaMax),
		"forward_mean":     finitePtr(result.Asymmetry.ForwardMean),
		"morphology":       result.Morphology,
		"report":           string(report),
	})
	if err != nil {
		return nil, wrapQueryError(fmt.Errorf("archive run: %w", err))
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("archive run: no record returned")
	}
	return &(*results)[0].Result[0], nil
}

// GetRun retrieves an archived run by its run_id.
// Returns ErrNotFound if no run with that id exists.
func (c *Client) GetRun(ctx context.Context, runID string) (*models.RunRecord, error) {
	results, err := surrealdb.Query[[]models.RunRecord](ctx, c.db, `
		SELECT * FROM run WHERE run_id = $run_id LIMIT 1
	`, map[string]any{"run_id": runID})
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("%w: run %s", ErrNotFound, runID)
	}
	return &(*results)[0].Result[0], nil
}

// ListRuns returns archived runs, newest first, honoring the filter.
func (c *Client) ListRuns(ctx context.Context, filter RunFilter) ([]models.RunRecord, error) {
	where := ""
	vars := map[string]any{}
	clauses := []string{}
	if filter.Language != "" {
		clauses = append(clauses, "language = $language")
		vars["language"] = filter.Language
	}
	if filter.Model != "" {
		clauses = append(clauses, "model = $model")
		vars["model"] = filter.Model
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = $status")
		vars["status"] = filter.Status
	}
	for i, clause := range clauses {
		if i == 0 {
			where = "WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	vars["limit"] = limit

	sql := fmt.Sprintf(`SELECT * FROM run %s ORDER BY created DESC LIMIT $limit`, where)
	results, err := surrealdb.Query[[]models.RunRecord](ctx, c.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []models.RunRecord{}, nil
	}
	return (*results)[0].Result, nil
}

// ListLanguages returns archived languages with run counts, most runs first.
func (c *Client) ListLanguages(ctx context.Context) ([]LanguageCount, error) {
	results, err := surrealdb.Query[[]LanguageCount](ctx, c.db, `
		SELECT language, count() AS count FROM run GROUP BY language ORDER BY count DESC
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []LanguageCount{}, nil
	}
	return (*results)[0].Result, nil
}

// RunsByModel groups a language's archived runs by embedding model. The
// cross-model invariance check consumes this to rank languages per model.
func (c *Client) RunsByModel(ctx context.Context, language string) (map[string][]models.RunRecord, error) {
	runs, err := c.ListRuns(ctx, RunFilter{Language: language, Limit: 1000})
	if err != nil {
		return nil, err
	}
	byModel := make(map[string][]models.RunRecord)
	for _, r := range runs {
		byModel[r.Model] = append(byModel[r.Model], r)
	}
	return byModel, nil
}

// DeleteRun removes an archived run by run_id.
func (c *Client) DeleteRun(ctx context.Context, runID string) error {
	if _, err := c.GetRun(ctx, runID); err != nil {
		return err
	}
	_, err := surrealdb.Query[any](ctx, c.db, `
		DELETE run WHERE run_id = $run_id
	`, map[string]any{"run_id": runID})
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

// DecodeReport unpacks the archived report blob back into a Result.
func DecodeReport(rec *models.RunRecord) (*models.Result, error) {
	var result models.Result
	if err := json.Unmarshal([]byte(rec.Report), &result); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &result, nil
}

// finitePtr maps non-finite metrics to nil so they store as SurrealDB NONE.
func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
