package vtn

import (
	"context"
	"fmt"

	"github.com/elaadnl/openadr3-go/model"
)

const reportsPrefix = "reports"

// ReportsReader is the read access to the reports collection of a VTN.
type ReportsReader interface {
	List(ctx context.Context, filter ReportFilter) ([]model.ExistingReport, error)
	Get(ctx context.Context, reportID string) (model.ExistingReport, error)
}

// Reports is the full read-write access to the reports collection.
type Reports interface {
	ReportsReader
	Create(ctx context.Context, report *model.NewReport) (model.ExistingReport, error)
	Update(ctx context.Context, reportID string, report model.ExistingReport) (model.ExistingReport, error)
	Delete(ctx context.Context, reportID string) error
}

// ReportsClient implements Reports against the HTTP interface of a VTN.
type ReportsClient struct {
	c *Client
}

// NewReportsClient returns a reports client on the given VTN connection.
func NewReportsClient(c *Client) *ReportsClient {
	return &ReportsClient{c: c}
}

// List retrieves reports matching the filter.
func (rc *ReportsClient) List(ctx context.Context, filter ReportFilter) ([]model.ExistingReport, error) {
	q, err := filterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("encode report filter: %w", err)
	}
	var reports []model.ExistingReport
	if err := rc.c.get(ctx, reportsPrefix, q, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Get retrieves a report by its identifier.
func (rc *ReportsClient) Get(ctx context.Context, reportID string) (model.ExistingReport, error) {
	var report model.ExistingReport
	if err := rc.c.get(ctx, reportsPrefix+"/"+reportID, nil, &report); err != nil {
		return model.ExistingReport{}, err
	}
	return report, nil
}

// Create pushes a new report to the VTN and returns the created report.
func (rc *ReportsClient) Create(ctx context.Context, report *model.NewReport) (model.ExistingReport, error) {
	if err := report.Validate(); err != nil {
		return model.ExistingReport{}, fmt.Errorf("validate new report: %w", err)
	}
	if err := report.MarkCreated(); err != nil {
		return model.ExistingReport{}, err
	}
	var created model.ExistingReport
	if err := rc.c.post(ctx, reportsPrefix, report, &created); err != nil {
		report.ReleaseCreated()
		return model.ExistingReport{}, err
	}
	return created, nil
}

// Update replaces the report with the given identifier.
func (rc *ReportsClient) Update(ctx context.Context, reportID string, report model.ExistingReport) (model.ExistingReport, error) {
	if reportID != report.ID {
		return model.ExistingReport{}, fmt.Errorf("report id %q does not match id %q of the updated report", reportID, report.ID)
	}
	if err := report.Validate(); err != nil {
		return model.ExistingReport{}, fmt.Errorf("validate report: %w", err)
	}
	var updated model.ExistingReport
	if err := rc.c.put(ctx, reportsPrefix+"/"+reportID, report, &updated); err != nil {
		return model.ExistingReport{}, err
	}
	return updated, nil
}

// Delete removes the report with the given identifier.
func (rc *ReportsClient) Delete(ctx context.Context, reportID string) error {
	return rc.c.delete(ctx, reportsPrefix+"/"+reportID)
}
