package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/ortholink/exercise-service/internal/content"
	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/progress"
	"github.com/ortholink/exercise-service/internal/session"
)

// ProgressService derives progress reports for a session. Progress is never
// stored: every call recomputes it from the content tree and the session's
// completed-set.
type ProgressService interface {
	// Summary aggregates completion over the named sections, or the whole
	// tree when none are given.
	Summary(ctx context.Context, sessionID string, sectionIDs ...string) (models.ProgressSummary, error)

	// Report breaks the summary down per section.
	Report(ctx context.Context, sessionID string) (*ProgressReport, error)

	// ExportExcel renders the report as an xlsx workbook for therapists.
	ExportExcel(ctx context.Context, sessionID string) ([]byte, error)
}

// ProgressReport is the full per-section breakdown plus the overall summary.
type ProgressReport struct {
	SessionID string                     `json:"session_id"`
	Learner   string                     `json:"learner"`
	Overall   models.ProgressSummary     `json:"overall"`
	Sections  []progress.SectionProgress `json:"sections"`
}

type progressService struct {
	tree   *content.Tree
	store  session.Store
	logger *slog.Logger
}

func NewProgressService(tree *content.Tree, store session.Store, logger *slog.Logger) ProgressService {
	return &progressService{
		tree:   tree,
		store:  store,
		logger: logger,
	}
}

func (s *progressService) Summary(ctx context.Context, sessionID string, sectionIDs ...string) (models.ProgressSummary, error) {
	completed, err := s.completedSet(ctx, sessionID)
	if err != nil {
		return models.ProgressSummary{}, err
	}
	return progress.Compute(s.tree, completed, sectionIDs...), nil
}

func (s *progressService) Report(ctx context.Context, sessionID string) (*ProgressReport, error) {
	learnerSession, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	completed, err := s.completedSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &ProgressReport{
		SessionID: sessionID,
		Learner:   learnerSession.Profile.DisplayName(),
		Overall:   progress.Compute(s.tree, completed),
		Sections:  progress.BySection(s.tree, completed),
	}, nil
}

func (s *progressService) ExportExcel(ctx context.Context, sessionID string) ([]byte, error) {
	report, err := s.Report(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Progress"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Section", "Completed", "Total", "Percent"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	row := 2
	for _, sp := range report.Sections {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), sp.Title.En)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), sp.Summary.Completed)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), sp.Summary.Total)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("%.0f%%", sp.Summary.Percent))
		row++
	}

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Overall")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), report.Overall.Completed)
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), report.Overall.Total)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("%.0f%%", report.Overall.Percent))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("exported progress report", "session_id", sessionID, "learner", report.Learner)
	return buf.Bytes(), nil
}

func (s *progressService) completedSet(ctx context.Context, sessionID string) (map[string]bool, error) {
	completed, err := s.store.CompletedSet(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read completed set: %w", err)
	}
	return completed, nil
}
