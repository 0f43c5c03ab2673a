package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sahilchouksey/event-registration-api/model"
	"gorm.io/gorm"
)

// ExportHeader is the first row of every registration export
var ExportHeader = []string{
	"ID",
	"Full Name",
	"Email",
	"College Name",
	"Department",
	"Event Name",
	"Event Date",
	"Category",
	"Registration Date",
}

// flushEvery bounds how many rows sit in the CSV writer's buffer
const flushEvery = 100

// ExportService streams registrations as tabular rows
type ExportService struct {
	db *gorm.DB
}

// NewExportService creates a new export service
func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// ExportRow renders one registration in header column order
func ExportRow(reg *model.Registration) []string {
	return []string{
		strconv.FormatUint(uint64(reg.ID), 10),
		reg.FullName,
		reg.Email,
		reg.CollegeName,
		reg.Department,
		reg.EventName,
		reg.EventDate,
		reg.Category.Label(),
		reg.CreatedAt.Format(model.TimestampLayout),
	}
}

// exportPageSize is how many registrations each export query loads
var exportPageSize = 500

// StreamRegistrations emits the header and then one row per matching
// registration, newest first. It returns the number of data rows emitted.
//
// Rows are read in keyset pages on (created_at, id) so no connection is held
// while emit writes to a slow client.
func (s *ExportService) StreamRegistrations(ctx context.Context, filter RegistrationFilter, emit func([]string) error) (int, error) {
	if err := emit(ExportHeader); err != nil {
		return 0, err
	}

	written := 0
	var last *model.Registration
	for {
		page, err := s.nextPage(ctx, filter, last)
		if err != nil {
			return written, err
		}

		for i := range page {
			if err := emit(ExportRow(&page[i])); err != nil {
				return written, err
			}
			written++
		}

		if len(page) < exportPageSize {
			return written, nil
		}
		last = &page[len(page)-1]
	}
}

// nextPage loads the registrations that sort after last
func (s *ExportService) nextPage(ctx context.Context, filter RegistrationFilter, last *model.Registration) ([]model.Registration, error) {
	query := s.db.WithContext(ctx).Scopes(filter.apply, newestFirst)
	if last != nil {
		query = query.Where("(created_at < ? OR (created_at = ? AND id < ?))", last.CreatedAt, last.CreatedAt, last.ID)
	}

	page := []model.Registration{}
	if err := query.Limit(exportPageSize).Find(&page).Error; err != nil {
		return nil, fmt.Errorf("failed to query registrations for export: %w", err)
	}
	return page, nil
}

type flusher interface {
	Flush() error
}

// WriteCSV writes the export as CSV to w. Output is flushed every
// flushEvery rows, and w itself is flushed when it supports it.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer, filter RegistrationFilter) (int, error) {
	writer := csv.NewWriter(w)
	pending := 0

	flush := func() error {
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
		if f, ok := w.(flusher); ok {
			return f.Flush()
		}
		return nil
	}

	written, err := s.StreamRegistrations(ctx, filter, func(record []string) error {
		if err := writer.Write(record); err != nil {
			return err
		}
		pending++
		if pending >= flushEvery {
			pending = 0
			return flush()
		}
		return nil
	})
	if err != nil {
		return written, err
	}

	if err := flush(); err != nil {
		return written, err
	}
	return written, nil
}
