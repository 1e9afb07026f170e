package service

import (
	"errors"
	"log"
	"time"

	"marksapi/internal/auth"
	"marksapi/internal/model"
	"marksapi/internal/tabular"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RowError records one skipped or failed row. Row is the 1-based position
// within the file's data rows.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportSummary is the outcome of one upload batch.
type ImportSummary struct {
	Processed int        `json:"processed"`
	RowErrors []RowError `json:"row_errors,omitempty"`
}

// ImportService is the reconciliation engine: it merges parsed spreadsheet
// rows into the student and mark tables under upsert semantics and records
// one Upload per accepted file so imports can later be rolled back by
// filename. The HTTP upload handler and the marksctl import command share it.
type ImportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db, now: time.Now}
}

// ImportTable processes all rows of a parsed file on behalf of uploadedBy,
// tagging every written mark with sourceFile.
//
// A missing required column fails the whole import before any write. A bad
// row is recorded and skipped; the batch never aborts because of one row.
// The Upload record is created exactly once per accepted file, whatever the
// per-row outcomes were.
func (s *ImportService) ImportTable(table *tabular.Table, uploadedBy, sourceFile string) (*ImportSummary, error) {
	for _, col := range requiredColumns {
		if !table.HasColumn(col) {
			return nil, &MissingColumnError{Column: col}
		}
	}

	summary := &ImportSummary{}

	for i, raw := range table.Rows {
		rowNum := i + 1

		row, err := normalizeRow(raw)
		if err != nil {
			summary.RowErrors = append(summary.RowErrors, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		if err := s.upsertStudent(row); err != nil {
			log.Printf("row %d: student upsert failed for %s: %v", rowNum, row.RegisterNumber, err)
			summary.RowErrors = append(summary.RowErrors, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		if err := s.upsertMark(row, uploadedBy, sourceFile); err != nil {
			log.Printf("row %d: mark upsert failed for %s/%s: %v", rowNum, row.RegisterNumber, row.SubjectCode, err)
			summary.RowErrors = append(summary.RowErrors, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		summary.Processed++
	}

	upload := model.Upload{
		ID:         uuid.NewString(),
		Filename:   sourceFile,
		UploadedBy: uploadedBy,
		UploadedAt: s.now(),
	}
	if err := s.db.Create(&upload).Error; err != nil {
		return summary, err
	}

	return summary, nil
}

// upsertStudent inserts or updates the identity record for one register
// number. The name is last-write-wins; the dob hash is set once and then
// never overwritten by uploads.
func (s *ImportService) upsertStudent(row *NormalizedRow) error {
	var student model.Student
	err := s.db.Where("register_number = ?", row.RegisterNumber).First(&student).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		student = model.Student{
			RegisterNumber: row.RegisterNumber,
			StudentName:    row.StudentName,
			CreatedAt:      s.now(),
		}
		if row.DOB != nil {
			hash, hashErr := auth.HashText(row.DOB.HashInput())
			if hashErr != nil {
				return hashErr
			}
			student.DOBHash = hash
		}

		createErr := s.db.Create(&student).Error
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			// A concurrent upload inserted the same student first. Benign.
			return nil
		}
		return createErr
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if row.StudentName != "" {
		updates["student_name"] = row.StudentName
	}
	if student.DOBHash == "" && row.DOB != nil {
		hash, hashErr := auth.HashText(row.DOB.HashInput())
		if hashErr != nil {
			return hashErr
		}
		updates["dob_hash"] = hash
	}
	if len(updates) == 0 {
		return nil
	}

	return s.db.Model(&model.Student{}).
		Where("register_number = ?", row.RegisterNumber).
		Updates(updates).Error
}

// upsertMark writes the current score for (register_number, subject_code),
// fully overwriting value, uploader, timestamp and provenance on conflict.
func (s *ImportService) upsertMark(row *NormalizedRow, uploadedBy, sourceFile string) error {
	mark := model.Mark{
		RegisterNumber: row.RegisterNumber,
		SubjectCode:    row.SubjectCode,
		Marks:          row.Marks,
		UploadedBy:     uploadedBy,
		UploadedAt:     s.now(),
		SourceFile:     sourceFile,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "register_number"}, {Name: "subject_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"marks", "uploaded_by", "uploaded_at", "source_file"}),
	}).Create(&mark).Error
}

// ListUploads returns all recorded upload events, newest first.
func (s *ImportService) ListUploads() ([]model.Upload, error) {
	var uploads []model.Upload
	err := s.db.Order("uploaded_at desc").Find(&uploads).Error
	return uploads, err
}

// DeleteUpload removes the upload record for filename and cascades to every
// mark whose provenance matches. Students are a durable registry and are
// never deleted here. Deleting an unknown filename is a no-op.
func (s *ImportService) DeleteUpload(filename string) error {
	if err := s.db.Where("filename = ?", filename).Delete(&model.Upload{}).Error; err != nil {
		return err
	}
	return s.db.Where("source_file = ?", filename).Delete(&model.Mark{}).Error
}
