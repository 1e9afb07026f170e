package service

import (
	"errors"
	"time"

	"marksapi/internal/auth"
	"marksapi/internal/model"

	"gorm.io/gorm"
)

// MarkEntry is one subject's current score as returned to a student.
type MarkEntry struct {
	SubjectCode string    `json:"subject_code"`
	Marks       float64   `json:"marks"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
	SourceFile  string    `json:"source_file"`
}

// StudentMarks is the full lookup result for one student.
type StudentMarks struct {
	RegisterNumber string      `json:"register_number"`
	StudentName    string      `json:"student_name"`
	Marks          []MarkEntry `json:"marks"`
}

// StudentService answers register-number + date-of-birth lookups.
type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

// Lookup returns a student's marks when the dob challenge matches the stored
// hash. Unknown register numbers and wrong dobs are indistinguishable to the
// caller, so register numbers cannot be enumerated.
func (s *StudentService) Lookup(registerNumber, dob string) (*StudentMarks, error) {
	var student model.Student
	err := s.db.Where("register_number = ?", registerNumber).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyHash(dob, student.DOBHash) {
		return nil, ErrInvalidCredentials
	}

	var marks []model.Mark
	if err := s.db.Where("register_number = ?", registerNumber).
		Order("subject_code asc").Find(&marks).Error; err != nil {
		return nil, err
	}

	result := &StudentMarks{
		RegisterNumber: student.RegisterNumber,
		StudentName:    student.StudentName,
		Marks:          make([]MarkEntry, 0, len(marks)),
	}
	for _, m := range marks {
		result.Marks = append(result.Marks, MarkEntry{
			SubjectCode: m.SubjectCode,
			Marks:       m.Marks,
			UploadedBy:  m.UploadedBy,
			UploadedAt:  m.UploadedAt,
			SourceFile:  m.SourceFile,
		})
	}
	return result, nil
}
