package model

import "time"

// Student is the durable identity registry entry for one register number.
// DOBHash is a bcrypt hash of the date of birth; once set it is never
// overwritten by later uploads.
type Student struct {
	ID             uint   `gorm:"primaryKey"`
	RegisterNumber string `gorm:"uniqueIndex;size:64"`
	StudentName    string `gorm:"size:120"`
	DOBHash        string `gorm:"size:255"`
	CreatedAt      time.Time
}

// Mark is one current score per (register_number, subject_code).
// Re-uploads overwrite the whole record (last-write-wins, no history).
type Mark struct {
	ID             uint    `gorm:"primaryKey"`
	RegisterNumber string  `gorm:"uniqueIndex:idx_marks_reg_subject;size:64"`
	SubjectCode    string  `gorm:"uniqueIndex:idx_marks_reg_subject;size:64"`
	Marks          float64 `json:"marks"`
	UploadedBy     string  `gorm:"size:320"`
	UploadedAt     time.Time
	// SourceFile records which upload produced this mark, so deleting an
	// upload can cascade to its marks.
	SourceFile string `gorm:"index;size:255"`
}

// Staff is an authenticated uploader. Role is "staff" or "admin".
type Staff struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:320"`
	PasswordHash string `gorm:"size:255"`
	Role         string `gorm:"size:32"`
	CreatedAt    time.Time
}

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Upload is one accepted upload event, keyed by an app-generated UUID.
type Upload struct {
	ID         string `gorm:"primaryKey;size:36"`
	Filename   string `gorm:"index;size:255"`
	UploadedBy string `gorm:"size:320"`
	UploadedAt time.Time
}
