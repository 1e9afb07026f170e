package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"marksapi/internal/tabular"
)

const (
	colRegisterNumber = "register_number"
	colSubjectCode    = "subject_code"
	colMarks          = "marks"
	colStudentName    = "student_name"
	colDOB            = "dob"
)

var requiredColumns = []string{colRegisterNumber, colSubjectCode, colMarks}

// errMissingRequired is the per-row skip reason for a blank register number
// or subject code, or marks that do not parse as a number.
var errMissingRequired = errors.New("missing-required")

// dobLayouts are tried in order when parsing the dob cell.
var dobLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// DOBValue is the tolerantly parsed date of birth: either a real date or the
// raw cell text carried through as opaque fallback. Both forms hash the same
// way, so a student whose dob never parses can still be looked up with the
// exact text that was uploaded.
type DOBValue struct {
	raw    string
	date   time.Time
	parsed bool
}

func parseDOB(text string) DOBValue {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return DOBValue{date: t, parsed: true}
		}
	}
	return DOBValue{raw: text}
}

// HashInput returns the canonical string fed to the credential hash: the
// ISO-8601 date when parsing succeeded, the raw text otherwise.
func (d DOBValue) HashInput() string {
	if d.parsed {
		return d.date.Format("2006-01-02")
	}
	return d.raw
}

// Parsed reports whether the value is a real date.
func (d DOBValue) Parsed() bool { return d.parsed }

// NormalizedRow is one validated, typed spreadsheet row ready for the
// reconciliation engine. StudentName empty and DOB nil mean "not provided".
type NormalizedRow struct {
	RegisterNumber string
	SubjectCode    string
	Marks          float64
	StudentName    string
	DOB            *DOBValue
}

// normalizeRow applies the skip rules in order: required strings first, then
// the numeric marks value, then the optional name and dob fields.
func normalizeRow(row tabular.Row) (*NormalizedRow, error) {
	reg := strings.TrimSpace(row[colRegisterNumber])
	subject := strings.TrimSpace(row[colSubjectCode])
	if reg == "" || subject == "" {
		return nil, errMissingRequired
	}

	marks, err := strconv.ParseFloat(strings.TrimSpace(row[colMarks]), 64)
	if err != nil {
		return nil, errMissingRequired
	}

	normalized := &NormalizedRow{
		RegisterNumber: reg,
		SubjectCode:    subject,
		Marks:          marks,
		StudentName:    strings.TrimSpace(row[colStudentName]),
	}

	if dobText := strings.TrimSpace(row[colDOB]); dobText != "" {
		dob := parseDOB(dobText)
		normalized.DOB = &dob
	}

	return normalized, nil
}
