package submission

import (
	"time"

	"github.com/google/uuid"
)

// AllowedContentTypes lists the upload types accepted for a submission.
var AllowedContentTypes = map[string]string{
	"text/csv":        "csv",
	"application/pdf": "pdf",
	"text/plain":      "txt",
}

type Metadata struct {
	AssignmentID uuid.UUID `json:"assignmentId"`
	StudentID    uuid.UUID `json:"studentId"`
	Timestamp    time.Time `json:"timestamp"`
	Grade        *float64  `json:"grade"`
}

// File is a stored submission blob and its metadata.
type File struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Length      int64     `json:"length"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Metadata    Metadata  `json:"metadata"`
}

// URL is the media path the file can be downloaded from.
func (f *File) URL() string {
	return "media/submissions/" + f.ID.String()
}

// Summary is the listing representation of a submission.
type Summary struct {
	AssignmentID uuid.UUID `json:"assignmentId"`
	StudentID    uuid.UUID `json:"studentId"`
	Timestamp    time.Time `json:"timestamp"`
	Grade        *float64  `json:"grade"`
	URL          string    `json:"url"`
}

func (f *File) Summary() Summary {
	return Summary{
		AssignmentID: f.Metadata.AssignmentID,
		StudentID:    f.Metadata.StudentID,
		Timestamp:    f.Metadata.Timestamp,
		Grade:        f.Metadata.Grade,
		URL:          f.URL(),
	}
}
