package domain

// Settings is the singleton user-settings record. It is overwritten
// rather than appended and persists across sessions.
//
// BackupDirLabel intentionally holds only a human-readable path label,
// never a live handle: filesystem access is re-acquired and re-validated
// at write time by the backup sink.
type Settings struct {
	DarkMode       bool   `json:"darkMode"`
	BackupDirLabel string `json:"backupDirLabel,omitempty"`
}

// Presentation is a generated markdown presentation, optionally tied to
// a course.
type Presentation struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CourseID  string `json:"courseId,omitempty"`
	Markdown  string `json:"markdown"`
	CreatedAt int64  `json:"createdAt"`
}
