package domain

// Note content kinds.
const (
	NoteText      = "text"
	NoteChecklist = "checklist"
	NoteReminder  = "reminder"
	NoteLink      = "link"
	NoteCode      = "code"
)

// NotePosition is the on-screen position of a sticky note.
type NotePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NoteSize is the on-screen size of a resizable sticky note.
type NoteSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NoteReminderInfo carries an optional reminder date (epoch milliseconds)
// and whether the user has already been notified.
type NoteReminderInfo struct {
	Date     int64 `json:"date"`
	Notified bool  `json:"notified"`
}

// ChecklistItem is one entry of a checklist note.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NoteChecklistInfo wraps a checklist note's items.
type NoteChecklistInfo struct {
	Items []ChecklistItem `json:"items"`
}

// Note is a user note, optionally attached to a course.
type Note struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Type      string             `json:"type"` // text | checklist | reminder | link | code
	CourseID  string             `json:"courseId,omitempty"`
	Tags      []string           `json:"tags"`
	Color     string             `json:"color"`
	IsPinned  bool               `json:"isPinned"`
	IsSticky  bool               `json:"isSticky"`
	Position  *NotePosition      `json:"position,omitempty"`
	Size      *NoteSize          `json:"size,omitempty"`
	CreatedAt int64              `json:"createdAt"`
	UpdatedAt int64              `json:"updatedAt"`
	Reminder  *NoteReminderInfo  `json:"reminder,omitempty"`
	Checklist *NoteChecklistInfo `json:"checklist,omitempty"`
}

// Touch refreshes the note's modification timestamp.
func (n *Note) Touch() { n.UpdatedAt = NowMillis() }
