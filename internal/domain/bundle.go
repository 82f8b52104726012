package domain

// BundleVersion is the schema version stamped into every export.
const BundleVersion = "1.0.0"

// Bundle is the versioned envelope produced by export and consumed by
// import. It is the unit of backup and of cross-device data transfer.
// The singleton fields are pointers so an import can distinguish "absent
// from the bundle" from "present but zero".
type Bundle struct {
	Version       string         `json:"version"`
	ExportDate    string         `json:"exportDate"`
	Courses       []Course       `json:"courses"`
	Progress      *Progress      `json:"progress"`
	Roadmap       *Roadmap       `json:"roadmap"`
	Presentations []Presentation `json:"presentations"`
	Settings      *Settings      `json:"settings"`
}
