package state

import (
	"time"

	"learning-planner/internal/domain"
)

// Typed operations over the container. They mirror the UI's edit actions
// and keep the updatedAt invariant: every course or note mutation
// refreshes the record's timestamp.

func (c *Container) AddCourse(course domain.Course) {
	c.Update(func(s *AppState) {
		s.Courses = append([]domain.Course{course}, s.Courses...)
	})
}

func (c *Container) RemoveCourse(id string) {
	c.Update(func(s *AppState) {
		kept := s.Courses[:0]
		for _, course := range s.Courses {
			if course.ID != id {
				kept = append(kept, course)
			}
		}
		s.Courses = kept
	})
}

// UpdateCourse applies changes to one course and refreshes its
// timestamp. It is a no-op when the id is unknown.
func (c *Container) UpdateCourse(id string, changes func(*domain.Course)) {
	c.Update(func(s *AppState) {
		for i := range s.Courses {
			if s.Courses[i].ID == id {
				changes(&s.Courses[i])
				s.Courses[i].Touch()
				return
			}
		}
	})
}

func (c *Container) UpdateCourseStatus(id, status string) {
	c.UpdateCourse(id, func(course *domain.Course) {
		course.Status = status
	})
}

func (c *Container) SetCourses(courses []domain.Course) {
	c.Update(func(s *AppState) { s.Courses = courses })
}

// LogStudySession records one session and advances the streak. The
// streak must be advanced first: it compares now against the previous
// session's date, which LogSession overwrites with today.
func (c *Container) LogStudySession(now time.Time, minutes int) {
	c.Update(func(s *AppState) {
		s.Progress.AdvanceStreak(now)
		s.Progress.LogSession(now, minutes)
	})
}

func (c *Container) SetProgress(p domain.Progress) {
	c.Update(func(s *AppState) { s.Progress = p })
}

func (c *Container) SetRoadmap(r domain.Roadmap) {
	c.Update(func(s *AppState) { s.Roadmap = r })
}

func (c *Container) ToggleModuleComplete(moduleID string) {
	c.Update(func(s *AppState) {
		for i := range s.Roadmap.Modules {
			if s.Roadmap.Modules[i].ID == moduleID {
				s.Roadmap.Modules[i].Completed = !s.Roadmap.Modules[i].Completed
				return
			}
		}
	})
}

func (c *Container) AddNote(note domain.Note) {
	c.Update(func(s *AppState) {
		s.Notes = append([]domain.Note{note}, s.Notes...)
	})
}

func (c *Container) UpdateNote(id string, changes func(*domain.Note)) {
	c.Update(func(s *AppState) {
		for i := range s.Notes {
			if s.Notes[i].ID == id {
				changes(&s.Notes[i])
				s.Notes[i].Touch()
				return
			}
		}
	})
}

func (c *Container) DeleteNote(id string) {
	c.Update(func(s *AppState) {
		kept := s.Notes[:0]
		for _, n := range s.Notes {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		s.Notes = kept
	})
}

func (c *Container) ToggleNotePin(id string) {
	c.UpdateNote(id, func(n *domain.Note) { n.IsPinned = !n.IsPinned })
}

func (c *Container) SetNotes(notes []domain.Note) {
	c.Update(func(s *AppState) { s.Notes = notes })
}

func (c *Container) ToggleDarkMode() {
	c.Update(func(s *AppState) { s.Settings.DarkMode = !s.Settings.DarkMode })
}

func (c *Container) SetSettings(settings domain.Settings) {
	c.Update(func(s *AppState) { s.Settings = settings })
}
