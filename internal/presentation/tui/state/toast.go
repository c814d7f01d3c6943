package state

import "time"

// MaxToasts caps how many notifications are shown at once.
const MaxToasts = 3

// ToastTTL is how long a notification stays on screen.
const ToastTTL = 3 * time.Second

// Level grades a notification.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

// Toast is a transient notification.
type Toast struct {
	ID    int
	Text  string
	Level Level
}

// PushToast appends a notification and returns its ID. The oldest ones are
// evicted past MaxToasts.
func (s *ModelState) PushToast(text string, level Level) int {
	s.NextToast++
	s.Toasts = append(s.Toasts, Toast{ID: s.NextToast, Text: text, Level: level})
	if len(s.Toasts) > MaxToasts {
		s.Toasts = s.Toasts[len(s.Toasts)-MaxToasts:]
	}
	return s.NextToast
}

// DropToast removes the notification with id, if still shown.
func (s *ModelState) DropToast(id int) {
	for i, t := range s.Toasts {
		if t.ID == id {
			s.Toasts = append(s.Toasts[:i], s.Toasts[i+1:]...)
			return
		}
	}
}

// LastToast returns the newest notification text.
func (s *ModelState) LastToast() string {
	if len(s.Toasts) == 0 {
		return ""
	}
	return s.Toasts[len(s.Toasts)-1].Text
}
