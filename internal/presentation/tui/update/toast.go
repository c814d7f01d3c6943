package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/rsstream/internal/presentation/tui/state"
)

// Notify shows a notification and schedules its removal.
func Notify(s *state.ModelState, text string, level state.Level) tea.Cmd {
	id := s.PushToast(text, level)
	UpdateLayout(s)
	return tea.Tick(state.ToastTTL, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// HandleToastExpired drops an expired notification.
func HandleToastExpired(s *state.ModelState, msg ToastExpiredMsg) {
	s.DropToast(msg.ID)
	UpdateLayout(s)
}
