package export

import (
	"time"

	"github.com/mosdac/assist/internal"
)

// buildViews applies session selection, date-range filtering and the
// message/source/entity strips, producing export views detached from
// repository-owned state.
func buildViews(sessions []*internal.Session, opts Options, now time.Time) []SessionView {
	selected := make(map[string]bool, len(opts.SelectedSessionIDs))
	for _, id := range opts.SelectedSessionIDs {
		selected[id] = true
	}

	views := make([]SessionView, 0, len(sessions))
	for _, session := range sessions {
		if len(selected) > 0 && !selected[session.ID] {
			continue
		}
		if !inRange(session.UpdatedAt, opts, now) {
			continue
		}
		views = append(views, buildView(session, opts))
	}
	return views
}

func buildView(session *internal.Session, opts Options) SessionView {
	view := SessionView{
		ID:       session.ID,
		Title:    session.Title,
		Messages: []internal.Message{},
	}

	if opts.IncludeMetadata {
		view.CreatedAt = session.CreatedAt.Format(time.RFC3339)
		view.UpdatedAt = session.UpdatedAt.Format(time.RFC3339)
	}

	if !opts.IncludeMessages {
		return view
	}

	view.Messages = make([]internal.Message, len(session.Messages))
	copy(view.Messages, session.Messages)
	for i := range view.Messages {
		// The two strips are independent; both can apply.
		if !opts.IncludeSources {
			view.Messages[i].Sources = nil
		} else {
			view.Messages[i].Sources = append([]internal.Source(nil), session.Messages[i].Sources...)
		}
		if !opts.IncludeEntities {
			view.Messages[i].Entities = nil
		} else {
			view.Messages[i].Entities = append([]internal.Entity(nil), session.Messages[i].Entities...)
		}
	}
	return view
}

func inRange(updatedAt time.Time, opts Options, now time.Time) bool {
	switch opts.DateRange {
	case RangeToday:
		year, month, day := now.Date()
		midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		return !updatedAt.Before(midnight)
	case RangeWeek:
		return !updatedAt.Before(now.AddDate(0, 0, -7))
	case RangeMonth:
		return !updatedAt.Before(now.AddDate(0, -1, 0))
	case RangeCustom:
		if !opts.CustomFrom.IsZero() && updatedAt.Before(opts.CustomFrom) {
			return false
		}
		if !opts.CustomTo.IsZero() && updatedAt.After(opts.CustomTo) {
			return false
		}
		return true
	default:
		return true
	}
}
