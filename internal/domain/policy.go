package domain

// Authorization policy for event visibility and state transitions.
// All checks are pure and total; a nil requester is anonymous. Callers map a
// false result to ErrForbidden.

// CanViewEvent reports whether requester may see the event. Approved events
// are public; unapproved events are visible only to staff and the organizer.
func CanViewEvent(requester *User, event *Event) bool {
	if event.IsApproved {
		return true
	}
	if requester == nil {
		return false
	}
	return requester.IsStaff || requester.ID == event.OrganizerID
}

// CanModifyEvent reports whether requester may update the event.
func CanModifyEvent(requester *User, event *Event) bool {
	if requester == nil {
		return false
	}
	return requester.IsStaff || requester.ID == event.OrganizerID
}

// CanDeleteEvent reports whether requester may delete the event.
// Same rule as modification.
func CanDeleteEvent(requester *User, event *Event) bool {
	return CanModifyEvent(requester, event)
}

// CanApproveEvent reports whether requester may approve events. Staff only;
// not object-scoped, so it can be checked before the event is loaded.
func CanApproveEvent(requester *User) bool {
	return requester != nil && requester.IsStaff
}

// CanListAllEvents reports whether requester sees unapproved events in
// listings and may use the is_approved filter.
func CanListAllEvents(requester *User) bool {
	return requester != nil && requester.IsStaff
}
