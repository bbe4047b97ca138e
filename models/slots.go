package models

// FreeSlot is a window in which every queried member is free.
type FreeSlot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// FreeSlotsByDate maps "YYYY-MM-DD" to that day's free slots. Days without slots are absent.
type FreeSlotsByDate map[string][]FreeSlot

// FreeSlotQuery selects the month, members and working window for a free slot search.
type FreeSlotQuery struct {
	Year            int      `form:"year" json:"year"`
	Month           int      `form:"month" json:"month"`
	Members         []string `form:"members" json:"members,omitempty"`
	DurationMinutes int      `form:"duration_minutes" json:"duration_minutes"`
	WorkStart       string   `form:"work_start_time" json:"work_start_time"`
	WorkEnd         string   `form:"work_end_time" json:"work_end_time"`

	// MembersGiven distinguishes "no members parameter" from an explicitly empty list.
	MembersGiven bool `form:"-" json:"-"`
}
