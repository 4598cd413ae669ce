package planner

// planResultMsg reports the end of a generation request. On success the
// plan has already been saved to the app state.
type planResultMsg struct {
	Err error
}

// copiedMsg reports the outcome of copying the plan to the clipboard.
type copiedMsg struct {
	Err error
}
