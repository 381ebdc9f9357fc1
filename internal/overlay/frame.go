package overlay

// Placeholder describes what to show when there are no rows.
type Placeholder int

const (
	PlaceholderNone Placeholder = iota
	PlaceholderNoResults
)

// NoticeKind categorizes a notice for styling.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// Notice is a one-line message shown under the results.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Row is one rendered result.
type Row struct {
	ID       string
	Title    string
	URL      string
	Selected bool
	Editing  bool
}

// EditState is the row being edited and its pending field values.
type EditState struct {
	ID    string
	Title string
	URL   string
}

// DeleteState is the bookmark awaiting delete confirmation.
type DeleteState struct {
	ID    string
	Title string
}

// Frame is everything a renderer needs to draw the session. A hidden session
// produces a zero Frame.
type Frame struct {
	Visible       bool
	Query         string
	Rows          []Row
	Selected      int
	Placeholder   Placeholder
	Edit          *EditState
	ConfirmDelete *DeleteState
	Notice        Notice
	Busy          bool
}
