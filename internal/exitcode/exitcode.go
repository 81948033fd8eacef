package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2 // missing columns or unreadable schema
	ReadError       = 3
	TransformError  = 4
	WriteError      = 5
	PartialSuccess  = 6 // output written but some rows are unlabeled
)
