package exitcode

const (
	Success         = 0
	Failure         = 1
	UsageError      = 1
	ValidationError = 2
	ModelLoadError  = 3
	IOError         = 4
	PartialSuccess  = 6
)
