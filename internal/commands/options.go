package commands

// MpvCtlOptions holds common command-line flags and options
type MpvCtlOptions struct {
	OutputFormat string
	Verbosity    int
	Sort         string
}
