package domain

// Outcome describes where formatted content went.
type Outcome int

const (
	// OutcomeNone means nothing was emitted.
	OutcomeNone Outcome = iota
	// OutcomeStdout means the formatted text was written to standard output.
	OutcomeStdout
	// OutcomeInPlace means the formatted text replaced the file's content.
	OutcomeInPlace
)

// String returns a short human-readable label.
func (o Outcome) String() string {
	switch o {
	case OutcomeStdout:
		return "written to stdout"
	case OutcomeInPlace:
		return "written in place"
	default:
		return "not written"
	}
}
