// internal/scan/site.go
package scan

// Site is one scanned reference position: the best repeat unit starting
// there and how many consecutive copies of it surround the position.
type Site struct {
	SourceFile     string
	SequenceID     string
	Position       int
	Period         int
	ForwardRepeats int
	RepeatLength   int
	Unit           string
}
