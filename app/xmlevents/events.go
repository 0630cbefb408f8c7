// Package xmlevents turns an XML byte stream into the push-style event
// sequence consumed by the feed state machine: document start, element
// start/end with resolved namespace URIs, character data, and a single
// structural error.
package xmlevents

// Attr is one attribute of a start element. Space holds the resolved
// namespace URI, empty when the attribute has no namespace.
type Attr struct {
	Name  string
	Space string
	Value string
}

// Handler receives events in document order. Calls are sequential and never
// re-entrant. Strings passed to a Handler are owned copies and may be retained.
//
// A non-nil error from StartElement or EndElement aborts the run; Error is
// then called with that error before Run returns it.
type Handler interface {
	StartDocument()
	EndDocument()
	StartElement(space, local string, attrs []Attr) error
	EndElement(space, local string) error
	CharData(text string)
	Error(err error)
}

// SyntaxError reports a document the tokenizer could not read as well-formed
// XML.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
