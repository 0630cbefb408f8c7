package xmlevents

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errEmptyDocument = errors.New("document is empty")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Run tokenizes r and pushes the resulting events to h. It returns nil after
// EndDocument has been delivered, or the error that stopped the run after
// h.Error has been called with it. Tokenizer failures are *SyntaxError.
func Run(r io.Reader, h Handler) error {
	src, transcoded, err := sniff(r)
	if err != nil {
		return fail(h, &SyntaxError{Err: err})
	}

	p := xpp.NewXMLPullParser(src, true, charsetReader(transcoded))

	h.StartDocument()

	seenRoot := false
	for {
		event, err := p.NextToken()
		if err != nil {
			return fail(h, &SyntaxError{Err: err})
		}

		switch event {
		case xpp.StartTag:
			seenRoot = true
			if err := h.StartElement(p.Space, p.Name, attrs(p.Attrs)); err != nil {
				return fail(h, err)
			}
		case xpp.EndTag:
			if err := h.EndElement(p.Space, p.Name); err != nil {
				return fail(h, err)
			}
		case xpp.Text, xpp.IgnorableWhitespace:
			h.CharData(p.Text)
		case xpp.EndDocument:
			if !seenRoot {
				return fail(h, &SyntaxError{Err: errEmptyDocument})
			}
			h.EndDocument()
			return nil
		}
	}
}

func fail(h Handler, err error) error {
	h.Error(err)
	return err
}

// sniff strips a byte order mark and transcodes UTF-16 input to UTF-8. The
// returned flag reports whether a BOM decided the encoding, in which case any
// encoding declared in the XML prolog is ignored.
func sniff(r io.Reader) (io.Reader, bool, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(bomUTF8))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, false, fmt.Errorf("failed to read document: %w", err)
	}

	if !bytes.HasPrefix(head, bomUTF8) && !bytes.HasPrefix(head, bomUTF16BE) && !bytes.HasPrefix(head, bomUTF16LE) {
		return br, false, nil
	}

	return transform.NewReader(br, unicode.BOMOverride(transform.Nop)), true, nil
}

func charsetReader(transcoded bool) func(string, io.Reader) (io.Reader, error) {
	return func(label string, input io.Reader) (io.Reader, error) {
		if transcoded {
			return input, nil
		}

		reader, err := charset.NewReaderLabel(label, input)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
		}
		return reader, nil
	}
}

// attrs copies the tokenizer's attributes, dropping namespace declarations.
func attrs(in []xml.Attr) []Attr {
	if len(in) == 0 {
		return nil
	}

	out := make([]Attr, 0, len(in))
	for _, a := range in {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, Attr{Name: a.Name.Local, Space: a.Name.Space, Value: a.Value})
	}
	return out
}
