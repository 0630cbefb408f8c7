package feed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lysyi3m/feedparser/app/xmlevents"
)

var (
	// ErrSyntax is returned for input that is not well-formed XML, including
	// empty and truncated documents.
	ErrSyntax = errors.New("malformed document")

	// ErrInternal is returned when the element structure contradicts the
	// parser's own bookkeeping.
	ErrInternal = errors.New("internal parser error")
)

type Option func(*Parser)

// WithIgnoredNamespaces adds namespace URIs to DefaultIgnoredNamespaces.
func WithIgnoredNamespaces(uris ...string) Option {
	return func(p *Parser) {
		for _, uri := range uris {
			if uri = strings.TrimSpace(uri); uri != "" {
				p.ignored[strings.ToLower(uri)] = struct{}{}
			}
		}
	}
}

// Parser turns RSS 0.9x/2.0, RSS 1.0 (RDF) and Atom documents into a Feed.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	ignored map[string]struct{}
	lastErr error
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{ignored: make(map[string]struct{})}
	WithIgnoredNamespaces(DefaultIgnoredNamespaces...)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Run(data []byte) (*Feed, error) {
	return p.RunReader(bytes.NewReader(data))
}

func (p *Parser) RunFile(path string) (*Feed, error) {
	file, err := os.Open(path)
	if err != nil {
		p.lastErr = fmt.Errorf("failed to open feed: %w", err)
		return nil, p.lastErr
	}
	defer file.Close()

	return p.RunReader(file)
}

// RunReader parses a whole document. On failure the partially built feed is
// discarded and the error wraps ErrSyntax or ErrInternal.
func (p *Parser) RunReader(r io.Reader) (*Feed, error) {
	m := newMachine(p.ignored)

	if err := xmlevents.Run(r, m); err != nil {
		var syntaxErr *xmlevents.SyntaxError
		if errors.As(err, &syntaxErr) {
			err = fmt.Errorf("%w: %w", ErrSyntax, syntaxErr)
		}
		p.lastErr = fmt.Errorf("failed to parse feed: %w", err)
		return nil, p.lastErr
	}

	feed, err := m.result()
	if err != nil {
		p.lastErr = fmt.Errorf("failed to parse feed: %w", err)
		return nil, p.lastErr
	}

	parseDates(feed)
	p.lastErr = nil

	slog.Debug("Feed parsed", "title", feed.Title, "entries", len(feed.Entries))

	return feed, nil
}

// LastError returns the error of the most recent run, or nil if it succeeded.
func (p *Parser) LastError() error {
	return p.lastErr
}
