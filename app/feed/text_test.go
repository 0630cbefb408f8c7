package feed

import (
	"testing"

	"github.com/lysyi3m/feedparser/app/xmlevents"
)

func TestTextBufferPlain(t *testing.T) {
	var b textBuffer
	b.write("a < b")
	b.write(" & c")

	if b.String() != "a < b & c" {
		t.Errorf("Expected plain text, got: %q", b.String())
	}
	if b.escaped {
		t.Error("Expected buffer not to be escaped")
	}
}

func TestTextBufferMarkup(t *testing.T) {
	var b textBuffer
	b.write(`Tom & "Jerry" `)
	b.openMarkup("a", []xmlevents.Attr{{Name: "href", Value: "/?x=1&y='2'"}})
	b.write("<link>")
	b.closeMarkup("a")

	want := `Tom &amp; &quot;Jerry&quot; <a href="/?x=1&amp;y=&#39;2&#39;">&lt;link&gt;</a>`
	if b.String() != want {
		t.Errorf("Expected %q, got: %q", want, b.String())
	}
}

func TestCaptureFinish(t *testing.T) {
	c := &capture{}
	c.text.write("  padded \n")
	if got := c.finish(); got != "padded" {
		t.Errorf("Expected trimmed text 'padded', got: %q", got)
	}

	c = &capture{base64: true}
	c.text.write("aGk")
	if got := c.finish(); got != "hi" {
		t.Errorf("Expected unpadded base64 to decode to 'hi', got: %q", got)
	}

	c = &capture{base64: true}
	c.text.write("   ")
	if got := c.finish(); got != "" {
		t.Errorf("Expected empty text, got: %q", got)
	}
}

func TestDecodeBase64Error(t *testing.T) {
	if _, err := decodeBase64("not*base64"); err == nil {
		t.Error("Expected decode error")
	}
}
