package feed

import (
	"errors"
	"testing"

	"github.com/lysyi3m/feedparser/app/xmlevents"
)

func TestDepth(t *testing.T) {
	var d depth

	d.enter()
	if d.active {
		t.Fatal("Expected inactive depth to stay inactive on enter")
	}

	d.start(0)
	d.enter()
	d.enter()
	if !d.at(2) {
		t.Errorf("Expected level 2, got: %+v", d)
	}

	d.leave()
	d.leave()
	d.leave()
	if d.active {
		t.Errorf("Expected depth to deactivate below zero, got: %+v", d)
	}

	d.start(1)
	d.reset()
	if d.at(0) || d.active {
		t.Errorf("Expected reset depth to be inactive, got: %+v", d)
	}
}

func TestMachineUnexpectedEndTag(t *testing.T) {
	m := newMachine(nil)
	m.StartDocument()

	for _, name := range []string{"rss", "channel", "item", "title"} {
		if err := m.StartElement("", name, nil); err != nil {
			t.Fatalf("Expected no error on <%s>, got: %v", name, err)
		}
	}

	// A closing tag the depth counters do not account for.
	m.feedDepth.enter()
	m.entryDepth.enter()

	err := m.EndElement("", "title")
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("Expected ErrInternal, got: %v", err)
	}

	m.Error(err)
	f, resultErr := m.result()
	if f != nil {
		t.Errorf("Expected partial feed to be discarded, got: %+v", f)
	}
	if resultErr != err {
		t.Errorf("Expected result error %v, got: %v", err, resultErr)
	}
}

func TestMachineStartDocumentResets(t *testing.T) {
	m := newMachine(nil)
	m.StartDocument()
	m.StartElement("", "rss", nil)
	m.Error(errors.New("boom"))

	m.StartDocument()
	f, err := m.result()
	if err != nil {
		t.Fatalf("Expected no error after reset, got: %v", err)
	}
	if f == nil || len(f.Entries) != 0 || m.feedDepth.active {
		t.Errorf("Expected fresh state, got feed %+v depth %+v", f, m.feedDepth)
	}
}

func TestMachineFeedRootAttributes(t *testing.T) {
	m := newMachine(nil)
	m.StartDocument()
	m.StartElement("", "channel", []xmlevents.Attr{
		{Name: "href", Value: "https://example.com/"},
		{Name: "title", Value: "Home"},
		{Name: "lastmod", Value: "2023-07-03"},
	})

	if m.feed.Link != "https://example.com/" || m.feed.LinkTitle != "Home" {
		t.Errorf("Expected link from root attributes, got: %q %q", m.feed.Link, m.feed.LinkTitle)
	}
	if m.feed.ModificationDate != "2023-07-03" {
		t.Errorf("Expected lastmod as modification date, got: %q", m.feed.ModificationDate)
	}
}
