package model

import "strings"

// Namespace is a MediaWiki namespace number.
type Namespace int

const (
	// NamespaceMain is the article namespace.
	NamespaceMain Namespace = 0

	// NamespaceUser is the user page namespace.
	NamespaceUser Namespace = 2
)

// Member is a raw entry of a category listing as returned by the wiki.
type Member struct {
	// PageID is the wiki page id.
	PageID int `json:"pageid"`

	// Title is the full page title, including any namespace prefix
	// (for example "User:Foo" or "用户:Foo").
	Title string `json:"title"`

	// Namespace is the namespace the page belongs to.
	Namespace Namespace `json:"ns"`
}

// PageTitle returns the title without its namespace prefix.
// Main namespace titles are returned unchanged, since they may legitimately
// contain a colon.
func (m Member) PageTitle() string {
	if m.Namespace == NamespaceMain {
		return m.Title
	}
	if _, rest, ok := strings.Cut(m.Title, ":"); ok {
		return rest
	}
	return m.Title
}

// IsPersonCandidate reports whether the member can appear in the template:
// it must live in the main or user namespace and must not be a subpage.
func (m Member) IsPersonCandidate() bool {
	if m.Namespace != NamespaceMain && m.Namespace != NamespaceUser {
		return false
	}
	return !strings.Contains(m.PageTitle(), "/")
}

// PageRecord is a person page collected from the category listing.
type PageRecord struct {
	// ID is the wiki page id.
	ID int `json:"id"`

	// Title is the page title without namespace prefix.
	Title string `json:"title"`

	// IsUserPage is true when the page lives in the user namespace.
	IsUserPage bool `json:"is_user_page"`

	// IsDeceased is true when the page is also a member of the deceased category.
	// It is always set explicitly and defaults to false.
	IsDeceased bool `json:"is_deceased"`
}

// NewPageRecord creates a PageRecord from a category member.
// IsDeceased starts as false.
func NewPageRecord(m Member) PageRecord {
	return PageRecord{
		ID:         m.PageID,
		Title:      m.PageTitle(),
		IsUserPage: m.Namespace == NamespaceUser,
	}
}

// Identity returns the key under which duplicates are detected.
func (p PageRecord) Identity() Identity {
	return Identity{Title: p.Title, IsUserPage: p.IsUserPage}
}

// Identity is the (title, user page) pair that identifies a person page.
// A main namespace page and a user page with the same title are distinct.
type Identity struct {
	Title      string
	IsUserPage bool
}

// RomanizedRecord is a PageRecord with its romanized title attached.
type RomanizedRecord struct {
	PageRecord

	// Romanized is the Latin-alphabet rendering of Title.
	Romanized string `json:"romanized"`

	// Key is the bucket the record belongs to, derived from Romanized.
	Key BucketKey `json:"bucket_key"`
}

// NewRomanizedRecord attaches a romanized title to a record and derives its bucket key.
func NewRomanizedRecord(p PageRecord, romanized string) RomanizedRecord {
	return RomanizedRecord{
		PageRecord: p,
		Romanized:  romanized,
		Key:        KeyFor(romanized),
	}
}
