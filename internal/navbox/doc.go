// Package navbox renders the person navigation template.
//
// The output is MediaWiki wikitext: an editing notice wrapped in
// <noinclude>, a {{Navbox}} whose single member list is a
// {{Navbox subgroup}} with one column per letter group, a fixed column
// pointing at the list of people without an article, and the category tag.
package navbox
