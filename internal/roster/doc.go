// Package roster collects the person pages listed in the person category
// and marks those that also appear in the deceased category.
//
// Only main namespace and user namespace pages are considered, and subpages
// are skipped. The result keeps the listing order of the person category,
// followed by deceased pages that are not listed there.
package roster
