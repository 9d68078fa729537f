// Package publish saves generated text to a wiki page.
//
// The page is read first and left alone when its text already matches.
// Otherwise it is edited against the revision that was read, and edit
// conflicts are retried with exponential backoff.
package publish
