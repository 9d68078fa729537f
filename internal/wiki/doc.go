// Package wiki is a small client for the MediaWiki action API, covering only
// what the persons template bot needs: bot-password login, category listing,
// reading a page and editing it.
//
// All requests go through a single http.Client with a cookie jar so that the
// login session is reused. Responses are requested in JSON format version 2.
// API-level failures are returned as *APIError; an edit conflict additionally
// matches ErrEditConflict with errors.Is so that callers can retry it.
package wiki
