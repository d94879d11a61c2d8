// Package link downloads remote documents from public share links.
//
// Google Drive and Dropbox share links are rewritten to their direct-download
// form before fetching. Any other http(s) URL is fetched as is. Requests are
// throttled by a token bucket so a long source list does not hammer a host.
package link
