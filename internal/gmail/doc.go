// Package gmail reads messages from the Gmail API and converts them into
// mail.Message records.
//
// Client implements mail.Source. A fetch lists message ids with a Gmail
// search query covering the requested range, then retrieves each message
// in full format. Parsing is done by ToMessage, which is independent of
// the API client:
//   - From, To and Cc headers are parsed with net/mail
//   - the body is the first text/plain part, else the first text/html part
//   - the snippet becomes the preview
//   - InternalDate becomes the received time
//   - the UNREAD label decides IsRead
//
// Tokens come from a google.TokenProvider, normally the per-account cache
// written by the auth command.
package gmail
