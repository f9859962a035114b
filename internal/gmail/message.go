package gmail

import (
	"encoding/base64"
	"html"
	netmail "net/mail"
	"slices"
	"strings"
	"time"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/opshelm/internal/mail"
)

const labelUnread = "UNREAD"

// ToMessage converts a full-format Gmail message into a mail.Message.
func ToMessage(m *gmail.Message) mail.Message {
	msg := mail.Message{
		ID:      m.Id,
		Subject: HeaderValue(m, "Subject"),
		Body:    messageBody(m.Payload),
		Preview: html.UnescapeString(m.Snippet),
		From:    parseAddress(HeaderValue(m, "From")),
		To:      parseAddressList(HeaderValue(m, "To")),
		Cc:      parseAddressList(HeaderValue(m, "Cc")),
		IsRead:  !slices.Contains(m.LabelIds, labelUnread),
	}
	if m.InternalDate > 0 {
		msg.ReceivedAt = time.UnixMilli(m.InternalDate)
	}
	return msg
}

// HeaderValue extracts a header value from a Gmail message. Header names
// are matched case-insensitively.
func HeaderValue(m *gmail.Message, header string) string {
	mpart := m.Payload
	if mpart == nil {
		return ""
	}
	for _, mph := range mpart.Headers {
		if strings.EqualFold(mph.Name, header) {
			return mph.Value
		}
	}
	return ""
}

func parseAddress(s string) mail.Address {
	if s == "" {
		return mail.Address{}
	}
	a, err := netmail.ParseAddress(s)
	if err != nil {
		return mail.Address{Email: strings.TrimSpace(s)}
	}
	return mail.Address{Name: a.Name, Email: a.Address}
}

func parseAddressList(s string) []mail.Address {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	list, err := netmail.ParseAddressList(s)
	if err != nil {
		// Fall back to a plain comma split for headers net/mail rejects.
		var out []mail.Address
		for _, part := range strings.Split(s, ",") {
			if a := parseAddress(strings.TrimSpace(part)); a.Email != "" {
				out = append(out, a)
			}
		}
		return out
	}
	out := make([]mail.Address, 0, len(list))
	for _, a := range list {
		out = append(out, mail.Address{Name: a.Name, Email: a.Address})
	}
	return out
}

// messageBody returns the first text/plain part, or the first text/html
// part when no plain text exists.
func messageBody(payload *gmail.MessagePart) string {
	var plain, htmlBody string
	walkParts(payload, func(part *gmail.MessagePart) {
		if part.Body == nil || part.Body.Data == "" || part.Filename != "" {
			return
		}
		switch {
		case plain == "" && strings.HasPrefix(part.MimeType, "text/plain"):
			plain = part.Body.Data
		case htmlBody == "" && strings.HasPrefix(part.MimeType, "text/html"):
			htmlBody = part.Body.Data
		}
	})

	data := plain
	if data == "" {
		data = htmlBody
	}
	return decodeBody(data)
}

// decodeBody decodes base64url body data (RFC 4648), accepting padded and
// unpadded input.
func decodeBody(data string) string {
	if data == "" {
		return ""
	}
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			decoded, err = base64.StdEncoding.DecodeString(data)
			if err != nil {
				return ""
			}
		}
	}
	return string(decoded)
}

// walkParts recursively walks through message parts
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}
