package gmail

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/opshelm/internal/mail"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func headers(kv ...string) []*gmail.MessagePartHeader {
	var out []*gmail.MessagePartHeader
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, &gmail.MessagePartHeader{Name: kv[i], Value: kv[i+1]})
	}
	return out
}

func TestToMessage(t *testing.T) {
	received := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	m := &gmail.Message{
		Id:           "18c0ffee",
		Snippet:      "We can&#39;t log in",
		InternalDate: received.UnixMilli(),
		LabelIds:     []string{"INBOX", "UNREAD"},
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Headers: headers(
				"Subject", "[Parex] URGENT: login broken",
				"From", `"Jane Doe" <jane@parex.com>`,
				"To", "ops@example.com, Bob <bob@example.com>",
				"cc", "lead@example.com",
			),
			Parts: []*gmail.MessagePart{
				{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<p>html</p>")}},
				{MimeType: "text/plain; charset=UTF-8", Body: &gmail.MessagePartBody{Data: b64("Customer cannot log in.")}},
			},
		},
	}

	got := ToMessage(m)

	assert.Equal(t, mail.Message{
		ID:         "18c0ffee",
		Subject:    "[Parex] URGENT: login broken",
		Body:       "Customer cannot log in.",
		Preview:    "We can't log in",
		From:       mail.Address{Name: "Jane Doe", Email: "jane@parex.com"},
		To:         []mail.Address{{Email: "ops@example.com"}, {Name: "Bob", Email: "bob@example.com"}},
		Cc:         []mail.Address{{Email: "lead@example.com"}},
		ReceivedAt: time.UnixMilli(received.UnixMilli()),
		IsRead:     false,
	}, got)
}

func TestToMessage_HTMLFallbackAndRead(t *testing.T) {
	m := &gmail.Message{
		Id:       "1",
		LabelIds: []string{"INBOX"},
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{
					MimeType: "multipart/related",
					Parts: []*gmail.MessagePart{
						{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<b>meeting</b>")}},
					},
				},
				{MimeType: "text/plain", Filename: "notes.txt", Body: &gmail.MessagePartBody{AttachmentId: "att-1"}},
			},
		},
	}

	got := ToMessage(m)

	assert.Equal(t, "<b>meeting</b>", got.Body)
	assert.True(t, got.IsRead)
	assert.True(t, got.ReceivedAt.IsZero())
	assert.Empty(t, got.Subject)
	assert.Equal(t, mail.Address{}, got.From)
	assert.Nil(t, got.To)
}

func TestToMessage_NoPayload(t *testing.T) {
	got := ToMessage(&gmail.Message{Id: "x", Snippet: "only a snippet"})
	assert.Equal(t, "x", got.ID)
	assert.Empty(t, got.Body)
	assert.Equal(t, "only a snippet", got.Content())
}

func TestParseAddressList_Fallback(t *testing.T) {
	got := parseAddressList("a@example.com, not an address <, b@example.com")
	assert.Equal(t, []mail.Address{
		{Email: "a@example.com"},
		{Email: "not an address <"},
		{Email: "b@example.com"},
	}, got)
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"padded url", base64.URLEncoding.EncodeToString([]byte("hi?>")), "hi?>"},
		{"raw url", base64.RawURLEncoding.EncodeToString([]byte("hello")), "hello"},
		{"std", base64.StdEncoding.EncodeToString([]byte("a+b/c")), "a+b/c"},
		{"empty", "", ""},
		{"garbage", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeBody(tt.data))
		})
	}
}

func TestHeaderValue(t *testing.T) {
	m := &gmail.Message{Payload: &gmail.MessagePart{Headers: headers("SUBJECT", "Hi")}}
	assert.Equal(t, "Hi", HeaderValue(m, "Subject"))
	assert.Empty(t, HeaderValue(m, "From"))
	assert.Empty(t, HeaderValue(&gmail.Message{}, "Subject"))
}
