package smtp

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	smtpPkg "net/smtp"
	"strings"
	"testing"
	"time"
)

func TestBuildMessageWithAttachment(t *testing.T) {
	invite := []byte("BEGIN:VCALENDAR\r\nMETHOD:REQUEST\r\nEND:VCALENDAR\r\n")
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	raw, err := buildMessage("Advisory Team", "team@example.com", Mail{
		ToName:  "Jane Doe",
		ToEmail: "jane@acme.example",
		Subject: "Your consultation",
		Body:    "See you soon.",
		Attachment: &Attachment{
			Filename:    "invite.ics",
			ContentType: "text/calendar; charset=utf-8; method=REQUEST",
			Data:        invite,
		},
	}, now)
	if err != nil {
		t.Fatalf("buildMessage returned error: %v", err)
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadMessage returned error: %v", err)
	}
	if got := msg.Header.Get("To"); got != "Jane Doe <jane@acme.example>" {
		t.Errorf("unexpected To header %q", got)
	}

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/mixed" {
		t.Fatalf("unexpected content type %q (%v)", mediaType, err)
	}

	mr := multipart.NewReader(msg.Body, params["boundary"])

	text, err := mr.NextPart()
	if err != nil {
		t.Fatalf("read text part: %v", err)
	}
	body, _ := io.ReadAll(text)
	if string(body) != "See you soon." {
		t.Errorf("unexpected body %q", body)
	}

	att, err := mr.NextPart()
	if err != nil {
		t.Fatalf("read attachment part: %v", err)
	}
	if att.FileName() != "invite.ics" {
		t.Errorf("unexpected filename %q", att.FileName())
	}
	if !strings.HasPrefix(att.Header.Get("Content-Type"), "text/calendar") {
		t.Errorf("unexpected attachment type %q", att.Header.Get("Content-Type"))
	}
}

func TestSendUsesConfiguredAddress(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string

	s := &smtp{
		addr: "mail.example.com:2525",
		mail: "team@example.com",
		send: func(addr string, _ smtpPkg.Auth, from string, to []string, _ []byte) error {
			gotAddr, gotFrom, gotTo = addr, from, to
			return nil
		},
		now: time.Now,
	}

	if err := s.Send(Mail{ToEmail: "jane@acme.example", Subject: "hi", Body: "hello"}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if gotAddr != "mail.example.com:2525" || gotFrom != "team@example.com" || len(gotTo) != 1 || gotTo[0] != "jane@acme.example" {
		t.Errorf("unexpected envelope %s %s %v", gotAddr, gotFrom, gotTo)
	}
}

func TestSendWithoutSender(t *testing.T) {
	s := &smtp{now: time.Now}
	if err := s.Send(Mail{ToEmail: "jane@acme.example"}); err == nil {
		t.Error("expected an error when no sender is configured")
	}
}
