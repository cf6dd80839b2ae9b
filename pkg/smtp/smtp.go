package smtp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	smtpPkg "net/smtp"
	"os"
	"strings"
	"time"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Mail struct {
	ToName     string
	ToEmail    string
	Subject    string
	Body       string
	Attachment *Attachment
}

type ItfSmtp interface {
	Send(mail Mail) error
	Configured() bool
	Sender() string
}

type sendFunc func(addr string, a smtpPkg.Auth, from string, to []string, msg []byte) error

type smtp struct {
	auth     smtpPkg.Auth
	addr     string
	mail     string
	fromName string
	send     sendFunc
	now      func() time.Time
}

// New reads SMTP_HOST (default smtp.gmail.com), SMTP_PORT (default 587),
// SMTP_MAIL, SMTP_PASSWORD and SMTP_FROM_NAME.
func New() ItfSmtp {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")

	return &smtp{
		auth:     smtpPkg.PlainAuth("", mail, password, host),
		addr:     host + ":" + port,
		mail:     mail,
		fromName: os.Getenv("SMTP_FROM_NAME"),
		send:     smtpPkg.SendMail,
		now:      time.Now,
	}
}

func (s *smtp) Configured() bool {
	return s.mail != ""
}

func (s *smtp) Sender() string {
	return s.mail
}

func (s *smtp) Send(mail Mail) error {
	if !s.Configured() {
		return fmt.Errorf("smtp sender not configured")
	}

	msg, err := buildMessage(s.fromName, s.mail, mail, s.now())
	if err != nil {
		return err
	}

	return s.send(s.addr, s.auth, s.mail, []string{mail.ToEmail}, msg)
}

func address(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), email)
}

func buildMessage(fromName, fromEmail string, mail Mail, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	headers := []string{
		"From: " + address(fromName, fromEmail),
		"To: " + address(mail.ToName, mail.ToEmail),
		"Subject: " + mime.QEncoding.Encode("utf-8", mail.Subject),
		"Date: " + now.Format(time.RFC1123Z),
		"MIME-Version: 1.0",
	}

	if mail.Attachment == nil {
		headers = append(headers, "Content-Type: text/plain; charset=utf-8")
		buf.WriteString(strings.Join(headers, "\r\n"))
		buf.WriteString("\r\n\r\n")
		buf.WriteString(mail.Body)
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	headers = append(headers, fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q", mw.Boundary()))

	var out bytes.Buffer
	out.WriteString(strings.Join(headers, "\r\n"))
	out.WriteString("\r\n\r\n")

	text, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := text.Write([]byte(mail.Body)); err != nil {
		return nil, err
	}

	att, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {mail.Attachment.ContentType},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": mail.Attachment.Filename})},
	})
	if err != nil {
		return nil, err
	}
	if _, err := att.Write([]byte(wrap(base64.StdEncoding.EncodeToString(mail.Attachment.Data), 76))); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	out.Write(buf.Bytes())
	return out.Bytes(), nil
}

func wrap(s string, width int) string {
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteString("\r\n")
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
