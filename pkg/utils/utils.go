package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	IsULID(id string) bool
	DisplayName(name string) string
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) IsULID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// DisplayName collapses whitespace and title-cases a visitor supplied name
// for use in invites and confirmation emails.
func (u *utils) DisplayName(name string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}
