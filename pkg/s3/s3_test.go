package s3

import (
	"testing"
	"time"
)

func TestInviteKey(t *testing.T) {
	created := time.Date(2024, 11, 3, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))

	got := InviteKey("01HGW2N7EHJVZ8Q6Y1RZ4M3K5T", created)
	want := "invites/2024/11/01hgw2n7ehjvz8q6y1rz4m3k5t.ics"
	if got != want {
		t.Errorf("InviteKey() = %q, want %q", got, want)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	t.Setenv("AWS_BUCKET_NAME", "")

	if _, err := New(); err == nil {
		t.Error("expected an error without a bucket name")
	}
}
