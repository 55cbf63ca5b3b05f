package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	stored, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !Verify("correct horse battery staple", stored) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if Verify("wrong password", stored) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	first, err := Hash("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := Hash("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !Verify("hunter2hunter2", first) || !Verify("hunter2hunter2", second) {
		t.Fatalf("both records must verify")
	}
}

func TestHashEncoding(t *testing.T) {
	stored, err := Hash("secretsecret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	saltHex, keyHex, ok := strings.Cut(stored, ":")
	if !ok {
		t.Fatalf("expected colon-delimited record, got %q", stored)
	}
	if len(saltHex) != saltBytes*2 {
		t.Fatalf("expected %d-char hex salt, got %d", saltBytes*2, len(saltHex))
	}
	if len(keyHex) != keyBytes*2 {
		t.Fatalf("expected %d-char hex key, got %d", keyBytes*2, len(keyHex))
	}
}

func TestVerifyMalformedRecord(t *testing.T) {
	for _, stored := range []string{"", "no-delimiter", ":", ":abcdef", "deadbeef"} {
		if Verify("whatever", stored) {
			t.Fatalf("malformed record %q must not verify", stored)
		}
	}
}
