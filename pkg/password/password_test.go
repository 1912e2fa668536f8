package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("p@ssw0rd")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "p@ssw0rd" {
		t.Fatalf("expected non-empty hash distinct from input")
	}
	if !Verify("p@ssw0rd", hash) {
		t.Fatalf("expected verify ok")
	}
	if Verify("wrong", hash) {
		t.Fatalf("expected verify fail")
	}
}

func TestHashRejectsEmpty(t *testing.T) {
	if _, err := Hash(""); err == nil {
		t.Fatalf("expected empty password to fail")
	}
}
