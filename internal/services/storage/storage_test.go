package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlainReadWrite(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(s.BaseDir(), "finance.json")
	content := []byte(`{"transactions":[]}`)

	if err := s.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("ReadFile = %q, want %q", got, content)
	}

	// unencrypted storage writes plaintext to disk
	raw, _ := os.ReadFile(path)
	if string(raw) != string(content) {
		t.Errorf("on-disk content = %q, want plaintext", raw)
	}
}

func TestEnableEncryptionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(dir, "finance.json")
	content := []byte(`{"transactions":[{"id":"abc"}]}`)
	if err := s.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := s.EnableEncryption("correct horse battery"); err != nil {
		t.Fatalf("EnableEncryption: %v", err)
	}
	if !s.IsEncrypted() || !s.IsUnlocked() {
		t.Fatal("storage should be encrypted and unlocked after enabling")
	}

	// the on-disk file is now Age ciphertext
	raw, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(raw), "age-encryption.org") {
		t.Errorf("on-disk file missing age header: %q", truncateBytes(raw, 40))
	}

	// reads stay transparent
	got, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after encryption: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("decrypted content = %q, want %q", got, content)
	}

	// writes keep encrypting
	updated := []byte(`{"transactions":[{"id":"def"}]}`)
	if err := s.WriteFile(path, updated, 0644); err != nil {
		t.Fatalf("WriteFile after encryption: %v", err)
	}
	raw, _ = os.ReadFile(path)
	if strings.Contains(string(raw), "def") {
		t.Error("new write should not be plaintext on disk")
	}
}

func TestUnlockWithWrongPassword(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.EnableEncryption("correct horse battery"); err != nil {
		t.Fatalf("EnableEncryption: %v", err)
	}
	s.Lock()
	if s.IsUnlocked() {
		t.Fatal("storage should be locked after Lock")
	}

	if err := s.Unlock("wrong password!"); err == nil {
		t.Error("Unlock with wrong password should fail")
	}
	if err := s.Unlock("correct horse battery"); err != nil {
		t.Errorf("Unlock with correct password: %v", err)
	}
	if !s.IsUnlocked() {
		t.Error("storage should be unlocked after successful Unlock")
	}
}

func TestEncryptionDetectedOnReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.EnableEncryption("correct horse battery"); err != nil {
		t.Fatalf("EnableEncryption: %v", err)
	}

	reopened, err := New(dir)
	if err != nil {
		t.Fatalf("New (reopen): %v", err)
	}
	if !reopened.IsEncrypted() {
		t.Error("reopened storage should detect the encryption marker")
	}
	if reopened.IsUnlocked() {
		t.Error("reopened encrypted storage should start locked")
	}
}

func TestDisableEncryption(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(dir, "finance.json")
	content := []byte(`{"transactions":[]}`)
	if err := s.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := s.EnableEncryption("correct horse battery"); err != nil {
		t.Fatalf("EnableEncryption: %v", err)
	}

	if err := s.DisableEncryption("wrong password!"); err == nil {
		t.Fatal("DisableEncryption with wrong password should fail")
	}
	if err := s.DisableEncryption("correct horse battery"); err != nil {
		t.Fatalf("DisableEncryption: %v", err)
	}

	if s.IsEncrypted() {
		t.Error("storage should report unencrypted after disabling")
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != string(content) {
		t.Errorf("on-disk content = %q, want plaintext %q", raw, content)
	}
}

func TestShortPasswordRejected(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.EnableEncryption("short"); err == nil {
		t.Error("passwords under 8 characters should be rejected")
	}
	if s.IsEncrypted() {
		t.Error("failed enable should leave storage unencrypted")
	}
}

func truncateBytes(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
