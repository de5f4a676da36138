package auth

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("password stored in the clear")
	}

	if err := ComparePassword(hash, "correct horse battery"); err != nil {
		t.Fatalf("ComparePassword: %v", err)
	}
	if err := ComparePassword(hash, "wrong password"); err == nil {
		t.Fatal("wrong password accepted")
	}
	if err := ComparePassword("not-a-bcrypt-hash", "anything"); err == nil {
		t.Fatal("malformed hash accepted")
	}
}
