package user

import "testing"

func TestService_GetUser(t *testing.T) {
	t.Parallel()

	svc := NewService()
	u := svc.GetUser()

	if u.Name() != "Alice" {
		t.Fatalf("expected Alice, got %q", u.Name())
	}

	if got := u.Greet(); got != "Hello, Alice!" {
		t.Fatalf("unexpected greeting %q", got)
	}

	if svc.GetUser() != u {
		t.Fatalf("GetUser should be deterministic")
	}
}

func TestService_ProcessUser_Delegates(t *testing.T) {
	t.Parallel()

	svc := NewService()

	for _, u := range []User{New("Bob"), Create("Charlie"), New(""), svc.GetUser()} {
		before := u.Name()

		if got, want := svc.ProcessUser(u), u.Greet(); got != want {
			t.Errorf("ProcessUser(%q) = %q, want %q", before, got, want)
		}

		if u.Name() != before {
			t.Errorf("ProcessUser mutated user: %q -> %q", before, u.Name())
		}
	}
}

func TestService_ImplementsUseCase(t *testing.T) {
	t.Parallel()

	var uc UseCase = NewService()
	if uc.ProcessUser(uc.GetUser()) != "Hello, Alice!" {
		t.Fatalf("unexpected greeting through UseCase")
	}
}
