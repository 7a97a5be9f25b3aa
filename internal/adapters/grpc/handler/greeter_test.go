package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/codex-user-greeter/internal/core/hello"
	"github.com/ogurasousui/codex-user-greeter/internal/core/user"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	emptypb "google.golang.org/protobuf/types/known/emptypb"
	wrapperspb "google.golang.org/protobuf/types/known/wrapperspb"
)

type stubGreeter struct {
	sayHelloInput hello.SayHelloInput
	sayHelloErr   error

	listInput hello.ListGreetingsInput
	listOut   []*hello.Greeting
	listErr   error
}

func (s *stubGreeter) SayHello(ctx context.Context, in hello.SayHelloInput) (*hello.Greeting, error) {
	s.sayHelloInput = in
	if s.sayHelloErr != nil {
		return nil, s.sayHelloErr
	}
	u := user.Create(in.Name)
	return &hello.Greeting{ID: "greeting-1", Name: u.Name(), Message: u.Greet()}, nil
}

func (s *stubGreeter) DefaultUser(ctx context.Context) (user.User, error) {
	return user.NewService().GetUser(), nil
}

func (s *stubGreeter) ListGreetings(ctx context.Context, in hello.ListGreetingsInput) ([]*hello.Greeting, error) {
	s.listInput = in
	return s.listOut, s.listErr
}

func TestGreeterHandler_SayHello(t *testing.T) {
	t.Parallel()

	stub := &stubGreeter{}
	handler := NewGreeterHandler(stub)

	resp, err := handler.SayHello(context.Background(), wrapperspb.String("Bob"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.sayHelloInput.Name != "Bob" {
		t.Errorf("expected name passed through, got %q", stub.sayHelloInput.Name)
	}

	if resp.GetValue() != "Hello, Bob!" {
		t.Fatalf("unexpected message %q", resp.GetValue())
	}
}

func TestGreeterHandler_SayHello_NilRequest(t *testing.T) {
	t.Parallel()

	stub := &stubGreeter{}
	handler := NewGreeterHandler(stub)

	if _, err := handler.SayHello(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.sayHelloInput.Name != "" {
		t.Fatalf("expected empty name for nil request, got %q", stub.sayHelloInput.Name)
	}
}

func TestGreeterHandler_SayHello_ErrorMapping(t *testing.T) {
	t.Parallel()

	handler := NewGreeterHandler(&stubGreeter{sayHelloErr: errors.New("boom")})

	_, err := handler.SayHello(context.Background(), wrapperspb.String("Bob"))
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", status.Code(err))
	}
}

func TestGreeterHandler_GetDefaultUser(t *testing.T) {
	t.Parallel()

	handler := NewGreeterHandler(&stubGreeter{})

	resp, err := handler.GetDefaultUser(context.Background(), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.GetValue() != "Alice" {
		t.Fatalf("expected Alice, got %q", resp.GetValue())
	}
}

func TestGreeterHandler_ListGreetings(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	stub := &stubGreeter{listOut: []*hello.Greeting{
		{ID: "greeting-2", Name: "Charlie", Message: "Hello, Charlie!", CreatedAt: createdAt},
		{ID: "greeting-1", Name: "Bob", Message: "Hello, Bob!", CreatedAt: createdAt},
	}}
	handler := NewGreeterHandler(stub)

	resp, err := handler.ListGreetings(context.Background(), wrapperspb.UInt32(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.listInput.Limit != 5 {
		t.Errorf("expected limit 5, got %d", stub.listInput.Limit)
	}

	values := resp.GetValues()
	if len(values) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(values))
	}

	first := values[0].GetStructValue().GetFields()
	if first["id"].GetStringValue() != "greeting-2" || first["message"].GetStringValue() != "Hello, Charlie!" {
		t.Fatalf("unexpected first entry %v", first)
	}

	if first["created_at"].GetStringValue() != "2025-01-01T09:00:00Z" {
		t.Fatalf("unexpected created_at %q", first["created_at"].GetStringValue())
	}
}

func TestGreeterHandler_ListGreetings_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code codes.Code
	}{
		{err: hello.ErrInvalidLimit, code: codes.InvalidArgument},
		{err: hello.ErrJournalDisabled, code: codes.FailedPrecondition},
		{err: errors.New("db down"), code: codes.Internal},
	}

	for _, tc := range cases {
		handler := NewGreeterHandler(&stubGreeter{listErr: tc.err})

		_, err := handler.ListGreetings(context.Background(), wrapperspb.UInt32(1))
		if status.Code(err) != tc.code {
			t.Errorf("%v: expected %v, got %v", tc.err, tc.code, status.Code(err))
		}
	}
}

func TestToStatusError(t *testing.T) {
	t.Parallel()

	if toStatusError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}

	err := toStatusError(hello.ErrGreetingAlreadyExists)
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.AlreadyExists {
		t.Fatalf("expected AlreadyExists code, got %v", err)
	}
}
