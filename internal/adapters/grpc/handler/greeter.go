package handler

import (
	"context"
	"time"

	greeterpb "github.com/ogurasousui/codex-user-greeter/internal/adapters/grpc/gen/greeter/v1"
	"github.com/ogurasousui/codex-user-greeter/internal/core/hello"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	emptypb "google.golang.org/protobuf/types/known/emptypb"
	structpb "google.golang.org/protobuf/types/known/structpb"
	wrapperspb "google.golang.org/protobuf/types/known/wrapperspb"
)

// GreeterHandler は gRPC 層からユースケースを呼び出すアダプタです。
type GreeterHandler struct {
	greeter hello.Greeter
	greeterpb.UnimplementedGreeterServiceServer
}

// NewGreeterHandler は GreeterHandler を生成します。
func NewGreeterHandler(g hello.Greeter) *GreeterHandler {
	return &GreeterHandler{greeter: g}
}

// SayHello は指定された名前への挨拶文を返します。リクエストが nil の場合は既定名を利用します。
func (h *GreeterHandler) SayHello(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	greeting, err := h.greeter.SayHello(ctx, hello.SayHelloInput{Name: req.GetValue()})
	if err != nil {
		return nil, toStatusError(err)
	}
	return wrapperspb.String(greeting.Message), nil
}

// GetDefaultUser は既定ユーザーの名前を返します。
func (h *GreeterHandler) GetDefaultUser(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	u, err := h.greeter.DefaultUser(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return wrapperspb.String(u.Name()), nil
}

// ListGreetings は記録済みの挨拶を新しい順に返します。
func (h *GreeterHandler) ListGreetings(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.ListValue, error) {
	greetings, err := h.greeter.ListGreetings(ctx, hello.ListGreetingsInput{Limit: int(req.GetValue())})
	if err != nil {
		return nil, toStatusError(err)
	}

	values := make([]*structpb.Value, 0, len(greetings))
	for _, g := range greetings {
		s, err := toProtoGreeting(g)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		values = append(values, structpb.NewStructValue(s))
	}

	return &structpb.ListValue{Values: values}, nil
}

func toProtoGreeting(g *hello.Greeting) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":         g.ID,
		"name":       g.Name,
		"message":    g.Message,
		"created_at": g.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}
