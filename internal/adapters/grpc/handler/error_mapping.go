package handler

import (
	"errors"

	"github.com/ogurasousui/codex-user-greeter/internal/core/hello"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, hello.ErrInvalidLimit):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, hello.ErrGreetingAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, hello.ErrJournalDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
