package grpcapi

import (
	"context"
	"errors"
	"math"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrNotConfigured):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrUnauthenticated), errors.Is(err, common.ErrAuthentication):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) Status(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st, err := s.auth.Status(ctx)
	if err != nil {
		s.logger.Error(ctx, "status failed", "error", err)
		return nil, toStatus(err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"configured":      st.Configured,
		"unlocked":        st.Unlocked,
		"skipped_entries": float64(s.records.SkippedEntries()),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

// GeneratePassword reads optional "length" (number) and "symbols" (bool)
// fields from the request.
func (s *GRPCServer) GeneratePassword(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	length := services.DefaultGenerateLength
	symbols := true

	fields := req.GetFields()
	if v, ok := fields["length"]; ok {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
			return nil, status.Error(codes.InvalidArgument, "length must be an integer")
		}
		length = int(n.NumberValue)
	}
	if v, ok := fields["symbols"]; ok {
		b, ok := v.GetKind().(*structpb.Value_BoolValue)
		if !ok {
			return nil, status.Error(codes.InvalidArgument, "symbols must be a boolean")
		}
		symbols = b.BoolValue
	}

	pw, err := s.records.Generate(length, symbols)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(pw), nil
}

// Lock ends the current session. The interceptor has already checked the
// caller's token.
func (s *GRPCServer) Lock(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.auth.Logout(ctx)
	s.logger.Info(ctx, "vault locked remotely")
	return &emptypb.Empty{}, nil
}
