package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified admin service name.
const ServiceName = "passvault.admin.v1.VaultAdmin"

const (
	MethodStatus           = "/" + ServiceName + "/Status"
	MethodGeneratePassword = "/" + ServiceName + "/GeneratePassword"
	MethodLock             = "/" + ServiceName + "/Lock"
)

// VaultAdminServer is the server API for the admin service. Messages are
// protobuf well-known types, so no generated code is involved.
type VaultAdminServer interface {
	Status(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GeneratePassword(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	Lock(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

func RegisterVaultAdminServer(s grpc.ServiceRegistrar, srv VaultAdminServer) {
	s.RegisterService(&VaultAdminServiceDesc, srv)
}

func statusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultAdminServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodStatus}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultAdminServer).Status(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func generatePasswordHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultAdminServer).GeneratePassword(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGeneratePassword}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultAdminServer).GeneratePassword(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func lockHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultAdminServer).Lock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLock}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultAdminServer).Lock(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var VaultAdminServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: statusHandler},
		{MethodName: "GeneratePassword", Handler: generatePasswordHandler},
		{MethodName: "Lock", Handler: lockHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "passvault/admin/v1/admin.proto",
}

// AdminClient calls the admin service over an established connection.
type AdminClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminClient(cc grpc.ClientConnInterface) *AdminClient {
	return &AdminClient{cc: cc}
}

func (c *AdminClient) Status(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodStatus, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AdminClient) GeneratePassword(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, MethodGeneratePassword, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AdminClient) Lock(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, MethodLock, &emptypb.Empty{}, new(emptypb.Empty), opts...)
}
