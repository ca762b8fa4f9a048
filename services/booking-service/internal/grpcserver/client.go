package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	slotholdv1 "github.com/md-rashed-zaman/slothold/protos/gen/slothold/v1"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
)

// Client wraps the generated SlotHoldService client. Failed calls that carry
// an error code trailer come back as *model.Error.
type Client struct {
	rpc slotholdv1.SlotHoldServiceClient
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{rpc: slotholdv1.NewSlotHoldServiceClient(cc)}
}

func (c *Client) CreateSlotHold(ctx context.Context, in *slotholdv1.CreateSlotHoldRequest, opts ...grpc.CallOption) (*slotholdv1.CreateSlotHoldResponse, error) {
	var trailer metadata.MD
	out, err := c.rpc.CreateSlotHold(ctx, in, append(opts, grpc.Trailer(&trailer))...)
	return out, domainError(err, trailer)
}

func (c *Client) FinalizeBookingFromHold(ctx context.Context, in *slotholdv1.FinalizeBookingFromHoldRequest, opts ...grpc.CallOption) (*slotholdv1.FinalizeBookingFromHoldResponse, error) {
	var trailer metadata.MD
	out, err := c.rpc.FinalizeBookingFromHold(ctx, in, append(opts, grpc.Trailer(&trailer))...)
	return out, domainError(err, trailer)
}

func (c *Client) ReleaseHold(ctx context.Context, in *slotholdv1.ReleaseHoldRequest, opts ...grpc.CallOption) (*slotholdv1.ReleaseHoldResponse, error) {
	var trailer metadata.MD
	out, err := c.rpc.ReleaseHold(ctx, in, append(opts, grpc.Trailer(&trailer))...)
	return out, domainError(err, trailer)
}

func domainError(err error, trailer metadata.MD) error {
	if err == nil {
		return nil
	}
	if codes := trailer.Get(ErrorCodeTrailer); len(codes) > 0 && codes[0] != "" {
		return &model.Error{Code: model.Code(codes[0]), Message: status.Convert(err).Message()}
	}
	return err
}
