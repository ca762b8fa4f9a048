package grpcserver

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	slotholdv1 "github.com/md-rashed-zaman/slothold/protos/gen/slothold/v1"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/booking"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/lease"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
)

// ErrorCodeTrailer carries the domain error code of a failed call.
const ErrorCodeTrailer = "x-error-code"

type server struct {
	slotholdv1.UnimplementedSlotHoldServiceServer
	desk   *booking.Desk
	logger *slog.Logger
}

func Register(grpcServer *grpc.Server, desk *booking.Desk, logger *slog.Logger) {
	slotholdv1.RegisterSlotHoldServiceServer(grpcServer, &server{desk: desk, logger: logger})
}

func (s *server) CreateSlotHold(ctx context.Context, req *slotholdv1.CreateSlotHoldRequest) (*slotholdv1.CreateSlotHoldResponse, error) {
	if err := req.GetStartTime().CheckValid(); err != nil {
		return nil, s.toStatus(ctx, &model.Error{Code: model.CodeInvalidArgument, Message: "start_time is required"})
	}
	hold, err := s.desk.PlaceHold(ctx, holds.CreateHoldInput{
		ServiceID:       req.GetServiceId(),
		ResourceID:      req.GetResourceId(),
		SessionID:       req.GetSessionId(),
		Start:           req.GetStartTime().AsTime(),
		DurationMinutes: int(req.GetDurationMinutes()),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &slotholdv1.CreateSlotHoldResponse{
		HoldId:    hold.ID,
		ExpiresAt: timestamppb.New(hold.ExpiresAt),
	}, nil
}

func (s *server) FinalizeBookingFromHold(ctx context.Context, req *slotholdv1.FinalizeBookingFromHoldRequest) (*slotholdv1.FinalizeBookingFromHoldResponse, error) {
	autoConfirm := true
	if req.AutoConfirm != nil {
		autoConfirm = req.GetAutoConfirm()
	}
	appt, err := s.desk.Finalize(ctx, booking.FinalizeRequest{
		HoldID:     req.GetHoldId(),
		CustomerID: req.GetCustomerId(),
		Customer: model.Customer{
			Name:  req.GetCustomerName(),
			Email: req.GetCustomerEmail(),
			Phone: req.GetCustomerPhone(),
		},
		PriceCents:  req.PriceCents,
		AutoConfirm: autoConfirm,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &slotholdv1.FinalizeBookingFromHoldResponse{AppointmentId: appt.ID, Status: appt.Status}, nil
}

func (s *server) ReleaseHold(ctx context.Context, req *slotholdv1.ReleaseHoldRequest) (*slotholdv1.ReleaseHoldResponse, error) {
	if err := s.desk.ReleaseHold(ctx, req.GetHoldId()); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &slotholdv1.ReleaseHoldResponse{Ok: true}, nil
}

// toStatus maps a domain error to a gRPC status and sets the error code trailer.
func (s *server) toStatus(ctx context.Context, err error) error {
	if errors.Is(err, lease.ErrBusy) {
		return status.Error(codes.Unavailable, err.Error())
	}
	code := model.CodeOf(err)
	grpcCode := CodeFor(code)
	if grpcCode == codes.Internal {
		s.logger.ErrorContext(ctx, "rpc failed", "err", err)
		return status.Error(codes.Internal, "internal error")
	}
	_ = grpc.SetTrailer(ctx, metadata.Pairs(ErrorCodeTrailer, string(code)))
	return status.Error(grpcCode, err.Error())
}

// CodeFor maps an error code to its gRPC status code.
func CodeFor(code model.Code) codes.Code {
	switch code {
	case model.CodeOverlap:
		return codes.AlreadyExists
	case model.CodeHoldExpired, model.CodeHoldInactive, model.CodeServiceInactive:
		return codes.FailedPrecondition
	case model.CodeHoldNotFound, model.CodeServiceNotFound, model.CodeAppointmentNotFound:
		return codes.NotFound
	case model.CodeInvalidArgument:
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}
