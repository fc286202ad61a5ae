package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"roast-master/internal/domain"
	"roast-master/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const GetDominanceProcedure = "/dominance.v1.DominanceService/GetDominance"

type ReportBuilder interface {
	Build(ctx context.Context, req service.Request) (*domain.Report, error)
}

type DominanceServer struct {
	svc    ReportBuilder
	logger zerolog.Logger
}

func NewDominanceServer(svc *service.DominanceService, logger zerolog.Logger) *DominanceServer {
	return newDominanceServer(svc, logger)
}

func newDominanceServer(svc ReportBuilder, logger zerolog.Logger) *DominanceServer {
	return &DominanceServer{svc: svc, logger: logger}
}

// Handler returns the mount path and the connect handler for the service.
func (s *DominanceServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	return GetDominanceProcedure, connect.NewUnaryHandler(GetDominanceProcedure, s.GetDominance, opts...)
}

func (s *DominanceServer) GetDominance(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	in, err := parseRequest(req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	report, err := s.svc.Build(ctx, in)
	if err != nil {
		code := codeFor(err)
		if code == connect.CodeInternal {
			log := zerolog.Ctx(ctx)
			if log.GetLevel() == zerolog.Disabled {
				log = &s.logger
			}
			log.Error().Err(err).Str("league_id", in.LeagueID).Msg("failed to build report")
		}
		return nil, connect.NewError(code, err)
	}

	out, err := toStruct(report)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(out), nil
}

func codeFor(err error) connect.Code {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return connect.CodeInvalidArgument
	case errors.Is(err, service.ErrLeagueNotFound):
		return connect.CodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	default:
		return connect.CodeInternal
	}
}

func parseRequest(msg *structpb.Struct) (service.Request, error) {
	var req service.Request
	if msg == nil {
		return req, errors.New("empty request")
	}

	for name, v := range msg.GetFields() {
		var err error
		switch name {
		case "leagueId":
			req.LeagueID, err = stringField(name, v)
		case "startWeek":
			req.StartWeek, err = intField(name, v)
		case "endWeek":
			req.EndWeek, err = intField(name, v)
		case "includePlayoffs":
			b, ok := v.GetKind().(*structpb.Value_BoolValue)
			if !ok {
				err = fmt.Errorf("%s must be a boolean", name)
			} else {
				req.IncludePlayoffs = b.BoolValue
			}
		}
		if err != nil {
			return req, err
		}
	}
	return req, nil
}

func stringField(name string, v *structpb.Value) (string, error) {
	k, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return k.StringValue, nil
}

func intField(name string, v *structpb.Value) (int, error) {
	k, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if k.NumberValue != math.Trunc(k.NumberValue) || math.Abs(k.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return int(k.NumberValue), nil
}

func toStruct(report *domain.Report) (*structpb.Struct, error) {
	b, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("failed to convert report: %w", err)
	}
	return out, nil
}
