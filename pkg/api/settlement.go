package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// SettlementServiceName is the fully-qualified Connect service name.
const SettlementServiceName = "settlr.v1.SettlementService"

// Procedure paths for the settlement service.
const (
	SettlementServiceComputeSettlementProcedure = "/settlr.v1.SettlementService/ComputeSettlement"
	SettlementServiceCreateRunProcedure         = "/settlr.v1.SettlementService/CreateRun"
	SettlementServiceGetRunProcedure            = "/settlr.v1.SettlementService/GetRun"
	SettlementServiceListRunsProcedure          = "/settlr.v1.SettlementService/ListRuns"
	SettlementServiceDeleteRunProcedure         = "/settlr.v1.SettlementService/DeleteRun"
)

// SettlementServiceHandler is the server-side interface for the
// settlement service.
type SettlementServiceHandler interface {
	ComputeSettlement(context.Context, *connect.Request[ComputeSettlementRequest]) (*connect.Response[ComputeSettlementResponse], error)
	CreateRun(context.Context, *connect.Request[CreateRunRequest]) (*connect.Response[CreateRunResponse], error)
	GetRun(context.Context, *connect.Request[GetRunRequest]) (*connect.Response[GetRunResponse], error)
	ListRuns(context.Context, *connect.Request[ListRunsRequest]) (*connect.Response[ListRunsResponse], error)
	DeleteRun(context.Context, *connect.Request[DeleteRunRequest]) (*connect.Response[DeleteRunResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler for svc. It returns
// the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SettlementServiceComputeSettlementProcedure, connect.NewUnaryHandler(
		SettlementServiceComputeSettlementProcedure, svc.ComputeSettlement, opts...,
	))
	mux.Handle(SettlementServiceCreateRunProcedure, connect.NewUnaryHandler(
		SettlementServiceCreateRunProcedure, svc.CreateRun, opts...,
	))
	mux.Handle(SettlementServiceGetRunProcedure, connect.NewUnaryHandler(
		SettlementServiceGetRunProcedure, svc.GetRun, opts...,
	))
	mux.Handle(SettlementServiceListRunsProcedure, connect.NewUnaryHandler(
		SettlementServiceListRunsProcedure, svc.ListRuns, opts...,
	))
	mux.Handle(SettlementServiceDeleteRunProcedure, connect.NewUnaryHandler(
		SettlementServiceDeleteRunProcedure, svc.DeleteRun, opts...,
	))
	return "/" + SettlementServiceName + "/", mux
}

// SettlementServiceClient is the client-side interface for the
// settlement service.
type SettlementServiceClient interface {
	ComputeSettlement(context.Context, *connect.Request[ComputeSettlementRequest]) (*connect.Response[ComputeSettlementResponse], error)
	CreateRun(context.Context, *connect.Request[CreateRunRequest]) (*connect.Response[CreateRunResponse], error)
	GetRun(context.Context, *connect.Request[GetRunRequest]) (*connect.Response[GetRunResponse], error)
	ListRuns(context.Context, *connect.Request[ListRunsRequest]) (*connect.Response[ListRunsResponse], error)
	DeleteRun(context.Context, *connect.Request[DeleteRunRequest]) (*connect.Response[DeleteRunResponse], error)
}

// NewSettlementServiceClient builds a client that calls the settlement
// service at baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &settlementServiceClient{
		computeSettlement: connect.NewClient[ComputeSettlementRequest, ComputeSettlementResponse](
			httpClient, baseURL+SettlementServiceComputeSettlementProcedure, opts...,
		),
		createRun: connect.NewClient[CreateRunRequest, CreateRunResponse](
			httpClient, baseURL+SettlementServiceCreateRunProcedure, opts...,
		),
		getRun: connect.NewClient[GetRunRequest, GetRunResponse](
			httpClient, baseURL+SettlementServiceGetRunProcedure, opts...,
		),
		listRuns: connect.NewClient[ListRunsRequest, ListRunsResponse](
			httpClient, baseURL+SettlementServiceListRunsProcedure, opts...,
		),
		deleteRun: connect.NewClient[DeleteRunRequest, DeleteRunResponse](
			httpClient, baseURL+SettlementServiceDeleteRunProcedure, opts...,
		),
	}
}

type settlementServiceClient struct {
	computeSettlement *connect.Client[ComputeSettlementRequest, ComputeSettlementResponse]
	createRun         *connect.Client[CreateRunRequest, CreateRunResponse]
	getRun            *connect.Client[GetRunRequest, GetRunResponse]
	listRuns          *connect.Client[ListRunsRequest, ListRunsResponse]
	deleteRun         *connect.Client[DeleteRunRequest, DeleteRunResponse]
}

func (c *settlementServiceClient) ComputeSettlement(ctx context.Context, req *connect.Request[ComputeSettlementRequest]) (*connect.Response[ComputeSettlementResponse], error) {
	return c.computeSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) CreateRun(ctx context.Context, req *connect.Request[CreateRunRequest]) (*connect.Response[CreateRunResponse], error) {
	return c.createRun.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetRun(ctx context.Context, req *connect.Request[GetRunRequest]) (*connect.Response[GetRunResponse], error) {
	return c.getRun.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListRuns(ctx context.Context, req *connect.Request[ListRunsRequest]) (*connect.Response[ListRunsResponse], error) {
	return c.listRuns.CallUnary(ctx, req)
}

func (c *settlementServiceClient) DeleteRun(ctx context.Context, req *connect.Request[DeleteRunRequest]) (*connect.Response[DeleteRunResponse], error) {
	return c.deleteRun.CallUnary(ctx, req)
}
