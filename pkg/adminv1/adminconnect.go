package adminv1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// AdminServiceName is the fully-qualified name of the admin service.
const AdminServiceName = "duoreg.v1.AdminService"

const (
	AdminServiceListEntriesProcedure     = "/duoreg.v1.AdminService/ListEntries"
	AdminServiceGetEntryProcedure        = "/duoreg.v1.AdminService/GetEntry"
	AdminServiceTransitionEntryProcedure = "/duoreg.v1.AdminService/TransitionEntry"
	AdminServicePublishExportProcedure   = "/duoreg.v1.AdminService/PublishExport"
)

// AdminServiceHandler is implemented by the server side of the admin service.
type AdminServiceHandler interface {
	ListEntries(context.Context, *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error)
	GetEntry(context.Context, *connect.Request[GetEntryRequest]) (*connect.Response[GetEntryResponse], error)
	TransitionEntry(context.Context, *connect.Request[TransitionEntryRequest]) (*connect.Response[TransitionEntryResponse], error)
	PublishExport(context.Context, *connect.Request[PublishExportRequest]) (*connect.Response[PublishExportResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	listEntries := connect.NewUnaryHandler(AdminServiceListEntriesProcedure, svc.ListEntries, opts...)
	getEntry := connect.NewUnaryHandler(AdminServiceGetEntryProcedure, svc.GetEntry, opts...)
	transitionEntry := connect.NewUnaryHandler(AdminServiceTransitionEntryProcedure, svc.TransitionEntry, opts...)
	publishExport := connect.NewUnaryHandler(AdminServicePublishExportProcedure, svc.PublishExport, opts...)

	return "/" + AdminServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AdminServiceListEntriesProcedure:
			listEntries.ServeHTTP(w, r)
		case AdminServiceGetEntryProcedure:
			getEntry.ServeHTTP(w, r)
		case AdminServiceTransitionEntryProcedure:
			transitionEntry.ServeHTTP(w, r)
		case AdminServicePublishExportProcedure:
			publishExport.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// IsAdminPath reports whether an HTTP path belongs to the admin service.
func IsAdminPath(path string) bool {
	return strings.HasPrefix(path, "/"+AdminServiceName+"/")
}

// UnimplementedAdminServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAdminServiceHandler struct{}

func (UnimplementedAdminServiceHandler) ListEntries(context.Context, *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("duoreg.v1.AdminService.ListEntries is not implemented"))
}

func (UnimplementedAdminServiceHandler) GetEntry(context.Context, *connect.Request[GetEntryRequest]) (*connect.Response[GetEntryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("duoreg.v1.AdminService.GetEntry is not implemented"))
}

func (UnimplementedAdminServiceHandler) TransitionEntry(context.Context, *connect.Request[TransitionEntryRequest]) (*connect.Response[TransitionEntryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("duoreg.v1.AdminService.TransitionEntry is not implemented"))
}

func (UnimplementedAdminServiceHandler) PublishExport(context.Context, *connect.Request[PublishExportRequest]) (*connect.Response[PublishExportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("duoreg.v1.AdminService.PublishExport is not implemented"))
}

// AdminServiceClient is a client for the admin service.
type AdminServiceClient interface {
	ListEntries(context.Context, *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error)
	GetEntry(context.Context, *connect.Request[GetEntryRequest]) (*connect.Response[GetEntryResponse], error)
	TransitionEntry(context.Context, *connect.Request[TransitionEntryRequest]) (*connect.Response[TransitionEntryResponse], error)
	PublishExport(context.Context, *connect.Request[PublishExportRequest]) (*connect.Response[PublishExportResponse], error)
}

// NewAdminServiceClient constructs a client. baseURL is the server root,
// e.g. "http://localhost:8080".
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &adminServiceClient{
		listEntries:     connect.NewClient[ListEntriesRequest, ListEntriesResponse](httpClient, baseURL+AdminServiceListEntriesProcedure, opts...),
		getEntry:        connect.NewClient[GetEntryRequest, GetEntryResponse](httpClient, baseURL+AdminServiceGetEntryProcedure, opts...),
		transitionEntry: connect.NewClient[TransitionEntryRequest, TransitionEntryResponse](httpClient, baseURL+AdminServiceTransitionEntryProcedure, opts...),
		publishExport:   connect.NewClient[PublishExportRequest, PublishExportResponse](httpClient, baseURL+AdminServicePublishExportProcedure, opts...),
	}
}

type adminServiceClient struct {
	listEntries     *connect.Client[ListEntriesRequest, ListEntriesResponse]
	getEntry        *connect.Client[GetEntryRequest, GetEntryResponse]
	transitionEntry *connect.Client[TransitionEntryRequest, TransitionEntryResponse]
	publishExport   *connect.Client[PublishExportRequest, PublishExportResponse]
}

func (c *adminServiceClient) ListEntries(ctx context.Context, req *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error) {
	return c.listEntries.CallUnary(ctx, req)
}

func (c *adminServiceClient) GetEntry(ctx context.Context, req *connect.Request[GetEntryRequest]) (*connect.Response[GetEntryResponse], error) {
	return c.getEntry.CallUnary(ctx, req)
}

func (c *adminServiceClient) TransitionEntry(ctx context.Context, req *connect.Request[TransitionEntryRequest]) (*connect.Response[TransitionEntryResponse], error) {
	return c.transitionEntry.CallUnary(ctx, req)
}

func (c *adminServiceClient) PublishExport(ctx context.Context, req *connect.Request[PublishExportRequest]) (*connect.Response[PublishExportResponse], error) {
	return c.publishExport.CallUnary(ctx, req)
}
