package adminv1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type getOnly struct {
	UnimplementedAdminServiceHandler
}

func (getOnly) GetEntry(_ context.Context, req *connect.Request[GetEntryRequest]) (*connect.Response[GetEntryResponse], error) {
	return connect.NewResponse(&GetEntryResponse{Entry: &Entry{ID: req.Msg.ID, Category: "Elite"}}), nil
}

func newTestClient(t *testing.T) (AdminServiceClient, *httptest.Server) {
	t.Helper()
	path, handler := NewAdminServiceHandler(getOnly{})
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewAdminServiceClient(srv.Client(), srv.URL+"/"), srv
}

func TestAdminService_JSONRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)

	resp, err := client.GetEntry(context.Background(), connect.NewRequest(&GetEntryRequest{ID: "abc"}))
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Msg.Entry.ID)
	assert.Equal(t, "Elite", resp.Msg.Entry.Category)
}

func TestAdminService_Unimplemented(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.ListEntries(context.Background(), connect.NewRequest(&ListEntriesRequest{}))
	assert.Equal(t, connect.CodeUnimplemented, connect.CodeOf(err))
}

func TestAdminService_PlainJSONPost(t *testing.T) {
	_, srv := newTestClient(t)

	resp, err := srv.Client().Post(srv.URL+AdminServiceGetEntryProcedure, "application/json", strings.NewReader(`{"id":"from-curl"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminService_UnknownProcedure(t *testing.T) {
	_, srv := newTestClient(t)

	resp, err := srv.Client().Post(srv.URL+"/duoreg.v1.AdminService/DeleteEntry", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIsAdminPath(t *testing.T) {
	assert.True(t, IsAdminPath(AdminServiceListEntriesProcedure))
	assert.False(t, IsAdminPath("/inscricao"))
}
