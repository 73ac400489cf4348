package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/duoreg/internal/export"
	"github.com/mmynk/duoreg/internal/storage"
	adminv1 "github.com/mmynk/duoreg/pkg/adminv1"
)

func TestExportService_WriteXLSX(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEntry(t, env.store, "fp-x1", "Elite", base)
	seedEntry(t, env.store, "fp-x2", "Amador", base.Add(time.Hour))

	var buf bytes.Buffer
	require.NoError(t, env.exports.WriteXLSX(ctx, &buf, storage.Filter{Category: "Elite"}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.EntriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus the one Elite entry")
	assert.Equal(t, "01/03/2026 12:00", rows[1][0])
	assert.Equal(t, "Elite", rows[1][2])
	assert.Equal(t, "Kit M Masculino", rows[1][7])

	uniforms, err := f.GetRows(export.UniformsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Kit", "Quantidade"}, {"Kit G", "1"}, {"Kit M Masculino", "1"}}, uniforms)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Exports.WithLabelValues("xlsx")))
}

func TestPublishExport(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	seedEntry(t, env.store, "fp-p1", "Elite", time.Now())
	seedEntry(t, env.store, "fp-p2", "Elite", time.Now())

	resp, err := env.client.PublishExport(ctx, connect.NewRequest(&adminv1.PublishExportRequest{Category: "Elite"}))
	require.NoError(t, err)
	assert.Equal(t, "sheet-123", resp.Msg.SpreadsheetID)
	assert.Equal(t, 2, resp.Msg.Entries)

	require.Len(t, env.publisher.published, 1)
	wb := env.publisher.published[0]
	require.Len(t, wb.Sheets, 2)
	assert.Len(t, wb.Sheets[0].Rows, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Exports.WithLabelValues("sheets")))
}

func TestPublishExport_Failure(t *testing.T) {
	env := setupTestEnv(t)
	env.publisher.err = errors.New("quota exceeded")

	_, err := env.client.PublishExport(context.Background(), connect.NewRequest(&adminv1.PublishExportRequest{}))
	assert.Equal(t, connect.CodeUnavailable, codeOf(t, err))
}

func TestPublishExport_NotConfigured(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewExportService(env.store, time.UTC, nil, nil)

	_, err := svc.PublishExport(context.Background(), connect.NewRequest(&adminv1.PublishExportRequest{}))
	assert.Equal(t, connect.CodeFailedPrecondition, codeOf(t, err))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("Elite", "")
	require.NoError(t, err)
	assert.Equal(t, storage.Filter{Category: "Elite"}, f)

	f, err = ParseFilter("", "rejected")
	require.NoError(t, err)
	assert.Equal(t, storage.Filter{Status: "rejected"}, f)

	_, err = ParseFilter("", "nope")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
