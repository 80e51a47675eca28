package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/we-edu/enrollment-api/internal/platform/postgres"
	"github.com/we-edu/enrollment-api/internal/service/catalog"
)

// mockCatalogService is a function-field mock for the CatalogService
// interface.
type mockCatalogService struct {
	ListFn func(ctx context.Context, p catalog.ListParams) (*catalog.ListResult, error)
}

func (m *mockCatalogService) List(ctx context.Context, p catalog.ListParams) (*catalog.ListResult, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, p)
	}
	return &catalog.ListResult{}, nil
}

func TestProgramList_Success(t *testing.T) {
	money := 1200.50
	mock := &mockCatalogService{
		ListFn: func(ctx context.Context, p catalog.ListParams) (*catalog.ListResult, error) {
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 10, p.Size)
			require.NotNil(t, p.OnlyActive)
			assert.False(t, *p.OnlyActive)
			return &catalog.ListResult{
				Total: 35,
				Page:  2,
				Size:  10,
				Items: []catalog.Program{
					{
						ProgramVersionID:        7,
						ProgramName:             "Data Analytics",
						MinimumMoneyProfesional: &money,
						MinimumMoneyStudent:     nil,
					},
				},
			}, nil
		},
	}
	handler := NewCatalogHandler(mock)

	rr := postJSON(t, handler.ProgramList, "/programlist", map[string]any{
		"only_active": false,
		"page":        2,
		"size":        10,
	})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		OK   bool `json:"ok"`
		Data struct {
			Total int `json:"total"`
			Page  int `json:"page"`
			Size  int `json:"size"`
			Items []map[string]any `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

	assert.True(t, resp.OK)
	assert.Equal(t, 35, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Page)
	assert.Equal(t, 10, resp.Data.Size)
	require.Len(t, resp.Data.Items, 1)

	// Null money serializes as JSON null, not 0.
	item := resp.Data.Items[0]
	assert.Equal(t, 1200.50, item["minimun_money_profesional"])
	val, present := item["minimun_money_student"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestProgramList_EmptyBody(t *testing.T) {
	mock := &mockCatalogService{
		ListFn: func(ctx context.Context, p catalog.ListParams) (*catalog.ListResult, error) {
			assert.Nil(t, p.OnlyActive)
			assert.Zero(t, p.Page)
			return &catalog.ListResult{Page: 1, Size: 20, Items: []catalog.Program{}}, nil
		},
	}
	handler := NewCatalogHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/programlist", nil)
	rr := httptest.NewRecorder()
	handler.ProgramList(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestProgramList_DatabaseBusy(t *testing.T) {
	mock := &mockCatalogService{
		ListFn: func(ctx context.Context, p catalog.ListParams) (*catalog.ListResult, error) {
			return nil, postgres.ErrStatementTimeout
		},
	}
	handler := NewCatalogHandler(mock)

	rr := postJSON(t, handler.ProgramList, "/programlist", map[string]any{})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestProgramList_GenericFailure(t *testing.T) {
	mock := &mockCatalogService{
		ListFn: func(ctx context.Context, p catalog.ListParams) (*catalog.ListResult, error) {
			return nil, errors.New("connect: connection refused to 10.0.0.5:5432")
		},
	}
	handler := NewCatalogHandler(mock)

	rr := postJSON(t, handler.ProgramList, "/programlist", map[string]any{})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5", "connection details must not leak")
}
