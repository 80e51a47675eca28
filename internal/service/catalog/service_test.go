package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/we-edu/enrollment-api/internal/platform/postgres"
)

// fakeCaller records the procedure invocation and plays back fixed rows.
type fakeCaller struct {
	procName string
	params   []any
	opts     postgres.CallOptions

	rows []map[string]any
	err  error
}

func (f *fakeCaller) CallProcedureReturningRows(
	ctx context.Context,
	procName string,
	params []any,
	opts postgres.CallOptions,
) ([]map[string]any, error) {
	f.procName = procName
	f.params = params
	f.opts = opts
	return f.rows, f.err
}

func boolPtr(b bool) *bool    { return &b }
func int64Ptr(i int64) *int64 { return &i }
func strPtr(s string) *string { return &s }

func TestList_ArgumentOrderAndDefaults(t *testing.T) {
	caller := &fakeCaller{}
	svc := NewService(caller)

	_, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)

	assert.Equal(t, "public.sp_program_list", caller.procName)
	assert.Equal(t, 25*time.Second, caller.opts.StatementTimeout)
	assert.Nil(t, caller.opts.Tx)

	require.Len(t, caller.params, 8, "exactly eight positional arguments")
	assert.Equal(t, (*int64)(nil), caller.params[0])
	assert.Equal(t, (*int64)(nil), caller.params[1])
	assert.Equal(t, (*int64)(nil), caller.params[2])
	assert.Equal(t, (*int64)(nil), caller.params[3])
	assert.Equal(t, true, caller.params[4], "only_active defaults to true")
	assert.Equal(t, (*string)(nil), caller.params[5])
	assert.Equal(t, 1, caller.params[6], "page defaults to 1")
	assert.Equal(t, 20, caller.params[7], "size defaults to 20")
}

func TestList_ExplicitFilters(t *testing.T) {
	caller := &fakeCaller{}
	svc := NewService(caller)

	result, err := svc.List(context.Background(), ListParams{
		ProgramVersionID: int64Ptr(42),
		CatTypeProgram:   int64Ptr(3),
		OnlyActive:       boolPtr(false),
		Q:                strPtr("analytics"),
		Page:             2,
		Size:             10,
	})
	require.NoError(t, err)

	require.Len(t, caller.params, 8)
	assert.Equal(t, int64Ptr(42), caller.params[0])
	assert.Equal(t, int64Ptr(3), caller.params[1])
	assert.Equal(t, false, caller.params[4])
	assert.Equal(t, strPtr("analytics"), caller.params[5])
	assert.Equal(t, 2, caller.params[6])
	assert.Equal(t, 10, caller.params[7])

	// Page and size are echoed back.
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.Size)
}

func TestList_MapsRowsAndTotal(t *testing.T) {
	caller := &fakeCaller{
		rows: []map[string]any{
			{
				"program_version_id":        int64(7),
				"program_name":              "Data Analytics",
				"commercial_name":           "DA Pro",
				"cat_type_program_id":       int64(1),
				"cat_type_program_alias":    "bootcamp",
				"cat_model_modality_id":     int64(2),
				"cat_model_modality_alias":  "live",
				"sales_page_url":            "https://example.com/da",
				"minimun_money_profesional": float64(1200.50),
				"minimun_money_student":     nil,
				"investment_student":        float64(900),
				"investment_profesional":    nil,
				"version_code":              "DA-2026-1",
				"total_count":               int64(35),
			},
		},
	}
	svc := NewService(caller)

	result, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)

	assert.Equal(t, 35, result.Total, "total comes from the procedure's total_count")
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, int64(7), item.ProgramVersionID)
	assert.Equal(t, "Data Analytics", item.ProgramName)
	assert.Equal(t, "DA Pro", item.CommercialName)
	assert.Equal(t, "bootcamp", item.CatTypeProgramAlias)
	assert.Equal(t, "https://example.com/da", item.SalesPageURL)
	assert.Equal(t, "DA-2026-1", item.VersionCode)

	// NULL money stays null, never zero.
	require.NotNil(t, item.MinimumMoneyProfesional)
	assert.Equal(t, 1200.50, *item.MinimumMoneyProfesional)
	assert.Nil(t, item.MinimumMoneyStudent)
	require.NotNil(t, item.InvestmentStudent)
	assert.Equal(t, 900.0, *item.InvestmentStudent)
	assert.Nil(t, item.InvestmentProfesional)
}

func TestList_EmptyResult(t *testing.T) {
	svc := NewService(&fakeCaller{})

	result, err := svc.List(context.Background(), ListParams{Page: 3, Size: 5})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 5, result.Size)
	assert.Empty(t, result.Items)
	assert.NotNil(t, result.Items, "items serializes as [] rather than null")
}

func TestList_ProcedureErrorPropagates(t *testing.T) {
	procErr := errors.New("procedure blew up")
	svc := NewService(&fakeCaller{err: procErr})

	result, err := svc.List(context.Background(), ListParams{})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, procErr)
}
