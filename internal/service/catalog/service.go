// Package catalog exposes the program-catalog read path. It is a thin
// consumer of the stored-procedure helper: filters map to positional
// arguments, raw rows map to typed items, and the procedure's total_count
// column is the single source of truth for pagination totals.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/we-edu/enrollment-api/internal/platform/postgres"
)

const (
	listProcedure = "public.sp_program_list"

	defaultPage = 1
	defaultSize = 20

	// listTimeout bounds the whole procedure call (CALL, FETCH, CLOSE).
	listTimeout = 25 * time.Second
)

// ProcedureCaller is the slice of the postgres pool the service depends on.
type ProcedureCaller interface {
	CallProcedureReturningRows(ctx context.Context, procName string, params []any, opts postgres.CallOptions) ([]map[string]any, error)
}

// ListParams carries the optional catalog filters. Nil pointer fields mean
// "no filter" and are passed to the procedure as NULL.
type ListParams struct {
	ProgramVersionID *int64  `json:"program_version_id"`
	CatTypeProgram   *int64  `json:"cat_type_program"`
	CatCategory      *int64  `json:"cat_category"`
	CatModelModality *int64  `json:"cat_model_modality"`
	OnlyActive       *bool   `json:"only_active"`
	Q                *string `json:"q"`
	Page             int     `json:"page"`
	Size             int     `json:"size"`
}

// Program is one catalog item. The monetary fields are nullable and stay
// nil when the procedure returns NULL; they are never coerced to zero.
type Program struct {
	ProgramVersionID        int64    `json:"program_version_id"`
	ProgramName             string   `json:"program_name"`
	CommercialName          string   `json:"commercial_name"`
	CatTypeProgramID        int64    `json:"cat_type_program_id"`
	CatTypeProgramAlias     string   `json:"cat_type_program_alias"`
	CatModelModalityID      int64    `json:"cat_model_modality_id"`
	CatModelModalityAlias   string   `json:"cat_model_modality_alias"`
	SalesPageURL            string   `json:"sales_page_url"`
	MinimumMoneyProfesional *float64 `json:"minimun_money_profesional"`
	MinimumMoneyStudent     *float64 `json:"minimun_money_student"`
	InvestmentStudent       *float64 `json:"investment_student"`
	InvestmentProfesional   *float64 `json:"investment_profesional"`
	VersionCode             string   `json:"version_code"`
}

// ListResult is the paginated catalog answer. Total comes from the
// procedure's total_count column, not from re-counting rows.
type ListResult struct {
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
	Items []Program `json:"items"`
}

// Service runs catalog queries through the procedure helper.
type Service struct {
	db ProcedureCaller
}

// NewService creates a catalog service on top of the given procedure caller.
func NewService(db ProcedureCaller) *Service {
	return &Service{db: db}
}

// List invokes sp_program_list with the eight documented positional
// arguments in fixed order and maps the returned rows.
func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	if p.Page <= 0 {
		p.Page = defaultPage
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	onlyActive := true
	if p.OnlyActive != nil {
		onlyActive = *p.OnlyActive
	}

	params := []any{
		p.ProgramVersionID,
		p.CatTypeProgram,
		p.CatCategory,
		p.CatModelModality,
		onlyActive,
		p.Q,
		p.Page,
		p.Size,
	}

	rows, err := s.db.CallProcedureReturningRows(ctx, listProcedure, params, postgres.CallOptions{
		StatementTimeout: listTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("program list: %w", err)
	}

	result := &ListResult{
		Page:  p.Page,
		Size:  p.Size,
		Items: make([]Program, 0, len(rows)),
	}
	if len(rows) > 0 {
		result.Total = asInt(rows[0]["total_count"])
	}

	for _, r := range rows {
		result.Items = append(result.Items, Program{
			ProgramVersionID:        int64(asInt(r["program_version_id"])),
			ProgramName:             asString(r["program_name"]),
			CommercialName:          asString(r["commercial_name"]),
			CatTypeProgramID:        int64(asInt(r["cat_type_program_id"])),
			CatTypeProgramAlias:     asString(r["cat_type_program_alias"]),
			CatModelModalityID:      int64(asInt(r["cat_model_modality_id"])),
			CatModelModalityAlias:   asString(r["cat_model_modality_alias"]),
			SalesPageURL:            asString(r["sales_page_url"]),
			MinimumMoneyProfesional: asFloatPtr(r["minimun_money_profesional"]),
			MinimumMoneyStudent:     asFloatPtr(r["minimun_money_student"]),
			InvestmentStudent:       asFloatPtr(r["investment_student"]),
			InvestmentProfesional:   asFloatPtr(r["investment_profesional"]),
			VersionCode:             asString(r["version_code"]),
		})
	}

	return result, nil
}

// asString renders a raw cell as a string, with NULL becoming "".
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// asInt renders a raw cell as an int, with NULL becoming 0.
func asInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	default:
		return 0
	}
}

// asFloatPtr renders a nullable numeric cell. NULL stays nil; it is never
// collapsed to zero. pgx decodes Postgres numeric columns as
// pgtype.Numeric when scanning into any.
func asFloatPtr(v any) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return &t
	case float32:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case pgtype.Numeric:
		if !t.Valid {
			return nil
		}
		fv, err := t.Float64Value()
		if err != nil || !fv.Valid {
			return nil
		}
		f := fv.Float64
		return &f
	default:
		return nil
	}
}
