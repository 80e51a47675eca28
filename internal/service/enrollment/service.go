// Package enrollment accepts validated form submissions and writes each
// one as a fixed-width row into the target spreadsheet.
package enrollment

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/we-edu/enrollment-api/internal/platform/logger"
)

// rowWidth is the fixed column count of one enrollment row (A..AE):
// 26 form fields, two hyperlink cells, two raw storage keys, and the write
// timestamp.
const rowWidth = 31

// SheetWriter is the slice of the spreadsheet client the service needs.
type SheetWriter interface {
	ColumnRowCount(ctx context.Context, sheetName string) (int, error)
	UpdateRow(ctx context.Context, rng string, row []any) error
}

// Attachments carries the object-store keys of the identity-document
// images, previously issued by the upload signer. Either may be absent.
type Attachments struct {
	DNIFrontKey string `json:"dni_front_key"`
	DNIBackKey  string `json:"dni_back_key"`
}

// Submission is the typed enrollment form. Fields arrive as JSON from the
// public form; absent fields decode to their zero value and are written as
// empty cells, never as a null marker.
type Submission struct {
	Email                  string `json:"email" validate:"required,email"`
	Documento              string `json:"documento"`
	Born                   string `json:"born"`
	Apellidos              string `json:"apellidos"`
	Nombres                string `json:"nombres"`
	Celular                string `json:"celular"`
	CategoriaPrograma      string `json:"categoriaPrograma"`
	Programa               string `json:"programa"`
	Carrera                string `json:"carrera"`
	CarreraOtra            string `json:"carreraOtra"`
	Universidad            string `json:"universidad"`
	UniversidadOtra        string `json:"universidadOtra"`
	GradoAcademico         string `json:"gradoAcademico"`
	SituacionActual        string `json:"situacionActual"`
	AreaActual             string `json:"areaActual"`
	AreaDeseada            string `json:"areaDeseada"`
	Empresa                string `json:"empresa"`
	Puesto                 string `json:"puesto"`
	AniosExp               string `json:"aniosExp"`
	Sector                 string `json:"sector"`
	ProgramaEmprendimiento string `json:"programaEmprendimiento"`
	TallerSpeaking         string `json:"tallerSpeaking"`
	Pais                   string `json:"pais"`
	Departamento           string `json:"departamento"`
	NecesidadEspecial      string `json:"necesidadEspecial"`
	NecesidadEspecialOtra  string `json:"necesidadEspecialOtra"`

	Archivos Attachments `json:"archivos"`
}

// Service writes submissions to one sheet of one spreadsheet.
type Service struct {
	sheet         SheetWriter
	sheetName     string
	publicBaseURL string
	now           func() time.Time

	// mu serializes the next-row computation with the row write. The
	// read-then-write sequence is not atomic against other processes; a
	// single-process deployment is fully serialized by this lock.
	mu sync.Mutex
}

// NewService creates an enrollment service writing to the named sheet.
func NewService(sheet SheetWriter, sheetName, publicBaseURL string) *Service {
	return &Service{
		sheet:         sheet,
		sheetName:     sheetName,
		publicBaseURL: publicBaseURL,
		now:           time.Now,
	}
}

// Submit computes the next writable row and writes the submission there.
// The write targets an explicit range so the header row (row 1) and
// previously written rows are never overwritten.
func (s *Service) Submit(ctx context.Context, sub Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.nextRow(ctx)
	if err != nil {
		return fmt.Errorf("compute next row: %w", err)
	}

	rng := fmt.Sprintf("%s!A%d:AE%d", s.sheetName, next, next)
	row := s.buildRow(sub)

	logger.FromContext(ctx).Debug("writing enrollment row",
		"range", rng,
		"columns", len(row))

	if err := s.sheet.UpdateRow(ctx, rng, row); err != nil {
		return fmt.Errorf("write row at %s: %w", rng, err)
	}
	return nil
}

// nextRow returns the first writable row: one past the occupied rows of
// column A, and never less than 2 so the header row stays intact even on
// an empty sheet.
func (s *Service) nextRow(ctx context.Context) (int, error) {
	count, err := s.sheet.ColumnRowCount(ctx, s.sheetName)
	if err != nil {
		return 0, err
	}
	return max(2, count+1), nil
}

// buildRow lays the submission out in the fixed 31-column order the sheet
// expects. The final column is the write timestamp in RFC 3339 UTC.
func (s *Service) buildRow(sub Submission) []any {
	frontKey := sub.Archivos.DNIFrontKey
	backKey := sub.Archivos.DNIBackKey

	row := make([]any, 0, rowWidth)
	row = append(row,
		safe(sub.Email),
		safe(sub.Documento),
		safe(sub.Born),
		safe(sub.Apellidos),
		safe(sub.Nombres),
		safe(sub.Celular),
		safe(sub.CategoriaPrograma),
		safe(sub.Programa),
		safe(sub.Carrera),
		safe(sub.CarreraOtra),
		safe(sub.Universidad),
		safe(sub.UniversidadOtra),
		safe(sub.GradoAcademico),
		safe(sub.SituacionActual),
		safe(sub.AreaActual),
		safe(sub.AreaDeseada),
		safe(sub.Empresa),
		safe(sub.Puesto),
		safe(sub.AniosExp),
		safe(sub.Sector),
		safe(sub.ProgramaEmprendimiento),
		safe(sub.TallerSpeaking),
		safe(sub.Pais),
		safe(sub.Departamento),
		safe(sub.NecesidadEspecial),
		safe(sub.NecesidadEspecialOtra),
		hyperlinkCell(s.viewURL(frontKey), "Ver DNI frontal"),
		hyperlinkCell(s.viewURL(backKey), "Ver DNI reverso"),
		safe(frontKey),
		safe(backKey),
		s.now().UTC().Format(time.RFC3339),
	)
	return row
}

// viewURL composes the clickable redirect link for a storage key. An
// absent key yields an empty string, which renders as an empty cell.
func (s *Service) viewURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/file/view?key=%s", s.publicBaseURL, url.QueryEscape(key))
}

// hyperlinkCell renders a HYPERLINK formula, or an empty cell when there is
// no target.
func hyperlinkCell(href, text string) any {
	if href == "" {
		return ""
	}
	return fmt.Sprintf(`=HYPERLINK("%s";"%s")`, href, text)
}

// safe normalizes a cell value before it is written: nil becomes the empty
// string so the sheet never receives a null marker; everything else passes
// through unchanged.
func safe(v any) any {
	if v == nil {
		return ""
	}
	return v
}
