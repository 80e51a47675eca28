package enrollment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSheet plays back a fixed occupied-row count and captures the write.
type fakeSheet struct {
	rowCount    int
	rowCountErr error
	updateErr   error

	gotRange string
	gotRow   []any
}

func (f *fakeSheet) ColumnRowCount(ctx context.Context, sheetName string) (int, error) {
	return f.rowCount, f.rowCountErr
}

func (f *fakeSheet) UpdateRow(ctx context.Context, rng string, row []any) error {
	f.gotRange = rng
	f.gotRow = row
	return f.updateErr
}

func newTestService(sheet *fakeSheet) *Service {
	svc := NewService(sheet, "Inscripciones", "https://forms.example.com")
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 28, 15, 4, 5, 0, time.UTC)
	}
	return svc
}

func TestNextRow(t *testing.T) {
	tests := []struct {
		name     string
		rowCount int
		want     int
	}{
		{name: "fully_empty_sheet", rowCount: 0, want: 2},
		{name: "header_only", rowCount: 1, want: 2},
		{name: "header_plus_five_rows", rowCount: 6, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeSheet{rowCount: tt.rowCount})
			got, err := svc.nextRow(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "row 1 is reserved for headers")
		})
	}
}

func TestSafe(t *testing.T) {
	assert.Equal(t, "", safe(nil))
	assert.Equal(t, 0, safe(0))
	assert.Equal(t, "x", safe("x"))
	assert.Equal(t, "", safe(""))
}

func TestSubmit_WritesFixedWidthRow(t *testing.T) {
	sheet := &fakeSheet{rowCount: 6}
	svc := newTestService(sheet)

	sub := Submission{
		Email:   "applicant@example.com",
		Nombres: "Ana",
		Archivos: Attachments{
			DNIFrontKey: "dni/front/0011223344556677.png",
			DNIBackKey:  "dni/back/8899aabbccddeeff.png",
		},
	}

	require.NoError(t, svc.Submit(context.Background(), sub))

	assert.Equal(t, "Inscripciones!A7:AE7", sheet.gotRange)
	require.Len(t, sheet.gotRow, 31)

	assert.Equal(t, "applicant@example.com", sheet.gotRow[0])
	assert.Equal(t, "Ana", sheet.gotRow[4])

	// Omitted fields become empty cells, never a null marker.
	for _, i := range []int{1, 2, 3, 5, 10, 25} {
		assert.Equal(t, "", sheet.gotRow[i], "column %d must be empty", i)
	}

	// Hyperlink cells compose the public view URL with the encoded key.
	assert.Equal(t,
		`=HYPERLINK("https://forms.example.com/file/view?key=dni%2Ffront%2F0011223344556677.png";"Ver DNI frontal")`,
		sheet.gotRow[26])
	assert.Equal(t,
		`=HYPERLINK("https://forms.example.com/file/view?key=dni%2Fback%2F8899aabbccddeeff.png";"Ver DNI reverso")`,
		sheet.gotRow[27])

	// Raw keys and the write timestamp close the row.
	assert.Equal(t, "dni/front/0011223344556677.png", sheet.gotRow[28])
	assert.Equal(t, "dni/back/8899aabbccddeeff.png", sheet.gotRow[29])
	assert.Equal(t, "2026-08-28T15:04:05Z", sheet.gotRow[30])
}

func TestSubmit_MissingAttachmentsYieldEmptyCells(t *testing.T) {
	sheet := &fakeSheet{rowCount: 0}
	svc := newTestService(sheet)

	require.NoError(t, svc.Submit(context.Background(), Submission{Email: "a@b.pe"}))

	assert.Equal(t, "Inscripciones!A2:AE2", sheet.gotRange, "empty sheet writes below the header")
	assert.Equal(t, "", sheet.gotRow[26], "absent front key renders an empty link cell")
	assert.Equal(t, "", sheet.gotRow[27], "absent back key renders an empty link cell")
	assert.Equal(t, "", sheet.gotRow[28])
	assert.Equal(t, "", sheet.gotRow[29])
}

func TestSubmit_ReadFailurePropagates(t *testing.T) {
	readErr := errors.New("sheet unavailable")
	svc := newTestService(&fakeSheet{rowCountErr: readErr})

	err := svc.Submit(context.Background(), Submission{Email: "a@b.pe"})
	assert.ErrorIs(t, err, readErr)
}

func TestSubmit_WriteFailurePropagates(t *testing.T) {
	writeErr := errors.New("update rejected")
	svc := newTestService(&fakeSheet{rowCount: 3, updateErr: writeErr})

	err := svc.Submit(context.Background(), Submission{Email: "a@b.pe"})
	assert.ErrorIs(t, err, writeErr)
}
