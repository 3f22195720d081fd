package docextract

import (
	"context"
	"strings"
	"testing"

	"github.com/Abraxas-365/peoplehub/internal/docextract/extracttest"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/fsx/fsxlocal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor(t *testing.T) (*Extractor, *fsxlocal.LocalFileSystem) {
	t.Helper()
	fs := fsxlocal.NewLocalFileSystem(t.TempDir())
	return NewExtractor(fs), fs
}

func TestExtractFile_PDFKeepsPageOrder(t *testing.T) {
	ctx := context.Background()
	ex, fs := newExtractor(t)

	require.NoError(t, fs.WriteFile(ctx, "cv.pdf", extracttest.PDF("First page\nGo developer", "Second page")))

	text, err := ex.ExtractFile(ctx, "cv.pdf", FormatPDF)
	require.NoError(t, err)

	assert.Contains(t, text, "First page")
	assert.Contains(t, text, "Go developer")
	assert.Contains(t, text, "Second page")
	assert.Less(t, strings.Index(text, "First page"), strings.Index(text, "Second page"))
}

func TestExtractFile_DOCX(t *testing.T) {
	ctx := context.Background()
	ex, fs := newExtractor(t)

	require.NoError(t, fs.WriteFile(ctx, "cv.docx", extracttest.DOCX("Jane Doe", "Skills: Go & SQL")))

	text, err := ex.ExtractFile(ctx, "cv.docx", FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go & SQL", text)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	ex, _ := newExtractor(t)

	_, err := ex.Extract(context.Background(), []byte("plain"), FormatFromPath("notes.txt"))
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeUnsupportedFormat))

	_, err = ex.ExtractFile(context.Background(), "missing.txt", FormatFromPath("missing.txt"))
	assert.True(t, errx.IsCode(err, CodeUnsupportedFormat))
}

func TestExtract_Failures(t *testing.T) {
	ex, _ := newExtractor(t)
	ctx := context.Background()

	_, err := ex.Extract(ctx, []byte("not a pdf at all"), FormatPDF)
	assert.True(t, errx.IsCode(err, CodeExtractionFailed))

	_, err = ex.Extract(ctx, []byte("not a zip"), FormatDOCX)
	assert.True(t, errx.IsCode(err, CodeExtractionFailed))

	_, err = ex.Extract(ctx, nil, FormatDOCX)
	assert.True(t, errx.IsCode(err, CodeExtractionFailed))

	_, err = ex.ExtractFile(ctx, "nope.pdf", FormatPDF)
	assert.True(t, errx.IsCode(err, CodeExtractionFailed))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatPDF, FormatFromPath("/tmp/CV.PDF"))
	assert.Equal(t, FormatDOCX, FormatFromPath("resume.docx"))
	assert.False(t, FormatFromPath("resume.doc").IsSupported())
	assert.Equal(t, FormatPDF, ParseFormat(" .Pdf "))
}
