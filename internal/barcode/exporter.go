package barcode

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// File extensions of the exports.
const (
	ExtPNG = "png"
	ExtPDF = "pdf"
)

// documentWidthMM is the page width of PDF exports (A4 width).
const documentWidthMM = 210.0

// FileName returns the download name for a tracker id.
func FileName(trackerID, ext string) string {
	return trackerID + "." + ext
}

// Exporter writes rendered symbols to disk.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter builds an exporter.
func NewExporter(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

// ExportImage writes <trackerId>.png into dir and returns its path.
func (e *Exporter) ExportImage(dir string, sym *Symbol) (string, error) {
	return e.export(dir, sym, ExtPNG, e.WriteImage)
}

// ExportDocument writes <trackerId>.pdf into dir and returns its path.
func (e *Exporter) ExportDocument(dir string, sym *Symbol) (string, error) {
	return e.export(dir, sym, ExtPDF, e.WriteDocument)
}

// WriteImage encodes the symbol as PNG.
func (e *Exporter) WriteImage(w io.Writer, sym *Symbol) error {
	if sym == nil || sym.img == nil {
		return ErrNoSymbol
	}
	if err := png.Encode(w, sym.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteDocument embeds the PNG raster into a single page whose height follows
// the image aspect ratio.
func (e *Exporter) WriteDocument(w io.Writer, sym *Symbol) error {
	var raster bytes.Buffer
	if err := e.WriteImage(&raster, sym); err != nil {
		return err
	}

	bounds := sym.img.Bounds()
	pageHeight := documentWidthMM * float64(bounds.Dy()) / float64(bounds.Dx())

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: documentWidthMM, Ht: pageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(sym.TrackerID, true)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(sym.TrackerID, opts, &raster)
	pdf.ImageOptions(sym.TrackerID, 0, 0, documentWidthMM, pageHeight, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (e *Exporter) export(dir string, sym *Symbol, ext string, write func(io.Writer, *Symbol) error) (string, error) {
	if sym == nil {
		e.logger.Error("could not export barcode", zap.String("format", ext), zap.Error(ErrNoSymbol))
		return "", ErrNoSymbol
	}

	name := FileName(sym.TrackerID, ext)
	if filepath.Base(name) != name {
		err := fmt.Errorf("tracker id %q is not a valid file name", sym.TrackerID)
		e.logger.Error("could not export barcode", zap.String("format", ext), zap.Error(err))
		return "", err
	}
	path := filepath.Join(dir, name)

	var buf bytes.Buffer
	if err := write(&buf, sym); err != nil {
		e.logger.Error("could not export barcode", zap.String("format", ext), zap.String("tracker_id", sym.TrackerID), zap.Error(err))
		return "", fmt.Errorf("export %s: %w", name, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		e.logger.Error("could not export barcode", zap.String("format", ext), zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("export %s: %w", name, err)
	}

	e.logger.Info("barcode exported", zap.String("path", path))
	return path, nil
}
