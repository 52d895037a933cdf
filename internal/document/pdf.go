// Package document renders the one-page asset request form as a PDF. The
// layout (landscape half-A4, helvetica, header mark + address block, body
// template, signature footer) mirrors the paper form it replaces.
package document

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"portal/internal/model"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth  = 210.0
	pageHeight = 148.5

	addressLine1 = "10F ONE TRIUM TOWER Pacific"
	addressLine2 = "Rim Alabang, Muntinlupa City"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var whitespace = regexp.MustCompile(`\s`)

// Generator renders asset request documents. LogoPath points at the
// organization mark; a missing or unreadable file degrades to a blank header
// block, it never blocks generation.
type Generator struct {
	LogoPath string
}

func NewGenerator(logoPath string) *Generator {
	return &Generator{LogoPath: logoPath}
}

// Render produces the request document and its download file name,
// asset-request-<name with whitespace replaced by underscores>-<ISO date>.pdf.
//
// Rendering is two-phase: first the header mark is acquired (with a blank
// fallback on any failure), then the document body is rendered
// unconditionally.
func (g *Generator) Render(req model.AssetRequest) ([]byte, string, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageHeight, Ht: pageWidth},
	})
	pdf.AddPage()

	// Header
	if logo := g.loadLogo(); logo != nil {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
		pdf.ImageOptions("logo", 14, 12, 40, 10, false, opts, 0, "")
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(140, 15, addressLine1)
	pdf.Text(140, 20, addressLine2)

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(0, 36)
	pdf.CellFormat(pageWidth, 8, "Asset Request Form", "", 0, "C", false, 0, "")

	// Body
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(14, 60)
	pdf.MultiCell(182, 5, bodyText(req), "", "L", false)

	// Footer
	pdf.SetLineWidth(0.5)
	pdf.Line(14, pageHeight-25, 80, pageHeight-25)
	pdf.Line(130, pageHeight-25, 196, pageHeight-25)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(35, pageHeight-18, "Employee Signature")
	pdf.Text(148, pageHeight-18, "Team Leader Signature")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render request document: %w", err)
	}

	return buf.Bytes(), FileName(req.Name, time.Now()), nil
}

// loadLogo reads the organization mark, returning nil on any failure so the
// header degrades to blank instead of blocking the render.
func (g *Generator) loadLogo() []byte {
	if g.LogoPath == "" {
		return nil
	}
	data, err := os.ReadFile(g.LogoPath)
	if err != nil {
		log.Printf("WARNING: organization mark unavailable, rendering blank header: %v", err)
		return nil
	}
	if !bytes.HasPrefix(data, pngMagic) {
		log.Printf("WARNING: organization mark at %s is not a PNG, rendering blank header", g.LogoPath)
		return nil
	}
	return data
}

func bodyText(req model.AssetRequest) string {
	phone := req.Phone
	if phone == "" {
		phone = "N/A"
	}
	return fmt.Sprintf(`This letter is to formally request the following asset: a %s (Quantity: %d). This is requested by %s from the %s department.

The justification for this request is as follows:
%s

The required asset specifications are:
%s

This request has a priority level of %s and has been approved by %s (%s).

For any clarifications, the requester can be contacted at %s or %s.
`,
		req.AssetType, req.Quantity, req.Name, req.Department,
		req.Justification,
		req.Description,
		req.Priority, req.ManagerName, req.ManagerEmail,
		req.Email, phone)
}

// FileName builds the download name for a requester and submission date.
func FileName(requester string, at time.Time) string {
	return "asset-request-" + whitespace.ReplaceAllString(requester, "_") + "-" + at.Format("2006-01-02") + ".pdf"
}
