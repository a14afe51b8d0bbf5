package services

import (
	"context"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"community_justice_go/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// getChromePath returns the Chrome executable path from environment variable
func getChromePath() string {
	return os.Getenv("CHROME_PATH")
}

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	PageSize     string // letter, legal, A4
	MarginPoints int    // uniform margin in points (72 = 1 inch)
}

// DefaultPDFOptions returns the options used for the printed case record
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageSize:     "letter",
		MarginPoints: 72,
	}
}

// RenderCaseRecordHTML builds the printable record of a case. The markup is
// self-contained so headless Chrome can print it without external assets.
func RenderCaseRecordHTML(c *models.Case, deadline Deadline, settings *models.PlatformSettings) string {
	esc := html.EscapeString

	primary := models.DefaultPrimaryColor
	footer := ""
	if settings != nil {
		primary = settings.PrimaryColor
		footer = settings.FooterText
	}

	estimatedValue := "—"
	if c.EstimatedValue != nil {
		estimatedValue = fmt.Sprintf("$%.2f", *c.EstimatedValue)
	}

	extension := "No"
	if c.ExtensionGranted {
		extension = "Sí"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:Georgia,serif;font-size:12pt;color:#222}")
	fmt.Fprintf(&b, "h1{font-size:16pt;color:%s;border-bottom:2px solid %s;padding-bottom:6px}", esc(primary), esc(primary))
	b.WriteString("table{width:100%;border-collapse:collapse;margin-top:12px}")
	b.WriteString("td{padding:4px 8px;vertical-align:top;border-bottom:1px solid #ddd}")
	b.WriteString("td.label{width:34%;font-weight:bold}")
	b.WriteString("p.footer{margin-top:24px;font-size:9pt;color:#777}")
	b.WriteString("</style></head><body>")

	fmt.Fprintf(&b, "<h1>Acta del Caso %s</h1>", esc(c.CaseNumber))

	rows := [][2]string{
		{"Fecha de registro", c.DateRegistered.Format("02/01/2006 15:04")},
		{"Estado", models.StatusLabel(c.Status)},
		{"Solicitante", c.ApplicantName},
		{"Cédula del solicitante", c.ApplicantID},
		{"Involucrado", c.InvolvedName},
		{"Cédula del involucrado", c.InvolvedID},
		{"Lugar del conflicto", c.Location},
		{"Tipo de conflicto", models.ConflictTypeLabel(c.ConflictType)},
		{"Otro tipo", c.OtherConflictType},
		{"Medios de resolución", c.ResolutionMethods},
		{"Otro medio", c.OtherResolutionMethod},
		{"Bloques", c.LocationBlocks},
		{"Otro bloque", c.OtherLocationBlock},
		{"Valor aproximado", estimatedValue},
		{"Prórroga concedida", extension},
		{"Días transcurridos", fmt.Sprintf("%d de %d (%s)", deadline.ElapsedDays, deadline.MaxDays, deadline.Label)},
		{"Descripción", c.ConflictDescription},
		{"Observaciones", c.Notes},
	}

	b.WriteString("<table>")
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "<tr><td class=\"label\">%s</td><td>%s</td></tr>", esc(row[0]), esc(row[1]))
	}
	b.WriteString("</table>")

	if footer != "" {
		fmt.Fprintf(&b, "<p class=\"footer\">%s</p>", esc(footer))
	}
	fmt.Fprintf(&b, "<p class=\"footer\">Generado el %s</p>", time.Now().Format("02/01/2006 15:04"))
	b.WriteString("</body></html>")

	return b.String()
}

// GeneratePDF renders HTML content to PDF using headless Chrome
func GeneratePDF(htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)

	// Check for custom Chrome path (for headless-shell in Docker)
	if chromePath := getChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var paperWidth, paperHeight float64
	switch options.PageSize {
	case "legal":
		paperWidth = 8.5
		paperHeight = 14.0
	case "A4":
		paperWidth = 8.27
		paperHeight = 11.69
	default: // letter
		paperWidth = 8.5
		paperHeight = 11.0
	}

	margin := float64(options.MarginPoints) / 72.0

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.Sleep(100 * time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// GenerateCaseRecordPDF renders the printable record of a case to PDF
func GenerateCaseRecordPDF(c *models.Case, deadline Deadline, settings *models.PlatformSettings) ([]byte, error) {
	htmlContent := RenderCaseRecordHTML(c, deadline, settings)
	return GeneratePDF(htmlContent, DefaultPDFOptions())
}
