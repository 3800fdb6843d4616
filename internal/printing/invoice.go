package printing

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Skotchmaster/furniture_supply/internal/domain"
	"github.com/Skotchmaster/furniture_supply/internal/models"
)

// MinRows is the number of table rows an invoice always shows.
const MinRows = 10

//go:embed invoice.html
var invoiceHTML string

var invoice = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"amount": FormatAmount,
}).Parse(invoiceHTML))

type row struct {
	Number int
	Filled bool
	Line   models.OrderLine
}

type Renderer struct {
	Now func() time.Time
	Loc *time.Location
}

// Render writes the printable invoice of o. A logo that is not a data image
// or an http(s) URL is skipped.
func (r *Renderer) Render(o *models.Order, logo string) ([]byte, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: nothing to print", domain.ErrExternalService)
	}
	rows := make([]row, 0, max(MinRows, len(o.Lines)))
	for i, l := range o.Lines {
		rows = append(rows, row{Number: i + 1, Filled: true, Line: l})
	}
	for n := len(rows); n < MinRows; n++ {
		rows = append(rows, row{Number: n + 1})
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	loc := r.Loc
	if loc == nil {
		loc = time.UTC
	}

	data := struct {
		Order     *models.Order
		Logo      template.URL
		Rows      []row
		PrintedAt string
	}{
		Order:     o,
		Logo:      safeLogo(logo),
		Rows:      rows,
		PrintedAt: now().In(loc).Format("2006/01/02"),
	}

	var buf bytes.Buffer
	if err := invoice.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: render invoice: %v", domain.ErrExternalService, err)
	}
	return buf.Bytes(), nil
}

func safeLogo(logo string) template.URL {
	logo = strings.TrimSpace(logo)
	switch {
	case strings.HasPrefix(logo, "data:image/"),
		strings.HasPrefix(logo, "https://"),
		strings.HasPrefix(logo, "http://"):
		return template.URL(logo)
	}
	return ""
}

var persianDigits = []rune("۰۱۲۳۴۵۶۷۸۹")

// FormatAmount renders n with Persian digits and thousands separators.
func FormatAmount(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var sb strings.Builder
	if neg {
		sb.WriteRune('-')
	}
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteRune('٬')
		}
		sb.WriteRune(persianDigits[c-'0'])
	}
	return sb.String()
}

// ValidLogo reports whether logo can be shown on an invoice.
func ValidLogo(logo string) bool {
	return logo == "" || safeLogo(logo) != ""
}
