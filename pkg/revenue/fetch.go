package revenue

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Revenue pages are fetched with a desktop browser user agent; several
// financial-data sites refuse the default Go client string.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// siteTableClass is the CSS class the target site puts on its
// financial-data tables.
const siteTableClass = "table.table"

// FetchError reports a failed page retrieval: either a transport error
// (Err set) or a non-success HTTP status.
type FetchError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return "revenue page fetch: " + e.Err.Error()
	}
	return "revenue page fetch: " + e.Status
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Extractor retrieves revenue pages and turns them into normalized
// tables.
type Extractor struct {
	Client *http.Client
	Logger *zap.Logger
}

// NewExtractor returns an Extractor with a fixed request timeout.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

// FetchTable retrieves url and extracts a normalized revenue table.
// Network and HTTP errors are returned as *FetchError and are not
// retried. Once the page body is in hand the extraction never fails:
// when no usable table exists the result is simply empty.
func (e *Extractor) FetchTable(ctx context.Context, url string) (Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.Logger.Warn("revenue page did not parse as HTML", zap.String("url", url), zap.Error(err))
		return Table{}, nil
	}

	raw, name := selectTable(doc)
	e.Logger.Debug("revenue table selected",
		zap.String("url", url),
		zap.String("strategy", name))
	return Clean(raw), nil
}

// A strategy inspects the parsed document and either claims a raw table
// or returns nil to hand over to the next one in the chain.
type strategy struct {
	name    string
	extract func(doc *goquery.Document) *RawTable
}

// The chain is evaluated in order: the site-specific financial-data
// table, then any generic table with a revenue-named column, then the
// widest generic table on the page.
var strategies = []strategy{
	{"site-table", siteTable},
	{"revenue-named-table", revenueNamedTable},
	{"widest-table", widestTable},
}

// selectTable runs the strategy chain and reports which strategy won.
// A nil table (no tables on the page at all) cleans to an empty Table.
func selectTable(doc *goquery.Document) (*RawTable, string) {
	for _, s := range strategies {
		if raw := s.extract(doc); raw != nil {
			return raw, s.name
		}
	}
	return nil, "none"
}

// siteTable claims the first table carrying the site's financial-data
// class, regardless of its content.
func siteTable(doc *goquery.Document) *RawTable {
	sel := doc.Find(siteTableClass).First()
	if sel.Length() == 0 {
		return nil
	}
	return parseTable(sel)
}

// revenueNamedTable claims the first generic table with at least two
// columns and a column name containing "revenue".
func revenueNamedTable(doc *goquery.Document) *RawTable {
	var match *RawTable
	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := parseTable(sel)
		if raw.width() >= 2 && raw.hasColumn("revenue") {
			match = raw
			return false
		}
		return true
	})
	return match
}

// widestTable claims the generic table with the most columns; the main
// data table is usually the widest one on the page. First wins on ties.
func widestTable(doc *goquery.Document) *RawTable {
	var widest *RawTable
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		raw := parseTable(sel)
		if widest == nil || raw.width() > widest.width() {
			widest = raw
		}
	})
	return widest
}

// parseTable extracts header cell texts and row cell texts from a table
// selection. Rows without any td cell (header rows, spacer rows) are
// filtered out. Header names are kept only when the th count matches
// the column count; otherwise the table stays positional.
func parseTable(sel *goquery.Selection) *RawTable {
	var header []string
	sel.Find("th").Each(func(_ int, th *goquery.Selection) {
		header = append(header, strings.TrimSpace(th.Text()))
	})

	raw := &RawTable{}
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) > 0 {
			raw.Rows = append(raw.Rows, cells)
		}
	})

	if len(header) > 0 && len(header) == raw.width() {
		raw.Columns = header
	}
	return raw
}
