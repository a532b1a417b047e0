package stock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned for unresolvable symbols. Provider failures
// collapse into the same outcome; the cause is logged, not surfaced.
var ErrNotFound = errors.New("stock not found")

// Client fetches quotes from a Yahoo-Finance-shaped market-data provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// Fetch retrieves a one-day price history plus a metadata snapshot for the
// symbol and reshapes them into a Quote. Every failure mode (unknown symbol,
// provider error, empty history) yields ErrNotFound.
func (c *Client) Fetch(ctx context.Context, symbol string) (*Quote, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if sym == "" {
		return nil, ErrNotFound
	}

	price, chartPrevClose, chartVolume, err := c.history(ctx, sym)
	if err != nil {
		c.log.Error().Err(err).Str("symbol", sym).Msg("fetch price history")
		return nil, fmt.Errorf("%s: %w", sym, ErrNotFound)
	}

	q := &Quote{
		Symbol:       sym,
		CurrentPrice: round2(price),
		CompanyName:  sym,
		Sector:       "N/A",
	}

	// metadata snapshot; individual fields may be missing in provider data
	jobj, err := c.summary(ctx, sym)
	if err != nil {
		c.log.Error().Err(err).Str("symbol", sym).Msg("fetch quote summary")
		return nil, fmt.Errorf("%s: %w", sym, ErrNotFound)
	}

	prevClose := price // fallback keeps change at 0 when previous close is absent
	if v, ok := lookupFloat(jobj, "$.quoteSummary.result[0].summaryDetail.previousClose.raw"); ok {
		prevClose = v
	} else if chartPrevClose > 0 {
		prevClose = chartPrevClose
	}
	change := price - prevClose
	q.Change = round2(change)
	if prevClose != 0 {
		q.ChangePercent = round2(change / prevClose * 100)
	}

	q.Volume = chartVolume
	if v, ok := lookupFloat(jobj, "$.quoteSummary.result[0].summaryDetail.volume.raw"); ok {
		q.Volume = int64(v)
	}
	if v, ok := lookupFloat(jobj, "$.quoteSummary.result[0].price.marketCap.raw"); ok {
		q.MarketCap = &v
	}
	if s, ok := lookupString(jobj, "$.quoteSummary.result[0].price.longName"); ok && s != "" {
		q.CompanyName = s
	}
	if s, ok := lookupString(jobj, "$.quoteSummary.result[0].summaryProfile.sector"); ok && s != "" {
		q.Sector = s
	}
	if v, ok := lookupFloat(jobj, "$.quoteSummary.result[0].summaryDetail.trailingPE.raw"); ok {
		q.PERatio = &v
	}
	if v, ok := lookupFloat(jobj, "$.quoteSummary.result[0].summaryDetail.dividendYield.raw"); ok {
		q.DividendYield = &v
	}

	return q, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				ChartPreviousClose  float64 `json:"chartPreviousClose"`
				RegularMarketVolume int64   `json:"regularMarketVolume"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// history returns the latest close of the one-day chart, plus the
// chart-level previous close and volume as fallbacks for the summary call.
func (c *Client) history(ctx context.Context, sym string) (price, prevClose float64, volume int64, err error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.baseURL, url.PathEscape(sym))
	var resp chartResponse
	if err := c.getJSON(ctx, addr, &resp); err != nil {
		return 0, 0, 0, err
	}
	if resp.Chart.Error != nil {
		return 0, 0, 0, fmt.Errorf("provider: %s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return 0, 0, 0, errors.New("empty chart result")
	}
	r := resp.Chart.Result[0]

	// last non-null close of the day
	found := false
	for _, qs := range r.Indicators.Quote {
		for _, cl := range qs.Close {
			if cl != nil {
				price = *cl
				found = true
			}
		}
	}
	if !found {
		if r.Meta.RegularMarketPrice == 0 {
			return 0, 0, 0, errors.New("empty price history")
		}
		price = r.Meta.RegularMarketPrice
	}
	return price, r.Meta.ChartPreviousClose, r.Meta.RegularMarketVolume, nil
}

func (c *Client) summary(ctx context.Context, sym string) (any, error) {
	addr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,summaryDetail,summaryProfile",
		c.baseURL, url.PathEscape(sym))
	var jobj any
	if err := c.getJSON(ctx, addr, &jobj); err != nil {
		return nil, err
	}
	return jobj, nil
}

func (c *Client) getJSON(ctx context.Context, addr string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "finance-tracker/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// lookupFloat extracts a numeric value from loosely shaped provider JSON.
// jsonpath sometimes returns a single value and sometimes a one-element
// list, so both are accepted.
func lookupFloat(jobj any, path string) (float64, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, false
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	v, ok := jval.(float64)
	return v, ok
}

func lookupString(jobj any, path string) (string, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", false
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	return s, ok
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
