// Package erp implements the HTTP client for the upstream billing
// backend. The backend is a black box: endpoints are consumed exactly
// as exposed, including their inconsistencies (mixed field casing,
// raw-scalar responses, 404 as "not found").
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jewelsoft/estima-api/internal/config"
	"github.com/jewelsoft/estima-api/internal/domain/erp"
)

// Client talks to the billing backend over HTTP/JSON.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	stoneClient *http.Client
}

// NewClient creates a backend client from configuration. Stone batch
// posts use a dedicated, shorter timeout.
func NewClient(cfg config.ERPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	stoneTimeout := cfg.StonePostTimeout
	if stoneTimeout <= 0 {
		stoneTimeout = 10 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		stoneClient: &http.Client{Timeout: stoneTimeout},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("erp: build request %s: %w", path, err)
	}
	return c.do(c.httpClient, req, path, out)
}

func (c *Client) post(ctx context.Context, client *http.Client, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erp: encode request %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, reader)
	if err != nil {
		return fmt.Errorf("erp: build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(client, req, path, out)
}

func (c *Client) do(client *http.Client, req *http.Request, path string, out interface{}) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("erp: %s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erp: read response %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Path: path, Code: resp.StatusCode, Body: truncate(data, 512)}
	}
	if out == nil {
		return nil
	}
	if raw, ok := out.(*rawBody); ok {
		*raw = rawBody(data)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("erp: decode response %s: %w", path, err)
	}
	return nil
}

// rawBody captures a response body verbatim for endpoints that return
// bare scalars instead of JSON objects.
type rawBody []byte

// scalar strips quotes and whitespace from a raw scalar response.
func (r rawBody) scalar() string {
	return strings.Trim(strings.TrimSpace(string(r)), `"`)
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("erp: %s returned %d: %s", e.Path, e.Code, e.Body)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

func (c *Client) TodayRate(ctx context.Context) (*erp.TodayRate, error) {
	var out erp.TodayRate
	if err := c.get(ctx, "/todayrate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListItems(ctx context.Context) ([]erp.ItemRow, error) {
	var out []erp.ItemRow
	if err := c.get(ctx, "/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TagIssueStatus(ctx context.Context, itemID int, tagNo string) (*erp.TagStatus, error) {
	q := url.Values{}
	q.Set("ITEMID", strconv.Itoa(itemID))
	q.Set("TAGNO", tagNo)

	var out erp.TagStatus
	err := c.get(ctx, "/tag-details", q, &out)
	if err != nil {
		var se *StatusError
		// 404 means the tag has never been issued
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) EstimationRows(ctx context.Context, itemID int, tagNo string) ([]erp.EstimationRow, error) {
	q := url.Values{}
	q.Set("ITEMID", strconv.Itoa(itemID))
	q.Set("TAGNO", tagNo)

	var out []erp.EstimationRow
	if err := c.get(ctx, "/estimationTotal", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) NextTranNo(ctx context.Context) (string, error) {
	var raw rawBody
	if err := c.get(ctx, "/tranno", nil, &raw); err != nil {
		return "", err
	}
	return raw.scalar(), nil
}

func (c *Client) EstBatchNo(ctx context.Context, costID, billDate, companyID string, isEstimate bool) (string, error) {
	q := url.Values{}
	q.Set("costId", costID)
	q.Set("billDate", billDate)
	q.Set("companyId", companyID)
	q.Set("isEstimate", strconv.FormatBool(isEstimate))

	var raw rawBody
	if err := c.get(ctx, "/estbatchno", q, &raw); err != nil {
		return "", err
	}
	return raw.scalar(), nil
}

func (c *Client) StoneInputs(ctx context.Context, itemID int, tagNo string) ([]erp.StoneInput, error) {
	q := url.Values{}
	q.Set("itemid", strconv.Itoa(itemID))
	q.Set("tagno", tagNo)

	var out []erp.StoneInput
	if err := c.get(ctx, "/stnInputs", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StoneCatCode(ctx context.Context, itemID int, stnItemID string) (string, error) {
	q := url.Values{}
	q.Set("itemId", strconv.Itoa(itemID))
	q.Set("stnItemId", stnItemID)

	var out erp.StoneCatCode
	if err := c.get(ctx, "/stone-catcode", q, &out); err != nil {
		return "", err
	}
	return out.StoneCatCode, nil
}

func (c *Client) TagMeta(ctx context.Context, tagNo string) (*erp.TagMeta, error) {
	var out erp.TagMeta
	if err := c.get(ctx, "/tagDetails/"+url.PathEscape(tagNo), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TranDate(ctx context.Context, itemID int, tagNo string) (string, error) {
	q := url.Values{}
	q.Set("ITEMID", strconv.Itoa(itemID))
	q.Set("TAGNO", tagNo)

	var out erp.TranDateResponse
	if err := c.get(ctx, "/trandate", q, &out); err != nil {
		return "", err
	}
	return out.TranDate, nil
}

func (c *Client) PostIssueBatch(ctx context.Context, records []erp.IssueRecord) ([]erp.IssueAck, error) {
	var raw rawBody
	if err := c.post(ctx, c.httpClient, "/estissue", nil, records, &raw); err != nil {
		return nil, err
	}

	// The backend answers either a bare array or {"data": [...]}.
	var acks []erp.IssueAck
	if err := json.Unmarshal(raw, &acks); err == nil {
		return acks, nil
	}
	var wrapped struct {
		Data []erp.IssueAck `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, fmt.Errorf("erp: /estissue returned unexpected payload: %s", truncate(raw, 512))
}

func (c *Client) NextStoneSno(ctx context.Context, costID, companyID string) (string, error) {
	q := url.Values{}
	q.Set("costId", costID)
	q.Set("companyId", companyID)

	var raw rawBody
	if err := c.get(ctx, "/generate-estissstone-sno", q, &raw); err != nil {
		return "", err
	}
	return raw.scalar(), nil
}

func (c *Client) PostStoneBatch(ctx context.Context, records []erp.StoneRecord) error {
	return c.post(ctx, c.stoneClient, "/eststnissue", nil, records, nil)
}

func (c *Client) NextTaxSno(ctx context.Context, costID, companyID string) (string, error) {
	q := url.Values{}
	q.Set("costId", costID)
	q.Set("companyId", companyID)

	var raw rawBody
	if err := c.get(ctx, "/generate-esttaxtran-sno", q, &raw); err != nil {
		return "", err
	}
	return raw.scalar(), nil
}

func (c *Client) TaxDetails(ctx context.Context, itemID int) ([]erp.TaxDetail, error) {
	var out []erp.TaxDetail
	if err := c.get(ctx, "/getEstTaxTranDetails/"+strconv.Itoa(itemID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PostTaxEntry(ctx context.Context, record erp.TaxRecord) error {
	return c.post(ctx, c.httpClient, "/estTaxTran", nil, record, nil)
}

func (c *Client) AdvanceTranNo(ctx context.Context) error {
	return c.post(ctx, c.httpClient, "/updateTranno", nil, nil, nil)
}

func (c *Client) IPAddress(ctx context.Context) (string, error) {
	var raw rawBody
	if err := c.get(ctx, "/ipaddress", nil, &raw); err != nil {
		return "", err
	}

	// Either {"ip": "..."} or a bare string.
	var obj struct {
		IP string `json:"ip"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.IP != "" {
		return obj.IP, nil
	}
	return raw.scalar(), nil
}

func (c *Client) TranDetails(ctx context.Context, tranNo string) (*erp.TranDetails, error) {
	var out []erp.TranDetails
	if err := c.get(ctx, "/details/"+url.PathEscape(tranNo), nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (c *Client) PostPrintMeta(ctx context.Context, meta erp.PrintMeta) error {
	return c.post(ctx, c.httpClient, "/estprint", nil, meta, nil)
}

func (c *Client) PrintedRows(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
	var out []erp.PrintedRow
	if err := c.get(ctx, "/printDetails/"+url.PathEscape(estBatchNo), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Offer(ctx context.Context, tagNo string) (*erp.Offer, error) {
	q := url.Values{}
	q.Set("tagno", tagNo)

	var out erp.Offer
	if err := c.post(ctx, c.httpClient, "/offer", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
