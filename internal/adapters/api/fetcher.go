package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/medwatch/triage/internal/domain/model"
	"github.com/medwatch/triage/pkg/logger"
	"github.com/medwatch/triage/pkg/metrics"
)

// maxPages is a hard upper bound on the fetch loop; the assessment API
// serves at most a few dozen pages.
const maxPages = 500

// pageMeta is the pagination metadata extracted from a response, present
// only when the body carries a pagination object with a numeric
// totalPages. HasNext is set only when the field is an explicit bool.
type pageMeta struct {
	TotalPages int
	HasNext    *bool
}

// FetchAllPatients retrieves every patient record across pages, starting
// at page 1. Response shapes are unwrapped tolerantly and pagination
// metadata is trusted only when well-formed; otherwise the loop stops on
// an empty or short page.
func (c *Client) FetchAllPatients(ctx context.Context) ([]model.Patient, error) {
	var all []model.Patient

	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("limit", strconv.Itoa(c.pageSize))

		body, err := c.do(ctx, http.MethodGet, "/patients", query, nil)
		if err != nil {
			return nil, err
		}

		rawRecords, meta := unwrapPage(body)
		patients := decodeRecords(rawRecords)
		all = append(all, patients...)

		metrics.RecordPageFetched()
		metrics.RecordPatientsFetched(len(patients))
		if c.log != nil {
			c.log.Debug(ctx, "fetched page",
				logger.Int("page", page),
				logger.Int("records", len(rawRecords)),
				logger.Int("decoded", len(patients)),
			)
		}

		if !hasMorePages(meta, page, len(rawRecords), c.pageSize) {
			break
		}

		c.sleep(c.pageDelay)
	}

	return all, nil
}

// hasMorePages decides whether to request the next page. Trusted
// metadata wins; without it a zero-length or short page ends the loop.
func hasMorePages(meta *pageMeta, page, records, pageSize int) bool {
	if meta != nil {
		if meta.HasNext != nil && !*meta.HasNext {
			return false
		}
		return page < meta.TotalPages
	}
	return records >= pageSize && records > 0
}

// unwrapPage extracts the record list and pagination metadata from an
// arbitrary response body. Shape adapters are tried in order: the body
// itself as an array, then a list under "data", "patients", or
// "result". Anything else degrades to an empty page. This is a
// compatibility shim over an unstable upstream, not a schema contract.
func unwrapPage(body []byte) ([]json.RawMessage, *pageMeta) {
	var direct []json.RawMessage
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, nil
	}

	var records []json.RawMessage
	for _, key := range []string{"data", "patients", "result"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil {
			records = list
			break
		}
	}

	return records, extractMeta(obj["pagination"])
}

// extractMeta parses the pagination object. Metadata counts as trusted
// only when totalPages is numeric; hasNext is honored only as an
// explicit bool.
func extractMeta(raw json.RawMessage) *pageMeta {
	if raw == nil {
		return nil
	}

	var pagination struct {
		TotalPages interface{} `json:"totalPages"`
		HasNext    interface{} `json:"hasNext"`
	}
	if err := json.Unmarshal(raw, &pagination); err != nil {
		return nil
	}

	total, ok := pagination.TotalPages.(float64)
	if !ok {
		return nil
	}

	meta := &pageMeta{TotalPages: int(total)}
	if b, ok := pagination.HasNext.(bool); ok {
		meta.HasNext = &b
	}
	return meta
}

// decodeRecords converts raw page elements into patient records,
// skipping elements that are not JSON objects.
func decodeRecords(raw []json.RawMessage) []model.Patient {
	patients := make([]model.Patient, 0, len(raw))
	for _, r := range raw {
		var p model.Patient
		if err := json.Unmarshal(r, &p); err != nil {
			continue
		}
		patients = append(patients, p)
	}
	return patients
}
