package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

const defaultPerPage = 50

// paginate validates the page/per_page query params, counts the query and
// emits Link and X-Total-Count headers. Both params must be at least 1.
func paginate(w http.ResponseWriter, r *http.Request, query *gorm.DB) (offset, limit int, err error) {
	page, err := positiveQueryParam(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	perPage, err := positiveQueryParam(r, "per_page", defaultPerPage)
	if err != nil {
		return 0, 0, err
	}

	var total uint64
	if result := query.Count(&total); result.Error != nil {
		return 0, 0, result.Error
	}

	addPaginationHeaders(w, r, page, perPage, total)
	return int((page - 1) * perPage), int(perPage), nil
}

func positiveQueryParam(r *http.Request, name string, defaultValue uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", name)
	}
	if value < 1 {
		return 0, errors.Errorf("%s must be at least 1", name)
	}
	return value, nil
}

func addPaginationHeaders(w http.ResponseWriter, r *http.Request, page, perPage, total uint64) {
	lastPage := total / perPage
	if total%perPage > 0 {
		lastPage++
	}

	pageURL, _ := url.ParseRequestURI(r.URL.String())
	query := pageURL.Query()
	header := ""
	if lastPage > page {
		query.Set("page", strconv.FormatUint(page+1, 10))
		pageURL.RawQuery = query.Encode()
		header = "<" + pageURL.String() + `>; rel="next", `
	}
	query.Set("page", strconv.FormatUint(lastPage, 10))
	pageURL.RawQuery = query.Encode()
	header += "<" + pageURL.String() + `>; rel="last"`

	w.Header().Add("Link", header)
	w.Header().Add("X-Total-Count", fmt.Sprintf("%v", total))
}
