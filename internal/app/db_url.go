package app

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// dataSource is a postgres connection string in either URL form
// (postgres://...) or keyword/value form (host=... dbname=...).
type dataSource struct {
	raw string
	url *url.URL
}

func parseDataSource(raw string) dataSource {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		return dataSource{raw: raw, url: u}
	}
	return dataSource{raw: raw}
}

// keyword returns the value of a keyword/value parameter, unquoted.
func (d dataSource) keyword(key string) string {
	for _, token := range strings.Fields(d.raw) {
		if v, ok := strings.CutPrefix(token, key+"="); ok {
			return strings.Trim(v, `"'`)
		}
	}
	return ""
}

func (d dataSource) name() string {
	if d.url != nil {
		return strings.TrimPrefix(d.url.Path, "/")
	}
	return d.keyword("dbname")
}

// host is safe to log; credentials never leave the data source.
func (d dataSource) host() string {
	if d.url != nil {
		return d.url.Host
	}
	return d.keyword("host")
}

// withDefault sets a query parameter on URL-form sources unless present.
func (d dataSource) withDefault(key, value string) string {
	if d.url == nil {
		return d.raw
	}
	q := d.url.Query()
	if q.Has(key) {
		return d.raw
	}
	q.Set(key, value)
	u := *d.url
	u.RawQuery = q.Encode()
	return u.String()
}

// NormalizeDBURL appends disable_prepared_binary_result=yes for connection
// poolers that cannot handle binary prepared results. An explicit value in
// the URL wins.
func NormalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}
	return parseDataSource(raw).withDefault(preparedBinaryParam, "yes")
}

func dbNameFromURL(raw string) string {
	return parseDataSource(raw).name()
}
