package core

import (
	"net/url"
	"strings"
)

// FilterAll is the filter option that disables a filter.
const FilterAll = "All"

// FundFilter holds the Funds list selections. Empty or unknown values behave
// like FilterAll.
type FundFilter struct {
	Status   string
	Category string
}

// NewFundFilter normalizes raw selections into a filter.
func NewFundFilter(status, category string) FundFilter {
	f := FundFilter{Status: FilterAll, Category: FilterAll}
	status = strings.TrimSpace(status)
	for _, s := range FundStatuses() {
		if string(s) == status {
			f.Status = status
		}
	}
	category = strings.TrimSpace(category)
	for _, c := range FundCategories() {
		if string(c) == category {
			f.Category = category
		}
	}
	return f
}

// StatusOptions returns the status selector values, FilterAll first.
func StatusOptions() []string {
	opts := []string{FilterAll}
	for _, s := range FundStatuses() {
		opts = append(opts, string(s))
	}
	return opts
}

// CategoryOptions returns the category selector values, FilterAll first.
func CategoryOptions() []string {
	opts := []string{FilterAll}
	for _, c := range FundCategories() {
		opts = append(opts, string(c))
	}
	return opts
}

// Query builds the query string for the funds endpoint. The status parameter
// always precedes category; both set to FilterAll yields "".
func (f FundFilter) Query() string {
	var params []string
	if f.Status != "" && f.Status != FilterAll {
		params = append(params, "status="+url.QueryEscape(f.Status))
	}
	if f.Category != "" && f.Category != FilterAll {
		params = append(params, "category="+url.QueryEscape(f.Category))
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + strings.Join(params, "&")
}

// Path returns the funds endpoint path including the filter query.
func (f FundFilter) Path() string {
	return "/funds" + f.Query()
}
