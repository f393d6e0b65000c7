package ga

// Wire types for the Analytics Reporting API v4 batchGet call, trimmed to
// the fields this tool uses.
// https://developers.google.com/analytics/devguides/reporting/core/v4

type batchGetRequest struct {
	ReportRequests []reportRequest `json:"reportRequests"`
}

type reportRequest struct {
	ViewID            string      `json:"viewId"`
	DateRanges        []dateRange `json:"dateRanges"`
	Dimensions        []dimension `json:"dimensions"`
	Metrics           []metric    `json:"metrics"`
	FiltersExpression string      `json:"filtersExpression,omitempty"`
	SamplingLevel     string      `json:"samplingLevel,omitempty"`
	PageToken         string      `json:"pageToken,omitempty"`
}

type dateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type dimension struct {
	Name string `json:"name"`
}

type metric struct {
	Expression string `json:"expression"`
}

type batchGetResponse struct {
	Reports []reportPayload `json:"reports"`
}

type reportPayload struct {
	Data          reportData `json:"data"`
	NextPageToken string     `json:"nextPageToken"`
}

type reportData struct {
	Rows []ReportRow `json:"rows"`
}

// ReportRow is one row of a report: dimension values in request order plus
// metric value sets. It is also the raw shape written by the extract
// command, so it round-trips through report files.
type ReportRow struct {
	Dimensions []string       `json:"dimensions"`
	Metrics    []MetricValues `json:"metrics"`
}

// MetricValues holds one date range's metric values, as decimal strings the
// way the API returns them.
type MetricValues struct {
	Values []string `json:"values"`
}
