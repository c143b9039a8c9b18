package service

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type Index struct {
	Status    string   `json:"status"`
	Purpose   string   `json:"purpose"`
	Endpoints []string `json:"endpoints"`
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
