package models

// RequestDetails is attached to the request context for log correlation.
type RequestDetails struct {
	RequestID  string `json:"request_id"`
	IP         string `json:"ip"`
	HTTPMethod string `json:"http_method"`
	Path       string `json:"path"`
}
