package mocks

//go:generate mockgen -source=../llm/provider.go -destination=./llm_mocks.go -package=mocks -exclude_interfaces=HTTPClient

// This file contains go:generate directives for creating mocks.
// MockHTTPClient is hand-written and lives in http_client_mock.go.
