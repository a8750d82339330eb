package models

// AppInfo describes the running service for the /api/info endpoint.
type AppInfo struct {
	Version string `json:"version"`
	Name    string `json:"name"`
}
