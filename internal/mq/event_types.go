package mq

// Routing keys published by this service.
const (
	RoutingKeyProjectSynced = "project.synced"
)

// ProjectSyncedPayload announces the outcome of one reconciliation run.
type ProjectSyncedPayload struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}
