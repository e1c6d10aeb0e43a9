package dto

import "github.com/psoares/finsync/internal/codec"

// SyncPushRequest is the body of POST /sync/push: one table's worth of
// client-side changes. Creates carry full client records (optionally with a
// local_id the client uses to match the response); updates carry server_id,
// the client's last-known updated_at and the changed fields; deletes carry
// server ids only.
type SyncPushRequest struct {
	Table   string         `json:"table" binding:"required"`
	Creates []codec.Record `json:"creates"`
	Updates []codec.Record `json:"updates"`
	Deletes []int64        `json:"deletes"`
}

// SyncIDMapping reports the server identity assigned to (or confirmed for) a
// client record. LocalID is echoed back exactly as the client sent it.
type SyncIDMapping struct {
	LocalID  any   `json:"local_id"`
	ServerID int64 `json:"server_id"`
}

// SyncConflict reports a server-wins conflict: the stored row was newer than
// the client's last-known version, so the client's update was not applied and
// the server's current representation is returned for local reconciliation.
type SyncConflict struct {
	LocalID    any          `json:"local_id"`
	ServerID   int64        `json:"server_id"`
	ServerData codec.Record `json:"server_data"`
}

// SyncRejection reports an item that was not applied, with itemized reasons.
type SyncRejection struct {
	LocalID  any      `json:"local_id"`
	ServerID *int64   `json:"server_id,omitempty"`
	Reason   string   `json:"reason"`
	Errors   []string `json:"errors"`
}

// SyncPushResponse is the per-item outcome of a push call. Every submitted
// item lands in exactly one of the four lists.
type SyncPushResponse struct {
	Created         []SyncIDMapping `json:"created"`
	Updated         []SyncIDMapping `json:"updated"`
	Conflicts       []SyncConflict  `json:"conflicts"`
	Rejected        []SyncRejection `json:"rejected"`
	ServerTimestamp string          `json:"serverTimestamp"`
}

// SyncPullResponse carries one table's changes since the client's checkpoint:
// live rows as full records, soft-deleted rows as bare server ids. The client
// must persist ServerTimestamp as its next checkpoint.
type SyncPullResponse struct {
	Records         []codec.Record `json:"records"`
	Deleted         []int64        `json:"deleted"`
	ServerTimestamp string         `json:"server_timestamp"`
	OwnerID         int64          `json:"owner_id"`
	HasMore         bool           `json:"has_more"`
}

// SyncStatusResponse summarizes the caller's server-side state, used by the
// client to decide what to pull first.
type SyncStatusResponse struct {
	Tables          map[string]int64 `json:"tables"`
	SupportedTables []string         `json:"supported_tables"`
	ServerTime      string           `json:"server_time"`
}
