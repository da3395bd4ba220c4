package wire

import "google.golang.org/protobuf/types/known/timestamppb"

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterDeviceResponse struct {
	DeviceId  string                 `json:"device_id"`
	Token     string                 `json:"token"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at,omitempty"`
}

type Confession struct {
	Id        string                 `json:"id"`
	Text      string                 `json:"text"`
	Crush     string                 `json:"crush,omitempty"`
	Hearts    int64                  `json:"hearts"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type ListConfessionsResponse struct {
	Confessions []*Confession `json:"confessions"`
}

type SubmitConfessionRequest struct {
	Text  string `json:"text"`
	Crush string `json:"crush,omitempty"`
}

type SubmitConfessionResponse struct {
	Confession *Confession `json:"confession"`
}

type SetHeartsRequest struct {
	Id     string `json:"id"`
	Hearts int64  `json:"hearts"`
}

type IncrementHeartsRequest struct {
	Id string `json:"id"`
}

type HeartsResponse struct {
	Id     string `json:"id"`
	Hearts int64  `json:"hearts"`
}

// Change operations as reported by the database trigger.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"

	// OpResync asks the watcher to refetch everything. It is the first event
	// of every Watch stream and follows a lost database listener.
	OpResync = "RESYNC"
)

type ChangeEvent struct {
	Op string                 `json:"op"`
	Id string                 `json:"id"`
	At *timestamppb.Timestamp `json:"at,omitempty"`
}

type ClaimPracticeResponse struct {
	ClaimedAt *timestamppb.Timestamp `json:"claimed_at,omitempty"`
}

type ShareCardRequest struct {
	Text string `json:"text"`
}

type ShareCardResponse struct {
	Url       string                 `json:"url"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at,omitempty"`
}
