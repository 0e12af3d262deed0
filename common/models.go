package common

import (
	"time"
)

// BroadcastType discriminates how a broadcast slot is authorized
type BroadcastType string

const (
	// BroadcastTypeVenue slot reached through a stable venue slug, reused across shows
	BroadcastTypeVenue BroadcastType = "venue"
	// BroadcastTypeRemote slot reached through a one-time capability token
	BroadcastTypeRemote BroadcastType = "remote"
)

// SlotStatus broadcast slot lifecycle state
type SlotStatus string

const (
	// SlotStatusScheduled slot is booked but no one has gone live
	SlotStatusScheduled SlotStatus = "scheduled"
	// SlotStatusLive a performer session is currently admitted
	SlotStatusLive SlotStatus = "live"
	// SlotStatusPaused the live session disconnected without an explicit end
	SlotStatusPaused SlotStatus = "paused"
	// SlotStatusCompleted terminal, the broadcast happened
	SlotStatusCompleted SlotStatus = "completed"
	// SlotStatusMissed terminal, the window passed without anyone going live
	SlotStatusMissed SlotStatus = "missed"
)

// Terminal whether the status is an end state
func (s SlotStatus) Terminal() bool {
	return s == SlotStatusCompleted || s == SlotStatusMissed
}

// RecordingStatus recording segment lifecycle state
type RecordingStatus string

const (
	// RecordingStatusRecording egress is actively capturing
	RecordingStatusRecording RecordingStatus = "recording"
	// RecordingStatusProcessing capture stopped, transport is finalizing the file
	RecordingStatusProcessing RecordingStatus = "processing"
	// RecordingStatusReady terminal, playback URL available
	RecordingStatusReady RecordingStatus = "ready"
	// RecordingStatusFailed terminal, capture was lost
	RecordingStatusFailed RecordingStatus = "failed"
)

// Terminal whether the status is an end state
func (s RecordingStatus) Terminal() bool {
	return s == RecordingStatusReady || s == RecordingStatusFailed
}

// ScheduleStatus where "now" sits relative to a slot's booked window
type ScheduleStatus string

const (
	// ScheduleStatusEarly before the go-live window opens
	ScheduleStatusEarly ScheduleStatus = "early"
	// ScheduleStatusLate past startTime with no one having gone live yet
	ScheduleStatusLate ScheduleStatus = "late"
	// ScheduleStatusOnTime within the go-live window
	ScheduleStatusOnTime ScheduleStatus = "onTime"
	// ScheduleStatusNA schedule position no longer meaningful (already live or terminal)
	ScheduleStatusNA ScheduleStatus = "n/a"
)

// EgressState media transport side egress lifecycle state
type EgressState string

const (
	// EgressStateActive capture is running
	EgressStateActive EgressState = "active"
	// EgressStateComplete capture finalized, playback file available
	EgressStateComplete EgressState = "complete"
	// EgressStateFailed capture was lost
	EgressStateFailed EgressState = "failed"
)

// EgressStatusUpdate media transport egress status callback payload
type EgressStatusUpdate struct {
	// EgressID egress handle the update refers to
	EgressID string `json:"egress_id" validate:"required"`
	// State egress lifecycle state at the transport
	State EgressState `json:"state" validate:"required,oneof=active complete failed"`
	// EndedAt when capture stopped, if it did
	EndedAt *time.Time `json:"ended_at,omitempty"`
	// DurationInSec finalized capture length
	DurationInSec *int `json:"duration,omitempty"`
	// FileURL where the transport wrote the finished file
	FileURL *string `json:"file_url,omitempty"`
}

// PerformerProfile pre-resolved public profile data for one performer
type PerformerProfile struct {
	// DJName performer display name
	DJName string `json:"dj_name" validate:"required"`
	// UserID platform account ID, if the performer has an account
	UserID *string `json:"user_id,omitempty"`
	// Email contact identity used for ahead-of-time profile lookup
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	// Bio short performer bio
	Bio *string `json:"bio,omitempty"`
	// PhotoURL profile photo
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,uri"`
	// SocialLinks performer social links
	SocialLinks []string `json:"social_links,omitempty"`
}

// DJSlot a sub-interval of a venue broadcast slot claimed by one performer (or B3B group)
type DJSlot struct {
	// ID DJ slot entry ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// BroadcastSlotID link to parent broadcast slot
	BroadcastSlotID string `json:"broadcast_slot" gorm:"column:broadcast_slot;not null;index:dj_slot_parent_index" validate:"required"`
	// Position ordering within the parent slot
	Position int `json:"position" gorm:"column:position;not null"`
	// StartTime when this performer's interval begins
	StartTime time.Time `json:"start_ts" gorm:"column:start_ts;not null" validate:"required"`
	// EndTime when this performer's interval ends
	EndTime time.Time `json:"end_ts" gorm:"column:end_ts;not null" validate:"required"`
	// Performers profiles sharing this interval. More than one entry means B3B.
	Performers []PerformerProfile `json:"performers,omitempty" gorm:"column:performers;serializer:json"`
	// PromoContent per-performer promo override
	PromoContent *string `json:"promo,omitempty" gorm:"column:promo;default:null"`
	// ThankYouMessage per-performer thank-you override
	ThankYouMessage *string   `json:"thank_you,omitempty" gorm:"column:thank_you;default:null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Covers whether the DJ slot interval [StartTime, EndTime) contains the timestamp
func (s DJSlot) Covers(timestamp time.Time) bool {
	return !timestamp.Before(s.StartTime) && timestamp.Before(s.EndTime)
}

// Recording one continuous capture segment attached to a broadcast slot
type Recording struct {
	// ID recording entry ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// BroadcastSlotID link to parent broadcast slot
	BroadcastSlotID string `json:"broadcast_slot" gorm:"column:broadcast_slot;not null;index:recording_parent_index" validate:"required"`
	// EgressID opaque handle assigned by the media transport
	EgressID string `json:"egress_id" gorm:"column:egress_id;not null;uniqueIndex:recording_egress_index" validate:"required"`
	// Status recording lifecycle state
	Status RecordingStatus `json:"status" gorm:"column:status;not null" validate:"required,oneof=recording processing ready failed"`
	// StartedAt when capture began
	StartedAt time.Time `json:"started_at" gorm:"column:started_at;not null" validate:"required"`
	// EndedAt when capture stopped
	EndedAt *time.Time `json:"ended_at,omitempty" gorm:"column:ended_at;default:null"`
	// DurationInSec capture length reported by the transport once finalized
	DurationInSec *int `json:"duration,omitempty" gorm:"column:duration;default:null"`
	// URL playback URL, set only once the recording is ready
	URL       *string   `json:"url,omitempty" gorm:"column:url;default:null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BroadcastSlot the unit of scheduling and authorization
type BroadcastSlot struct {
	// ID broadcast slot entry ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// StationID the station this slot belongs to
	StationID string `json:"station" gorm:"column:station;not null;index:broadcast_slot_station_index" validate:"required"`
	// BroadcastType how this slot is authorized
	BroadcastType BroadcastType `json:"broadcast_type" gorm:"column:broadcast_type;not null" validate:"required,oneof=venue remote"`
	// Status slot lifecycle state
	Status SlotStatus `json:"status" gorm:"column:status;not null" validate:"required,oneof=scheduled live paused completed missed"`
	// StartTime booked window start
	StartTime time.Time `json:"start_ts" gorm:"column:start_ts;not null;index:broadcast_slot_time_index" validate:"required"`
	// EndTime booked window end
	EndTime time.Time `json:"end_ts" gorm:"column:end_ts;not null" validate:"required"`
	// BroadcastToken capability token authorizing broadcast actions for this slot
	BroadcastToken string `json:"-" gorm:"column:broadcast_token;not null;uniqueIndex:broadcast_slot_token_index" validate:"required"`
	// TokenExpiresAt capability token expiry, at or after EndTime
	TokenExpiresAt time.Time `json:"token_expires_at" gorm:"column:token_expires_at;not null" validate:"required"`
	// VenueSlug stable venue identifier. Only set for venue type slots.
	VenueSlug *string `json:"venue_slug,omitempty" gorm:"column:venue_slug;default:null"`
	// DJName single performer display name. Only set for remote type slots.
	DJName *string `json:"dj_name,omitempty" gorm:"column:dj_name;default:null"`
	// LiveDJUserID account ID of the performer holding the live claim
	LiveDJUserID *string `json:"live_dj_user_id,omitempty" gorm:"column:live_dj_user_id;default:null"`
	// LiveDJUsername display name of the performer holding the live claim
	LiveDJUsername *string `json:"live_dj_username,omitempty" gorm:"column:live_dj_username;default:null"`
	// CurrentDJSlotID the DJ slot the live claim was made against
	CurrentDJSlotID *string `json:"current_dj_slot,omitempty" gorm:"column:current_dj_slot;default:null"`
	// WentLiveAt first successful go-live instant. Nil means the slot never went live.
	WentLiveAt *time.Time `json:"went_live_at,omitempty" gorm:"column:went_live_at;default:null"`
	// PromoContent show level promo default
	PromoContent *string `json:"promo,omitempty" gorm:"column:promo;default:null"`
	// ThankYouMessage show level thank-you default
	ThankYouMessage *string `json:"thank_you,omitempty" gorm:"column:thank_you;default:null"`
	// DJSlots ordered performer sub-intervals. Only populated for venue type slots.
	DJSlots []DJSlot `json:"dj_slots,omitempty" gorm:"-"`
	// Recordings capture segments accumulated within this slot
	Recordings []Recording `json:"recordings,omitempty" gorm:"-"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// RoomID the media transport room identifier for this slot
func (s BroadcastSlot) RoomID() string {
	return s.ID
}

// =====================================================================================
// Slot lineup variants

// SlotLineup tagged representation of who performs in a broadcast slot
type SlotLineup interface {
	isSlotLineup()
}

// SingleDJ lineup of a remote type slot: one named performer
type SingleDJ struct {
	// DJName performer display name
	DJName string
}

func (SingleDJ) isSlotLineup() {}

// MultiDJ lineup of a venue type slot: an ordered sequence of DJ slots
type MultiDJ struct {
	// Slots performer sub-intervals ordered by start time
	Slots []DJSlot
}

func (MultiDJ) isSlotLineup() {}

// Lineup return the slot's performer lineup as a tagged variant
func (s BroadcastSlot) Lineup() SlotLineup {
	if s.BroadcastType == BroadcastTypeVenue {
		return MultiDJ{Slots: s.DJSlots}
	}
	name := ""
	if s.DJName != nil {
		name = *s.DJName
	}
	return SingleDJ{DJName: name}
}

// LiveClaim the identity fields set while a slot is live or paused
type LiveClaim struct {
	// UserID performer account ID
	UserID string `json:"user_id" validate:"required"`
	// Username performer display name
	Username string `json:"username" validate:"required"`
	// DJSlotID the DJ slot claimed, nil for single performer slots
	DJSlotID *string `json:"dj_slot,omitempty"`
}

// SessionHandle reference to an admitted live session
type SessionHandle struct {
	// SlotID the broadcast slot the session belongs to
	SlotID string `json:"slot_id" validate:"required"`
	// RoomID media transport room the session was admitted to
	RoomID string `json:"room_id" validate:"required"`
	// SessionRef opaque media transport session reference
	SessionRef string `json:"session_ref" validate:"required"`
	// Recording whether a capture egress is running for the session
	Recording bool `json:"recording"`
}

// SlotView the observable state of a slot for a polling or subscribed caller
type SlotView struct {
	// SlotID the broadcast slot in view
	SlotID string `json:"slot_id" validate:"required"`
	// Status slot lifecycle state
	Status SlotStatus `json:"status" validate:"required"`
	// ScheduleStatus where now sits relative to the booked window
	ScheduleStatus ScheduleStatus `json:"schedule_status" validate:"required"`
	// ActiveDJSlot the DJ slot covering now, if any
	ActiveDJSlot *DJSlot `json:"active_dj_slot,omitempty"`
	// SlotChanged whether the active DJ slot differs from the one last claimed
	SlotChanged bool `json:"slot_changed"`
	// CanGoLive whether a go-live attempt would pass the gating window right now
	CanGoLive bool `json:"can_go_live"`
	// GateMessage human readable gating state for display
	GateMessage string `json:"gate_message"`
}
