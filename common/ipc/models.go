package ipc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/beatwave/onair/common"
)

type baseMessageTypeDT string

const (
	ipcMessageTypeBroadcast baseMessageTypeDT = "broadcast"
)

// BaseMessage base IPC message payload. All other messages must be built
// upon this structure.
type BaseMessage struct {
	// Type the message type
	Type baseMessageTypeDT `json:"type" validate:"required,oneof=broadcast"`
}

/*
ParseRawMessage parse raw IPC message

	@param rawMsg []byte - original message
	@returns parsed message
*/
func ParseRawMessage(rawMsg []byte) (interface{}, error) {
	var asBaseMsg BaseMessage
	if err := json.Unmarshal(rawMsg, &asBaseMsg); err != nil {
		return nil, err
	}
	// Based on the type, decide how to parse
	switch asBaseMsg.Type {
	case ipcMessageTypeBroadcast:
		return parseRawBroadcastMessage(rawMsg)
	default:
		return nil, fmt.Errorf("unknown IPC message type '%s'", asBaseMsg.Type)
	}
}

// =====================================================================================
// IPC Broadcast Messages

type baseBroadcastTypeDT string

const (
	ipcBroadcastSlotStatus      baseBroadcastTypeDT = "report_slot_status"
	ipcBroadcastRecordingStatus baseBroadcastTypeDT = "report_recording_status"
)

// BaseBroadcast base broadcast IPC message payload. All other broadcasts must be built
// upon this structure
type BaseBroadcast struct {
	BaseMessage
	// BroadcastType the broadcast type
	BroadcastType baseBroadcastTypeDT `json:"broadcast_type" validate:"required,oneof=report_slot_status report_recording_status"`
}

// SlotStatusReport broadcast slot lifecycle status report
type SlotStatusReport struct {
	BaseBroadcast
	// SlotID broadcast slot ID
	SlotID string `json:"slot_id" validate:"required"`
	// Status the slot status after the transition
	Status common.SlotStatus `json:"status" validate:"required,oneof=scheduled live paused completed missed"`
	// LiveDJUserID account ID holding the live claim, if any
	LiveDJUserID *string `json:"live_dj_user_id,omitempty"`
	// Timestamp when the transition was committed
	Timestamp time.Time `json:"timestamp"`
}

/*
NewSlotStatusReport define new SlotStatusReport message

	@param slotID string - broadcast slot ID
	@param status common.SlotStatus - slot status after the transition
	@param liveDJUserID *string - account ID holding the live claim, if any
	@param timestamp time.Time - when the transition was committed
	@returns defined structure
*/
func NewSlotStatusReport(
	slotID string, status common.SlotStatus, liveDJUserID *string, timestamp time.Time,
) SlotStatusReport {
	return SlotStatusReport{
		BaseBroadcast: BaseBroadcast{
			BaseMessage:   BaseMessage{Type: ipcMessageTypeBroadcast},
			BroadcastType: ipcBroadcastSlotStatus,
		},
		SlotID:       slotID,
		Status:       status,
		LiveDJUserID: liveDJUserID,
		Timestamp:    timestamp,
	}
}

// RecordingStatusReport broadcast recording lifecycle status report
type RecordingStatusReport struct {
	BaseBroadcast
	// SlotID broadcast slot ID
	SlotID string `json:"slot_id" validate:"required"`
	// RecordingID recording entry ID
	RecordingID string `json:"recording_id" validate:"required"`
	// Status the recording status after the update
	Status common.RecordingStatus `json:"status" validate:"required,oneof=recording processing ready failed"`
	// Timestamp when the update was committed
	Timestamp time.Time `json:"timestamp"`
}

/*
NewRecordingStatusReport define new RecordingStatusReport message

	@param slotID string - broadcast slot ID
	@param recordingID string - recording entry ID
	@param status common.RecordingStatus - recording status after the update
	@param timestamp time.Time - when the update was committed
	@returns defined structure
*/
func NewRecordingStatusReport(
	slotID, recordingID string, status common.RecordingStatus, timestamp time.Time,
) RecordingStatusReport {
	return RecordingStatusReport{
		BaseBroadcast: BaseBroadcast{
			BaseMessage:   BaseMessage{Type: ipcMessageTypeBroadcast},
			BroadcastType: ipcBroadcastRecordingStatus,
		},
		SlotID:      slotID,
		RecordingID: recordingID,
		Status:      status,
		Timestamp:   timestamp,
	}
}

/*
parseRawBroadcastMessage parse raw IPC broadcast message

	@param rawMsg []byte - original message
	@returns parsed message
*/
func parseRawBroadcastMessage(rawMsg []byte) (interface{}, error) {
	var asBroadcastMsg BaseBroadcast
	if err := json.Unmarshal(rawMsg, &asBroadcastMsg); err != nil {
		return nil, err
	}
	// Based on the type, parse
	switch asBroadcastMsg.BroadcastType {
	// Slot Status Report
	case ipcBroadcastSlotStatus:
		var broadcast SlotStatusReport
		if err := json.Unmarshal(rawMsg, &broadcast); err != nil {
			return nil, err
		}
		return broadcast, nil

	// Recording Status Report
	case ipcBroadcastRecordingStatus:
		var broadcast RecordingStatusReport
		if err := json.Unmarshal(rawMsg, &broadcast); err != nil {
			return nil, err
		}
		return broadcast, nil

	default:
		return nil, fmt.Errorf("unknown IPC broadcast message type '%s'", asBroadcastMsg.Type)
	}
}
