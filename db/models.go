package db

import (
	"github.com/beatwave/onair/common"
)

// broadcastSlot a single broadcast slot booking
type broadcastSlot struct {
	common.BroadcastSlot
	// DJSlots associated performer sub-intervals
	DJSlots []djSlot `gorm:"foreignKey:BroadcastSlotID"`
	// Recordings associated capture segments
	Recordings []recording `gorm:"foreignKey:BroadcastSlotID"`
}

// TableName hard code table name
func (broadcastSlot) TableName() string {
	return "broadcast_slots"
}

// djSlot a single performer sub-interval of a broadcast slot
type djSlot struct {
	common.DJSlot
	Slot broadcastSlot `gorm:"constraint:OnDelete:CASCADE;foreignKey:BroadcastSlotID" validate:"-"`
}

// TableName hard code table name
func (djSlot) TableName() string {
	return "dj_slots"
}

// recording a single capture segment of a broadcast slot
type recording struct {
	common.Recording
	Slot broadcastSlot `gorm:"constraint:OnDelete:CASCADE;foreignKey:BroadcastSlotID" validate:"-"`
}

// TableName hard code table name
func (recording) TableName() string {
	return "recordings"
}
