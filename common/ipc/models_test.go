package ipc_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/common/ipc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIPCMessageParsing(t *testing.T) {
	assert := assert.New(t)

	type testCase struct {
		input     interface{}
		inputType reflect.Type
	}

	currentTime := time.Now().UTC()
	liveUserID := uuid.NewString()

	testCases := []testCase{
		{
			input: ipc.NewSlotStatusReport(
				uuid.NewString(), common.SlotStatusLive, &liveUserID, currentTime,
			),
			inputType: reflect.TypeOf(ipc.SlotStatusReport{}),
		},
		{
			input: ipc.NewSlotStatusReport(
				uuid.NewString(), common.SlotStatusMissed, nil, currentTime,
			),
			inputType: reflect.TypeOf(ipc.SlotStatusReport{}),
		},
		{
			input: ipc.NewRecordingStatusReport(
				uuid.NewString(), uuid.NewString(), common.RecordingStatusReady, currentTime,
			),
			inputType: reflect.TypeOf(ipc.RecordingStatusReport{}),
		},
	}

	for idx, oneTest := range testCases {
		// Serialize
		asString, err := json.Marshal(oneTest.input)
		assert.Nil(err, "Failed in %d", idx)
		parsed, err := ipc.ParseRawMessage(asString)
		assert.Nil(err, "Failed in %d", idx)
		assert.NotNil(parsed)
		assert.Equalf(
			oneTest.inputType,
			reflect.TypeOf(parsed),
			"Expected type %s, Received type %s",
			oneTest.inputType,
			reflect.TypeOf(parsed),
		)
		assert.EqualValues(parsed, oneTest.input)
	}

	// Case: unknown message type
	{
		_, err := ipc.ParseRawMessage([]byte(`{"type":"request"}`))
		assert.NotNil(err)
	}
}
