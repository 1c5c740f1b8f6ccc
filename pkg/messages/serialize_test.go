package messages

import (
	"testing"

	"github.com/cbodonnell/pong/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeMessage(t *testing.T) {
	tests := []struct {
		name    string
		codec   string
		message *Message
	}{
		{
			name:  "zstd move",
			codec: "zstd",
			message: &Message{
				SessionID: "2f1d4a6e-0000-4000-8000-000000000001",
				Type:      MessageTypeClientMove,
				Payload:   []byte(`{"direction":"up"}`),
			},
		},
		{
			name:  "snappy set position",
			codec: "snappy",
			message: &Message{
				Type:    MessageTypeClientSetPosition,
				Payload: []byte(`{"y":120.5}`),
			},
		},
		{
			name:  "uncompressed ready without payload",
			codec: "none",
			message: &Message{
				Type: MessageTypeClientReady,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewCodec(tt.codec)
			require.NoError(t, err)
			assert.Equal(t, tt.codec, codec.Name())

			b, err := SerializeMessage(codec, tt.message)
			require.NoError(t, err)

			got, err := DeserializeMessage(codec, b)
			require.NoError(t, err)
			assert.Equal(t, tt.message.SessionID, got.SessionID)
			assert.Equal(t, tt.message.Type, got.Type)
			assert.Equal(t, string(tt.message.Payload), string(got.Payload))
		})
	}
}

func TestDeserializeMessageRejectsGarbage(t *testing.T) {
	codec, err := NewCodec("none")
	require.NoError(t, err)

	for _, b := range [][]byte{nil, {0x01}, {0xff, 0xff, 0xff, 0x7f, 0x00, 0x00}} {
		_, err := DeserializeMessage(codec, b)
		assert.Error(t, err)
	}

	zstdCodec, err := NewCodec("zstd")
	require.NoError(t, err)
	_, err = DeserializeMessage(zstdCodec, []byte("not a zstd frame"))
	assert.Error(t, err)
}

func TestNewCodecUnknown(t *testing.T) {
	_, err := NewCodec("gzip")
	assert.Error(t, err)
}

func TestSerializeDeserializeMatchState(t *testing.T) {
	tests := []struct {
		name  string
		state *ServerMatchState
	}{
		{
			name: "lobby without winner",
			state: &ServerMatchState{
				Timestamp: 1718000000000,
				Phase:     0,
				Winner:    -1,
				Connected: 1,
				Ball: BallState{
					Position: kinematic.Vector{X: 400, Y: 300},
				},
				Slots: []PaddleSlotState{
					{Index: 0, SessionID: "a", Y: 250, Ready: true},
					{Index: 1, Y: 250},
				},
			},
		},
		{
			name: "ended with winner",
			state: &ServerMatchState{
				Timestamp:     1718000000123,
				Phase:         2,
				Winner:        1,
				Connected:     3,
				ScoringPaused: true,
				Ball: BallState{
					Position: kinematic.Vector{X: -25.5, Y: 412.25},
					Velocity: kinematic.Vector{X: -5, Y: 2.75},
				},
				Slots: []PaddleSlotState{
					{Index: 0, SessionID: "a", Y: 0, Score: 7},
					{Index: 1, SessionID: "b", Y: 500, Score: 11},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeMatchState(tt.state)
			require.NoError(t, err)

			got, err := DeserializeMatchState(b)
			require.NoError(t, err)
			assert.Equal(t, tt.state, got)
		})
	}
}
