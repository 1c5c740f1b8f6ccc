package messages

import (
	"fmt"

	matchstatefb "github.com/cbodonnell/pong/flatbuffers/matchstate"
	messagefb "github.com/cbodonnell/pong/flatbuffers/message"
	"github.com/cbodonnell/pong/pkg/kinematic"
	flatbuffers "github.com/google/flatbuffers/go"
)

// SerializeMessage encodes the envelope and compresses it with codec.
func SerializeMessage(codec Codec, m *Message) ([]byte, error) {
	b, err := SerializeMessageFlatbuffer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}

	compressed, err := codec.Compress(b)
	if err != nil {
		return nil, fmt.Errorf("failed to compress message: %v", err)
	}

	return compressed, nil
}

// DeserializeMessage decompresses a frame with codec and decodes the envelope.
func DeserializeMessage(codec Codec, data []byte) (*Message, error) {
	b, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

func SerializeMessageFlatbuffer(m *Message) ([]byte, error) {
	builder := flatbuffers.NewBuilder(len(m.Payload) + 64)

	sessionID := builder.CreateString(m.SessionID)
	payload := builder.CreateByteVector(m.Payload)

	messagefb.MessageStart(builder)
	messagefb.MessageAddSessionId(builder, sessionID)
	messagefb.MessageAddType(builder, byte(m.Type))
	messagefb.MessageAddPayload(builder, payload)
	messageOffset := messagefb.MessageEnd(builder)
	builder.Finish(messageOffset)

	return builder.FinishedBytes(), nil
}

// DeserializeMessageFlatbuffer decodes an envelope.
// Frames come from untrusted connections, so out-of-range offsets are reported as errors.
func DeserializeMessageFlatbuffer(b []byte) (message *Message, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("message of %d bytes is too short", len(b))
	}
	defer func() {
		if r := recover(); r != nil {
			message, err = nil, fmt.Errorf("malformed message: %v", r)
		}
	}()

	messageFlatbuffer := messagefb.GetRootAsMessage(b, 0)
	message = &Message{
		SessionID: string(messageFlatbuffer.SessionId()),
		Type:      MessageType(messageFlatbuffer.Type()),
		Payload:   messageFlatbuffer.PayloadBytes(),
	}

	return message, nil
}

func SerializeMatchState(state *ServerMatchState) ([]byte, error) {
	builder := flatbuffers.NewBuilder(256)
	matchState := SerializeMatchStateFlatbuffer(builder, state)
	builder.Finish(matchState)
	return builder.FinishedBytes(), nil
}

func DeserializeMatchState(b []byte) (*ServerMatchState, error) {
	matchState, err := DeserializeMatchStateFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize match state: %v", err)
	}

	return matchState, nil
}

func SerializeMatchStateFlatbuffer(builder *flatbuffers.Builder, state *ServerMatchState) flatbuffers.UOffsetT {
	slots := make([]flatbuffers.UOffsetT, 0, len(state.Slots))
	for i := range state.Slots {
		slots = append(slots, SerializePaddleSlotFlatbuffer(builder, &state.Slots[i]))
	}
	matchstatefb.MatchStateStartSlotsVector(builder, len(slots))
	for i := len(slots) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(slots[i])
	}
	slotVector := builder.EndVector(len(slots))

	matchstatefb.BallStart(builder)
	matchstatefb.BallAddX(builder, state.Ball.Position.X)
	matchstatefb.BallAddY(builder, state.Ball.Position.Y)
	matchstatefb.BallAddVx(builder, state.Ball.Velocity.X)
	matchstatefb.BallAddVy(builder, state.Ball.Velocity.Y)
	ball := matchstatefb.BallEnd(builder)

	matchstatefb.MatchStateStart(builder)
	matchstatefb.MatchStateAddTimestamp(builder, state.Timestamp)
	matchstatefb.MatchStateAddPhase(builder, state.Phase)
	matchstatefb.MatchStateAddWinner(builder, int8(state.Winner))
	matchstatefb.MatchStateAddConnected(builder, int32(state.Connected))
	matchstatefb.MatchStateAddScoringPaused(builder, state.ScoringPaused)
	matchstatefb.MatchStateAddBall(builder, ball)
	matchstatefb.MatchStateAddSlots(builder, slotVector)

	return matchstatefb.MatchStateEnd(builder)
}

func SerializePaddleSlotFlatbuffer(builder *flatbuffers.Builder, slot *PaddleSlotState) flatbuffers.UOffsetT {
	sessionID := builder.CreateString(slot.SessionID)

	matchstatefb.PaddleSlotStart(builder)
	matchstatefb.PaddleSlotAddIndex(builder, byte(slot.Index))
	matchstatefb.PaddleSlotAddSessionId(builder, sessionID)
	matchstatefb.PaddleSlotAddY(builder, slot.Y)
	matchstatefb.PaddleSlotAddScore(builder, int32(slot.Score))
	matchstatefb.PaddleSlotAddReady(builder, slot.Ready)

	return matchstatefb.PaddleSlotEnd(builder)
}

func DeserializeMatchStateFlatbuffer(b []byte) (state *ServerMatchState, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("match state of %d bytes is too short", len(b))
	}
	defer func() {
		if r := recover(); r != nil {
			state, err = nil, fmt.Errorf("malformed match state: %v", r)
		}
	}()

	fb := matchstatefb.GetRootAsMatchState(b, 0)
	state = &ServerMatchState{
		Timestamp:     fb.Timestamp(),
		Phase:         fb.Phase(),
		Winner:        int(fb.Winner()),
		Connected:     int(fb.Connected()),
		ScoringPaused: fb.ScoringPaused(),
	}
	if ball := fb.Ball(nil); ball != nil {
		state.Ball = BallState{
			Position: kinematic.Vector{X: ball.X(), Y: ball.Y()},
			Velocity: kinematic.Vector{X: ball.Vx(), Y: ball.Vy()},
		}
	}

	state.Slots = make([]PaddleSlotState, 0, fb.SlotsLength())
	for i := 0; i < fb.SlotsLength(); i++ {
		slot := &matchstatefb.PaddleSlot{}
		if !fb.Slots(slot, i) {
			return nil, fmt.Errorf("failed to get paddle slot at index %d", i)
		}
		state.Slots = append(state.Slots, PaddleSlotFlatbufferToPaddleSlotState(slot))
	}

	return state, nil
}

func PaddleSlotFlatbufferToPaddleSlotState(fb *matchstatefb.PaddleSlot) PaddleSlotState {
	return PaddleSlotState{
		Index:     int(fb.Index()),
		SessionID: string(fb.SessionId()),
		Y:         fb.Y(),
		Score:     int(fb.Score()),
		Ready:     fb.Ready(),
	}
}
