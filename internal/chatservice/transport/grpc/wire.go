package grpc

import (
	"fmt"

	"chatlink/internal/chatservice"

	"google.golang.org/protobuf/encoding/protowire"
)

// Проводные формы сообщений chat-service. Схема фиксирована внешним
// контрактом (package grpc, сервис ChatService); номера и типы полей
// поддерживаются вручную, без кодогенерации.

// wireMessage — сообщение, умеющее в протобуф-кодирование protowire.
type wireMessage interface {
	encode() []byte
	decode(b []byte) error
}

// wireCodec подключается через grpc.ForceCodec на каждом вызове.
type wireCodec struct{}

func (wireCodec) Name() string { return "proto" }

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("wire codec: unsupported message type %T", v)
	}

	return m.encode(), nil
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("wire codec: unsupported message type %T", v)
	}

	return m.decode(data)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

// decodeFields обходит поля сообщения, отдавая каждое в set;
// неизвестные поля пропускаются.
func decodeFields(b []byte, set func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := set(num, typ, b)
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
		}
		b = b[n:]
	}

	return nil
}

func consumeString(b []byte, dst *string) (int, error) {
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = v

	return n, nil
}

func consumeVarint(b []byte, dst *uint64) (int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = v

	return n, nil
}

// grpc.RegisterRequest: 1 user_id, 2 tinode_id, 3 full_name.
type registerRequest chatservice.RegisterRequest

func (m *registerRequest) encode() []byte {
	var b []byte
	b = appendString(b, 1, m.UserID)
	b = appendString(b, 2, m.TinodeID)
	b = appendString(b, 3, m.FullName)

	return b
}

func (m *registerRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			return consumeString(b, &m.UserID)
		case 2:
			return consumeString(b, &m.TinodeID)
		case 3:
			return consumeString(b, &m.FullName)
		}

		return 0, nil
	})
}

// grpc.RegisterResponse / SaveDeviceTokenResponse: 1 state_message.
type stateResponse chatservice.StateResponse

func (m *stateResponse) encode() []byte {
	return appendString(nil, 1, m.StateMessage)
}

func (m *stateResponse) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			return consumeString(b, &m.StateMessage)
		}

		return 0, nil
	})
}

// grpc.SaveDeviceTokenRequest: 1 recipient_id, 2 client_id, 3 token,
// 4 platform (int32), 5 notif_pipeline.
type saveDeviceTokenRequest chatservice.SaveDeviceTokenRequest

func (m *saveDeviceTokenRequest) encode() []byte {
	var b []byte
	b = appendString(b, 1, m.RecipientID)
	b = appendString(b, 2, m.ClientID)
	b = appendString(b, 3, m.Token)
	b = appendInt32(b, 4, m.Platform)
	b = appendString(b, 5, m.NotifPipeline)

	return b
}

func (m *saveDeviceTokenRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(b, &m.RecipientID)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(b, &m.ClientID)
		case num == 3 && typ == protowire.BytesType:
			return consumeString(b, &m.Token)
		case num == 4 && typ == protowire.VarintType:
			var v uint64
			n, err := consumeVarint(b, &v)
			m.Platform = int32(v)
			return n, err
		case num == 5 && typ == protowire.BytesType:
			return consumeString(b, &m.NotifPipeline)
		}

		return 0, nil
	})
}

// grpc.GetParticipantsRequest: 1 order_id.
type getParticipantsRequest chatservice.GetParticipantsRequest

func (m *getParticipantsRequest) encode() []byte {
	return appendString(nil, 1, m.OrderID)
}

func (m *getParticipantsRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 && typ == protowire.BytesType {
			return consumeString(b, &m.OrderID)
		}

		return 0, nil
	})
}

// grpc.GetParticipantsResponse: 1 call_room_id, 2 chat_room_id, 3 full_name.
type getParticipantsResponse chatservice.GetParticipantsResponse

func (m *getParticipantsResponse) encode() []byte {
	var b []byte
	b = appendString(b, 1, m.CallRoomID)
	b = appendString(b, 2, m.ChatRoomID)
	b = appendString(b, 3, m.FullName)

	return b
}

func (m *getParticipantsResponse) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			return consumeString(b, &m.CallRoomID)
		case 2:
			return consumeString(b, &m.ChatRoomID)
		case 3:
			return consumeString(b, &m.FullName)
		}

		return 0, nil
	})
}

// grpc.GenerateTokenRequest: 1 client_id, 2 client_secret.
type generateTokenRequest chatservice.GenerateTokenRequest

func (m *generateTokenRequest) encode() []byte {
	var b []byte
	b = appendString(b, 1, m.ClientID)
	b = appendString(b, 2, m.ClientSecret)

	return b
}

func (m *generateTokenRequest) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(b, &m.ClientID)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(b, &m.ClientSecret)
		}

		return 0, nil
	})
}

// grpc.GenerateTokenResponse: 1 access_token, 2 expires_in (int64).
type generateTokenResponse chatservice.GenerateTokenResponse

func (m *generateTokenResponse) encode() []byte {
	var b []byte
	b = appendString(b, 1, m.AccessToken)
	if m.ExpiresIn != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(m.ExpiresIn))
	}

	return b
}

func (m *generateTokenResponse) decode(b []byte) error {
	return decodeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(b, &m.AccessToken)
		case num == 2 && typ == protowire.VarintType:
			var v uint64
			n, err := consumeVarint(b, &v)
			m.ExpiresIn = int64(v)
			return n, err
		}

		return 0, nil
	})
}
