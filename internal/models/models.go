// models содержит доменные типы chatlink: исход chat-service вызова (Outcome),
// перечисления платформы и push-канала, профиль учётных данных, привязку
// device-токена и данные участника разговора.
package models

import "strings"

// Outcome — грубая классификация ответа chat-service по строке state_message,
// независимая от транспортного успеха/ошибки вызова.
type Outcome int

const (
	// OutcomeUnknown — сервер вернул нераспознанное состояние.
	OutcomeUnknown Outcome = iota
	// OutcomeSuccess — state_message == "success".
	OutcomeSuccess
	// OutcomeError — state_message == "error".
	OutcomeError
)

// ParseOutcome разбирает state_message без учёта регистра.
// Распознаются "success" и "error"; всё остальное — OutcomeUnknown.
func ParseOutcome(stateMessage string) Outcome {
	switch strings.ToLower(stateMessage) {
	case "success":
		return OutcomeSuccess
	case "error":
		return OutcomeError
	default:
		return OutcomeUnknown
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Platform — целевая платформа устройства в контракте chat-service.
type Platform int32

const (
	PlatformIOS     Platform = 1
	PlatformAndroid Platform = 2
	PlatformHuawei  Platform = 3
)

// ParsePlatform разбирает имя платформы из конфигурации.
// Неизвестное значение трактуется как iOS (исторический дефолт клиента).
func ParsePlatform(name string) Platform {
	switch strings.ToLower(name) {
	case "android":
		return PlatformAndroid
	case "huawei":
		return PlatformHuawei
	default:
		return PlatformIOS
	}
}

// NotifPipeline — канал доставки push-уведомлений.
type NotifPipeline string

const (
	PipelineAPNS   NotifPipeline = "A"
	PipelineFCM    NotifPipeline = "F"
	PipelineHuawei NotifPipeline = "H"
)

// PipelineFor возвращает канал доставки, соответствующий платформе.
func PipelineFor(p Platform) NotifPipeline {
	switch p {
	case PlatformAndroid:
		return PipelineFCM
	case PlatformHuawei:
		return PipelineHuawei
	default:
		return PipelineAPNS
	}
}

// TokenBundle — выпущенная chat-service пара токенов доступа.
// RefreshToken/RefreshExpiresIn заполняются только REST-транспортом:
// gRPC-ответ несёт лишь access-токен и срок его жизни.
type TokenBundle struct {
	AccessToken      string
	ExpiresIn        int64
	RefreshToken     string
	RefreshExpiresIn int64
}

// ParticipantInfo — идентификаторы комнат и имя собеседника по заказу.
type ParticipantInfo struct {
	ChatRoomID string
	CallRoomID string
	FullName   string
}

// CredentialProfile — связка учётных данных для login-or-register.
// Не персистится: собирается заново из профиля пользователя перед каждой попыткой.
type CredentialProfile struct {
	Username string
	Password string
	FullName string
}

// CredentialsFromPhone строит учётные данные из номера телефона профиля.
// Номер нормализуется: префикс "+62" заменяется на "0", остаточный "+"
// удаляется; пароль детерминированно совпадает с нормализованным номером.
func CredentialsFromPhone(phone, fullName string) CredentialProfile {
	username := phone
	if strings.HasPrefix(username, "+62") {
		username = "0" + strings.TrimPrefix(username, "+62")
	}
	username = strings.ReplaceAll(username, "+", "")

	return CredentialProfile{
		Username: username,
		Password: username,
		FullName: fullName,
	}
}

// DeviceTokenBinding — привязка push-токена устройства к сессии.
// Может отправляться только при аутентифицированной сессии (непустой RecipientID).
type DeviceTokenBinding struct {
	RecipientID string
	ClientID    string
	Token       string
	Platform    Platform
	Pipeline    NotifPipeline
}
