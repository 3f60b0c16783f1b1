// notify классифицирует входящие push-уведомления по топику и типу события
// и диспетчеризует их в фоновые дочитки сессии, не устанавливая постоянного
// соединения. Механика доставки push-ей (APNS/FCM) — внешний коллаборатор,
// передающий полезную нагрузку фиксированной формы.
package notify

import (
	"context"
	"log/slog"
	"strconv"
)

// AppState — состояние жизненного цикла приложения в момент доставки push-а.
type AppState int

const (
	// StateActive — приложение на переднем плане; доставка идёт через живое
	// соединение, push игнорируется.
	StateActive AppState = iota
	// StateInactive — приложение в переходном состоянии.
	StateInactive
	// StateInactiveTapped — переход вызван тапом пользователя по уведомлению;
	// дочитку выполняет открываемый экран.
	StateInactiveTapped
	// StateBackground — приложение в фоне.
	StateBackground
)

// Disposition — итог обработки push-а, отдаваемый механизму фоновой доставки.
type Disposition int

const (
	// DispositionFailed — полезная нагрузка некорректна или дочитка не удалась.
	DispositionFailed Disposition = iota
	// DispositionNewData — получены новые данные.
	DispositionNewData
	// DispositionNoData — новых данных нет либо push проигнорирован.
	DispositionNoData
)

func (d Disposition) String() string {
	switch d {
	case DispositionNewData:
		return "new_data"
	case DispositionNoData:
		return "no_data"
	default:
		return "failed"
	}
}

// Payload — поля push-уведомления, потребляемые роутером.
type Payload struct {
	// Topic — имя топика; обязательное поле.
	Topic string
	// What — тип события: "msg", "sub", "read" или пусто (трактуется как msg).
	What string
	// Seq — номер сообщения, закодированный строкой.
	Seq string
	// WebRTC — признак push-а, связанного со звонком.
	WebRTC bool
}

// ParsePayload собирает Payload из сырой карты данных уведомления.
// Признак webrtc — присутствие ключа, значение не интерпретируется.
func ParsePayload(data map[string]string) Payload {
	_, webrtc := data["webrtc"]

	return Payload{
		Topic:  data["topic"],
		What:   data["what"],
		Seq:    data["seq"],
		WebRTC: webrtc,
	}
}

// Fetcher — дочитки состояния сессии, в которые диспетчеризует роутер.
// Реализуется оркестратором поверх messaging.Client.
type Fetcher interface {
	// FetchData дочитывает сообщения топика начиная с seq; keepConnection
	// оставляет соединение живым для звонка.
	FetchData(ctx context.Context, topic string, seq int, keepConnection bool) Disposition
	// FetchDesc перечитывает описание топика (новая подписка).
	FetchDesc(ctx context.Context, topic string) Disposition
	// UpdateRead продвигает отметку прочитанного до seq.
	UpdateRead(ctx context.Context, topic string, seq int) Disposition
}

// Router — чистая классификация push-нагрузки плюс диспетчеризация в Fetcher.
type Router struct {
	fetcher Fetcher
	log     *slog.Logger
}

// NewRouter создаёт роутер уведомлений.
func NewRouter(fetcher Fetcher, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	return &Router{fetcher: fetcher, log: log}
}

// Route классифицирует полезную нагрузку и выполняет соответствующую дочитку.
//
// Правила (в порядке применения):
//   - пустой topic — DispositionFailed;
//   - активное приложение — DispositionNoData (доставка через живое соединение);
//   - тап по уведомлению — DispositionNewData, дочитка здесь не выполняется;
//   - фон/inactive, what пустой или "msg" — требуется seq > 0, иначе Failed;
//     дочитка данных, keepConnection при признаке webrtc;
//   - "sub" — перечитать описание топика;
//   - "read" — при seq > 0 продвинуть отметку прочитанного, иначе Failed;
//   - любой другой what — Failed с записью в лог.
func (r *Router) Route(ctx context.Context, state AppState, p Payload) Disposition {
	if p.Topic == "" {
		return DispositionFailed
	}

	switch state {
	case StateActive:
		return DispositionNoData
	case StateInactiveTapped:
		return DispositionNewData
	}

	switch p.What {
	case "", "msg":
		seq := parseSeq(p.Seq)
		if seq <= 0 {
			return DispositionFailed
		}

		return r.fetcher.FetchData(ctx, p.Topic, seq, p.WebRTC)

	case "sub":
		return r.fetcher.FetchDesc(ctx, p.Topic)

	case "read":
		seq := parseSeq(p.Seq)
		if seq <= 0 {
			return DispositionFailed
		}

		return r.fetcher.UpdateRead(ctx, p.Topic, seq)

	default:
		r.log.Error("invalid_push_kind",
			slog.String("what", p.What),
			slog.String("topic", p.Topic),
		)

		return DispositionFailed
	}
}

func parseSeq(s string) int {
	seq, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return seq
}
