// tinode реализует messaging.Client поверх опубликованного gRPC-моста
// Tinode (github.com/tinode/chat/pbx): двунаправленный MessageLoop-стрим,
// корреляция control-ответов по id сообщения.
//
// Проводные формы ({hi},{login},{acc},{sub},{get},{set},{note}) — внешний
// контракт моста; пакет не интерпретирует ничего сверх нужного оркестратору
// и роутеру уведомлений.
package tinode

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"chatlink/internal/messaging"

	"github.com/tinode/chat/pbx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Версия протокола, заявляемая в {hi}.
const protocolVersion = "0.22"

// theCard — публичная карточка топика/пользователя (подмножество полей).
type theCard struct {
	FN   string `json:"fn,omitempty"`
	Note string `json:"note,omitempty"`
}

// Client — клиент gRPC-моста Tinode. Потокобезопасен.
type Client struct {
	addr      string
	userAgent string
	log       *slog.Logger

	// connMu сериализует Connect/Disconnect целиком, включая dial и
	// handshake: конкурентные Connect не открывают второе соединение,
	// опоздавшие дожидаются итога первого.
	connMu sync.Mutex

	mu       sync.Mutex
	conn     *grpc.ClientConn
	stream   pbx.Node_MessageLoopClient
	loopStop context.CancelFunc
	nextID   int64
	pending  map[string]chan *pbx.ServerMsg

	uid         string
	authToken   string
	authExpires time.Time
	autoToken   string
}

var _ messaging.Client = (*Client)(nil)

// New создаёт клиент моста. Соединение устанавливается отдельным Connect.
func New(addr, userAgent string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		addr:      addr,
		userAgent: userAgent,
		log:       log,
		pending:   make(map[string]chan *pbx.ServerMsg),
	}
}

// Connect открывает стрим и выполняет handshake {hi}.
// При живом соединении — no-op.
func (c *Client) Connect(ctx context.Context) error {
	const op = "messaging/tinode.Connect"

	c.connMu.Lock()
	defer c.connMu.Unlock()

	c.mu.Lock()
	connected := c.stream != nil
	c.mu.Unlock()
	if connected {
		return nil
	}

	// Стрим мог оборваться сам: освобождаем остатки прошлого соединения.
	c.teardown()

	conn, err := grpc.NewClient(c.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("%s: dial: %w", op, err)
	}

	// Стрим живёт дольше контекста вызова: его жизнью управляет Disconnect.
	loopCtx, loopStop := context.WithCancel(context.Background())
	stream, err := pbx.NewNodeClient(conn).MessageLoop(loopCtx)
	if err != nil {
		loopStop()
		_ = conn.Close()
		return fmt.Errorf("%s: message loop: %w", op, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.stream = stream
	c.loopStop = loopStop
	c.mu.Unlock()

	go c.readLoop(stream)

	id := c.allocID()
	ctrl, err := c.request(ctx, id, &pbx.ClientMsg{Message: &pbx.ClientMsg_Hi{Hi: &pbx.ClientHi{
		Id:        id,
		UserAgent: c.userAgent,
		Ver:       protocolVersion,
		Lang:      "EN",
	}}})
	if err != nil {
		c.teardown()
		return fmt.Errorf("%s: hi: %w", op, err)
	}
	if err := ctrlError(ctrl); err != nil {
		c.teardown()
		return fmt.Errorf("%s: hi: %w", op, err)
	}

	// Сконфигурирован авто-логин — восстанавливаем сессию сразу.
	if tok := c.autoLoginToken(); tok != "" {
		if _, err := c.LoginToken(ctx, tok); err != nil {
			c.log.Warn("tinode_auto_login_failed", slog.String("err", err.Error()))
		}
	}

	return nil
}

// LoginBasic выполняет {login scheme=basic}.
func (c *Client) LoginBasic(ctx context.Context, uname, password string) (messaging.LoginResult, error) {
	const op = "messaging/tinode.LoginBasic"

	return c.login(ctx, op, "basic", []byte(uname+":"+password))
}

// LoginToken выполняет {login scheme=token}.
func (c *Client) LoginToken(ctx context.Context, token string) (messaging.LoginResult, error) {
	const op = "messaging/tinode.LoginToken"

	secret, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return messaging.LoginResult{}, fmt.Errorf("%s: decode token: %w", op, err)
	}

	return c.login(ctx, op, "token", secret)
}

func (c *Client) login(ctx context.Context, op, scheme string, secret []byte) (messaging.LoginResult, error) {
	id := c.allocID()
	ctrl, err := c.request(ctx, id, &pbx.ClientMsg{Message: &pbx.ClientMsg_Login{Login: &pbx.ClientLogin{
		Id:     id,
		Scheme: scheme,
		Secret: secret,
	}}})
	if err != nil {
		return messaging.LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := ctrlError(ctrl); err != nil {
		return messaging.LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	res, err := loginResult(ctrl)
	if err != nil {
		return messaging.LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}
	c.storeIdentity(res)

	return res, nil
}

// CreateAccountBasic выполняет {acc user=new scheme=basic login=true}
// с публичной карточкой из display-имени. Аватар на этом пути не собирается.
func (c *Client) CreateAccountBasic(ctx context.Context, uname, password, fullName string) (messaging.LoginResult, error) {
	const op = "messaging/tinode.CreateAccountBasic"

	pub, err := json.Marshal(theCard{FN: fullName})
	if err != nil {
		return messaging.LoginResult{}, fmt.Errorf("%s: encode card: %w", op, err)
	}

	id := c.allocID()
	ctrl, err := c.request(ctx, id, &pbx.ClientMsg{Message: &pbx.ClientMsg_Acc{Acc: &pbx.ClientAcc{
		Id:     id,
		UserId: "new",
		Scheme: "basic",
		Secret: []byte(uname + ":" + password),
		Login:  true,
		Desc:   &pbx.SetDesc{Public: pub},
	}}})
	if err != nil {
		return messaging.LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := ctrlError(ctrl); err != nil {
		return messaging.LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	res, err := loginResult(ctrl)
	if err != nil {
		return messaging.LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}
	c.storeIdentity(res)

	return res, nil
}

// SetAutoLoginToken настраивает автоматический token-логин при Connect.
func (c *Client) SetAutoLoginToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.autoToken = token
}

// MyUID возвращает идентификатор текущего пользователя.
func (c *Client) MyUID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.uid
}

// AuthToken возвращает auth-токен сессии и срок его действия.
func (c *Client) AuthToken() (string, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.authToken, c.authExpires
}

// Disconnect разрывает стрим и коннект; незавершённые запросы получают ошибку.
func (c *Client) Disconnect() {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	c.teardown()
}

// teardown освобождает текущее соединение и закрывает каналы незавершённых
// запросов. Вызывается под connMu.
func (c *Client) teardown() {
	c.mu.Lock()
	stop := c.loopStop
	conn := c.conn
	pending := c.pending
	c.stream = nil
	c.loopStop = nil
	c.conn = nil
	c.pending = make(map[string]chan *pbx.ServerMsg)
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
	if conn != nil {
		_ = conn.Close()
	}
	for _, ch := range pending {
		close(ch)
	}
}

// MeNote возвращает поле note публичной карточки me-топика
// ({get what=desc} по топику me).
func (c *Client) MeNote(ctx context.Context) (string, error) {
	const op = "messaging/tinode.MeNote"

	id := c.allocID()
	msg, err := c.requestMsg(ctx, id, &pbx.ClientMsg{Message: &pbx.ClientMsg_Get{Get: &pbx.ClientGet{
		Id:    id,
		Topic: "me",
		Query: &pbx.GetQuery{What: "desc"},
	}}})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if ctrl := msg.GetCtrl(); ctrl != nil {
		if err := ctrlError(ctrl); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return "", nil
	}

	meta := msg.GetMeta()
	if meta == nil || meta.Desc == nil || len(meta.Desc.Public) == 0 {
		return "", nil
	}

	var card theCard
	if err := json.Unmarshal(meta.Desc.Public, &card); err != nil {
		return "", fmt.Errorf("%s: decode card: %w", op, err)
	}

	return card.Note, nil
}

// SetMeNote обновляет публичную карточку me-топика ({set desc.public}).
func (c *Client) SetMeNote(ctx context.Context, note string) error {
	const op = "messaging/tinode.SetMeNote"

	pub, err := json.Marshal(theCard{Note: note})
	if err != nil {
		return fmt.Errorf("%s: encode card: %w", op, err)
	}

	id := c.allocID()
	ctrl, err := c.request(ctx, id, &pbx.ClientMsg{Message: &pbx.ClientMsg_Set{Set: &pbx.ClientSet{
		Id:    id,
		Topic: "me",
		Query: &pbx.SetQuery{Desc: &pbx.SetDesc{Public: pub}},
	}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := ctrlError(ctrl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// FetchData подписывается на топик и дочитывает сообщения начиная с seq.
// keepConnection оставляет подписку живой (push, связанный со звонком).
func (c *Client) FetchData(ctx context.Context, topic string, seq int, keepConnection bool) error {
	const op = "messaging/tinode.FetchData"

	id := c.allocID()
	ctrl, err := c.request(ctx, id, &pbx.ClientMsg{Message: &pbx.ClientMsg_Sub{Sub: &pbx.ClientSub{
		Id:    id,
		Topic: topic,
		GetQuery: &pbx.GetQuery{
			What: "desc data",
			Data: &pbx.GetOpts{SinceId: int32(seq)},
		},
	}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := ctrlError(ctrl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if keepConnection {
		return nil
	}

	leaveID := c.allocID()
	if _, err := c.request(ctx, leaveID, &pbx.ClientMsg{Message: &pbx.ClientMsg_Leave{Leave: &pbx.ClientLeave{
		Id:    leaveID,
		Topic: topic,
	}}}); err != nil {
		return fmt.Errorf("%s: leave: %w", op, err)
	}

	return nil
}

// FetchDesc перечитывает описание топика ({get what=desc}).
func (c *Client) FetchDesc(ctx context.Context, topic string) error {
	const op = "messaging/tinode.FetchDesc"

	id := c.allocID()
	msg, err := c.requestMsg(ctx, id, &pbx.ClientMsg{Message: &pbx.ClientMsg_Get{Get: &pbx.ClientGet{
		Id:    id,
		Topic: topic,
		Query: &pbx.GetQuery{What: "desc"},
	}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ctrl := msg.GetCtrl(); ctrl != nil {
		if err := ctrlError(ctrl); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// UpdateRead продвигает отметку прочитанного ({note what=read}).
// Notes не подтверждаются сервером, ответ не ожидается.
func (c *Client) UpdateRead(_ context.Context, topic string, seq int) error {
	const op = "messaging/tinode.UpdateRead"

	c.mu.Lock()
	stream := c.stream
	c.mu.Unlock()
	if stream == nil {
		return fmt.Errorf("%s: not connected", op)
	}

	err := stream.Send(&pbx.ClientMsg{Message: &pbx.ClientMsg_Note{Note: &pbx.ClientNote{
		Topic: topic,
		What:  pbx.InfoNote_READ,
		SeqId: int32(seq),
	}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) autoLoginToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.autoToken
}

func (c *Client) storeIdentity(res messaging.LoginResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.UID != "" {
		c.uid = res.UID
	}
	if res.Token != "" {
		c.authToken = res.Token
		c.authExpires = res.Expires
	}
}

func (c *Client) allocID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	return strconv.FormatInt(c.nextID, 10)
}

// request отправляет сообщение и ждёт control-ответ с тем же id.
func (c *Client) request(ctx context.Context, id string, msg *pbx.ClientMsg) (*pbx.ServerCtrl, error) {
	resp, err := c.requestMsg(ctx, id, msg)
	if err != nil {
		return nil, err
	}

	ctrl := resp.GetCtrl()
	if ctrl == nil {
		return nil, fmt.Errorf("unexpected server message for id %s", id)
	}

	return ctrl, nil
}

// requestMsg отправляет сообщение и ждёт первый ответ с тем же id
// (ctrl или meta).
func (c *Client) requestMsg(ctx context.Context, id string, msg *pbx.ClientMsg) (*pbx.ServerMsg, error) {
	c.mu.Lock()
	stream := c.stream
	if stream == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("not connected")
	}
	ch := make(chan *pbx.ServerMsg, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := stream.Send(msg); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, fmt.Errorf("connection closed")
		}
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// readLoop раскладывает входящие сообщения по ожидающим запросам.
// Data/Pres/Info без id игнорируются: дочитки нужны только для доставки
// push-уведомлений, локально сообщения не хранятся.
func (c *Client) readLoop(stream pbx.Node_MessageLoopClient) {
	for {
		msg, err := stream.Recv()
		if err != nil {
			c.failPending(stream)
			return
		}

		var id string
		switch {
		case msg.GetCtrl() != nil:
			id = msg.GetCtrl().Id
		case msg.GetMeta() != nil:
			id = msg.GetMeta().Id
		}
		if id == "" {
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[id]
		if ok {
			delete(c.pending, id)
		}
		c.mu.Unlock()

		if ok {
			ch <- msg
		}
	}
}

// failPending закрывает каналы незавершённых запросов, если оборвавшийся
// стрим всё ещё текущий. Устаревший readLoop (после переподключения)
// чужое состояние не трогает.
func (c *Client) failPending(stream pbx.Node_MessageLoopClient) {
	c.mu.Lock()
	if c.stream != stream {
		c.mu.Unlock()
		return
	}
	pending := c.pending
	c.pending = make(map[string]chan *pbx.ServerMsg)
	c.stream = nil
	c.mu.Unlock()

	for _, ch := range pending {
		close(ch)
	}
}

// ctrlError переводит control-ответ с кодом >= 400 в ServerError.
// Коды 2xx/3xx ошибками не считаются: интерпретация 3xx — забота вызывающего.
func ctrlError(ctrl *pbx.ServerCtrl) error {
	if ctrl.Code >= 400 {
		return &messaging.ServerError{Code: int(ctrl.Code), Text: ctrl.Text}
	}

	return nil
}

// loginResult разбирает параметры control-ответа логина: user, token, expires.
func loginResult(ctrl *pbx.ServerCtrl) (messaging.LoginResult, error) {
	res := messaging.LoginResult{Ctrl: messaging.Ctrl{Code: int(ctrl.Code), Text: ctrl.Text}}

	if raw, ok := ctrl.Params["user"]; ok {
		if err := json.Unmarshal(raw, &res.UID); err != nil {
			return res, fmt.Errorf("parse user param: %w", err)
		}
	}
	if raw, ok := ctrl.Params["token"]; ok {
		if err := json.Unmarshal(raw, &res.Token); err != nil {
			return res, fmt.Errorf("parse token param: %w", err)
		}
	}
	if raw, ok := ctrl.Params["expires"]; ok {
		var ts string
		if err := json.Unmarshal(raw, &ts); err != nil {
			return res, fmt.Errorf("parse expires param: %w", err)
		}
		expires, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return res, fmt.Errorf("parse expires param: %w", err)
		}
		res.Expires = expires.UTC()
	}

	return res, nil
}
