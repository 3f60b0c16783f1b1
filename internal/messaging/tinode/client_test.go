package tinode

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"chatlink/internal/messaging"

	"github.com/stretchr/testify/require"
	"github.com/tinode/chat/pbx"
	"google.golang.org/grpc"
)

func TestLoginResult_ParsesParams(t *testing.T) {
	t.Parallel()

	ctrl := &pbx.ServerCtrl{
		Code: 200,
		Text: "ok",
		Params: map[string][]byte{
			"user":    []byte(`"usr_abc"`),
			"token":   []byte(`"dG9rZW4="`),
			"expires": []byte(`"2026-09-01T10:00:00.000Z"`),
		},
	}

	res, err := loginResult(ctrl)
	require.NoError(t, err)
	require.Equal(t, "usr_abc", res.UID)
	require.Equal(t, "dG9rZW4=", res.Token)
	require.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), res.Expires)
	require.Equal(t, messaging.Ctrl{Code: 200, Text: "ok"}, res.Ctrl)
}

func TestLoginResult_MissingParamsAreEmpty(t *testing.T) {
	t.Parallel()

	res, err := loginResult(&pbx.ServerCtrl{Code: 300, Text: "validate credentials"})
	require.NoError(t, err)
	require.Empty(t, res.UID)
	require.Empty(t, res.Token)
	require.True(t, res.Expires.IsZero())
	require.Equal(t, 300, res.Ctrl.Code)
}

func TestLoginResult_BadExpires(t *testing.T) {
	t.Parallel()

	_, err := loginResult(&pbx.ServerCtrl{
		Code:   200,
		Params: map[string][]byte{"expires": []byte(`"tomorrow"`)},
	})
	require.Error(t, err)
}

func TestCtrlError_MapsCodes(t *testing.T) {
	t.Parallel()

	require.NoError(t, ctrlError(&pbx.ServerCtrl{Code: 200}))
	require.NoError(t, ctrlError(&pbx.ServerCtrl{Code: 300, Text: "validate credentials"}))

	err := ctrlError(&pbx.ServerCtrl{Code: 401, Text: "authentication failed"})
	require.Error(t, err)

	var serr *messaging.ServerError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 401, serr.Code)
	// Числовой код обязан присутствовать в тексте: вызывающие стороны
	// распознают его подстрокой.
	require.Contains(t, err.Error(), "401")
}

// fakeNode — минимальный сервер gRPC-моста: подтверждает {hi} и считает
// открытые MessageLoop-стримы.
type fakeNode struct {
	pbx.UnimplementedNodeServer

	mu     sync.Mutex
	opened int
	active int
}

func (f *fakeNode) MessageLoop(stream pbx.Node_MessageLoopServer) error {
	f.mu.Lock()
	f.opened++
	f.active++
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	for {
		msg, err := stream.Recv()
		if err != nil {
			return nil
		}
		if hi := msg.GetHi(); hi != nil {
			err := stream.Send(&pbx.ServerMsg{Message: &pbx.ServerMsg_Ctrl{Ctrl: &pbx.ServerCtrl{
				Id:   hi.Id,
				Code: 201,
				Text: "created",
			}}})
			if err != nil {
				return nil
			}
		}
	}
}

func (f *fakeNode) counts() (opened, active int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.opened, f.active
}

func startFakeNode(t *testing.T) (*fakeNode, string) {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	node := &fakeNode{}
	srv := grpc.NewServer()
	pbx.RegisterNodeServer(srv, node)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return node, lis.Addr().String()
}

func TestConnect_ConcurrentCallsShareConnection(t *testing.T) {
	t.Parallel()

	node, addr := startFakeNode(t)
	c := New(addr, "chatlinkd/1.0", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const callers = 8
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.Connect(ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Ровно одно соединение на все конкурентные Connect.
	opened, active := node.counts()
	require.Equal(t, 1, opened)
	require.Equal(t, 1, active)

	// Повторный Connect при живом соединении — no-op.
	require.NoError(t, c.Connect(ctx))
	opened, _ = node.counts()
	require.Equal(t, 1, opened)

	c.Disconnect()
	require.Eventually(t, func() bool {
		_, active := node.counts()
		return active == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestClient_RequestWithoutConnection(t *testing.T) {
	t.Parallel()

	c := New("127.0.0.1:16060", "chatlinkd/1.0", nil)
	require.Empty(t, c.MyUID())

	err := c.UpdateRead(nil, "t1", 5)
	require.Error(t, err)
}
