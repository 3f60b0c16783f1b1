package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingFetcher фиксирует единственный выполненный вызов.
type recordingFetcher struct {
	method   string
	topic    string
	seq      int
	keepConn bool
	result   Disposition
}

func (f *recordingFetcher) FetchData(_ context.Context, topic string, seq int, keepConnection bool) Disposition {
	f.method = "data"
	f.topic = topic
	f.seq = seq
	f.keepConn = keepConnection
	return f.result
}

func (f *recordingFetcher) FetchDesc(_ context.Context, topic string) Disposition {
	f.method = "desc"
	f.topic = topic
	return f.result
}

func (f *recordingFetcher) UpdateRead(_ context.Context, topic string, seq int) Disposition {
	f.method = "read"
	f.topic = topic
	f.seq = seq
	return f.result
}

func TestRoute_EmptyTopicFails(t *testing.T) {
	t.Parallel()

	f := &recordingFetcher{result: DispositionNewData}
	r := NewRouter(f, nil)

	got := r.Route(context.Background(), StateBackground, Payload{Topic: "", What: "msg", Seq: "5"})
	require.Equal(t, DispositionFailed, got)
	require.Empty(t, f.method, "no fetch expected")
}

func TestRoute_BackgroundMessageFetchesData(t *testing.T) {
	t.Parallel()

	f := &recordingFetcher{result: DispositionNewData}
	r := NewRouter(f, nil)

	got := r.Route(context.Background(), StateBackground, Payload{Topic: "t1", What: "msg", Seq: "5"})
	require.Equal(t, DispositionNewData, got)
	require.Equal(t, "data", f.method)
	require.Equal(t, "t1", f.topic)
	require.Equal(t, 5, f.seq)
	require.False(t, f.keepConn)
}

func TestRoute_WebRTCKeepsConnection(t *testing.T) {
	t.Parallel()

	f := &recordingFetcher{result: DispositionNewData}
	r := NewRouter(f, nil)

	got := r.Route(context.Background(), StateBackground, Payload{Topic: "t1", What: "msg", Seq: "5", WebRTC: true})
	require.Equal(t, DispositionNewData, got)
	require.Equal(t, "data", f.method)
	require.True(t, f.keepConn)
}

func TestRoute_MissingWhatIsMessage(t *testing.T) {
	t.Parallel()

	f := &recordingFetcher{result: DispositionNewData}
	r := NewRouter(f, nil)

	got := r.Route(context.Background(), StateInactive, Payload{Topic: "t1", Seq: "7"})
	require.Equal(t, DispositionNewData, got)
	require.Equal(t, "data", f.method)
	require.Equal(t, 7, f.seq)
}

func TestRoute_MessageRequiresPositiveSeq(t *testing.T) {
	t.Parallel()

	f := &recordingFetcher{result: DispositionNewData}
	r := NewRouter(f, nil)

	for _, seq := range []string{"", "0", "-3", "five"} {
		got := r.Route(context.Background(), StateBackground, Payload{Topic: "t1", What: "msg", Seq: seq})
		require.Equal(t, DispositionFailed, got, "seq=%q", seq)
	}
	require.Empty(t, f.method)
}

func TestRoute_SubRefetchesDesc(t *testing.T) {
	t.Parallel()

	f := &recordingFetcher{result: DispositionNewData}
	r := NewRouter(f, nil)

	got := r.Route(context.Background(), StateBackground, Payload{Topic: "t1", What: "sub"})
	require.Equal(t, DispositionNewData, got)
	require.Equal(t, "desc", f.method)
}

func TestRoute_ReadAdvancesMarker(t *testing.T) {
	t.Parallel()

	f := &recordingFetcher{result: DispositionNoData}
	r := NewRouter(f, nil)

	got := r.Route(context.Background(), StateBackground, Payload{Topic: "t1", What: "read", Seq: "3"})
	require.Equal(t, DispositionNoData, got)
	require.Equal(t, "read", f.method)
	require.Equal(t, 3, f.seq)

	// Отметка без положительного seq не продвигается.
	f2 := &recordingFetcher{result: DispositionNoData}
	r2 := NewRouter(f2, nil)
	require.Equal(t, DispositionFailed, r2.Route(context.Background(), StateBackground, Payload{Topic: "t1", What: "read"}))
	require.Empty(t, f2.method)
}

func TestRoute_UnknownKindFails(t *testing.T) {
	t.Parallel()

	f := &recordingFetcher{result: DispositionNewData}
	r := NewRouter(f, nil)

	got := r.Route(context.Background(), StateBackground, Payload{Topic: "t1", What: "call", Seq: "5"})
	require.Equal(t, DispositionFailed, got)
	require.Empty(t, f.method)
}

func TestRoute_ActiveAndTapped(t *testing.T) {
	t.Parallel()

	f := &recordingFetcher{result: DispositionNewData}
	r := NewRouter(f, nil)

	require.Equal(t, DispositionNoData, r.Route(context.Background(), StateActive, Payload{Topic: "t1", What: "msg", Seq: "5"}))
	require.Equal(t, DispositionNewData, r.Route(context.Background(), StateInactiveTapped, Payload{Topic: "t1", What: "msg", Seq: "5"}))
	require.Empty(t, f.method, "no fetch in active/tapped states")
}

func TestParsePayload(t *testing.T) {
	t.Parallel()

	p := ParsePayload(map[string]string{
		"topic":  "t1",
		"what":   "msg",
		"seq":    "5",
		"webrtc": "started",
	})
	require.Equal(t, Payload{Topic: "t1", What: "msg", Seq: "5", WebRTC: true}, p)

	p = ParsePayload(map[string]string{"topic": "t2"})
	require.Equal(t, Payload{Topic: "t2"}, p)
}
