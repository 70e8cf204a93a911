package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ivlev/flexdash-demo/internal/director"
	"github.com/ivlev/flexdash-demo/internal/engine"
	"github.com/ivlev/flexdash-demo/internal/renderer"
	"github.com/ivlev/flexdash-demo/internal/scenes"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Host, *[]string) {
	t.Helper()
	s, err := director.VideoSchedule()
	require.NoError(t, err)
	h, err := engine.NewHost("video", s, scenes.VideoRegistry("https://flexdash.example/book"),
		engine.WithClock(engine.NewManualClock()))
	require.NoError(t, err)

	var runs []string
	srv, err := New(context.Background(), []*engine.Host{h}, Options{
		AllowedOrigins: []string{"https://flexdash.io"},
		Run:            func(_ context.Context, h *engine.Host) { runs = append(runs, h.Name()) },
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, h, &runs
}

func doJSON(t *testing.T, method, url string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestListPresentations(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var list []presentationRsp
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/presentations", &list))
	require.Len(t, list, 1)
	require.Equal(t, "video", list[0].Name)
	require.False(t, list[0].Running)
	require.Equal(t, int64(59000), list[0].TotalMS)
}

func TestPlaybackControls(t *testing.T) {
	ts, h, runs := newTestServer(t)
	base := ts.URL + "/api/presentations/video"

	var rsp presentationRsp
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/start", &rsp))
	require.True(t, rsp.Running)
	require.NotEmpty(t, rsp.RunID)
	require.Equal(t, []string{"video"}, *runs)

	h.Advance(4 * time.Second)
	var frame renderer.Frame
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, base+"/frame", &frame))
	require.Equal(t, "tax-setup", frame.SceneID)
	require.Equal(t, int64(1000), frame.SceneTimeMS)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/pause", &rsp))
	require.True(t, rsp.Paused)
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/continue", &rsp))
	require.False(t, rsp.Paused)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/stop", &rsp))
	require.False(t, rsp.Running)
	require.Zero(t, rsp.ElapsedMS)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, base+"/frame", &frame))
	require.Equal(t, "intro", frame.SceneID)
}

func TestUnknownPresentation(t *testing.T) {
	ts, _, _ := newTestServer(t)
	var rsp map[string]string
	require.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, ts.URL+"/api/presentations/nope/frame", &rsp))
	require.Contains(t, rsp["error"], "nope")
}

func TestGetSchedule(t *testing.T) {
	ts, _, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/presentations/video/schedule")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	s, err := director.ParseSchedule(body)
	require.NoError(t, err)
	require.Equal(t, []string{"intro", "tax-setup", "payment-failure", "integration-preflight", "outro"}, s.SceneIDs())
}

func TestNow(t *testing.T) {
	ts, _, _ := newTestServer(t)
	var rsp nowRsp
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/now", &rsp))
	require.Contains(t, rsp.ElapsedMS, "video")
}

func TestResource(t *testing.T) {
	ts, _, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/resource")
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("process stats unavailable: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	require.True(t, strings.Contains(string(body), "rss_bytes"))
}

func TestCORS(t *testing.T) {
	ts, _, _ := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/presentations", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://flexdash.io")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "https://flexdash.io", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestDuplicateNames(t *testing.T) {
	s, err := director.VideoSchedule()
	require.NoError(t, err)
	reg := scenes.VideoRegistry("")
	a, err := engine.NewHost("same", s, reg)
	require.NoError(t, err)
	b, err := engine.NewHost("same", s, reg)
	require.NoError(t, err)
	_, err = New(context.Background(), []*engine.Host{a, b}, Options{})
	require.Error(t, err)
}
