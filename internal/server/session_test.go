package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"napoleon/internal/config"
)

func lastTrick() PositionDTO {
	return PositionDTO{
		Hands:    []string{"C5", "C9", "CK", "H2"},
		Napoleon: 0,
		Adjutant: 2,
		Trump:    "H",
		Contract: 13,
		Declarer: 9,
		Defender: 5,
	}
}

func newTestServer() (*echo.Echo, *Server) {
	cfg := config.Defaults()
	cfg.AnalyzeWorkers = 2
	cfg.MaxRemaining = 12
	s := New(cfg)
	e := echo.New()
	s.Register(e)
	return e, s
}

func post(t *testing.T, e *echo.Echo, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSolveEndpoint(t *testing.T) {
	e, _ := newTestServer()
	rec := post(t, e, "/solve", lastTrick())
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var view ResultView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Winner != "allied" || view.Leaves != 1 {
		t.Fatalf("unexpected result %+v", view)
	}
	if d := cmp.Diff([]string{"C5", "C9", "CK", "H2"}, view.Line); d != "" {
		t.Fatalf("line mismatch (-want, +got):\n%s", d)
	}
}

func TestSolveEndpointRejects(t *testing.T) {
	e, _ := newTestServer()
	big := []string{"S2 S3 S4 S5", "S6 S7 S8 S9", "H2 H3 H4 H5", "H6 H7 H8 H9"}
	cases := map[string]struct {
		mutate func(d *PositionDTO)
		status int
		code   string
	}{
		"bad card":     {func(d *PositionDTO) { d.Hands[0] = "Z5" }, http.StatusBadRequest, "bad_card"},
		"bad trump":    {func(d *PositionDTO) { d.Trump = "Q" }, http.StatusBadRequest, "bad_card"},
		"not held":     {func(d *PositionDTO) { d.Moves = []string{"C9"} }, http.StatusBadRequest, "invalid_move"},
		"whole tricks": {func(d *PositionDTO) { d.Hands[0] = "C5 SA" }, http.StatusBadRequest, "invalid_position"},
		"too large":    {func(d *PositionDTO) { d.Hands = big }, http.StatusRequestEntityTooLarge, "too_large"},
	}
	for name, tc := range cases {
		dto := lastTrick()
		tc.mutate(&dto)
		rec := post(t, e, "/solve", dto)
		if rec.Code != tc.status {
			t.Fatalf("%s: status %d, want %d", name, rec.Code, tc.status)
		}
		var view ErrorView
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if view.Code != tc.code {
			t.Fatalf("%s: code %q, want %q", name, view.Code, tc.code)
		}
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	e, _ := newTestServer()
	dto := lastTrick()
	dto.Hands = []string{"", "C9", "CK", "H2"}
	dto.Trick = []string{"C5"}
	dto.Turn = 1
	rec := post(t, e, "/analyze", dto)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var view AnalysisView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Camp != "allied" || len(view.Moves) != 1 || view.Best != "C9" || !view.Winning {
		t.Fatalf("unexpected analysis %+v", view)
	}
}

func TestSessionMessages(t *testing.T) {
	e, _ := newTestServer()
	ts := httptest.NewServer(e)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	roundTrip := func(msg ClientMessage) ServerMessage {
		t.Helper()
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("write: %v", err)
		}
		var out ServerMessage
		if err := conn.ReadJSON(&out); err != nil {
			t.Fatalf("read: %v", err)
		}
		if out.RequestId != msg.RequestId {
			t.Fatalf("reply to %q answered %q", msg.RequestId, out.RequestId)
		}
		return out
	}

	if out := roundTrip(ClientMessage{Type: "hello", RequestId: "1"}); out.Type != "welcome" || out.Session == "" {
		t.Fatalf("unexpected welcome %+v", out)
	}
	pos := lastTrick()
	if out := roundTrip(ClientMessage{Type: "solve", RequestId: "2", Position: &pos}); out.Type != "result" || out.Result.Winner != "allied" {
		t.Fatalf("unexpected solve reply %+v", out)
	}
	out := roundTrip(ClientMessage{Type: "analyze", RequestId: "3", Position: &pos})
	if out.Type != "analysis" || len(out.Events) != 1 || out.Events[0].Type != "move_loses" {
		t.Fatalf("unexpected analysis reply %+v", out)
	}
	if out := roundTrip(ClientMessage{Type: "hint", RequestId: "4", Position: &pos}); out.Type != "hint" || out.Hint.Card != "C5" || out.Hint.Winning {
		t.Fatalf("unexpected hint reply %+v", out)
	}
	if out := roundTrip(ClientMessage{Type: "deal", RequestId: "5"}); out.Type != "error" || out.Error.Code != "unknown_type" {
		t.Fatalf("unexpected error reply %+v", out)
	}
	if out := roundTrip(ClientMessage{Type: "solve", RequestId: "6"}); out.Type != "error" || out.Error.Code != "invalid_position" {
		t.Fatalf("expected missing position to fail, got %+v", out)
	}
}
