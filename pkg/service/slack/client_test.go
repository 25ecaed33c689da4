package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/jsmconf/pkg/service/slack"
	goslack "github.com/slack-go/slack"
)

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("")
		gt.Value(t, err).NotNil()
	})

	t.Run("creates service when token is provided", func(t *testing.T) {
		svc, err := slack.New("test-token")
		gt.NoError(t, err).Required()
		gt.Value(t, svc).NotNil()
	})
}

func TestPostMessage(t *testing.T) {
	var gotChannel, gotText, gotBlocks string

	r := chi.NewRouter()
	r.Post("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotChannel = r.FormValue("channel")
		gotText = r.FormValue("text")
		gotBlocks = r.FormValue("blocks")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"channel": gotChannel,
			"ts":      "1700000000.000100",
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	svc, err := slack.New("xoxb-test", slack.TestWithAPIURL(srv.URL+"/"))
	gt.NoError(t, err).Required()

	blocks := []goslack.Block{
		goslack.NewSectionBlock(goslack.NewTextBlockObject(goslack.MarkdownType, "*apply* finished", false, false), nil, nil),
	}
	ts, err := svc.PostMessage(context.Background(), "C0123", blocks, "apply finished")
	gt.NoError(t, err).Required()

	gt.Value(t, ts).Equal("1700000000.000100")
	gt.Value(t, gotChannel).Equal("C0123")
	gt.Value(t, gotText).Equal("apply finished")
	gt.S(t, gotBlocks).Contains("*apply* finished")
}

func TestPostMessage_APIError(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	svc, err := slack.New("xoxb-test", slack.TestWithAPIURL(srv.URL+"/"))
	gt.NoError(t, err).Required()

	_, err = svc.PostMessage(context.Background(), "C404", nil, "hello")
	gt.Error(t, err)
}

func TestIntegration(t *testing.T) {
	token := os.Getenv("TEST_SLACK_BOT_TOKEN")
	channel := os.Getenv("TEST_SLACK_CHANNEL_ID")
	if token == "" || channel == "" {
		t.Skip("TEST_SLACK_BOT_TOKEN or TEST_SLACK_CHANNEL_ID is not set")
	}

	svc, err := slack.New(token)
	gt.NoError(t, err).Required()

	blocks := []goslack.Block{
		goslack.NewSectionBlock(goslack.NewTextBlockObject(goslack.PlainTextType, "jsmconf integration test", false, false), nil, nil),
	}
	ts, err := svc.PostMessage(context.Background(), channel, blocks, "jsmconf integration test")
	gt.NoError(t, err).Required()
	gt.String(t, ts).NotEqual("")
}
