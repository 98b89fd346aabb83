package api

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEHub_StreamsJobVerdicts(t *testing.T) {
	env := newTestEnv(t, nil)
	ts := httptest.NewServer(env.server.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/jobs/job-stream/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return env.hub.ClientCount("job-stream") == 1 }, 2*time.Second, 10*time.Millisecond)

	// a verdict for another job must not reach this stream
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/v1/verdicts/mvp", mvpBody("other-job")).Code)
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/v1/verdicts/mvp", mvpBody("job-stream")).Code)

	scanner := bufio.NewScanner(resp.Body)
	var events []string
	var data string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			events = append(events, strings.TrimPrefix(line, "event:"))
		}
		if strings.HasPrefix(line, "data:") && len(events) > 0 && events[len(events)-1] == EventVerdict {
			data = strings.TrimPrefix(line, "data:")
			break
		}
	}

	assert.Equal(t, "connected", events[0])
	assert.Contains(t, data, `"job_id":"job-stream"`)
	assert.Contains(t, data, `"tier":"mixed"`)
	assert.NotContains(t, data, "other-job")
}

func TestSSEHub_Unregister(t *testing.T) {
	hub := newSSEHub(time.Hour)
	defer hub.Close()

	ch := make(chan VerdictEvent, 1)
	hub.register <- SSEClient{JobID: "j", Channel: ch}
	require.Eventually(t, func() bool { return hub.ClientCount("j") == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"j"}, hub.ActiveJobs())

	hub.Broadcast(VerdictEvent{JobID: "j", EventType: EventVerdict})
	select {
	case ev := <-ch:
		assert.Equal(t, "j", ev.JobID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	hub.unregister <- SSEClient{JobID: "j", Channel: ch}
	require.Eventually(t, func() bool { return hub.ClientCount("j") == 0 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, hub.ActiveJobs())
}
