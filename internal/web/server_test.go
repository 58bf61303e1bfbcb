package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/store"
)

func newTestServer(t *testing.T, attempts store.AttemptRepo) *httptest.Server {
	t.Helper()
	srv := NewServer(quiz.DefaultBank(), Options{
		Attempts:    attempts,
		CORSOrigins: []string{"http://localhost:3000"},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// pageInputs parses a page and returns its inputs keyed by name, along
// with the text of the element with id "results".
func pageInputs(t *testing.T, body string) (map[string][]*html.Node, string) {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	inputs := map[string][]*html.Node{}
	var results string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "input" {
				name := attr(n, "name")
				inputs[name] = append(inputs[name], n)
			}
			if attr(n, "id") == "results" && n.FirstChild != nil {
				results = strings.TrimSpace(n.FirstChild.Data)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return inputs, results
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestIndexRendersEmptySurface(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	inputs, results := pageInputs(t, readBody(t, resp))
	assert.Len(t, inputs["question0"], 4)
	assert.Len(t, inputs["question1"], 4)
	assert.Len(t, inputs["question2"], 1)
	assert.Len(t, inputs["question3"], 4)
	assert.Equal(t, "radio", attr(inputs["question0"][0], "type"))
	assert.Equal(t, "checkbox", attr(inputs["question1"][0], "type"))
	assert.Equal(t, "text", attr(inputs["question2"][0], "type"))
	for _, group := range inputs {
		for _, in := range group {
			assert.False(t, hasAttr(in, "checked"))
		}
	}
	assert.Empty(t, results)
}

func TestSubmitScoresAndKeepsSelections(t *testing.T) {
	st := openStore(t)
	ts := newTestServer(t, st.AttemptRepo())

	form := url.Values{
		"question0": {"2024"},
		"question1": {"Banana", "Apple"},
		"question2": {"  Zero "},
		"question3": {"Best Filmfare"},
	}
	resp, err := http.PostForm(ts.URL+"/submit", form)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	inputs, results := pageInputs(t, body)
	assert.Equal(t, "Your score is 3 out of 4", results)
	assert.Contains(t, body, "Good job!")

	for _, in := range inputs["question0"] {
		assert.Equal(t, attr(in, "value") == "2024", hasAttr(in, "checked"))
	}
	assert.Equal(t, "  Zero ", attr(inputs["question2"][0], "value"))

	attempts, err := st.AttemptRepo().RecentAttempts(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "web", attempts[0].Source)
	assert.Equal(t, 3, attempts[0].Score)
	assert.Equal(t, 4, attempts[0].Total)
	assert.Equal(t, []string{"Banana", "Apple"}, attempts[0].Responses["question1"])
}

func TestSubmitEmptyForm(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.PostForm(ts.URL+"/submit", url.Values{})
	require.NoError(t, err)
	_, results := pageInputs(t, readBody(t, resp))
	assert.Equal(t, "Your score is 0 out of 4", results)
}

func TestAPIQuizHidesAnswers(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/api/quiz")
	require.NoError(t, err)
	body := readBody(t, resp)

	var view quizView
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, quiz.DefaultTitle, view.Title)
	require.Len(t, view.Questions, 4)
	assert.Equal(t, "question1", view.Questions[1].Group)
	assert.Equal(t, "multi", view.Questions[1].Kind)
	assert.Empty(t, view.Questions[2].Options)
	assert.NotContains(t, body, "zero")
	assert.NotContains(t, body, "answer")
}

func TestAPIScore(t *testing.T) {
	st := openStore(t)
	ts := newTestServer(t, st.AttemptRepo())

	payload := `{"answers":{"question0":["2024"],"question1":["Banana"],"question2":["zero"],"question9":["x"]}}`
	resp, err := http.Post(ts.URL+"/api/score", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out scoreResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &out))
	assert.Equal(t, 2, out.Score)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, "Your score is 2 out of 4", out.Summary)
	assert.Equal(t, 50.0, out.Percentage)
	require.Len(t, out.Outcomes, 4)
	assert.True(t, out.Outcomes[0].Correct)
	assert.True(t, out.Outcomes[1].Answered)
	assert.False(t, out.Outcomes[1].Correct)
	assert.False(t, out.Outcomes[3].Answered)

	attempts, err := st.AttemptRepo().RecentAttempts(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "api", attempts[0].Source)
}

func TestAPIScoreMalformed(t *testing.T) {
	ts := newTestServer(t, nil)
	for _, payload := range []string{`{`, `{"answers":{"question0":"2024"}}`, `{"extra":1}`} {
		resp, err := http.Post(ts.URL+"/api/score", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, payload)
		resp.Body.Close()
	}
}

func TestAPICORS(t *testing.T) {
	ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/score", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"ok"`)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ServeConfig{Addr: addr, ShutdownTimeout: time.Second}, NewServer(quiz.DefaultBank(), Options{}).Handler())
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeRequiresAddr(t *testing.T) {
	assert.Error(t, Serve(context.Background(), ServeConfig{}, http.NotFoundHandler()))
}
