package dify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/FeifanTech/GEO-Nexus/model"

	"github.com/stretchr/testify/suite"
)

func TestMain(m *testing.M) {
	// httptool 每次请求都会读配置，测试里固定用 testdata 下的配置文件
	_ = os.Setenv("CONFIG_PATH", "testdata")
	os.Exit(m.Run())
}

type DifyClientTest struct {
	suite.Suite
}

func (c *DifyClientTest) TestSendMissingTaskType() {
	client := NewClient(Config{APIKey: "test-key"})

	resp, err := client.Send(context.Background(), &model.UnifiedRequest{})

	c.Nil(resp)
	c.Require().Error(err)
	modelErr, ok := err.(*model.Error)
	c.Require().True(ok)
	c.Equal(model.ErrorTaskTypeRequired, modelErr.Code)
}

func (c *DifyClientTest) TestSendUnknownTaskType() {
	client := NewClient(Config{APIKey: "test-key"})

	resp, err := client.Send(context.Background(), &model.UnifiedRequest{TaskType: "translate"})

	c.Nil(resp)
	c.Require().Error(err)
	modelErr, ok := err.(*model.Error)
	c.Require().True(ok)
	c.Equal(model.ErrorUnknownTaskType, modelErr.Code)
}

func (c *DifyClientTest) TestSendMissingApiKey() {
	client := NewClient(Config{})

	resp, err := client.Send(context.Background(), &model.UnifiedRequest{TaskType: "diagnosis_rank"})

	c.Nil(resp)
	c.Require().Error(err)
	modelErr, ok := err.(*model.Error)
	c.Require().True(ok)
	c.Equal(model.ErrorApiKeyMissing, modelErr.Code)
}

func (c *DifyClientTest) TestSendChatRequest() {
	var gotPath, gotAuth string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-1","answer":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := client.Send(context.Background(), &model.UnifiedRequest{
		TaskType: "diagnosis_rank",
		Inputs:   map[string]string{"brand": "Acme"},
		Query:    "Acme排名如何",
	})

	c.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	c.Equal(http.StatusOK, resp.StatusCode)
	c.Equal(EndpointChat, gotPath)
	c.Equal("Bearer test-key", gotAuth)
	c.Equal("Acme排名如何", gotPayload["query"])

	inputs, ok := gotPayload["inputs"].(map[string]interface{})
	c.Require().True(ok)
	c.Equal("diagnosis_rank", inputs["task_type"])
	c.Equal("Acme", inputs["brand"])
}

func (c *DifyClientTest) TestSendCompletionEndpoint() {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	resp, err := client.Send(context.Background(), &model.UnifiedRequest{
		TaskType: "content_pdp",
		Query:    "生成PDP摘要",
	})

	c.Require().NoError(err)
	_ = resp.Body.Close()
	c.Equal(EndpointCompletion, gotPath)
}

func (c *DifyClientTest) TestSendApiKeyOverride() {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// 服务端没配 key，靠请求级覆盖
	client := NewClient(Config{})
	resp, err := client.Send(context.Background(), &model.UnifiedRequest{
		TaskType:    "diagnosis_rank",
		Query:       "测试",
		DifyApiKey:  "override-key",
		DifyBaseUrl: server.URL,
	})

	c.Require().NoError(err)
	_ = resp.Body.Close()
	c.Equal("Bearer override-key", gotAuth)
}

func (c *DifyClientTest) TestSendUpstreamError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"Access token is invalid"}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad-key", BaseURL: server.URL})
	resp, err := client.Send(context.Background(), &model.UnifiedRequest{
		TaskType: "diagnosis_rank",
		Query:    "测试",
	})

	c.Nil(resp)
	c.Require().Error(err)
	upstreamErr, ok := err.(*UpstreamError)
	c.Require().True(ok)
	c.Equal(http.StatusUnauthorized, upstreamErr.Status)
	c.Contains(upstreamErr.Details, "Access token is invalid")
	c.Contains(upstreamErr.Error(), "401")
}

func (c *DifyClientTest) TestSendBlocking() {
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-1","conversation_id":"conv-1","answer":"完整回复","created_at":1735700000}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	message, err := client.SendBlocking(context.Background(), &model.UnifiedRequest{
		TaskType:     "diagnosis_rank",
		Query:        "测试",
		ResponseMode: "streaming", // SendBlocking 强制覆盖成 blocking
	})

	c.Require().NoError(err)
	c.Equal("blocking", gotPayload["response_mode"])
	c.Equal("完整回复", message.Answer)
	c.Equal("conv-1", message.ConversationID)
}

func (c *DifyClientTest) TestExecuteStream() {
	stream := "data: {\"event\": \"message\", \"answer\": \"Acme\"}\n\n" +
		"data: {\"event\": \"message\", \"answer\": \"排名第1\"}\n\n" +
		"data: {\"event\": \"message_end\", \"conversation_id\": \"conv-9\"}\n\n" +
		"data: [DONE]\n\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(stream))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	var fragments []string
	result, err := client.Execute(context.Background(), &model.UnifiedRequest{
		TaskType: "monitor_search",
		Query:    "搜索Acme",
	}, func(fragment string, isFirst bool) {
		if isFirst {
			fragments = fragments[:0]
		}
		fragments = append(fragments, fragment)
	})

	c.Require().NoError(err)
	c.Equal("Acme排名第1", result.FullContent)
	c.Equal("conv-9", result.ConversationID)
	c.Equal([]string{"Acme", "排名第1"}, fragments)
}

func (c *DifyClientTest) TestExecuteStreamErrorEvent() {
	stream := fmt.Sprintf("data: {\"event\": \"error\", \"message\": %q}\n\n", "quota exceeded")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(stream))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	result, err := client.Execute(context.Background(), &model.UnifiedRequest{
		TaskType: "monitor_search",
		Query:    "搜索Acme",
	}, nil)

	c.Nil(result)
	c.Require().Error(err)
	c.Contains(err.Error(), "quota exceeded")
}

func TestDifyClient(t *testing.T) {
	suite.Run(t, new(DifyClientTest))
}
