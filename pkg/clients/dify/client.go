package dify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/FeifanTech/GEO-Nexus/config"
	"github.com/FeifanTech/GEO-Nexus/constant"
	"github.com/FeifanTech/GEO-Nexus/model"
	"github.com/FeifanTech/GEO-Nexus/pkg/clients/httptool"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL        = "https://api.dify.ai/v1"
	DefaultTimeoutSeconds = 300

	clientName = "dify"
)

type Config struct {
	APIKey             string
	BaseURL            string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Client Dify 统一代理客户端
// 请求级凭证覆盖优先于服务端配置，baseUrl 覆盖按地址缓存连接
type Client struct {
	cfg Config

	mu          sync.Mutex
	httpClients map[string]*httptool.HTTPClient
}

var (
	instance *Client
	once     sync.Once
)

func GetInstance() *Client {
	once.Do(func() {
		c := config.GetInstance()
		instance = NewClient(Config{
			APIKey:             c.GetString(config.ClientDifyApiKey),
			BaseURL:            c.GetStringOrDefault(config.ClientDifyBaseUrl, DefaultBaseURL),
			Timeout:            time.Duration(c.GetIntOrDefault(config.ClientDifyTimeoutSeconds, DefaultTimeoutSeconds)) * time.Second,
			InsecureSkipVerify: c.GetBool(config.ClientDifyInsecureSkipVerify),
		})
	})
	return instance
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeoutSeconds * time.Second
	}
	return &Client{
		cfg:         cfg,
		httpClients: map[string]*httptool.HTTPClient{},
	}
}

// Send 校验并转发统一请求，返回未读取的上游响应
// 非 2xx 会在这里消化掉响应体并转成 UpstreamError
func (c *Client) Send(ctx context.Context, req *model.UnifiedRequest) (*http.Response, error) {
	if req.TaskType == "" {
		return nil, model.NewError(model.ErrorTaskTypeRequired, nil)
	}

	appType, err := ClassifyTaskType(constant.TaskType(req.TaskType))
	if err != nil {
		return nil, err
	}

	apiKey := req.DifyApiKey
	if apiKey == "" {
		apiKey = c.cfg.APIKey
	}
	if apiKey == "" {
		return nil, model.NewError(model.ErrorApiKeyMissing, nil)
	}

	baseURL := req.DifyBaseUrl
	if baseURL == "" {
		baseURL = c.cfg.BaseURL
	}

	header := http.Header{}
	header.Set(httptool.HeaderAuthorization, "Bearer "+apiKey)

	payload := BuildPayload(req, appType)
	resp, err := c.httpClient(baseURL).PostJSONRawWithContext(ctx, appType.Endpoint(), payload, header)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Details: strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}

// SendBlocking 阻塞模式调用，等到完整回复再返回
func (c *Client) SendBlocking(ctx context.Context, req *model.UnifiedRequest) (*model.DifyMessage, error) {
	blockingReq := *req
	blockingReq.ResponseMode = constant.ResponseModeBlocking

	resp, err := c.Send(ctx, &blockingReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	message := new(model.DifyMessage)
	if err = json.Unmarshal(body, message); err != nil {
		return nil, errors.WithStack(err)
	}
	return message, nil
}

// 按 baseURL 缓存底层连接，覆盖地址的请求不会反复建 Transport
func (c *Client) httpClient(baseURL string) *httptool.HTTPClient {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hc, ok := c.httpClients[baseURL]; ok {
		return hc
	}

	var transport http.RoundTripper
	if c.cfg.InsecureSkipVerify {
		transport = httptool.NewInsecureTransport()
	}
	hc := httptool.NewHTTPClient(baseURL, clientName, c.cfg.Timeout, transport)
	c.httpClients[baseURL] = hc
	return hc
}
