package httptool

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/FeifanTech/GEO-Nexus/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	ConnectionRefusedTag = "connection refused"

	HeaderContentType       = "Content-Type"
	HeaderContentTypeJSON   = "application/json"
	HeaderContentTypeStream = "text/event-stream;charset=utf-8"
	HeaderContentCache      = "Cache-Control"
	HeaderContentCacheNo    = "no-cache"
	HeaderContentConnection = "Connection"
	HeaderContentKeepAlive  = "keep-alive"
	HeaderContentTransfer   = "Transfer-Encoding"
	HeaderContentChunked    = "chunked"

	HeaderAuthorization = "Authorization"
)

var replaceErrorMsg = map[string]string{
	ConnectionRefusedTag: "链接失败",
}

type HTTPClient struct {
	hc         http.Client
	baseAddr   string
	clientName string
}

// NewHTTPClient baseAddr 需带 scheme，例如 https://api.dify.ai/v1
func NewHTTPClient(baseAddr, clientName string, timeout time.Duration, transport http.RoundTripper) *HTTPClient {
	return &HTTPClient{
		baseAddr: strings.TrimSuffix(baseAddr, "/"),
		hc: http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		clientName: clientName,
	}
}

// NewInsecureTransport 跳过证书校验，自建 Dify 网关场景用
func NewInsecureTransport() *http.Transport {
	return &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}

// PostJSONRawWithContext 发送请求但不读取响应体，调用方负责 resp.Body.Close
// 流式响应走这里，extraHeader 在 Content-Type 之外逐项覆盖
func (hc *HTTPClient) PostJSONRawWithContext(ctx context.Context, url string, obj interface{}, extraHeader http.Header) (*http.Response, error) {
	body, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	targetURL := fmt.Sprintf("%v%v", hc.baseAddr, url)

	if config.GetInstance().GetBool(config.ClientsCommonRequestLog) {
		log.Debugf("Sending POST request to %v", targetURL)
		log.Debugf("Body = %v", string(body))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for key, values := range extraHeader {
		req.Header[key] = values
	}
	req.Header.Set(HeaderContentType, HeaderContentTypeJSON)

	resp, err := hc.hc.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), ConnectionRefusedTag) {
			return nil, fmt.Errorf("%s模块: %s %s", hc.clientName, req.Host, replaceErrorMsg[ConnectionRefusedTag])
		}
		return nil, errors.WithStack(err)
	}
	return resp, nil
}
