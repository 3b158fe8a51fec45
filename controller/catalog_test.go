package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// 仓库走 memory 驱动，handler 可以不连库直接跑
	os.Setenv("CONFIG_PATH", "testdata")
	os.Exit(m.Run())
}

func newJSONRequestContext(t *testing.T, method, target string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	ctx, recorder := newTestContext()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	ctx.Request = httptest.NewRequest(method, target, body)
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx, recorder
}

// 创建返回 201 并带上实体，删除返回 204 无响应体
func TestCreateDeleteQueryStatusCodes(t *testing.T) {
	ctx, recorder := newJSONRequestContext(t, http.MethodPost, "/api/queries",
		map[string]interface{}{"question": "扫地机器人哪个牌子好"})

	CreateQuery(ctx)

	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBody(t, recorder)
	queryID, _ := created["id"].(string)
	require.NotEmpty(t, queryID)
	assert.Equal(t, "扫地机器人哪个牌子好", created["question"])

	ctx, recorder = newJSONRequestContext(t, http.MethodDelete, "/api/queries/"+queryID, nil)
	ctx.Params = gin.Params{{Key: "query_id", Value: queryID}}

	DeleteQuery(ctx)
	// 直接调用 handler 不经过 gin 引擎，需手动刷新缓冲的状态码
	ctx.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())
}

func TestCreateDeleteProductStatusCodes(t *testing.T) {
	ctx, recorder := newJSONRequestContext(t, http.MethodPost, "/api/products",
		map[string]interface{}{"name": "Acme 扫地机器人"})

	CreateProduct(ctx)

	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeBody(t, recorder)
	productID, _ := created["id"].(string)
	require.NotEmpty(t, productID)

	ctx, recorder = newJSONRequestContext(t, http.MethodDelete, "/api/products/"+productID, nil)
	ctx.Params = gin.Params{{Key: "product_id", Value: productID}}

	DeleteProduct(ctx)
	// 直接调用 handler 不经过 gin 引擎，需手动刷新缓冲的状态码
	ctx.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())
}
