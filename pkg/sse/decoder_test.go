package sse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedFragment struct {
	fragment string
	isFirst  bool
}

func collectCallbacks(fragments *[]recordedFragment, fullContent, conversationID *string) Callbacks {
	return Callbacks{
		OnMessage: func(fragment string, isFirst bool) {
			*fragments = append(*fragments, recordedFragment{fragment: fragment, isFirst: isFirst})
		},
		OnComplete: func(content, convID string) {
			*fullContent = content
			*conversationID = convID
		},
	}
}

const sampleStream = `data: {"event":"message","answer":"Hello, ","conversation_id":"c1"}

data: {"event":"message","answer":"world"}

data: {"event":"message_end","conversation_id":"c1"}

data: [DONE]
`

func TestDecodeAccumulatesFragments(t *testing.T) {
	var fragments []recordedFragment
	var fullContent, conversationID string

	err := Decode(strings.NewReader(sampleStream), collectCallbacks(&fragments, &fullContent, &conversationID))
	require.NoError(t, err)

	assert.Equal(t, "Hello, world", fullContent)
	assert.Equal(t, "c1", conversationID)

	require.Len(t, fragments, 2)
	assert.Equal(t, recordedFragment{fragment: "Hello, ", isFirst: true}, fragments[0])
	assert.Equal(t, recordedFragment{fragment: "world", isFirst: false}, fragments[1])
}

// 累积结果不依赖字节块的切分方式
func TestDecodeChunkBoundaryIndependence(t *testing.T) {
	raw := []byte(sampleStream)

	for _, size := range []int{1, 2, 3, 7, 16, 64, 4096} {
		decoder := NewDecoder()
		cb := Callbacks{}

		for start := 0; start < len(raw); start += size {
			end := start + size
			if end > len(raw) {
				end = len(raw)
			}
			require.NoError(t, decoder.Feed(raw[start:end], &cb))
		}
		require.NoError(t, decoder.Finish(&cb))

		assert.Equal(t, "Hello, world", decoder.FullContent(), "chunk size %d", size)
		assert.Equal(t, "c1", decoder.ConversationID(), "chunk size %d", size)
	}
}

func TestDecodeSkipsMalformedFrames(t *testing.T) {
	stream := "data: {not valid json}\n" +
		"event: something\n" +
		"data: {\"event\":\"message\",\"answer\":\"ok\"}\n"

	var fragments []recordedFragment
	var fullContent, conversationID string
	err := Decode(strings.NewReader(stream), collectCallbacks(&fragments, &fullContent, &conversationID))
	require.NoError(t, err)

	assert.Equal(t, "ok", fullContent)
	require.Len(t, fragments, 1)
	assert.True(t, fragments[0].isFirst)
}

func TestDecodeErrorEventTerminates(t *testing.T) {
	stream := "data: {\"event\":\"message\",\"answer\":\"partial\"}\n" +
		"data: {\"event\":\"error\",\"message\":\"quota exceeded\"}\n" +
		"data: {\"event\":\"message\",\"answer\":\"never\"}\n"

	decoder := NewDecoder()
	err := decoder.Feed([]byte(stream), &Callbacks{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, "partial", decoder.FullContent())
}

func TestDecodeErrorEventWithoutMessage(t *testing.T) {
	decoder := NewDecoder()
	err := decoder.Feed([]byte("data: {\"event\":\"error\"}\n"), &Callbacks{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream error from Dify")
}

// 最后一帧没有换行符时由 Finish 冲刷
func TestDecodeTrailingPartialLine(t *testing.T) {
	decoder := NewDecoder()
	cb := Callbacks{}

	require.NoError(t, decoder.Feed([]byte("data: {\"event\":\"message\",\"answer\":\"tail\"}"), &cb))
	assert.Equal(t, "", decoder.FullContent())

	require.NoError(t, decoder.Finish(&cb))
	assert.Equal(t, "tail", decoder.FullContent())
}

func TestDecodeIgnoresNonAnswerEvents(t *testing.T) {
	stream := "data: {\"event\":\"ping\"}\n" +
		"data: {\"event\":\"workflow_started\",\"workflow_run_id\":\"w1\"}\n" +
		"data: {\"event\":\"node_finished\",\"data\":{\"id\":\"n1\",\"status\":\"succeeded\"}}\n" +
		"data: {\"event\":\"agent_thought\"}\n" +
		"data: {\"event\":\"future_event_type\"}\n" +
		"data: {\"event\":\"agent_message\",\"answer\":\"answer\",\"conversation_id\":\"c9\"}\n"

	var fragments []recordedFragment
	var fullContent, conversationID string
	err := Decode(strings.NewReader(stream), collectCallbacks(&fragments, &fullContent, &conversationID))
	require.NoError(t, err)

	assert.Equal(t, "answer", fullContent)
	assert.Equal(t, "c9", conversationID)
	require.Len(t, fragments, 1)
}

func TestDecodeEmptyStream(t *testing.T) {
	var fragments []recordedFragment
	var fullContent, conversationID string
	err := Decode(strings.NewReader(""), collectCallbacks(&fragments, &fullContent, &conversationID))
	require.NoError(t, err)

	assert.Empty(t, fullContent)
	assert.Empty(t, conversationID)
	assert.Empty(t, fragments)
}
