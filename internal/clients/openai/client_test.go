package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"io"
	"net/http"
	"testing"
)

type mockHttpClient struct {
	mock.Mock
}

func (m *mockHttpClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func Test_GenerateResponse_ShouldSendChatCompletionRequest(t *testing.T) {

	assert := assert.New(t)

	mockHttp := &mockHttpClient{}
	client := NewClient("https://llm.example.com/v1/", "sk-key", "my-model")
	client.SetHTTPClient(mockHttp)

	mockHttp.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://llm.example.com/v1/chat/completions" &&
			req.Header.Get("Authorization") == "Bearer sk-key"
	})).Return(jsonResponse(200, `{"choices":[{"message":{"role":"assistant","content":" готово "}}]}`), nil)

	text, err := client.GenerateResponse(context.Background(), "напиши резюме")

	assert.NoError(err)
	assert.Equal("готово", text)

	sent := mockHttp.Calls[0].Arguments.Get(0).(*http.Request)
	body, _ := io.ReadAll(sent.Body)
	var payload chatRequest
	assert.NoError(json.Unmarshal(body, &payload))
	assert.Equal("my-model", payload.Model)
	assert.Len(payload.Messages, 1)
	assert.Equal("напиши резюме", payload.Messages[0].Content)
}

func Test_GenerateResponse_WhenStatusNotOK_ShouldFail(t *testing.T) {

	assert := assert.New(t)

	mockHttp := &mockHttpClient{}
	client := NewClient("", "sk-key", "")
	client.SetHTTPClient(mockHttp)

	mockHttp.On("Do", mock.Anything).Return(jsonResponse(401, `{"error":"bad key"}`), nil)

	_, err := client.GenerateResponse(context.Background(), "привет")

	assert.Error(err)
	assert.Contains(err.Error(), "401")
}

func Test_GenerateResponse_WhenNoChoices_ShouldFail(t *testing.T) {

	assert := assert.New(t)

	mockHttp := &mockHttpClient{}
	client := NewClient("", "sk-key", "")
	client.SetHTTPClient(mockHttp)

	mockHttp.On("Do", mock.Anything).Return(jsonResponse(200, `{"choices":[]}`), nil)

	_, err := client.GenerateResponse(context.Background(), "привет")

	assert.Error(err)
}

func Test_NewClient_ShouldApplyDefaults(t *testing.T) {

	assert := assert.New(t)

	client := NewClient("", "sk-key", "")

	assert.Equal(defaultBaseURL, client.baseURL)
	assert.Equal(defaultModel, client.model)
}
