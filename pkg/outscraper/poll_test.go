package outscraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/reputation-cli/internal/resilience"
)

// mockClient implements Client for testing poll functions.
type mockClient struct {
	resultFunc func(ctx context.Context, location string) (*ResultResponse, error)
	calls      int
}

func (m *mockClient) SearchMaps(context.Context, SearchRequest) (*SearchResponse, error) {
	return nil, nil
}

func (m *mockClient) GetResult(ctx context.Context, location string) (*ResultResponse, error) {
	m.calls++
	return m.resultFunc(ctx, location)
}

func noSleep(context.Context, time.Duration) error { return nil }

func TestPollResult_SucceedsAfterPending(t *testing.T) {
	mock := &mockClient{}
	mock.resultFunc = func(context.Context, string) (*ResultResponse, error) {
		if mock.calls < 3 {
			return &ResultResponse{ID: "req-1", Status: StatusPending}, nil
		}
		return &ResultResponse{ID: "req-1", Status: StatusSuccess, Data: []byte(`[[{"name":"A"}]]`)}, nil
	}

	resp, err := PollResult(context.Background(), mock, "loc", WithSleep(noSleep))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, 3, mock.calls)
}

func TestPollResult_TransientHTTPTreatedAsPending(t *testing.T) {
	mock := &mockClient{}
	mock.resultFunc = func(context.Context, string) (*ResultResponse, error) {
		if mock.calls == 1 {
			return nil, &APIError{StatusCode: 503, Body: "busy"}
		}
		return &ResultResponse{Status: StatusSuccess, Data: []byte(`[[{}]]`)}, nil
	}

	_, err := PollResult(context.Background(), mock, "loc", WithSleep(noSleep))
	require.NoError(t, err)
	assert.Equal(t, 2, mock.calls)
}

func TestPollResult_CeilingIs18Attempts(t *testing.T) {
	var waited time.Duration
	sleep := func(_ context.Context, d time.Duration) error {
		waited += d
		return nil
	}
	mock := &mockClient{resultFunc: func(context.Context, string) (*ResultResponse, error) {
		return &ResultResponse{Status: StatusPending}, nil
	}}

	_, err := PollResult(context.Background(), mock, "loc", WithSleep(sleep))
	require.Error(t, err)
	assert.True(t, errors.Is(err, resilience.ErrPollExhausted))
	assert.Equal(t, 18, mock.calls)
	assert.Equal(t, 90*time.Second, waited)
}

func TestPollResult_FailedJobStops(t *testing.T) {
	mock := &mockClient{resultFunc: func(context.Context, string) (*ResultResponse, error) {
		return &ResultResponse{ID: "req-9", Status: StatusFailed}, nil
	}}

	_, err := PollResult(context.Background(), mock, "loc", WithSleep(noSleep), WithPollAttempts(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `finished with status "Failed"`)
	assert.Equal(t, 1, mock.calls)
}

func TestPollResult_HTTPErrorStatusKeepsPolling(t *testing.T) {
	mock := &mockClient{}
	mock.resultFunc = func(context.Context, string) (*ResultResponse, error) {
		if mock.calls <= 2 {
			return nil, &APIError{StatusCode: 404, Body: "not found"}
		}
		return &ResultResponse{ID: "req-1", Status: StatusSuccess, Data: []byte(`[[{"name":"A"}]]`)}, nil
	}

	resp, err := PollResult(context.Background(), mock, "loc", WithSleep(noSleep))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, 3, mock.calls)
}

func TestPollResult_PersistentAuthErrorExhausts(t *testing.T) {
	mock := &mockClient{resultFunc: func(context.Context, string) (*ResultResponse, error) {
		return nil, &APIError{StatusCode: 401, Body: "unauthorized"}
	}}

	_, err := PollResult(context.Background(), mock, "loc", WithSleep(noSleep))
	require.Error(t, err)
	assert.True(t, errors.Is(err, resilience.ErrPollExhausted))
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, 18, mock.calls)
}

func TestPollResult_DecodeErrorStops(t *testing.T) {
	mock := &mockClient{resultFunc: func(context.Context, string) (*ResultResponse, error) {
		return nil, eris.Wrap(errors.New("unexpected EOF"), "decode response")
	}}

	_, err := PollResult(context.Background(), mock, "loc", WithSleep(noSleep))
	require.Error(t, err)
	assert.False(t, errors.Is(err, resilience.ErrPollExhausted))
	assert.Equal(t, 1, mock.calls)
}
