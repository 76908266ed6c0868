// Package mocks provides test doubles for the outscraper client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	outscraper "github.com/sells-group/reputation-cli/pkg/outscraper"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// SearchMaps provides a mock function with given fields: ctx, req
func (_m *MockClient) SearchMaps(ctx context.Context, req outscraper.SearchRequest) (*outscraper.SearchResponse, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for SearchMaps")
	}

	var r0 *outscraper.SearchResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*outscraper.SearchResponse)
	}
	return r0, ret.Error(1)
}

// GetResult provides a mock function with given fields: ctx, resultsLocation
func (_m *MockClient) GetResult(ctx context.Context, resultsLocation string) (*outscraper.ResultResponse, error) {
	ret := _m.Called(ctx, resultsLocation)

	if len(ret) == 0 {
		panic("no return value specified for GetResult")
	}

	var r0 *outscraper.ResultResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*outscraper.ResultResponse)
	}
	return r0, ret.Error(1)
}

// NewMockClient creates a new instance of MockClient and registers cleanup
// that asserts expectations.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
