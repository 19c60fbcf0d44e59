// Package mocks provides testify mocks for the storage ports
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vesla0x1/azstorage/application/ports"
)

// MockStorageFactory is a mock implementation of ports.StorageFactory
type MockStorageFactory struct {
	mock.Mock
}

func (m *MockStorageFactory) GetBlobContainer(name string) ports.BlobContainer {
	args := m.Called(name)
	return args.Get(0).(ports.BlobContainer)
}

func (m *MockStorageFactory) GetQueue(name string) ports.Queue {
	args := m.Called(name)
	return args.Get(0).(ports.Queue)
}

func (m *MockStorageFactory) GetTable(name string) ports.Table {
	args := m.Called(name)
	return args.Get(0).(ports.Table)
}

// MockResource is a mock implementation of ports.ResourceHandle. It also
// satisfies ports.BlobContainer, ports.Queue and ports.Table.
type MockResource struct {
	mock.Mock
}

// NewMockResource returns a MockResource whose addressing methods are stubbed
func NewMockResource(account, name, url string) *MockResource {
	m := &MockResource{}
	m.On("Name").Return(name).Maybe()
	m.On("AccountName").Return(account).Maybe()
	m.On("URL").Return(url).Maybe()
	return m
}

func (m *MockResource) Name() string {
	return m.Called().String(0)
}

func (m *MockResource) AccountName() string {
	return m.Called().String(0)
}

func (m *MockResource) URL() string {
	return m.Called().String(0)
}

func (m *MockResource) Exists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockResource) CreateIfNotExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockResource) DeleteIfExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

var (
	_ ports.StorageFactory = (*MockStorageFactory)(nil)
	_ ports.BlobContainer  = (*MockResource)(nil)
	_ ports.Queue          = (*MockResource)(nil)
	_ ports.Table          = (*MockResource)(nil)
)
