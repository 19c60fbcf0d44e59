package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/vesla0x1/azstorage/application/ports"
)

// MockMetrics is a mock implementation of ports.Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncrementCounter(name string, tags map[string]string) {
	m.Called(name, tags)
}

func (m *MockMetrics) RecordHistogram(name string, value float64, tags map[string]string) {
	m.Called(name, value, tags)
}

func (m *MockMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	m.Called(name, value, tags)
}

func (m *MockMetrics) WithTags(tags map[string]string) ports.Metrics {
	args := m.Called(tags)
	if metrics, ok := args.Get(0).(ports.Metrics); ok {
		return metrics
	}
	return m
}

// NewNopMetrics returns a MockMetrics that accepts any call
func NewNopMetrics() *MockMetrics {
	m := &MockMetrics{}
	m.On("IncrementCounter", mock.Anything, mock.Anything).Maybe()
	m.On("RecordHistogram", mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("RecordGauge", mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("WithTags", mock.Anything).Return(nil).Maybe()
	return m
}
