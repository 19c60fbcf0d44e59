package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/vesla0x1/azstorage/application/ports"
)

// MockObservability is a mock implementation of ports.Observability
type MockObservability struct {
	mock.Mock
}

func (m *MockObservability) Components() (ports.Logger, ports.Metrics, error) {
	args := m.Called()
	logger, _ := args.Get(0).(ports.Logger)
	metrics, _ := args.Get(1).(ports.Metrics)
	return logger, metrics, args.Error(2)
}

func (m *MockObservability) ComponentsScoped(component string) (ports.Logger, ports.Metrics, error) {
	args := m.Called(component)
	logger, _ := args.Get(0).(ports.Logger)
	metrics, _ := args.Get(1).(ports.Metrics)
	return logger, metrics, args.Error(2)
}

func (m *MockObservability) Logger() (ports.Logger, error) {
	args := m.Called()
	logger, _ := args.Get(0).(ports.Logger)
	return logger, args.Error(1)
}

func (m *MockObservability) LoggerScoped(component string) (ports.Logger, error) {
	args := m.Called(component)
	logger, _ := args.Get(0).(ports.Logger)
	return logger, args.Error(1)
}

func (m *MockObservability) Metrics() (ports.Metrics, error) {
	args := m.Called()
	metrics, _ := args.Get(0).(ports.Metrics)
	return metrics, args.Error(1)
}

func (m *MockObservability) MetricsScoped(component string) (ports.Metrics, error) {
	args := m.Called(component)
	metrics, _ := args.Get(0).(ports.Metrics)
	return metrics, args.Error(1)
}
