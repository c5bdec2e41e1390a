package handlers

import (
	"context"

	"text2sql-api/internal/generator"
	"text2sql-api/internal/schema"

	"github.com/stretchr/testify/mock"
)

// MockGeneratorService is a testify mock of generator.Service
type MockGeneratorService struct {
	mock.Mock
}

var _ generator.Service = (*MockGeneratorService)(nil)

func (m *MockGeneratorService) Generate(ctx context.Context, req generator.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockGeneratorService) Cache(table schema.TableMeta) error {
	args := m.Called(table)
	return args.Error(0)
}

func (m *MockGeneratorService) CacheAll(tables []schema.TableMeta) error {
	args := m.Called(tables)
	return args.Error(0)
}

func (m *MockGeneratorService) Clear() {
	m.Called()
}

func (m *MockGeneratorService) Refresh(tables []schema.TableMeta) error {
	args := m.Called(tables)
	return args.Error(0)
}

func (m *MockGeneratorService) RefreshSingle(table schema.TableMeta) error {
	args := m.Called(table)
	return args.Error(0)
}

func (m *MockGeneratorService) Len() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockGeneratorService) Tables() []schema.TableMeta {
	args := m.Called()
	if tables, ok := args.Get(0).([]schema.TableMeta); ok {
		return tables
	}
	return nil
}
