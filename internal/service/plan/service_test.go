package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mrp-sched/internal/storage"
)

type MockPlanStorage struct {
	mock.Mock
}

func (m *MockPlanStorage) GetPartRoutings(ctx context.Context) ([]storage.PartRouting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.PartRouting), args.Error(1)
}

func (m *MockPlanStorage) GetPlanEntries(ctx context.Context, from, to time.Time) ([]storage.PlanEntry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.PlanEntry), args.Error(1)
}

func (m *MockPlanStorage) GetBOMLines(ctx context.Context) ([]storage.BOMLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.BOMLine), args.Error(1)
}

func (m *MockPlanStorage) GetStock(ctx context.Context, items []string) ([]storage.StockRow, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.StockRow), args.Error(1)
}

func (m *MockPlanStorage) GetTheoryCounts(ctx context.Context) ([]storage.InventoryRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.InventoryRow), args.Error(1)
}

func (m *MockPlanStorage) GetExternalStock(ctx context.Context) ([]storage.InventoryRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.InventoryRow), args.Error(1)
}

func (m *MockPlanStorage) GetWorkdays(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockPlanStorage) GetOpenOrders(ctx context.Context, statusBelow int) ([]storage.MfgOrder, error) {
	args := m.Called(ctx, statusBelow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.MfgOrder), args.Error(1)
}

func (m *MockPlanStorage) GetPurchaseLines(ctx context.Context, orderNos []int64) ([]storage.PurchaseLine, error) {
	args := m.Called(ctx, orderNos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.PurchaseLine), args.Error(1)
}

func (m *MockPlanStorage) GetReceiptLines(ctx context.Context, orderNos []int64) ([]storage.ReceiptLine, error) {
	args := m.Called(ctx, orderNos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ReceiptLine), args.Error(1)
}

func testOptions() Options {
	return Options{
		HorizonDays:              5,
		LeadWorkdays:             2,
		OrderStatusOpenThreshold: 6,
		TerminalStepCode:         "050",
	}
}

func newTestService(st PlanStorage, today time.Time) *Service {
	svc := NewService(st, testOptions())
	svc.now = func() time.Time { return today }
	return svc
}

func TestBuildReport_EndToEnd(t *testing.T) {
	today := day(2026, time.March, 2)
	st := new(MockPlanStorage)

	st.On("GetPartRoutings", mock.Anything).Return([]storage.PartRouting{
		{Item: "C1", WorkCenter: "050", Name: "Bracket", Warehouse: "W1"},
	}, nil)
	st.On("GetPlanEntries", mock.Anything, today, today.AddDate(0, 0, 5)).Return([]storage.PlanEntry{
		{Parent: "P1", Date: day(2026, time.March, 3), Qty: 10},
	}, nil)
	st.On("GetBOMLines", mock.Anything).Return([]storage.BOMLine{
		{Parent: "P1", Child: "C1", PerUnit: 2},
	}, nil)
	st.On("GetTheoryCounts", mock.Anything).Return([]storage.InventoryRow{
		{Item: "C1", Qty: 3},
	}, nil)
	st.On("GetExternalStock", mock.Anything).Return([]storage.InventoryRow{}, nil)
	st.On("GetWorkdays", mock.Anything).Return([]time.Time{
		day(2026, time.March, 2),
		day(2026, time.March, 3),
	}, nil)
	st.On("GetOpenOrders", mock.Anything, 6).Return([]storage.MfgOrder{
		{OrderNo: 1001, LineNo: "10", Item: "C1", Status: 4, OrderedQty: 8, DeliveredQty: 0},
		{OrderNo: 2002, LineNo: "10", Item: "UNKNOWN", Status: 4, OrderedQty: 99, DeliveredQty: 0},
	}, nil)
	st.On("GetStock", mock.Anything, []string{"C1"}).Return([]storage.StockRow{
		{Item: "C1", Warehouse: "W1", Qty: 5},
	}, nil)
	// The order on the unknown part is filtered before its number is used.
	st.On("GetPurchaseLines", mock.Anything, []int64{1001}).Return([]storage.PurchaseLine{}, nil)
	st.On("GetReceiptLines", mock.Anything, []int64{1001}).Return([]storage.ReceiptLine{}, nil)

	svc := newTestService(st, today)
	rep, err := svc.BuildReport(context.Background())

	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	require.Len(t, rep.Dates, 6)

	r := rep.Rows[0]
	assert.Equal(t, "C1", r.Item)
	// Demand 20 on March 3 against 5 stock + 3 theory.
	assert.Equal(t, -12.0, r.ShortageQty)
	require.NotNil(t, r.ShortageDate)
	assert.Equal(t, day(2026, time.March, 3), *r.ShortageDate)
	assert.Equal(t, CategoryPaint, r.Category)
	assert.Equal(t, 8.0, r.Backlog)
	assert.Equal(t, 8.0, r.Startable)

	st.AssertExpectations(t)
}

func TestBuildReport_SnapshotErrorAborts(t *testing.T) {
	today := day(2026, time.March, 2)
	st := new(MockPlanStorage)

	dbErr := errors.New("db gone")
	st.On("GetPartRoutings", mock.Anything).Return(nil, dbErr)
	st.On("GetPlanEntries", mock.Anything, mock.Anything, mock.Anything).Return([]storage.PlanEntry{}, nil).Maybe()
	st.On("GetBOMLines", mock.Anything).Return([]storage.BOMLine{}, nil).Maybe()
	st.On("GetTheoryCounts", mock.Anything).Return([]storage.InventoryRow{}, nil).Maybe()
	st.On("GetExternalStock", mock.Anything).Return([]storage.InventoryRow{}, nil).Maybe()
	st.On("GetWorkdays", mock.Anything).Return([]time.Time{}, nil).Maybe()
	st.On("GetOpenOrders", mock.Anything, mock.Anything).Return([]storage.MfgOrder{}, nil).Maybe()

	svc := newTestService(st, today)
	rep, err := svc.BuildReport(context.Background())

	assert.Nil(t, rep)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	// The second phase never runs after a snapshot failure.
	st.AssertNotCalled(t, "GetStock", mock.Anything, mock.Anything)
}

func TestBuildReport_EmptyInputs(t *testing.T) {
	today := day(2026, time.March, 2)
	st := new(MockPlanStorage)

	st.On("GetPartRoutings", mock.Anything).Return([]storage.PartRouting{}, nil)
	st.On("GetPlanEntries", mock.Anything, mock.Anything, mock.Anything).Return([]storage.PlanEntry{}, nil)
	st.On("GetBOMLines", mock.Anything).Return([]storage.BOMLine{}, nil)
	st.On("GetTheoryCounts", mock.Anything).Return([]storage.InventoryRow{}, nil)
	st.On("GetExternalStock", mock.Anything).Return([]storage.InventoryRow{}, nil)
	st.On("GetWorkdays", mock.Anything).Return([]time.Time{}, nil)
	st.On("GetOpenOrders", mock.Anything, 6).Return([]storage.MfgOrder{}, nil)
	st.On("GetStock", mock.Anything, []string{}).Return([]storage.StockRow{}, nil)
	st.On("GetPurchaseLines", mock.Anything, []int64{}).Return([]storage.PurchaseLine{}, nil)
	st.On("GetReceiptLines", mock.Anything, []int64{}).Return([]storage.ReceiptLine{}, nil)

	svc := newTestService(st, today)
	rep, err := svc.BuildReport(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rep.Rows)
	assert.Len(t, rep.Dates, 6)
}
