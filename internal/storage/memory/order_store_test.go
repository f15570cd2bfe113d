package memory_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/burgershop/internal/domain"
	"github.com/vladislavdragonenkov/burgershop/internal/health"
	"github.com/vladislavdragonenkov/burgershop/internal/storage/memory"
)

// Хранилище используется и как OrderStore, и как источник счётчика для health-check.
var (
	_ domain.OrderStore   = (*memory.OrderStore)(nil)
	_ health.OrderCounter = (*memory.OrderStore)(nil)
)

func fixedClock() func() time.Time {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestOrderStore_CreateOrderMintsSequentialIDs(t *testing.T) {
	store := memory.NewOrderStore(memory.WithClock(fixedClock()))

	for i := 1; i <= 3; i++ {
		order := store.CreateOrder(fmt.Sprintf("customer-%d", i), i)
		assert.Equal(t, fmt.Sprintf("O%03d", i), order.ID)
		assert.Equal(t, fmt.Sprintf("C%03d", i), order.Customer.ID)
		assert.Equal(t, domain.OrderStatusPreparing, order.Status)
		assert.Equal(t, domain.BurgerUnitPrice, order.UnitPrice)
	}

	all := store.AllOrders()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"O001", "O002", "O003"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestOrderStore_CreateOrderDoesNotValidateQuantity(t *testing.T) {
	store := memory.NewOrderStore()

	order := store.CreateOrder("Bob", -2)
	assert.Equal(t, -2, order.Quantity)
	assert.Equal(t, int64(-1000), order.Total())
}

func TestOrderStore_IDsGrowPast999(t *testing.T) {
	store := memory.NewOrderStore()
	var last domain.Order
	for i := 0; i < 1000; i++ {
		last = store.CreateOrder("bulk", 1)
	}
	assert.Equal(t, "O1000", last.ID)
	assert.Equal(t, "C1000", last.Customer.ID)
}

func TestOrderStore_NextIDsDoesNotConsume(t *testing.T) {
	store := memory.NewOrderStore()

	orderID, customerID := store.NextIDs()
	assert.Equal(t, "O001", orderID)
	assert.Equal(t, "C001", customerID)

	orderID, _ = store.NextIDs()
	assert.Equal(t, "O001", orderID)

	order := store.CreateOrder("Alice", 1)
	assert.Equal(t, "O001", order.ID)

	orderID, customerID = store.NextIDs()
	assert.Equal(t, "O002", orderID)
	assert.Equal(t, "C002", customerID)
}

func TestOrderStore_FindOrderIgnoresCase(t *testing.T) {
	store := memory.NewOrderStore()
	created := store.CreateOrder("Alice", 2)

	found, ok := store.FindOrder("o001")
	require.True(t, ok)
	assert.Equal(t, created.ID, found.ID)

	_, ok = store.FindOrder("O002")
	assert.False(t, ok)

	_, ok = store.FindOrder("O00")
	assert.False(t, ok, "prefix must not match")
}

func TestOrderStore_ReturnsCopies(t *testing.T) {
	store := memory.NewOrderStore()
	order := store.CreateOrder("Alice", 2)
	order.Quantity = 99
	order.Status = domain.OrderStatusDelivered

	stored, ok := store.FindOrder(order.ID)
	require.True(t, ok)
	assert.Equal(t, 2, stored.Quantity)
	assert.Equal(t, domain.OrderStatusPreparing, stored.Status)
}

func TestOrderStore_AliceScenario(t *testing.T) {
	store := memory.NewOrderStore()

	order := store.CreateOrder("Alice", 3)
	assert.Equal(t, int64(1500), order.Total())

	require.True(t, store.UpdateQuantity(order.ID, 5))
	updated, _ := store.FindOrder(order.ID)
	assert.Equal(t, int64(2500), updated.Total())

	require.True(t, store.UpdateStatus(order.ID, domain.OrderStatusDelivered))

	assert.False(t, store.UpdateQuantity(order.ID, 1))
	final, _ := store.FindOrder(order.ID)
	assert.Equal(t, 5, final.Quantity)
	assert.Equal(t, domain.OrderStatusDelivered, final.Status)
}

func TestOrderStore_StatusIsOneShot(t *testing.T) {
	store := memory.NewOrderStore()
	order := store.CreateOrder("Carol", 1)

	require.True(t, store.UpdateStatus(order.ID, domain.OrderStatusCancelled))
	assert.False(t, store.UpdateStatus(order.ID, domain.OrderStatusPreparing))
	assert.False(t, store.UpdateStatus(order.ID, domain.OrderStatusDelivered))

	stored, _ := store.FindOrder(order.ID)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
}

func TestOrderStore_ChangeReportsCause(t *testing.T) {
	clock := fixedClock()
	store := memory.NewOrderStore(memory.WithClock(clock))
	order := store.CreateOrder("Dave", 1)

	_, err := store.ChangeQuantity("O404", 2)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.False(t, store.UpdateQuantity("O404", 2))

	updated, err := store.ChangeStatus("o001", domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)
	assert.Equal(t, clock(), updated.UpdatedAt)

	current, err := store.ChangeQuantity(order.ID, 3)
	assert.ErrorIs(t, err, domain.ErrOrderNotMutable)
	assert.Equal(t, 1, current.Quantity)
}

func TestOrderStore_FindOrdersByCustomer(t *testing.T) {
	store := memory.NewOrderStore()
	first := store.CreateOrder("Alice", 1)
	store.CreateOrder("Bob", 2)

	orders := store.FindOrdersByCustomer("c001")
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)

	missing := store.FindOrdersByCustomer("C999")
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestOrderStore_OrdersByStatus(t *testing.T) {
	store := memory.NewOrderStore()
	a := store.CreateOrder("A", 1)
	b := store.CreateOrder("B", 1)
	c := store.CreateOrder("C", 1)
	require.True(t, store.UpdateStatus(b.ID, domain.OrderStatusDelivered))

	preparing := store.OrdersByStatus(domain.OrderStatusPreparing)
	require.Len(t, preparing, 2)
	assert.Equal(t, a.ID, preparing[0].ID)
	assert.Equal(t, c.ID, preparing[1].ID)

	delivered := store.OrdersByStatus(domain.OrderStatusDelivered)
	require.Len(t, delivered, 1)
	assert.Equal(t, b.ID, delivered[0].ID)

	assert.Empty(t, store.OrdersByStatus(domain.OrderStatusCancelled))
}

func TestOrderStore_CustomerTotalsIncludeEveryStatus(t *testing.T) {
	store := memory.NewOrderStore()
	a := store.CreateOrder("Alice", 2)
	b := store.CreateOrder("Bob", 4)
	require.True(t, store.UpdateStatus(b.ID, domain.OrderStatusCancelled))

	totals := store.CustomerTotals()
	require.Len(t, totals, 2)
	assert.Equal(t, int64(1000), totals[a.Customer])
	assert.Equal(t, int64(2000), totals[b.Customer])
}

func TestOrderStore_CustomersByTotalDescending(t *testing.T) {
	store := memory.NewOrderStore()
	store.CreateOrder("small", 1)
	store.CreateOrder("big", 6)
	store.CreateOrder("tie-first", 3)
	store.CreateOrder("tie-second", 3)

	ranked := store.CustomersByTotalDescending()
	require.Len(t, ranked, 4)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Total, ranked[i].Total)
	}
	assert.Equal(t, "big", ranked[0].Customer.Name)
	assert.Equal(t, "tie-first", ranked[1].Customer.Name)
	assert.Equal(t, "tie-second", ranked[2].Customer.Name)
	assert.Equal(t, "small", ranked[3].Customer.Name)
}

func TestOrderStore_EmptyAggregates(t *testing.T) {
	store := memory.NewOrderStore()
	assert.Empty(t, store.CustomerTotals())
	assert.Empty(t, store.CustomersByTotalDescending())
	assert.Equal(t, 0, store.Len())
}

func TestOrderStore_ConcurrentCreatesKeepIDsUnique(t *testing.T) {
	store := memory.NewOrderStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.CreateOrder("parallel", 1)
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{})
	for _, order := range store.AllOrders() {
		_, dup := seen[order.ID]
		require.False(t, dup, "duplicate id %s", order.ID)
		seen[order.ID] = struct{}{}
	}
	assert.Len(t, seen, 50)
}

func TestNewOrderStore_ExportedType(t *testing.T) {
	store := memory.NewOrderStore()

	var counter health.OrderCounter = store
	store.CreateOrder("Alice", 1)
	assert.Equal(t, 1, counter.Len())

	var iface domain.OrderStore = store
	_, ok := iface.FindOrder("O001")
	assert.True(t, ok)
}
