package segment

import (
	"testing"

	"artisan-catalog-service/internal/domain/customer"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestAggregateCountsDistinctCustomers(t *testing.T) {
	customers := []customer.Customer{
		{ID: "c1", Name: "Ana", Tags: pq.StringArray{"vip", "delhi"}},
		{ID: "c2", Name: "Bo", Tags: pq.StringArray{"vip"}},
		{ID: "c3", Name: "Cy", Tags: pq.StringArray{"delhi"}},
	}

	groups := Aggregate(customers)

	assert.Equal(t, []customer.TagGroup{
		{Tag: "delhi", Count: 2},
		{Tag: "vip", Count: 2},
	}, groups)
}

func TestAggregateDuplicateTagOnSameCustomerCountsOnce(t *testing.T) {
	customers := []customer.Customer{
		{ID: "c1", Name: "Ana", Tags: pq.StringArray{"vip", "vip", "vip"}},
		{ID: "c2", Name: "Bo", Tags: pq.StringArray{"vip"}},
	}

	groups := Aggregate(customers)

	assert.Equal(t, []customer.TagGroup{{Tag: "vip", Count: 2}}, groups)
}

func TestAggregateOrdersByCountThenTag(t *testing.T) {
	customers := []customer.Customer{
		{ID: "c1", Tags: pq.StringArray{"wholesale"}},
		{ID: "c2", Tags: pq.StringArray{"wholesale", "retail"}},
		{ID: "c3", Tags: pq.StringArray{"wholesale", "retail", "festival"}},
	}

	groups := Aggregate(customers)

	assert.Equal(t, []customer.TagGroup{
		{Tag: "wholesale", Count: 3},
		{Tag: "retail", Count: 2},
		{Tag: "festival", Count: 1},
	}, groups)
}

func TestAggregateTagsAreCaseSensitive(t *testing.T) {
	customers := []customer.Customer{
		{ID: "c1", Tags: pq.StringArray{"VIP"}},
		{ID: "c2", Tags: pq.StringArray{"vip"}},
	}

	groups := Aggregate(customers)

	assert.Equal(t, []customer.TagGroup{
		{Tag: "VIP", Count: 1},
		{Tag: "vip", Count: 1},
	}, groups)
}

func TestAggregateEmptySnapshot(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]customer.Customer{{ID: "c1", Name: "Ana"}}))
}
