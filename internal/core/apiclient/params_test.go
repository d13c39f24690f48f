package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Values(t *testing.T) {
	values := NewParams().
		Filter("shipping_status", "pending").
		Filter("payment_status", "").
		Search("acme").
		Page(3).
		PerPage(25).
		Values()

	assert.Equal(t, "pending", values.Get("filter[shipping_status]"))
	assert.Equal(t, "acme", values.Get("filter[search]"))
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "25", values.Get("per_page"))
	assert.False(t, values.Has("filter[payment_status]"), "empty filters must be skipped")
}

func TestParams_Map(t *testing.T) {
	m := NewParams().Filter("status", "draft").Page(2).Map()

	assert.Equal(t, map[string]string{"status": "draft", "page": "2"}, m)
}

func TestParams_Empty(t *testing.T) {
	assert.Empty(t, NewParams().Values())
	assert.Empty(t, NewParams().Map())
}
