package apiclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_DecodesDecimalStrings(t *testing.T) {
	cases := map[string]Money{
		`"113.00"`: 113,
		`"0.50"`:   0.5,
		`"1250.75"`: 1250.75,
		`113`:      113,
		`113.5`:    113.5,
		`""`:       0,
		`null`:     0,
	}

	for input, want := range cases {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(input), &m), "input %s", input)
		assert.Equal(t, want, m, "input %s", input)
	}
}

func TestMoney_RejectsGarbage(t *testing.T) {
	var m Money
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
}

func TestMoney_MarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(Money(113))
	require.NoError(t, err)
	assert.Equal(t, `113`, string(data))

	data, err = json.Marshal(Money(99.9))
	require.NoError(t, err)
	assert.Equal(t, `99.9`, string(data))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "113.00", Money(113).String())
	assert.Equal(t, "0.50", Money(0.5).String())
}

func TestMoney_InsideStruct(t *testing.T) {
	var record struct {
		GrandTotal Money `json:"grand_total"`
		PaidAmount Money `json:"paid_amount"`
	}

	body := `{"grand_total":"113.00","paid_amount":50}`
	require.NoError(t, json.Unmarshal([]byte(body), &record))

	assert.Equal(t, Money(113), record.GrandTotal)
	assert.Equal(t, Money(50), record.PaidAmount)
}
