package apiclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// The backend envelopes lists three different ways. All of them must
// normalize to the same items and meta.
func TestUnwrapList_AllObservedShapes(t *testing.T) {
	items := `[{"id":1,"name":"a"},{"id":2,"name":"b"}]`
	meta := `{"current_page":1,"per_page":15,"total":2,"last_page":1}`

	cases := map[string]string{
		"bare array":        items,
		"standard envelope": `{"data":` + items + `,"meta":` + meta + `,"links":{}}`,
		"double wrapped":    `{"data":{"data":` + items + `,"meta":` + meta + `}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			records, gotMeta, err := DecodeList[testRecord](json.RawMessage(body))
			require.NoError(t, err)

			assert.Equal(t, []testRecord{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, records)
			if name != "bare array" {
				assert.Equal(t, Meta{CurrentPage: 1, PerPage: 15, Total: 2, LastPage: 1}, gotMeta)
			}
		})
	}
}

func TestUnwrapList_EmptyBody(t *testing.T) {
	items, meta, err := UnwrapList(json.RawMessage(""))
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("[]"), items)
	assert.Equal(t, Meta{}, meta)
}

func TestUnwrapList_UnrecognizedShape(t *testing.T) {
	_, _, err := UnwrapList(json.RawMessage(`{"data":"nope"}`))
	assert.Error(t, err)
}

func TestMeta_NumericStrings(t *testing.T) {
	var m Meta
	err := json.Unmarshal([]byte(`{"current_page":"3","per_page":"25","total":"113","last_page":5}`), &m)
	require.NoError(t, err)

	assert.Equal(t, Meta{CurrentPage: 3, PerPage: 25, Total: 113, LastPage: 5}, m)
}

func TestUnwrapItem_WrappedAndBare(t *testing.T) {
	wrapped := json.RawMessage(`{"data":{"id":7,"name":"x"}}`)
	bare := json.RawMessage(`{"id":7,"name":"x"}`)

	for _, raw := range []json.RawMessage{wrapped, bare} {
		record, err := DecodeItem[testRecord](raw)
		require.NoError(t, err)
		assert.Equal(t, testRecord{ID: 7, Name: "x"}, record)
	}
}

func TestUnwrapItem_RejectsArray(t *testing.T) {
	_, err := UnwrapItem(json.RawMessage(`[1,2,3]`))
	assert.Error(t, err)
}
