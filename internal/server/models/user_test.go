package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_ValueScan(t *testing.T) {
	in := Address{Street: "Kulas Light", Suite: "Apt. 556", City: "Gwenborough", Zipcode: "92998-3874", Geo: Geo{Lat: "-37.3159", Lng: "81.1496"}}

	v, err := in.Value()
	require.NoError(t, err)
	assert.Contains(t, v, `"zipcode":"92998-3874"`)

	var fromString, fromBytes Address
	require.NoError(t, fromString.Scan(v))
	require.NoError(t, fromBytes.Scan([]byte(v.(string))))
	assert.Equal(t, in, fromString)
	assert.Equal(t, in, fromBytes)
}

func TestCompany_ValueScan(t *testing.T) {
	in := Company{Name: "Romaguera-Crona", CatchPhrase: "Multi-layered client-server neural-net", Bs: "harness real-time e-markets"}

	v, err := in.Value()
	require.NoError(t, err)
	assert.Contains(t, v, `"catchPhrase"`)

	var out Company
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestScanJSON_NullAndBadInput(t *testing.T) {
	c := Company{Name: "stale"}
	require.NoError(t, c.Scan(nil))
	assert.Equal(t, Company{}, c)

	a := Address{City: "stale"}
	require.NoError(t, a.Scan([]byte{}))
	assert.Equal(t, Address{}, a)

	assert.ErrorIs(t, a.Scan(42), errInvalidJSONColumn)
	assert.Error(t, a.Scan("{not json"))
}
