package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("airline")
	require.NoError(t, err)
	assert.Equal(t, Airline, d)

	d, err = Parse("retail")
	require.NoError(t, err)
	assert.Equal(t, Retail, d)

	_, err = Parse("banking")
	assert.Error(t, err)
}

func TestCatalog_EndsWithRespondToUser(t *testing.T) {
	for _, d := range All() {
		catalog := d.Catalog()
		require.NotEmpty(t, catalog)
		assert.Equal(t, RespondToUser, catalog[len(catalog)-1].Name)
	}
}

func TestCatalog_Airline(t *testing.T) {
	names := make([]string, 0)
	for _, spec := range Airline.Catalog() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{
		"search_flights", "book_flight", "cancel_booking", "check_policy", "respond_to_user",
	}, names)
}

func TestCatalog_Retail(t *testing.T) {
	names := make([]string, 0)
	for _, spec := range Retail.Catalog() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{
		"search_products", "place_order", "return_item", "check_inventory", "check_policy", "respond_to_user",
	}, names)
}

func TestCatalog_OptionalSearchFilters(t *testing.T) {
	var search ToolSpec
	for _, spec := range Retail.Catalog() {
		if spec.Name == "search_products" {
			search = spec
		}
	}
	require.NotEmpty(t, search.Name)

	for _, key := range []string{"category", "name"} {
		param, ok := search.Parameters[key]
		require.True(t, ok)
		require.NotNil(t, param.Required)
		assert.False(t, *param.Required)
	}
}

func TestSchema_CreatesDeclaredTables(t *testing.T) {
	for _, d := range All() {
		schema := d.Schema()
		for _, table := range d.Tables() {
			assert.Contains(t, schema, "CREATE TABLE "+table, "domain %s", d)
		}
	}
}

func TestUnknownDomainIsInert(t *testing.T) {
	d := Domain("banking")
	assert.Nil(t, d.Catalog())
	assert.Empty(t, d.Schema())
	assert.Nil(t, d.Tables())
}
