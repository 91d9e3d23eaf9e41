package dealership

import (
	"net/url"
	"testing"

	"github.com/leonexus/site/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"SUVs, Luxury ,suvs", []string{"SUVs", "Luxury"}},
		{"Nairobi\nMombasa\r\n, ,Nairobi", []string{"Nairobi", "Mombasa"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseList(tt.in), tt.in)
	}
}

func TestValidate(t *testing.T) {
	f := ParseForm(url.Values{
		"name":        {" Prime Motors "},
		"description": {"Quality imports"},
		"website":     {"https://prime.co.ke"},
		"specialties": {"SUVs, Trucks"},
	}.Get)

	in, err := f.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Prime Motors", in.Name)
	assert.Equal(t, []string{"SUVs", "Trucks"}, in.Specialties)
	assert.Equal(t, []string{}, in.Locations)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want string
	}{
		{"no name", Form{Description: "d"}, "Dealership name is required"},
		{"no description", Form{Name: "n"}, "Dealership description is required"},
		{"relative website", Form{Name: "n", Description: "d", Website: "prime.co.ke"}, "Website must be a full http or https URL"},
		{"ftp website", Form{Name: "n", Description: "d", Website: "ftp://prime.co.ke"}, "Website must be a full http or https URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestMatches(t *testing.T) {
	d := api.Dealership{Name: "Prime Motors", Locations: []string{"Nairobi, Karen"}, Specialties: []string{"Luxury"}}

	assert.True(t, Matches(d, ""))
	assert.True(t, Matches(d, "prime"))
	assert.True(t, Matches(d, "KAREN"))
	assert.True(t, Matches(d, "lux"))
	assert.False(t, Matches(d, "mombasa"))
}

func TestFilter(t *testing.T) {
	list := []api.Dealership{
		{ID: 1, Name: "Prime Motors", Locations: []string{"Nairobi"}},
		{ID: 2, Name: "Coast Cars", Locations: []string{"Mombasa"}},
	}
	assert.Len(t, Filter(list, " "), 2)
	got := Filter(list, "coast")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
	assert.Empty(t, Filter(list, "kisumu"))
}

func TestFormFrom(t *testing.T) {
	d := api.Dealership{Name: "A", Description: "B", Specialties: []string{"x"}}
	f := FormFrom(d)
	assert.Equal(t, "A", f.Name)
	assert.Equal(t, []string{"x"}, f.Specialties)
}
