package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func yr(v int) *int { return &v }

func TestBuild_YearExpansion(t *testing.T) {
	set := Build([]Row{
		{Brand: "Yamaha", Model: "FZ", Category: "Brake System", YearFrom: yr(2015), YearTo: yr(2017)},
		{Brand: "Honda", Model: "Activa", Category: "Brake System", YearFrom: yr(2016), YearTo: yr(2016)},
	})
	assert.Equal(t, []int{2017, 2016, 2015}, set.Years)
}

func TestBuild_SortedDistinct(t *testing.T) {
	set := Build([]Row{
		{Brand: "Yamaha", Model: "R15", Category: "Lights"},
		{Brand: "Honda", Model: "Shine", Category: "Engine"},
		{Brand: "Yamaha", Model: "FZ", Category: "Engine"},
		{Brand: "Yamaha", Model: "FZ", Category: ""},
		{Brand: "", Model: "Orphan", Category: "Wheels"},
	})

	assert.Equal(t, []string{"Honda", "Yamaha"}, set.Brands)
	assert.Equal(t, []string{"Engine", "Lights", "Wheels"}, set.Categories)
	assert.Equal(t, map[string][]string{
		"Honda":  {"Shine"},
		"Yamaha": {"FZ", "R15"},
	}, set.ModelsByBrand)
}

func TestBuild_SkipsPartialAndInvertedRanges(t *testing.T) {
	set := Build([]Row{
		{Brand: "Bajaj", Model: "Pulsar", YearFrom: yr(2012), YearTo: nil},
		{Brand: "Bajaj", Model: "Pulsar", YearFrom: nil, YearTo: yr(2014)},
		{Brand: "Bajaj", Model: "Pulsar", YearFrom: yr(2020), YearTo: yr(2018)},
	})
	assert.Empty(t, set.Years)
	assert.NotNil(t, set.Years)
	assert.Equal(t, []string{"Pulsar"}, set.ModelsByBrand["Bajaj"])
}

func TestBuild_BrandWithoutModels(t *testing.T) {
	set := Build([]Row{{Brand: "TVS"}})
	models, ok := set.ModelsByBrand["TVS"]
	assert.True(t, ok)
	assert.Empty(t, models)
	assert.NotNil(t, models)
}

func TestEmpty(t *testing.T) {
	s := Empty()
	assert.True(t, s.IsEmpty())
	assert.NotNil(t, s.Brands)
	assert.NotNil(t, s.ModelsByBrand)
	assert.False(t, Build([]Row{{Brand: "KTM"}}).IsEmpty())
}

func TestExpandYears(t *testing.T) {
	assert.Equal(t, []int{2019, 2020, 2021}, ExpandYears(yr(2019), yr(2021)))
	assert.Nil(t, ExpandYears(yr(2022), yr(2021)))
	assert.Nil(t, ExpandYears(nil, yr(2021)))
}
