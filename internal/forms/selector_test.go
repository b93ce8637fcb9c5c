package forms_test

import (
	"testing"

	"github.com/cpghub/cpghub-api/internal/forms"
	"github.com/cpghub/cpghub-api/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestCategorySelector_ToggleInvolution(t *testing.T) {
	s := forms.NewCategorySelector("area_of_specialization")

	s.Toggle("Sales")
	assert.Equal(t, []string{"Sales"}, s.Selected())

	s.Toggle("Sales")
	assert.Empty(t, s.Selected())

	// Twice more from a non-empty baseline.
	s.Toggle("Marketing")
	before := s.Selected()
	s.Toggle("Supply Chain")
	s.Toggle("Supply Chain")
	assert.Equal(t, before, s.Selected())
}

func TestCategorySelector_ClickOrderPreserved(t *testing.T) {
	s := forms.NewCategorySelector("area_of_specialization")

	s.Toggle("Marketing")
	s.Toggle("Sales")
	s.Toggle("Finance")
	assert.Equal(t, []string{"Marketing", "Sales", "Finance"}, s.Selected())

	s.Remove("Sales")
	assert.Equal(t, []string{"Marketing", "Finance"}, s.Selected())
}

func TestCategorySelector_OtherTogglesSubFormOnly(t *testing.T) {
	s := forms.NewCategorySelector("area_of_specialization")

	assert.False(t, s.OtherOpen())
	s.Toggle(forms.OtherLabel)
	assert.True(t, s.OtherOpen())
	assert.Empty(t, s.Selected(), "Other must not join the selected set")

	s.Toggle(forms.OtherLabel)
	assert.False(t, s.OtherOpen())
}

func TestCategorySelector_AddCustom(t *testing.T) {
	s := forms.NewCategorySelector("area_of_specialization")

	err := s.AddCustom("  craft beer ")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Craft Beer"}, s.Selected())
}

func TestCategorySelector_AddCustomRejectsInvalid(t *testing.T) {
	s := forms.NewCategorySelector("category_of_service")

	err := s.AddCustom("ab")
	assert.Error(t, err)
	var fe validation.FieldError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, "category_of_service", fe.Field)
	assert.Empty(t, s.Selected())

	err = s.AddCustom("bad!label")
	assert.Error(t, err)
}

func TestCategorySelector_AddCustomCaseInsensitiveDuplicate(t *testing.T) {
	s := forms.NewCategorySelector("area_of_specialization")

	assert.NoError(t, s.AddCustom("retail"))
	assert.Equal(t, []string{"Retail"}, s.Selected())

	err := s.AddCustom("Retail")
	assert.Error(t, err, "case-normalized duplicate must be rejected")

	err = s.AddCustom("RETAIL")
	assert.Error(t, err)
	assert.Equal(t, []string{"Retail"}, s.Selected())
}

func TestCategorySelector_DuplicateOfBuiltInChip(t *testing.T) {
	s := forms.NewCategorySelector("area_of_specialization")
	s.Toggle("Sales")

	err := s.AddCustom("sales")
	assert.Error(t, err)
	assert.Equal(t, []string{"Sales"}, s.Selected())
}

func TestCategorySelector_RemoveUniformForCustomChips(t *testing.T) {
	s := forms.NewCategorySelector("area_of_specialization")
	s.Toggle("Sales")
	assert.NoError(t, s.AddCustom("craft beer"))

	s.Remove("Craft Beer")
	assert.Equal(t, []string{"Sales"}, s.Selected())

	// Removed label can be re-added.
	assert.NoError(t, s.AddCustom("craft beer"))
	assert.Equal(t, []string{"Sales", "Craft Beer"}, s.Selected())
}

func TestDependentGroup_ResetOnTriggerDeselect(t *testing.T) {
	s := forms.NewCategorySelector("category_of_service")
	brokerTypes := s.Bind("type_of_broker_service", forms.RequireAny("Broker"))

	assert.False(t, brokerTypes.Visible())

	s.Toggle("Broker")
	assert.True(t, brokerTypes.Visible())

	brokerTypes.SetValues("Retail Broker", "Foodservice Broker")
	assert.Equal(t, []string{"Retail Broker", "Foodservice Broker"}, brokerTypes.Values())

	// Deselecting the trigger clears the stale values.
	s.Toggle("Broker")
	assert.False(t, brokerTypes.Visible())
	assert.Empty(t, brokerTypes.Values())

	// Re-selecting does not resurrect them.
	s.Toggle("Broker")
	assert.True(t, brokerTypes.Visible())
	assert.Empty(t, brokerTypes.Values())
}

func TestDependentGroup_MultiTriggerPredicate(t *testing.T) {
	s := forms.NewCategorySelector("category_of_service")
	markets := s.Bind("markets_covered", forms.RequireAny("Broker", "Sales", "Merchandising"))

	s.Toggle("Sales")
	assert.True(t, markets.Visible())
	markets.SetValues("Northeast")

	s.Toggle("Broker")
	assert.True(t, markets.Visible())
	assert.Equal(t, []string{"Northeast"}, markets.Values(), "still visible, values kept")

	s.Toggle("Sales")
	assert.True(t, markets.Visible(), "Broker still triggers")
	assert.Equal(t, []string{"Northeast"}, markets.Values())

	s.Toggle("Broker")
	assert.False(t, markets.Visible())
	assert.Empty(t, markets.Values())
}

func TestDependentGroup_SetValuesIgnoredWhileHidden(t *testing.T) {
	s := forms.NewCategorySelector("category_of_service")
	brokerTypes := s.Bind("type_of_broker_service", forms.RequireAny("Broker"))

	brokerTypes.SetValues("Retail Broker")
	assert.Empty(t, brokerTypes.Values())
}
