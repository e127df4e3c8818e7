package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/pitwall/pkg/validator"
)

func ptr[T any](v T) *T {
	return &v
}

func TestBaseModelBeforeCreateGeneratesID(t *testing.T) {
	var base BaseModel
	if err := base.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if base.ID == "" {
		t.Fatal("expected base model ID to be generated")
	}
}

func TestBaseModelBeforeCreateKeepsExistingID(t *testing.T) {
	base := BaseModel{ID: "fixed"}
	if err := base.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if base.ID != "fixed" {
		t.Fatalf("expected ID to stay fixed, got %q", base.ID)
	}
}

func TestBaseModelBeforeCreateNormalisesID(t *testing.T) {
	base := BaseModel{ID: "  3F2504E0-4F89-11D3-9A0C-0305E82C3301 "}
	require.NoError(t, base.BeforeCreate(nil))
	require.Equal(t, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", base.ID)

	require.Len(t, NewID(), 36)
	require.NotEqual(t, NewID(), NewID())
}

func TestEmbeddedModelsUseBaseBeforeCreate(t *testing.T) {
	cases := []struct {
		name  string
		model func() *BaseModel
	}{
		{"team", func() *BaseModel {
			m := &Team{}
			return &m.BaseModel
		}},
		{"rental", func() *BaseModel {
			m := &EquipmentRental{}
			return &m.BaseModel
		}},
		{"car_assignment", func() *BaseModel {
			m := &CarAssignment{}
			return &m.BaseModel
		}},
		{"driver_assignment", func() *BaseModel {
			m := &DriverAssignment{}
			return &m.BaseModel
		}},
		{"driver", func() *BaseModel {
			m := &Driver{}
			return &m.BaseModel
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := tc.model()
			if err := model.BeforeCreate(nil); err != nil {
				t.Fatalf("before create: %v", err)
			}
			if model.ID == "" {
				t.Fatal("expected ID to be generated")
			}
		})
	}
}

func TestNewTeam(t *testing.T) {
	team, err := NewTeam(TeamInput{
		Name:                  "  Apex Racing ",
		Owner:                 ptr("  "),
		CarManufacturer:       ptr("Ferrari"),
		UsedEquipmentRating:   ptr(50.0),
		ActualEquipmentRating: ptr(40.0),
		PersonnelRating:       ptr(0.0),
	})
	require.NoError(t, err)
	require.Equal(t, "Apex Racing", team.Name)
	require.Nil(t, team.Owner)
	require.Equal(t, "Ferrari", *team.CarManufacturer)
	require.Equal(t, 50.0, team.UsedEquipmentRating)
	require.Equal(t, 40.0, team.ActualEquipmentRating)
	require.Zero(t, team.PersonnelRating)
	require.False(t, team.IsRenting())
}

func TestNewTeamRejectsMissingFields(t *testing.T) {
	_, err := NewTeam(TeamInput{
		Name:                "",
		UsedEquipmentRating: ptr(50.0),
	})
	require.Error(t, err)

	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)

	fields := make([]string, 0, len(vErrs))
	for _, v := range vErrs {
		fields = append(fields, v.Field)
	}
	require.ElementsMatch(t, []string{"name", "actual_equipment_rating", "personnel_rating"}, fields)
}

func TestNewTeamRejectsLongName(t *testing.T) {
	_, err := NewTeam(TeamInput{
		Name:                  strings.Repeat("x", 33),
		UsedEquipmentRating:   ptr(1.0),
		ActualEquipmentRating: ptr(1.0),
		PersonnelRating:       ptr(1.0),
	})
	require.Error(t, err)
}

func TestTeamValidateRejectsSelfRental(t *testing.T) {
	team := &Team{
		BaseModel:           BaseModel{ID: "team-a"},
		Name:                "Apex",
		EquipmentRentedFrom: ptr("team-a"),
	}

	err := team.Validate()
	require.Error(t, err)

	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	require.Len(t, vErrs, 1)
	require.Equal(t, "equipment_rented_from", vErrs[0].Field)

	team.EquipmentRentedFrom = ptr("team-b")
	require.NoError(t, team.Validate())
}

func TestTeamValidateRejectsBlankName(t *testing.T) {
	team := &Team{Name: " \t "}

	var vErrs validator.ValidationErrors
	require.ErrorAs(t, team.Validate(), &vErrs)
	require.Equal(t, "name", vErrs[0].Field)
	require.Equal(t, "notblank", vErrs[0].Tag)

	team.Name = "Apex"
	require.NoError(t, team.Validate())
}

func TestTeamSerializeKeepsNullKeys(t *testing.T) {
	team := &Team{Name: "Apex", PersonnelRating: 60}

	payload, err := json.Marshal(team.Serialize(50, 55))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	require.Len(t, decoded, 6)
	owner, ok := decoded["owner"]
	require.True(t, ok, "owner key must be present")
	require.Nil(t, owner)
	manufacturer, ok := decoded["car_manufacturer"]
	require.True(t, ok, "car_manufacturer key must be present")
	require.Nil(t, manufacturer)
	require.Equal(t, 50.0, decoded["equipment_rating"])
	require.Equal(t, 60.0, decoded["personnel_rating"])
	require.Equal(t, 55.0, decoded["team_performance"])
}

func TestTeamSummary(t *testing.T) {
	team := &Team{
		Name:                "Apex",
		CarManufacturer:     ptr("Porsche"),
		UsedEquipmentRating: 10,
		PersonnelRating:     60,
		TeamPerformance:     55,
	}

	out := team.Summary(50)
	require.Equal(t, "Team Name: Apex\n"+
		"Owner: None\n"+
		"Car Manufacturer: Porsche\n"+
		"Equipment Rating: 50\n"+
		"Personnel Rating: 60\n"+
		"Team Performance: 55\n", out)
	require.Equal(t, "<Team Apex>", team.String())
}

func TestNewEquipmentRental(t *testing.T) {
	rental, err := NewEquipmentRental("lender", "borrower", -3)
	require.NoError(t, err)
	require.Equal(t, -3, rental.EquipmentBonus)
	require.True(t, rental.Links("lender", "borrower"))
	require.False(t, rental.Links("borrower", "lender"))

	_, err = NewEquipmentRental("same", "same", 5)
	require.Error(t, err)

	_, err = NewEquipmentRental("", "borrower", 5)
	require.Error(t, err)
}

func TestNewCarAssignment(t *testing.T) {
	car, err := NewCarAssignment("team", "driver", " GT3 ", 7)
	require.NoError(t, err)
	require.Equal(t, "GT3", car.Series)

	_, err = NewCarAssignment("team", "driver", "GT3", 0)
	require.Error(t, err)

	_, err = NewCarAssignment("team", "driver", "GT3", -4)
	require.Error(t, err)

	_, err = NewCarAssignment("team", "", "GT3", 4)
	require.Error(t, err)
}

func TestNewDriverAssignment(t *testing.T) {
	_, err := NewDriverAssignment("team", "driver", "F2")
	require.NoError(t, err)

	_, err = NewDriverAssignment("team", "driver", "")
	require.Error(t, err)
}

func TestNewDriver(t *testing.T) {
	driver, err := NewDriver(" Ayrton ", ptr("BR"))
	require.NoError(t, err)
	require.Equal(t, "Ayrton", driver.Name)
	require.Equal(t, "BR", *driver.Nationality)

	_, err = NewDriver("  ", nil)
	require.Error(t, err)
}
