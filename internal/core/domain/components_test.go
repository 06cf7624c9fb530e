package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicleComponent_DisplayName(t *testing.T) {
	alias := "Front pads"
	empty := ""
	catalog := &ComponentCatalogEntry{Name: "Brakes"}

	assert.Equal(t, "Front pads", (&VehicleComponent{Alias: &alias, Catalog: catalog}).DisplayName())
	assert.Equal(t, "Brakes", (&VehicleComponent{Alias: &empty, Catalog: catalog}).DisplayName())
	assert.Equal(t, "Brakes", (&VehicleComponent{Catalog: catalog}).DisplayName())
	assert.Equal(t, "", (&VehicleComponent{}).DisplayName())
}

func TestVehicleType_IsValid(t *testing.T) {
	assert.True(t, Car.IsValid())
	assert.True(t, Motorcycle.IsValid())
	assert.False(t, VehicleType("bmx").IsValid())
}
