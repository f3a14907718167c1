package persistence

import (
	"path/filepath"
	"testing"

	"github.com/markusressel/coolctl/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func testPersistence(t *testing.T) Persistence {
	dbPath := filepath.Join(t.TempDir(), "coolctl.db")
	return NewPersistence(dbPath)
}

func TestPersistence_SaveAndLoadDuties(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	expected := map[string]int{
		"front": 45,
		"rear":  40,
	}

	// WHEN
	err := p.SaveDuties(configuration.ActuatorRadiator, expected)
	assert.NoError(t, err)

	// THEN
	duties, err := p.LoadDuties(configuration.ActuatorRadiator)
	assert.NoError(t, err)
	assert.Equal(t, expected, duties)
}

func TestPersistence_LoadDutiesWithoutData(t *testing.T) {
	// GIVEN
	p := testPersistence(t)

	// WHEN
	duties, err := p.LoadDuties(configuration.ActuatorPump)

	// THEN
	assert.Nil(t, duties)
	assert.Error(t, err)
}

func TestPersistence_DeleteDuties(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	_ = p.SaveDuties(configuration.ActuatorPump, map[string]int{"pump": 60})

	// WHEN
	err := p.DeleteDuties(configuration.ActuatorPump)
	assert.NoError(t, err)

	// THEN
	duties, err := p.LoadDuties(configuration.ActuatorPump)
	assert.Nil(t, duties)
	assert.Error(t, err)
}

func TestPersistence_InitCreatesParentDir(t *testing.T) {
	// GIVEN
	dbPath := filepath.Join(t.TempDir(), "nested", "coolctl.db")
	p := NewPersistence(dbPath)

	// WHEN
	err := p.Init()

	// THEN
	assert.NoError(t, err)
}
