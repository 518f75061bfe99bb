package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passUnit(name string) TestUnit {
	return TestUnit{Name: name, Run: func(context.Context, *Env) (bool, string) { return true, name + " ok" }}
}

func unitNames(units []TestUnit) []string {
	names := make([]string, 0, len(units))
	for _, u := range units {
		names = append(names, u.Name)
	}
	return names
}

func TestRegistry_DiscoverSortsByName(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(
		passUnit("test_python_version"),
		passUnit("test_database_connection"),
		passUnit("test_container_up"),
		passUnit("test_container_down"),
	)

	assert.Equal(t, []string{
		"test_container_down",
		"test_container_up",
		"test_database_connection",
		"test_python_version",
	}, unitNames(r.Discover("")))
}

func TestRegistry_DiscoverSkipsUnprefixed(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(passUnit("helper_setup"), passUnit("test_a"), passUnit("Test_b"))

	assert.Equal(t, []string{"test_a"}, unitNames(r.Discover("")))
}

func TestRegistry_DiscoverFilter(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{"test_container_down", "test_container_up"}, unitNames(r.Discover("container")))
	assert.Empty(t, r.Discover("nothing-matches"))
}

func TestRegistry_RegisterValidation(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(passUnit("test_a")))

	assert.ErrorContains(t, r.Register(passUnit("test_a")), "already registered")
	assert.ErrorContains(t, r.Register(TestUnit{Name: " "}), "cannot be empty")
	assert.ErrorContains(t, r.Register(TestUnit{Name: "test_b"}), "no run function")
	assert.Panics(t, func() { r.MustRegister(passUnit("test_a")) })
}

func TestDefaultRegistry_BuiltinUnits(t *testing.T) {
	assert.Equal(t, []string{
		"test_container_down",
		"test_container_up",
		"test_database_connection",
		"test_python_version",
	}, unitNames(DefaultRegistry().Discover("")))
}
