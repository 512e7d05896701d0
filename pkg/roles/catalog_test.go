package roles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversEveryRole(t *testing.T) {
	c := Default()
	assert.Len(t, All, 7)
	for _, r := range All {
		req, ok := c.RequirementsFor(r)
		require.True(t, ok, "role %s", r)
		assert.NoError(t, req.Validate())
	}
}

func TestMultiplierFor(t *testing.T) {
	c := Default()

	assert.Equal(t, 1.5, c.MultiplierFor("brainstorm", Moderator))
	assert.Equal(t, 0.5, c.MultiplierFor("status_update", Ideologue))
	assert.Equal(t, 1.0, c.MultiplierFor("retrospective", Moderator), "unknown meeting type is neutral")
	assert.Equal(t, 1.0, c.MultiplierFor("brainstorm", Role("janitor")), "unknown role is neutral")
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("time_manager")
	require.NoError(t, err)
	assert.Equal(t, TimeManager, r)

	_, err = ParseRole("janitor")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewCatalog_MissingRole(t *testing.T) {
	reqs := DefaultRequirements()
	delete(reqs, Critic)

	_, err := NewCatalog(reqs, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "critic")
}

func TestNewCatalog_UnknownRole(t *testing.T) {
	reqs := DefaultRequirements()
	reqs[Role("janitor")] = Requirement{EIMax: 100, SIMax: 100, EnergyMax: 100}

	_, err := NewCatalog(reqs, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewCatalog_MalformedRange(t *testing.T) {
	reqs := DefaultRequirements()
	reqs[Speaker] = Requirement{EIMin: 90, EIMax: 60, SIMax: 100, EnergyMax: 100}

	_, err := NewCatalog(reqs, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "greater than max")

	reqs[Speaker] = Requirement{EIMax: 120, SIMax: 100, EnergyMax: 100}
	_, err = NewCatalog(reqs, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewCatalog_NonPositiveMultiplier(t *testing.T) {
	_, err := NewCatalog(DefaultRequirements(), map[string]map[Role]float64{
		"review": {Critic: 0},
	})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestParseCatalog_PartialFileKeepsDefaults(t *testing.T) {
	c, err := ParseCatalog([]byte(`
meeting_multipliers:
  review:
    critic: 2.0
  retro:
    mediator: 1.4
`))
	require.NoError(t, err)

	assert.Equal(t, 2.0, c.MultiplierFor("review", Critic))
	assert.Equal(t, 1.4, c.MultiplierFor("review", Moderator), "other roles of an overridden type keep defaults")
	assert.Equal(t, 1.5, c.MultiplierFor("brainstorm", Moderator), "other meeting types keep defaults")
	assert.Equal(t, 1.4, c.MultiplierFor("retro", Mediator))
	assert.Equal(t, 1.0, c.MultiplierFor("retro", Critic))

	req, ok := c.RequirementsFor(Moderator)
	require.True(t, ok)
	assert.Equal(t, DefaultRequirements()[Moderator], req)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	data := `role_requirements:
  moderator: {ei_min: 70, ei_max: 100, si_min: 70, si_max: 100, energy_min: 70, energy_max: 100}
  speaker: {ei_min: 60, ei_max: 85, si_min: 75, si_max: 100, energy_min: 80, energy_max: 100}
  time_manager: {ei_min: 50, ei_max: 75, si_min: 30, si_max: 60, energy_min: 60, energy_max: 90}
  critic: {ei_min: 60, ei_max: 85, si_min: 50, si_max: 75, energy_min: 40, energy_max: 70}
  ideologue: {ei_min: 50, ei_max: 75, si_min: 60, si_max: 85, energy_min: 75, energy_max: 100}
  mediator: {ei_min: 80, ei_max: 100, si_min: 70, si_max: 95, energy_min: 65, energy_max: 90}
  harmonizer: {ei_min: 70, ei_max: 95, si_min: 75, si_max: 100, energy_min: 60, energy_max: 85}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	req, _ := c.RequirementsFor(Moderator)
	assert.Equal(t, 70.0, req.EIMin)
	assert.Equal(t, 1.5, c.MultiplierFor("brainstorm", Moderator))
}

func TestLoad_IncompleteRequirements(t *testing.T) {
	_, err := ParseCatalog([]byte(`
role_requirements:
  moderator: {ei_min: 70, ei_max: 100, si_min: 70, si_max: 100, energy_min: 70, energy_max: 100}
`))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestToFile_RoundTrip(t *testing.T) {
	f := Default().ToFile()
	assert.Len(t, f.RoleRequirements, 7)
	assert.Len(t, f.MeetingMultipliers, 4)
	assert.Equal(t, 1.4, f.MeetingMultipliers["planning"]["time_manager"])
}
