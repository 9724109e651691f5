package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContract_RequiredArePermitted(t *testing.T) {
	c := NewContract([]string{ParamSite, ParamFrom}, ParamLimit, ParamSite)

	assert.Equal(t, []string{ParamSite, ParamFrom}, c.Required())
	assert.Equal(t, []string{ParamSite, ParamFrom, ParamLimit}, c.Permitted())
}

func TestContract_Validate(t *testing.T) {
	c := NewContract([]string{ParamSite, ParamSearchEngine, ParamFrom, ParamTo}, ParamLimit, ParamOffset)

	t.Run("drops keys outside the permitted set", func(t *testing.T) {
		out, err := c.Validate(Params{
			ParamSite: "7", ParamSearchEngine: "3", ParamFrom: "2024-01-01", ParamTo: "2024-01-31",
			ParamLimit: "10", "debug": "1",
		})
		require.NoError(t, err)

		assert.Equal(t, Params{
			ParamSite: "7", ParamSearchEngine: "3", ParamFrom: "2024-01-01", ParamTo: "2024-01-31",
			ParamLimit: "10",
		}, out)
	})

	t.Run("lists every missing key in declaration order", func(t *testing.T) {
		_, err := c.Validate(Params{ParamSearchEngine: "3", ParamTo: "  "})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{ParamSite, ParamFrom, ParamTo}, verr.Missing)
		assert.Contains(t, err.Error(), "missing site, from, to")
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := Params{ParamSite: "7", ParamSearchEngine: "3", ParamFrom: "a", ParamTo: "b", "x": "y"}
		_, err := c.Validate(in)
		require.NoError(t, err)
		assert.Equal(t, "y", in["x"])
	})
}

func TestContract_AccessorsReturnCopies(t *testing.T) {
	c := NewContract([]string{ParamSite})
	c.Required()[0] = "mutated"
	c.Permitted()[0] = "mutated"

	assert.Equal(t, []string{ParamSite}, c.Required())
	assert.Equal(t, []string{ParamSite}, c.Permitted())
}
