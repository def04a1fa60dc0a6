package feature

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContinuousFeatureParse(t *testing.T) {
	f := NewContinuousFeature("age")
	require.Equal(t, "age", f.Name())
	for _, raw := range []interface{}{42.0, float32(42), 42, int64(42), Number(42), "42"} {
		v, err := f.Parse(raw)
		require.NoError(t, err)
		require.Equal(t, Number(42), v)
	}
	_, err := f.Parse("old")
	require.Error(t, err)
	require.Contains(t, err.Error(), "age")
	_, err = f.Parse(true)
	require.Error(t, err)
}

func TestDiscreteFeatureParse(t *testing.T) {
	f := NewDiscreteFeature("color", []string{"red", "blue"})
	require.Equal(t, "color", f.Name())
	require.Equal(t, []string{"red", "blue"}, f.AvailableValues())
	v, err := f.Parse("red")
	require.NoError(t, err)
	require.Equal(t, Category("red"), v)
	v, err = f.Parse(Category("blue"))
	require.NoError(t, err)
	require.Equal(t, Category("blue"), v)
	_, err = f.Parse("green")
	require.Error(t, err)
	require.Contains(t, err.Error(), "green")
	_, err = f.Parse(3)
	require.Error(t, err)
}

func TestValueKinds(t *testing.T) {
	require.Equal(t, Numeric, Number(1.5).Kind())
	require.Equal(t, Categorical, Category("a").Kind())
	require.Equal(t, "1.5", Number(1.5).String())
	require.Equal(t, "a", Category("a").String())
}
