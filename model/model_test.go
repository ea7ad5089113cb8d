package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iggydv12/localsync/model"
)

func TestRecordAttributes(t *testing.T) {
	r := model.NewRecord(map[string]any{"foo": "bar"})

	v, ok := r.Attribute("foo")
	require.True(t, ok)
	assert.Equal(t, "bar", v)

	r.SetAttribute("n", 42)
	v, ok = r.Attribute("n")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	r.UnsetAttribute("n")
	_, ok = r.Attribute("n")
	assert.False(t, ok)
}

func TestRecordIsNew(t *testing.T) {
	r := model.NewRecord(map[string]any{"foo": "bar"})
	assert.True(t, r.IsNew())

	r.SetAttribute("id", "k1")
	assert.False(t, r.IsNew())

	r.UnsetAttribute("id")
	assert.True(t, r.IsNew())
}

func TestRecordCustomIDAttribute(t *testing.T) {
	r := model.NewRecord(map[string]any{"_id": "abc"})
	assert.Equal(t, model.DefaultIDAttribute, r.IDAttribute())
	assert.True(t, r.IsNew())

	r.SetIDAttribute("_id")
	assert.Equal(t, "_id", r.IDAttribute())
	assert.False(t, r.IsNew())
}

func TestRecordToJSONIsACopy(t *testing.T) {
	r := model.NewRecord(map[string]any{"foo": "bar"})

	j, ok := r.ToJSON().(map[string]any)
	require.True(t, ok)
	j["foo"] = "mutated"

	v, _ := r.Attribute("foo")
	assert.Equal(t, "bar", v)
}

func TestRecordConstructorCopiesAttrs(t *testing.T) {
	attrs := map[string]any{"foo": "bar"}
	r := model.NewRecord(attrs)
	attrs["foo"] = "mutated"

	v, _ := r.Attribute("foo")
	assert.Equal(t, "bar", v)
}

func TestRecordEvents(t *testing.T) {
	r := model.NewRecord(nil)

	var got [][]any
	r.On("request", func(args ...any) { got = append(got, args) })
	r.On("request", func(args ...any) { got = append(got, args) })
	r.On("other", func(args ...any) { t.Fatal("wrong event delivered") })

	r.Emit("request", 1, "two")

	require.Len(t, got, 2)
	assert.Equal(t, []any{1, "two"}, got[0])
	assert.Equal(t, []any{1, "two"}, got[1])
}

func TestEmitWithoutHandlers(t *testing.T) {
	r := model.NewRecord(nil)
	assert.NotPanics(t, func() { r.Emit("request") })
}

func TestCollectionToJSON(t *testing.T) {
	c := model.NewCollection(
		model.NewRecord(map[string]any{"id": "a"}),
		model.NewRecord(map[string]any{"id": "b"}),
	)
	c.Add(model.NewRecord(map[string]any{"id": "c"}))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []any{
		map[string]any{"id": "a"},
		map[string]any{"id": "b"},
		map[string]any{"id": "c"},
	}, c.ToJSON())
}

func TestCollectionAttributeNoOps(t *testing.T) {
	c := model.NewCollection()

	assert.False(t, c.IsRecord())
	assert.Equal(t, model.DefaultIDAttribute, c.IDAttribute())

	c.SetAttribute("id", "x")
	_, ok := c.Attribute("id")
	assert.False(t, ok)
	assert.NotPanics(t, func() { c.UnsetAttribute("id") })
}

func TestInstanceImplementations(t *testing.T) {
	var _ model.Instance = model.NewRecord(nil)
	var _ model.Instance = model.NewCollection()
}
