package dom_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alkime/maffie/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fieldset = `
<fieldset>
    <legend class="label"></legend>
    <p class="display"></p>
</fieldset>`

func TestParseFragment(t *testing.T) {
	frag, err := dom.ParseFragment(fieldset)
	require.NoError(t, err)

	children := frag.Children()
	require.Len(t, children, 1)
	assert.Equal(t, "fieldset", children[0].Tag)

	// whitespace-only text is dropped
	inner := children[0].Children()
	require.Len(t, inner, 2)
	assert.Equal(t, "legend", inner[0].Tag)
	assert.Equal(t, "p", inner[1].Tag)
}

func TestQuerySelector(t *testing.T) {
	frag, err := dom.ParseFragment(`<div><input class="a b"><span class="a"></span><input></div>`)
	require.NoError(t, err)

	assert.Len(t, frag.QuerySelectorAll("input"), 2)
	assert.Len(t, frag.QuerySelectorAll(".a"), 2)
	assert.Len(t, frag.QuerySelectorAll("input.a"), 1)
	assert.Equal(t, "span", frag.QuerySelector("span.a").Tag)
	assert.Nil(t, frag.QuerySelector(".missing"))
}

func TestInsertAfter(t *testing.T) {
	frag, err := dom.ParseFragment(fieldset)
	require.NoError(t, err)

	label := frag.QuerySelector(".label")
	first := dom.NewElement("input")
	second := dom.NewElement("input")

	require.True(t, label.InsertAfter(first))
	require.True(t, first.InsertAfter(second))

	tags := label.Parent().Children()
	require.Len(t, tags, 4)
	assert.Same(t, label, tags[0])
	assert.Same(t, first, tags[1])
	assert.Same(t, second, tags[2])
	assert.Equal(t, "p", tags[3].Tag)

	assert.False(t, dom.NewElement("div").InsertAfter(dom.NewElement("i")), "detached element has no parent")
}

func TestClasses(t *testing.T) {
	el := dom.NewElement("INPUT")
	assert.Equal(t, "input", el.Tag)

	el.AddClass("x")
	el.AddClass("y")
	el.AddClass("x")
	assert.Equal(t, []string{"x", "y"}, el.Classes())
	assert.True(t, el.HasClass("y"))
	assert.False(t, el.HasClass("z"))
}

func TestAttrs(t *testing.T) {
	el := dom.NewElement("input")
	el.SetAttr("type", "range")
	el.SetAttr("min", "0")
	el.SetAttr("type", "number")

	v, ok := el.Attr("min")
	assert.True(t, ok)
	assert.Equal(t, "0", v)

	_, ok = el.Attr("max")
	assert.False(t, ok)

	el.RemoveAttr("min")
	_, ok = el.Attr("min")
	assert.False(t, ok)
	require.Len(t, el.Attrs(), 1)
	assert.Equal(t, "number", el.Attrs()[0].Val)
}

func TestValue(t *testing.T) {
	el := dom.NewElement("input")
	assert.Empty(t, el.Value())

	el.SetAttr("value", "5")
	assert.Equal(t, "5", el.Value())

	el.SetValue("7")
	assert.Equal(t, "7", el.Value())

	attr, _ := el.Attr("value")
	assert.Equal(t, "5", attr, "setting the live value leaves the attribute alone")
}

func TestTextContent(t *testing.T) {
	p := dom.NewElement("p")
	p.SetTextContent("hello")
	assert.Equal(t, "hello", p.TextContent())

	p.SetTextContent("bye")
	assert.Equal(t, "bye", p.TextContent())
	assert.Len(t, p.Children(), 1)

	p.SetTextContent("")
	assert.Empty(t, p.Children())
}

func TestDispatch(t *testing.T) {
	el := dom.NewElement("input")

	var order []string
	el.AddEventListener(dom.EventInput, func(ev dom.Event) error {
		order = append(order, "first:"+ev.Target.Value())
		el.AddEventListener(dom.EventInput, func(dom.Event) error {
			order = append(order, "late")
			return nil
		})

		return nil
	})
	el.AddEventListener(dom.EventInput, func(dom.Event) error {
		order = append(order, "second")
		return errors.New("boom")
	})

	err := el.Input("3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []string{"first:3", "second"}, order)
	assert.Equal(t, 3, el.Listeners(dom.EventInput))

	assert.NoError(t, el.Dispatch(dom.EventChange), "no handlers for change")
}

func TestRender(t *testing.T) {
	frag, err := dom.ParseFragment(`<fieldset><legend class="l">Vol &amp; gain</legend></fieldset>`)
	require.NoError(t, err)

	in := dom.NewElement("input")
	in.SetAttr("type", "range")
	in.SetAttr("value", "1")
	in.SetValue("9")
	frag.QuerySelector("legend").InsertAfter(in)

	var sb strings.Builder
	require.NoError(t, frag.Render(&sb))
	assert.Equal(t,
		`<fieldset><legend class="l">Vol &amp; gain</legend><input type="range" value="9"/></fieldset>`,
		sb.String())
}

func TestClone(t *testing.T) {
	frag, err := dom.ParseFragment(fieldset)
	require.NoError(t, err)

	c := frag.Clone()
	c.QuerySelector(".label").SetTextContent("changed")

	assert.Empty(t, frag.QuerySelector(".label").TextContent())
	assert.Equal(t, "changed", c.QuerySelector(".label").TextContent())
}
