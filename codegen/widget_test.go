package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(ws []*Widget) []string {
	var out []string
	for _, w := range ws {
		out = append(out, w.Name)
	}
	return out
}

func memberNames(w *Widget) []string {
	var out []string
	for _, m := range w.Methods {
		out = append(out, m.Name)
	}
	return out
}

func TestWidgetNames(t *testing.T) {
	fns := []*Function{
		NewFunction("lv_obj_create", []Argument{arg("parent", "abc")}, nil),
		NewFunction("lv_btn_create", []Argument{arg("parent", "abc")}, nil),
		NewFunction("lv_do_something", []Argument{arg("parent", "abc")}, nil),
		NewFunction("lv_invalid_create", []Argument{arg("parent", "abc"), arg("copy_from", "bcf")}, nil),
		NewFunction("lv_cb_create", []Argument{arg("parent", "abc")}, nil),
		NewFunction("lv_style_init", []Argument{arg("style", "abc")}, nil),
		NewFunction("lv_btn_create", []Argument{arg("parent", "abc")}, nil),
		NewFunction("lv_two_words_create", []Argument{arg("parent", "abc")}, nil),
	}
	assert.Equal(t, []string{"obj", "btn", "cb", "style"}, WidgetNames(fns))
}

// Two-argument constructor-shaped functions never name a widget but are
// still members of a widget discovered otherwise.
func TestExtractWidgets_TwoArgumentCreate(t *testing.T) {
	fns := []*Function{
		NewFunction("lv_arc_create", []Argument{arg("par", "* mut lv_obj_t"), arg("copy", "* const lv_obj_t")}, ret("* mut lv_obj_t")),
		NewFunction("lv_bar_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
		NewFunction("lv_bar_init", []Argument{arg("obj", "* mut lv_obj_t"), arg("extra", "u32")}, nil),
	}
	ws := ExtractWidgets(fns)
	require.Equal(t, []string{"bar"}, names(ws))
	assert.Equal(t, []string{"lv_bar_create", "lv_bar_init"}, memberNames(ws[0]))
	assert.Equal(t, "lv_bar_create", ws[0].Ctor.Name)
}

func TestExtractWidgets_OnlyMethods(t *testing.T) {
	fns := []*Function{
		NewFunction("lv_label_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
		NewFunction("lv_label_set_text", []Argument{arg("obj", "* mut lv_obj_t"), arg("text", "* const c_char")}, nil),
		NewFunction("lv_label_count", nil, ret("u32")),
		NewFunction("lv_label_parse", []Argument{arg("text", "* const c_char")}, nil),
		NewFunction("lv_labelish_set", []Argument{arg("obj", "* mut lv_obj_t")}, nil),
	}
	ws := ExtractWidgets(fns)
	require.Len(t, ws, 1)
	assert.Equal(t, []string{"lv_label_create", "lv_label_set_text"}, memberNames(ws[0]))
}

func TestExtractWidgets_DiscoveryOrderAndEmptyWidgets(t *testing.T) {
	fns := []*Function{
		NewFunction("lv_slider_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
		NewFunction("lv_anim_init", []Argument{arg("a", "* mut lv_anim_t")}, nil),
		NewFunction("lv_arc_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
		NewFunction("lv_arc_set_value", []Argument{arg("obj", "* mut lv_obj_t"), arg("v", "i32")}, nil),
		NewFunction("lv_slider_set_value", []Argument{arg("obj", "* mut lv_obj_t"), arg("v", "i32")}, nil),
	}
	ws := ExtractWidgets(fns)
	assert.Equal(t, []string{"slider", "anim", "arc"}, names(ws))
	assert.Equal(t, []string{"lv_slider_create", "lv_slider_set_value"}, memberNames(ws[0]))
	assert.Empty(t, ws[1].Methods)
	assert.Equal(t, "lv_anim_init", ws[1].Ctor.Name)
	assert.Equal(t, []string{"lv_arc_create", "lv_arc_set_value"}, memberNames(ws[2]))
}

func TestExtractWidgets_Idempotent(t *testing.T) {
	fns := []*Function{
		NewFunction("lv_obj_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
		NewFunction("lv_obj_clean", []Argument{arg("obj", "* mut lv_obj_t")}, nil),
		NewFunction("lv_label_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
		NewFunction("lv_label_set_text", []Argument{arg("obj", "* mut lv_obj_t"), arg("text", "* const c_char")}, nil),
		NewFunction("lv_obj_get_screen", []Argument{arg("obj", "* const lv_obj_t")}, ret("* mut lv_obj_t")),
	}
	first := ExtractWidgets(fns)
	second := ExtractWidgets(fns)
	require.Equal(t, names(first), names(second))
	for i := range first {
		assert.Equal(t, memberNames(first[i]), memberNames(second[i]))
	}
	assert.Equal(t, []string{"lv_obj_create", "lv_obj_clean", "lv_obj_get_screen"}, memberNames(first[0]))
}

func TestExtractWidgets_LongestPrefixWins(t *testing.T) {
	target, err := NewTarget(testConfig())
	require.NoError(t, err)
	// widget names carry no underscore, so at most one widget prefix can
	// match; the tie-break still favours the longest name
	fns := []*Function{
		target.newFunction("lv_btn_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
		target.newFunction("lv_btnmatrix_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
		target.newFunction("lv_btnmatrix_set_map", []Argument{arg("obj", "* mut lv_obj_t")}, nil),
		target.newFunction("lv_btn_set_state", []Argument{arg("obj", "* mut lv_obj_t")}, nil),
	}
	ws := target.ExtractWidgets(fns)
	require.Equal(t, []string{"btn", "btnmatrix"}, names(ws))
	assert.Equal(t, []string{"lv_btn_create", "lv_btn_set_state"}, memberNames(ws[0]))
	assert.Equal(t, []string{"lv_btnmatrix_create", "lv_btnmatrix_set_map"}, memberNames(ws[1]))
}

func TestExtractWidgets_PrefersCreateOverInit(t *testing.T) {
	fns := []*Function{
		NewFunction("lv_img_init", []Argument{arg("obj", "* mut lv_obj_t")}, nil),
		NewFunction("lv_img_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
	}
	ws := ExtractWidgets(fns)
	require.Len(t, ws, 1)
	assert.Equal(t, "lv_img_create", ws[0].Ctor.Name)
}

func TestWidget_CodeCollectsSkips(t *testing.T) {
	w := widget("label")
	w.Methods = []*Function{
		NewFunction("lv_label_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t")),
		NewFunction("lv_label_set_text", []Argument{arg("obj", "* mut lv_obj_t"), arg("text", "* const c_char")}, nil),
		NewFunction("lv_label_set_map", []Argument{arg("obj", "* mut lv_obj_t"), arg("m", "* mut * mut c_char")}, nil),
		NewFunction("lv_label_get_recolor", []Argument{arg("obj", "* const lv_obj_t")}, ret("bool")),
	}
	decls, skips := w.Code()
	require.Len(t, decls, 2)
	assert.Equal(t, "LabelSetText", decls[0].Name)
	assert.Equal(t, "LabelGetRecolor", decls[1].Name)

	require.Len(t, skips, 2)
	assert.Equal(t, Skip{Function: "lv_label_create", Widget: "label", Reason: SkipReason{Kind: Constructor, Subject: "lv_label_create"}}, skips[0])
	assert.Equal(t, ArrayArgument, skips[1].Reason.Kind)
	assert.Equal(t, "lv_label_set_map - Array as argument (* mut * mut c_char)", skips[1].String())
}

func TestWidget_EmptyWidgetEmitsNothing(t *testing.T) {
	decls, skips := widget("arc").Code()
	assert.Empty(t, decls)
	assert.Empty(t, skips)
}

func TestWidget_Constructor(t *testing.T) {
	w := widget("label")
	w.Ctor = NewFunction("lv_label_create", []Argument{arg("parent", "* mut lv_obj_t")}, ret("* mut lv_obj_t"))

	decl, err := w.Constructor()
	require.NoError(t, err)
	assert.Equal(t, gofmt(t, `
// NewLabel creates a label on parent, or on the active screen of the
// default display when parent is nil.
func NewLabel(parent *Obj) *Obj {
	var raw *C.lv_obj_t
	if parent != nil {
		raw = parent.RawMut()
	} else {
		raw = C.lv_display_get_screen_active(C.lv_display_get_default())
	}
	return TryObjFromPtr(C.lv_label_create(raw))
}
`), declSource(t, decl))
}

func TestWidget_ConstructorSkips(t *testing.T) {
	_, err := widget("obj").Constructor()
	assert.Equal(t, "Already implemented (obj)", requireSkip(t, err, CustomStruct).Error())

	_, err = widget("style").Constructor()
	requireSkip(t, err, CustomStruct)

	anim := widget("anim")
	anim.Ctor = NewFunction("lv_anim_init", []Argument{arg("a", "* mut lv_anim_t")}, nil)
	_, err = anim.Constructor()
	reason := requireSkip(t, err, Constructor)
	assert.Equal(t, "lv_anim_init", reason.Subject)
	assert.False(t, reason.Loud())

	_, err = widget("ghost").Constructor()
	assert.Equal(t, "lv_ghost_create", requireSkip(t, err, Constructor).Subject)
}

func TestWidget_GoName(t *testing.T) {
	assert.Equal(t, "Label", widget("label").GoName())
	assert.Equal(t, "Btnmatrix", widget("btnmatrix").GoName())
}
