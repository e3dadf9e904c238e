package config

import (
	"maps"
	"slices"
)

// DefaultProfile is the deny-list used when none is configured.
const DefaultProfile = "ecs"

// profiles are the built-in deny-lists. Names on a deny-list are never
// wrapped because a hand-written binding replaces them.
var profiles = map[string][]string{
	// Object tree and styles are managed by the entity layer.
	"ecs": {
		"lv_obj_null_on_delete",
		"lv_obj_add_style",
		"lv_obj_replace_style",
		"lv_obj_remove_style",
		"lv_obj_remove_style_all",
		"lv_obj_set_parent",
		"lv_obj_add_event_cb",
		"lv_style_init",
		"lv_event_get_target",
		"lv_event_get_target_obj",
		"lv_event_get_current_target_obj",
		"lv_list_get_button_text",
	},
	"no-ecs": {
		"lv_style_init",
		"lv_obj_null_on_delete",
		"lv_obj_add_style",
		"lv_obj_set_parent",
		"lv_obj_add_event_cb",
		"lv_event_get_target",
		"lv_event_get_target_obj",
		"lv_event_get_current_target_obj",
		"lv_list_get_button_text",
	},
}

// ProfileNames returns the built-in profile names, sorted.
func ProfileNames() []string {
	return slices.Sorted(maps.Keys(profiles))
}

// Profile returns a copy of a built-in deny-list.
func Profile(name string) ([]string, bool) {
	p, ok := profiles[name]
	return slices.Clone(p), ok
}
