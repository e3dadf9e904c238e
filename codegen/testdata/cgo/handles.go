package lvgl

/*
#include "lvgl.h"
*/
import "C"

type Obj struct{ raw *C.lv_obj_t }

func (o *Obj) Raw() *C.lv_obj_t {
	if o == nil {
		return nil
	}
	return o.raw
}

func (o *Obj) RawMut() *C.lv_obj_t { return o.Raw() }

func TryObjFromPtr(p *C.lv_obj_t) *Obj {
	if p == nil {
		return nil
	}
	return &Obj{raw: p}
}
